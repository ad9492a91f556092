package member

import "time"

// DateLayout is the calendar-date wire format used for join, expiry and
// payment dates throughout the API.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func daysInMonth(t time.Time) int {
	// day 0 of the next month is the last day of t's month
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// ComputeExpiry advances a join date by a whole number of calendar months.
// A join date on the last day of its month lands on the last day of the
// target month, and days past the end of the target month are clamped
// (Jan 31 + 1 month is Feb 28/29, not Mar 2). Months may be negative,
// which is how period starts are derived from a stored expiry.
func ComputeExpiry(joinDate time.Time, months int) time.Time {
	day := joinDate.Day()
	lastOfOwn := daysInMonth(joinDate)

	// AddDate on the first of the month never spills into a third month
	target := time.Date(joinDate.Year(), joinDate.Month(), 1, 0, 0, 0, 0, joinDate.Location()).
		AddDate(0, months, 0)

	lastOfTarget := daysInMonth(target)
	if day == lastOfOwn || day > lastOfTarget {
		day = lastOfTarget
	}

	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, joinDate.Location())
}

// DeriveStatus is the date-only expiry check: a member is expired strictly
// after their expiry date, regardless of time of day on either side.
func DeriveStatus(expiryDate, referenceDate time.Time) Status {
	if StartOfDay(expiryDate).Before(StartOfDay(referenceDate)) {
		return StatusExpired
	}
	return StatusActive
}

// EffectiveStatus resolves the status to show for a member. The calendar
// always wins: a passed expiry reads as expired no matter what is stored.
// Inside the membership period the transient "due" marker survives until
// the period is paid off.
func EffectiveStatus(stored Status, expiryDate, referenceDate time.Time) Status {
	if DeriveStatus(expiryDate, referenceDate) == StatusExpired {
		return StatusExpired
	}
	if stored == StatusDue {
		return StatusDue
	}
	return StatusActive
}
