package attendance

import "time"

type Attendance struct {
	ID          int       `db:"id" json:"id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	CheckedInAt time.Time `db:"checked_in_at" json:"checked_in_at"`
}

type AttendanceWithMember struct {
	Attendance
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
}

// CheckinsByDay is a per-day bucket of check-in counts for the dashboard.
type CheckinsByDay struct {
	Bucket   string `db:"bucket" json:"bucket"`
	Checkins int    `db:"checkins" json:"checkins"`
}
