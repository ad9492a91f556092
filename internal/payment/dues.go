package payment

// DuesStatus describes how far a member is through paying off the current
// plan period.
type DuesStatus string

const (
	DuesUnpaid      DuesStatus = "Unpaid"
	DuesPartPayment DuesStatus = "PartPayment"
	DuesPaid        DuesStatus = "Paid"
)

// TotalPaid sums the amounts of payments that have actually settled;
// pending payments do not count toward dues.
func TotalPaid(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		if p.Status == StatusPaid {
			total += p.AmountCents
		}
	}
	return total
}

// ComputeDue is the outstanding balance for a period, floored at zero so an
// overpayment never reads as a negative debt.
func ComputeDue(priceCents, totalPaidCents int64) int64 {
	due := priceCents - totalPaidCents
	if due < 0 {
		return 0
	}
	return due
}

func ComputeDuesStatus(priceCents, totalPaidCents int64) DuesStatus {
	switch {
	case totalPaidCents <= 0:
		return DuesUnpaid
	case totalPaidCents < priceCents:
		return DuesPartPayment
	default:
		return DuesPaid
	}
}
