package payment

import "time"

type Type string
type Status string

const (
	TypeMonthly Type = "monthly"
	TypeRenewal Type = "renewal"
	TypeAdvance Type = "advance"

	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

type Payment struct {
	ID            int       `db:"id" json:"id"`
	MemberID      int       `db:"member_id" json:"member_id"`
	AmountCents   int64     `db:"amount_cents" json:"amount_cents"`
	PaymentDate   time.Time `db:"payment_date" json:"payment_date"`
	Type          Type      `db:"type" json:"type"`
	Method        string    `db:"method" json:"method"`
	Status        Status    `db:"status" json:"status"`
	InvoiceNumber *string   `db:"invoice_number" json:"invoice_number,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type RecordPaymentRequest struct {
	AmountCents   int64  `json:"amount_cents" binding:"required,min=1"`
	PaymentDate   string `json:"payment_date" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=monthly renewal advance"`
	Method        string `json:"method" binding:"required"`
	Status        string `json:"status" binding:"omitempty,oneof=paid pending"`
	InvoiceNumber string `json:"invoice_number"`

	// ExtendExpiry only applies to renewal-type payments; it advances the
	// member's expiry by one plan duration from the current expiry date.
	ExtendExpiry bool `json:"extend_expiry"`
}

// DuesResponse is always computed on demand; the due amount is never stored.
type DuesResponse struct {
	MemberID       int        `json:"member_id"`
	PlanID         int        `json:"plan_id"`
	PlanName       string     `json:"plan_name"`
	PriceCents     int64      `json:"price_cents"`
	PeriodStart    time.Time  `json:"period_start"`
	PeriodEnd      time.Time  `json:"period_end"`
	TotalPaidCents int64      `json:"total_paid_cents"`
	DueCents       int64      `json:"due_cents"`
	PaymentStatus  DuesStatus `json:"payment_status"`
}
