package payment

import (
	"context"
	"time"

	"gymdesk/internal/member"
)

type Repository interface {
	// Record inserts the payment and rewrites the owning member's status
	// (and optionally expiry) in one transaction.
	Record(ctx context.Context, p *Payment, memberStatus member.Status, newExpiry *time.Time) (*Payment, error)
	ListByMember(ctx context.Context, memberID int) ([]Payment, error)
	ListAll(ctx context.Context) ([]Payment, error)
	SumPaidForPeriod(ctx context.Context, memberID int, from, to time.Time) (int64, error)
}
