package payment

import (
	"context"
	"time"

	"gymdesk/internal/member"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, member_id, amount_cents, payment_date, type, method, status, invoice_number, created_at`

func (r *repository) Record(ctx context.Context, p *Payment, memberStatus member.Status, newExpiry *time.Time) (*Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	created := &Payment{}
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO payments (member_id, amount_cents, payment_date, type, method, status, invoice_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+paymentColumns+`
	`, p.MemberID, p.AmountCents, p.PaymentDate, p.Type, p.Method, p.Status, p.InvoiceNumber).StructScan(created)
	if err != nil {
		return nil, err
	}

	if newExpiry != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE members
			SET status = $1, expiry_date = $2, updated_at = NOW()
			WHERE id = $3
		`, memberStatus, *newExpiry, p.MemberID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE members
			SET status = $1, updated_at = NOW()
			WHERE id = $2
		`, memberStatus, p.MemberID)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Payment, error) {
	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE member_id = $1
		ORDER BY payment_date DESC, id DESC
	`, memberID)
	return payments, err
}

func (r *repository) ListAll(ctx context.Context) ([]Payment, error) {
	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `
		SELECT `+paymentColumns+`
		FROM payments
		ORDER BY payment_date DESC, id DESC
	`)
	return payments, err
}

func (r *repository) SumPaidForPeriod(ctx context.Context, memberID int, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE member_id = $1
		  AND status = 'paid'
		  AND payment_date >= $2
		  AND payment_date <= $3
	`, memberID, from, to)
	return total, err
}
