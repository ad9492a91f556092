package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"gymdesk/internal/member"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupPaymentMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "member_id", "amount_cents", "payment_date", "type", "method", "status", "invoice_number", "created_at"})
}

func TestRecord_CommitsPaymentAndMemberStatus(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	ctx := context.Background()
	paymentDate := date(2024, time.June, 1)

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (member_id, amount_cents, payment_date, type, method, status, invoice_number) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, member_id, amount_cents, payment_date, type, method, status, invoice_number, created_at")).
		WithArgs(7, int64(5000), paymentDate, TypeMonthly, "cash", StatusPaid, nil).
		WillReturnRows(paymentRows().AddRow(1, 7, 5000, paymentDate, "monthly", "cash", "paid", nil, time.Now()))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE members SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(member.StatusActive, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	created, err := repo.Record(ctx, &Payment{
		MemberID:    7,
		AmountCents: 5000,
		PaymentDate: paymentDate,
		Type:        TypeMonthly,
		Method:      "cash",
		Status:      StatusPaid,
	}, member.StatusActive, nil)

	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_WithNewExpiryUpdatesBoth(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	ctx := context.Background()
	paymentDate := date(2024, time.June, 14)
	newExpiry := date(2024, time.July, 15)

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnRows(paymentRows().AddRow(2, 7, 5000, paymentDate, "renewal", "cash", "paid", nil, time.Now()))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE members SET status = $1, expiry_date = $2, updated_at = NOW() WHERE id = $3")).
		WithArgs(member.StatusActive, newExpiry, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	_, err := repo.Record(ctx, &Payment{
		MemberID:    7,
		AmountCents: 5000,
		PaymentDate: paymentDate,
		Type:        TypeRenewal,
		Method:      "cash",
		Status:      StatusPaid,
	}, member.StatusActive, &newExpiry)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_RollsBackWhenInsertFails(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	_, err := repo.Record(ctx, &Payment{
		MemberID:    7,
		AmountCents: 5000,
		PaymentDate: date(2024, time.June, 1),
		Type:        TypeMonthly,
		Method:      "cash",
		Status:      StatusPaid,
	}, member.StatusActive, nil)

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSumPaidForPeriod(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	ctx := context.Background()
	from := date(2024, time.May, 15)
	to := date(2024, time.June, 15)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE member_id = $1 AND status = 'paid' AND payment_date >= $2 AND payment_date <= $3")).
		WithArgs(7, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3500))

	total, err := repo.SumPaidForPeriod(ctx, 7, from, to)

	require.NoError(t, err)
	require.Equal(t, int64(3500), total)
}

func TestListByMember(t *testing.T) {
	repo, mock, close := setupPaymentMock(t)
	defer close()

	ctx := context.Background()
	invoice := "INV-042"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, member_id, amount_cents, payment_date, type, method, status, invoice_number, created_at FROM payments WHERE member_id = $1 ORDER BY payment_date DESC, id DESC")).
		WithArgs(7).
		WillReturnRows(paymentRows().
			AddRow(2, 7, 5000, date(2024, time.June, 1), "monthly", "card", "paid", invoice, time.Now()).
			AddRow(1, 7, 5000, date(2024, time.May, 1), "monthly", "cash", "paid", nil, time.Now()))

	payments, err := repo.ListByMember(ctx, 7)

	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.Equal(t, 2, payments[0].ID)
	require.NotNil(t, payments[0].InvoiceNumber)
	require.Equal(t, "INV-042", *payments[0].InvoiceNumber)
	require.Nil(t, payments[1].InvoiceNumber)
}
