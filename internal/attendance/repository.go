package attendance

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, memberID int, checkedInAt time.Time) (*Attendance, error) {
	a := &Attendance{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO attendance (member_id, checked_in_at)
		VALUES ($1, $2)
		RETURNING id, member_id, checked_in_at
	`, memberID, checkedInAt).StructScan(a)

	return a, err
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Attendance, error) {
	records := []Attendance{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, member_id, checked_in_at
		FROM attendance
		WHERE member_id = $1
		ORDER BY checked_in_at DESC
	`, memberID)
	return records, err
}

func (r *repository) ListForDay(ctx context.Context, day time.Time) ([]AttendanceWithMember, error) {
	records := []AttendanceWithMember{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT a.id, a.member_id, a.checked_in_at,
		       m.name AS member_name, m.email AS member_email
		FROM attendance a
		JOIN members m ON m.id = a.member_id
		WHERE DATE(a.checked_in_at) = DATE($1)
		ORDER BY a.checked_in_at DESC
	`, day)
	return records, err
}

func (r *repository) CountByDay(ctx context.Context, from, to time.Time) ([]CheckinsByDay, error) {
	stats := []CheckinsByDay{}
	err := r.db.SelectContext(ctx, &stats, `
		SELECT DATE(checked_in_at) AS bucket,
		       COUNT(*) AS checkins
		FROM attendance
		WHERE checked_in_at BETWEEN $1 AND $2
		GROUP BY DATE(checked_in_at)
		ORDER BY bucket
	`, from, to)
	return stats, err
}
