package plan

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, durationMonths int, priceCents int64) (*Plan, error) {
	p := &Plan{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO plans (name, duration_months, price_cents)
		VALUES ($1, $2, $3)
		RETURNING id, name, duration_months, price_cents, created_at, updated_at
	`, name, durationMonths, priceCents).StructScan(p)

	return p, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Plan, error) {
	p := &Plan{}
	err := r.db.GetContext(ctx, p, `
		SELECT id, name, duration_months, price_cents, created_at, updated_at
		FROM plans
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Plan, error) {
	plans := []Plan{}
	err := r.db.SelectContext(ctx, &plans, `
		SELECT id, name, duration_months, price_cents, created_at, updated_at
		FROM plans
		ORDER BY duration_months, price_cents
	`)
	return plans, err
}

func (r *repository) Update(ctx context.Context, id int, name string, durationMonths int, priceCents int64) (*Plan, error) {
	p := &Plan{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE plans
		SET name = $1, duration_months = $2, price_cents = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, duration_months, price_cents, created_at, updated_at
	`, name, durationMonths, priceCents, id).StructScan(p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	return err
}

func (r *repository) CountMembers(ctx context.Context, planID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM members WHERE plan_id = $1`, planID)
	return count, err
}
