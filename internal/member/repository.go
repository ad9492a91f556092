package member

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

const memberColumns = `id, name, email, phone, address, plan_id, join_date, expiry_date, status, image_url, created_at, updated_at`

func (r *repository) Create(ctx context.Context, m *Member) (*Member, error) {
	created := &Member{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO members (name, email, phone, address, plan_id, join_date, expiry_date, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+memberColumns+`
	`, m.Name, m.Email, m.Phone, m.Address, m.PlanID, m.JoinDate, m.ExpiryDate, m.Status, m.ImageURL).StructScan(created)

	return created, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	m := &Member{}
	err := r.db.GetContext(ctx, m, `
		SELECT `+memberColumns+`
		FROM members
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Member, error) {
	members := []Member{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT `+memberColumns+`
		FROM members
		ORDER BY name
	`)
	return members, err
}

func (r *repository) Update(ctx context.Context, m *Member) (*Member, error) {
	updated := &Member{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE members
		SET name = $1, email = $2, phone = $3, address = $4, plan_id = $5,
		    join_date = $6, expiry_date = $7, status = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+memberColumns+`
	`, m.Name, m.Email, m.Phone, m.Address, m.PlanID, m.JoinDate, m.ExpiryDate, m.Status, m.ID).StructScan(updated)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *repository) UpdateExpiry(ctx context.Context, id int, expiryDate time.Time, status Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET expiry_date = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`, expiryDate, status, id)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	return err
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}
