package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	GetAll(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, m *Member) (*Member, error)
	UpdateExpiry(ctx context.Context, id int, expiryDate time.Time, status Status) error
	UpdateStatus(ctx context.Context, id int, status Status) error
	Delete(ctx context.Context, id int) error
}
