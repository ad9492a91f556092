package plan

import "context"

type Repository interface {
	Create(ctx context.Context, name string, durationMonths int, priceCents int64) (*Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
	GetAll(ctx context.Context) ([]Plan, error)
	Update(ctx context.Context, id int, name string, durationMonths int, priceCents int64) (*Plan, error)
	Delete(ctx context.Context, id int) error
	CountMembers(ctx context.Context, planID int) (int, error)
}
