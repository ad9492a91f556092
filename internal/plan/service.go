package plan

import (
	"context"
	"errors"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrPlanInUse    = errors.New("plan is referenced by existing members")
)

type Service interface {
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	GetAllPlans(ctx context.Context) ([]Plan, error)
	GetPlanByID(ctx context.Context, id int) (*Plan, error)
	UpdatePlan(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error)
	DeletePlan(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error) {
	return s.repo.Create(ctx, req.Name, req.DurationMonths, req.PriceCents)
}

func (s *service) GetAllPlans(ctx context.Context) ([]Plan, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetPlanByID(ctx context.Context, id int) (*Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

// UpdatePlan changes a plan prospectively. Members keep their stored expiry
// until their own edit or renewal flow touches it.
func (s *service) UpdatePlan(ctx context.Context, id int, req UpdatePlanRequest) (*Plan, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, ErrPlanNotFound
	}

	return s.repo.Update(ctx, id, req.Name, req.DurationMonths, req.PriceCents)
}

func (s *service) DeletePlan(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrPlanNotFound
	}

	count, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPlanInUse
	}

	return s.repo.Delete(ctx, id)
}
