package member

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/plan"
)

var (
	ErrMemberNotFound             = errors.New("member not found")
	ErrInvalidDate                = errors.New("invalid date")
	ErrExpiryConfirmationRequired = errors.New("expiry confirmation required")
)

// Notifier delivers best-effort membership emails. Failures are logged and
// never fail the initiating request.
type Notifier interface {
	SendRenewalConfirmation(ctx context.Context, to, name string, expiryDate time.Time) error
}

type Service interface {
	CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error)
	GetMember(ctx context.Context, id int) (*Member, error)
	ListMembers(ctx context.Context) ([]Member, error)
	UpdateMember(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error)
	RenewMember(ctx context.Context, id int, req RenewMemberRequest) (*Member, error)
	DeleteMember(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	planRepo plan.Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, planRepo plan.Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		planRepo: planRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateMember registers a new member. The referenced plan must exist before
// anything is persisted; expiry is derived from the join date and the plan
// duration, and status always starts out active.
func (s *service) CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	joinDate, err := ParseDate(req.JoinDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	p, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, plan.ErrPlanNotFound
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = PlaceholderImageURL
	}

	m := &Member{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PlanID:     p.ID,
		JoinDate:   joinDate,
		ExpiryDate: ComputeExpiry(joinDate, p.DurationMonths),
		Status:     StatusActive,
		ImageURL:   imageURL,
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	metrics.RecordMemberCreated()
	return created, nil
}

func (s *service) GetMember(ctx context.Context, id int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	m.Status = EffectiveStatus(m.Status, m.ExpiryDate, s.now())
	return m, nil
}

func (s *service) ListMembers(ctx context.Context) ([]Member, error) {
	members, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range members {
		members[i].Status = EffectiveStatus(members[i].Status, members[i].ExpiryDate, now)
	}

	return members, nil
}

// UpdateMember applies an edit. When the plan or join date changed against
// the stored record the caller has to say what happens to the expiry date:
// an unset ConfirmExpiryUpdate yields ErrExpiryConfirmationRequired, true
// recomputes expiry from the submitted join date and the new plan's
// duration, false keeps the stored expiry byte for byte.
func (s *service) UpdateMember(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	joinDate, err := ParseDate(req.JoinDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	p, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, plan.ErrPlanNotFound
	}

	expiry := existing.ExpiryDate
	status := existing.Status

	if p.ID != existing.PlanID || !SameDate(joinDate, existing.JoinDate) {
		if req.ConfirmExpiryUpdate == nil {
			return nil, ErrExpiryConfirmationRequired
		}
		if *req.ConfirmExpiryUpdate {
			expiry = ComputeExpiry(joinDate, p.DurationMonths)
			status = DeriveStatus(expiry, s.now())
		}
	}

	m := &Member{
		ID:         existing.ID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PlanID:     p.ID,
		JoinDate:   joinDate,
		ExpiryDate: expiry,
		Status:     status,
	}

	updated, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, err
	}

	updated.Status = EffectiveStatus(updated.Status, updated.ExpiryDate, s.now())
	return updated, nil
}

// RenewMember overrides the expiry with a user-supplied date. No
// recomputation and no confirmation: the submitted date is authoritative,
// and the member comes back active.
func (s *service) RenewMember(ctx context.Context, id int, req RenewMemberRequest) (*Member, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	expiry, err := ParseDate(req.ExpiryDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if err := s.repo.UpdateExpiry(ctx, id, expiry, StatusActive); err != nil {
		return nil, err
	}

	metrics.RecordRenewal()

	if s.notifier != nil {
		if err := s.notifier.SendRenewalConfirmation(ctx, existing.Email, existing.Name, expiry); err != nil {
			logger.Errorf("Failed to queue renewal confirmation for member %d: %v", id, err)
		}
	}

	return s.GetMember(ctx, id)
}

func (s *service) DeleteMember(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrMemberNotFound
	}

	return s.repo.Delete(ctx, id)
}
