package payment

import (
	"context"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/member"
	"gymdesk/internal/metrics"
	"gymdesk/internal/plan"
)

// Notifier delivers best-effort payment receipts.
type Notifier interface {
	SendPaymentReceipt(ctx context.Context, to, name string, amountCents int64, invoiceNumber string) error
}

type Service interface {
	RecordPayment(ctx context.Context, memberID int, req RecordPaymentRequest) (*Payment, error)
	GetDues(ctx context.Context, memberID int) (*DuesResponse, error)
	GetMemberPayments(ctx context.Context, memberID int) ([]Payment, error)
	GetAllPayments(ctx context.Context) ([]Payment, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	planRepo   plan.Repository
	notifier   Notifier
	now        func() time.Time
}

func NewService(repo Repository, memberRepo member.Repository, planRepo plan.Repository, notifier Notifier) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		planRepo:   planRepo,
		notifier:   notifier,
		now:        time.Now,
	}
}

// currentPeriod is [expiry - plan duration, expiry], derived with the same
// clamped month arithmetic used for expiry itself.
func currentPeriod(expiry time.Time, durationMonths int) (time.Time, time.Time) {
	return member.ComputeExpiry(expiry, -durationMonths), expiry
}

// RecordPayment persists a payment and re-derives the member's standing in
// the same transaction: fully paid periods read active, partial payments
// mark the member due, and a renewal payment can push the expiry out by one
// plan duration. Member and plan are both checked before anything is written.
func (s *service) RecordPayment(ctx context.Context, memberID int, req RecordPaymentRequest) (*Payment, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, member.ErrMemberNotFound
	}

	p, err := s.planRepo.GetByID(ctx, m.PlanID)
	if err != nil {
		return nil, plan.ErrPlanNotFound
	}

	paymentDate, err := member.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, member.ErrInvalidDate
	}

	status := Status(req.Status)
	if status == "" {
		status = StatusPaid
	}

	periodStart, periodEnd := currentPeriod(m.ExpiryDate, p.DurationMonths)
	totalPaid, err := s.repo.SumPaidForPeriod(ctx, memberID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if status == StatusPaid {
		totalPaid += req.AmountCents
	}

	memberStatus := m.Status
	switch ComputeDuesStatus(p.PriceCents, totalPaid) {
	case DuesPaid:
		memberStatus = member.StatusActive
	case DuesPartPayment:
		memberStatus = member.StatusDue
	}

	var newExpiry *time.Time
	if Type(req.Type) == TypeRenewal && req.ExtendExpiry {
		e := member.ComputeExpiry(m.ExpiryDate, p.DurationMonths)
		newExpiry = &e
		memberStatus = member.StatusActive
	}

	rec := &Payment{
		MemberID:    memberID,
		AmountCents: req.AmountCents,
		PaymentDate: paymentDate,
		Type:        Type(req.Type),
		Method:      req.Method,
		Status:      status,
	}
	if req.InvoiceNumber != "" {
		rec.InvoiceNumber = &req.InvoiceNumber
	}

	created, err := s.repo.Record(ctx, rec, memberStatus, newExpiry)
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(string(created.Type), string(created.Status))

	if s.notifier != nil && created.Status == StatusPaid {
		invoice := ""
		if created.InvoiceNumber != nil {
			invoice = *created.InvoiceNumber
		}
		if err := s.notifier.SendPaymentReceipt(ctx, m.Email, m.Name, created.AmountCents, invoice); err != nil {
			logger.Errorf("Failed to queue payment receipt for member %d: %v", memberID, err)
		}
	}

	return created, nil
}

// GetDues recomputes the outstanding balance for the member's current plan
// period. Nothing is persisted here.
func (s *service) GetDues(ctx context.Context, memberID int) (*DuesResponse, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, member.ErrMemberNotFound
	}

	p, err := s.planRepo.GetByID(ctx, m.PlanID)
	if err != nil {
		return nil, plan.ErrPlanNotFound
	}

	periodStart, periodEnd := currentPeriod(m.ExpiryDate, p.DurationMonths)
	totalPaid, err := s.repo.SumPaidForPeriod(ctx, memberID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	return &DuesResponse{
		MemberID:       m.ID,
		PlanID:         p.ID,
		PlanName:       p.Name,
		PriceCents:     p.PriceCents,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		TotalPaidCents: totalPaid,
		DueCents:       ComputeDue(p.PriceCents, totalPaid),
		PaymentStatus:  ComputeDuesStatus(p.PriceCents, totalPaid),
	}, nil
}

func (s *service) GetMemberPayments(ctx context.Context, memberID int) ([]Payment, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, member.ErrMemberNotFound
	}

	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) GetAllPayments(ctx context.Context) ([]Payment, error) {
	return s.repo.ListAll(ctx)
}
