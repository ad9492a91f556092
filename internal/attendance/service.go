package attendance

import (
	"context"
	"time"

	"gymdesk/internal/member"
	"gymdesk/internal/metrics"
)

type Service interface {
	CheckIn(ctx context.Context, memberID int) (*Attendance, error)
	GetMemberAttendance(ctx context.Context, memberID int) ([]Attendance, error)
	GetDayAttendance(ctx context.Context, day time.Time) ([]AttendanceWithMember, error)
	GetCheckinStats(ctx context.Context, from, to time.Time) ([]CheckinsByDay, error)
}

type service struct {
	repo       Repository
	memberRepo member.Repository
	now        func() time.Time
}

func NewService(repo Repository, memberRepo member.Repository) Service {
	return &service{
		repo:       repo,
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

// CheckIn records a visit. Expired members can still check in; the desk
// surfaces their standing separately, the turnstile is not the enforcer.
func (s *service) CheckIn(ctx context.Context, memberID int) (*Attendance, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, member.ErrMemberNotFound
	}

	a, err := s.repo.Create(ctx, memberID, s.now())
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckin()
	return a, nil
}

func (s *service) GetMemberAttendance(ctx context.Context, memberID int) ([]Attendance, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, member.ErrMemberNotFound
	}

	return s.repo.ListByMember(ctx, memberID)
}

func (s *service) GetDayAttendance(ctx context.Context, day time.Time) ([]AttendanceWithMember, error) {
	return s.repo.ListForDay(ctx, day)
}

func (s *service) GetCheckinStats(ctx context.Context, from, to time.Time) ([]CheckinsByDay, error) {
	return s.repo.CountByDay(ctx, from, to)
}
