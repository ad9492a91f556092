package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/attendance"
	"gymdesk/internal/member"
	"gymdesk/internal/payment"
	"gymdesk/internal/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) AnalyzeMembers(ctx context.Context, members []MemberProfile) (*InsightResponse, error) {
	args := m.Called(ctx, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InsightResponse), args.Error(1)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, mem *member.Member) (*member.Member, error) {
	args := m.Called(ctx, mem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) GetAll(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, mem *member.Member) (*member.Member, error) {
	args := m.Called(ctx, mem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) UpdateExpiry(ctx context.Context, id int, expiryDate time.Time, status member.Status) error {
	args := m.Called(ctx, id, expiryDate, status)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateStatus(ctx context.Context, id int, status member.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, name string, durationMonths int, priceCents int64) (*plan.Plan, error) {
	args := m.Called(ctx, name, durationMonths, priceCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id int) (*plan.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetAll(ctx context.Context) ([]plan.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, id int, name string, durationMonths int, priceCents int64) (*plan.Plan, error) {
	args := m.Called(ctx, id, name, durationMonths, priceCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) CountMembers(ctx context.Context, planID int) (int, error) {
	args := m.Called(ctx, planID)
	return args.Int(0), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Record(ctx context.Context, p *payment.Payment, memberStatus member.Status, newExpiry *time.Time) (*payment.Payment, error) {
	args := m.Called(ctx, p, memberStatus, newExpiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByMember(ctx context.Context, memberID int) ([]payment.Payment, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListAll(ctx context.Context) ([]payment.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumPaidForPeriod(ctx context.Context, memberID int, from, to time.Time) (int64, error) {
	args := m.Called(ctx, memberID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, memberID int, checkedInAt time.Time) (*attendance.Attendance, error) {
	args := m.Called(ctx, memberID, checkedInAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListByMember(ctx context.Context, memberID int) ([]attendance.Attendance, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListForDay(ctx context.Context, day time.Time) ([]attendance.AttendanceWithMember, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.AttendanceWithMember), args.Error(1)
}

func (m *MockAttendanceRepository) CountByDay(ctx context.Context, from, to time.Time) ([]attendance.CheckinsByDay, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.CheckinsByDay), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(client Client) (Service, *MockMemberRepository, *MockPlanRepository, *MockPaymentRepository, *MockAttendanceRepository) {
	memberRepo := new(MockMemberRepository)
	planRepo := new(MockPlanRepository)
	paymentRepo := new(MockPaymentRepository)
	attendanceRepo := new(MockAttendanceRepository)

	svc := NewService(client, memberRepo, planRepo, paymentRepo, attendanceRepo)
	return svc, memberRepo, planRepo, paymentRepo, attendanceRepo
}

func TestGetAtRiskMembers_EmptyRosterNeverCallsOut(t *testing.T) {
	client := new(MockClient)
	svc, memberRepo, _, _, _ := newTestService(client)

	memberRepo.On("GetAll", mock.Anything).Return([]member.Member{}, nil)

	result, err := svc.GetAtRiskMembers(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.AtRiskMembers)
	client.AssertNotCalled(t, "AnalyzeMembers", mock.Anything, mock.Anything)
}

func TestGetAtRiskMembers_AssemblesProfiles(t *testing.T) {
	client := new(MockClient)
	svc, memberRepo, planRepo, paymentRepo, attendanceRepo := newTestService(client)

	memberRepo.On("GetAll", mock.Anything).Return([]member.Member{
		{ID: 7, PlanID: 1, JoinDate: date(2024, time.January, 10)},
		{ID: 8, PlanID: 1, JoinDate: date(2024, time.March, 2)},
	}, nil)
	// both members share a plan; one lookup serves both
	planRepo.On("GetByID", mock.Anything, 1).Return(&plan.Plan{ID: 1, Name: "Monthly"}, nil).Once()

	attendanceRepo.On("ListByMember", mock.Anything, 7).Return([]attendance.Attendance{
		{ID: 1, MemberID: 7, CheckedInAt: date(2024, time.May, 20)},
		{ID: 2, MemberID: 7, CheckedInAt: date(2024, time.May, 22)},
	}, nil)
	attendanceRepo.On("ListByMember", mock.Anything, 8).Return([]attendance.Attendance{}, nil)

	paymentRepo.On("ListByMember", mock.Anything, 7).Return([]payment.Payment{
		{ID: 1, MemberID: 7, AmountCents: 5000, PaymentDate: date(2024, time.May, 10), Status: payment.StatusPaid},
	}, nil)
	paymentRepo.On("ListByMember", mock.Anything, 8).Return([]payment.Payment{}, nil)

	expected := []MemberProfile{
		{
			MemberID:          7,
			JoinDate:          "2024-01-10",
			MembershipPlan:    "Monthly",
			AttendanceHistory: []string{"2024-05-20", "2024-05-22"},
			PaymentHistory:    []PaymentRecord{{Date: "2024-05-10", AmountCents: 5000, Status: "paid"}},
		},
		{
			MemberID:          8,
			JoinDate:          "2024-03-02",
			MembershipPlan:    "Monthly",
			AttendanceHistory: []string{},
			PaymentHistory:    []PaymentRecord{},
		},
	}

	client.On("AnalyzeMembers", mock.Anything, expected).Return(&InsightResponse{
		AtRiskMembers: []AtRiskMember{
			{MemberID: 8, RiskReason: "no visits since joining", SuggestedInterventions: []string{"welcome call"}},
		},
	}, nil)

	result, err := svc.GetAtRiskMembers(context.Background())

	require.NoError(t, err)
	require.Len(t, result.AtRiskMembers, 1)
	assert.Equal(t, 8, result.AtRiskMembers[0].MemberID)
	client.AssertExpectations(t)
	planRepo.AssertExpectations(t)
}

func TestGetAtRiskMembers_PropagatesClientFailure(t *testing.T) {
	client := new(MockClient)
	svc, memberRepo, planRepo, paymentRepo, attendanceRepo := newTestService(client)

	memberRepo.On("GetAll", mock.Anything).Return([]member.Member{
		{ID: 7, PlanID: 1, JoinDate: date(2024, time.January, 10)},
	}, nil)
	planRepo.On("GetByID", mock.Anything, 1).Return(&plan.Plan{ID: 1, Name: "Monthly"}, nil)
	attendanceRepo.On("ListByMember", mock.Anything, 7).Return([]attendance.Attendance{}, nil)
	paymentRepo.On("ListByMember", mock.Anything, 7).Return([]payment.Payment{}, nil)

	client.On("AnalyzeMembers", mock.Anything, mock.Anything).
		Return(nil, ErrInsightUnavailable)

	_, err := svc.GetAtRiskMembers(context.Background())

	require.ErrorIs(t, err, ErrInsightUnavailable)
}

func TestGetAtRiskMembers_RosterFetchFailure(t *testing.T) {
	client := new(MockClient)
	svc, memberRepo, _, _, _ := newTestService(client)

	memberRepo.On("GetAll", mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.GetAtRiskMembers(context.Background())

	require.Error(t, err)
	client.AssertNotCalled(t, "AnalyzeMembers", mock.Anything, mock.Anything)
}
