package insight

import (
	"context"

	"gymdesk/internal/attendance"
	"gymdesk/internal/member"
	"gymdesk/internal/metrics"
	"gymdesk/internal/payment"
	"gymdesk/internal/plan"
)

type Service interface {
	GetAtRiskMembers(ctx context.Context) (*InsightResponse, error)
}

// service assembles the collaborator's input contract from the member,
// payment and attendance stores. It computes no risk of its own.
type service struct {
	client         Client
	memberRepo     member.Repository
	planRepo       plan.Repository
	paymentRepo    payment.Repository
	attendanceRepo attendance.Repository
}

func NewService(
	client Client,
	memberRepo member.Repository,
	planRepo plan.Repository,
	paymentRepo payment.Repository,
	attendanceRepo attendance.Repository,
) Service {
	return &service{
		client:         client,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		paymentRepo:    paymentRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *service) GetAtRiskMembers(ctx context.Context) (*InsightResponse, error) {
	members, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// an empty roster has no one to analyze; never call out with no data
	if len(members) == 0 {
		return &InsightResponse{AtRiskMembers: []AtRiskMember{}}, nil
	}

	planNames := map[int]string{}

	profiles := make([]MemberProfile, 0, len(members))
	for _, m := range members {
		planName, ok := planNames[m.PlanID]
		if !ok {
			p, err := s.planRepo.GetByID(ctx, m.PlanID)
			if err != nil {
				return nil, err
			}
			planName = p.Name
			planNames[m.PlanID] = planName
		}

		visits, err := s.attendanceRepo.ListByMember(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		attendanceHistory := make([]string, 0, len(visits))
		for _, v := range visits {
			attendanceHistory = append(attendanceHistory, v.CheckedInAt.Format(member.DateLayout))
		}

		payments, err := s.paymentRepo.ListByMember(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		paymentHistory := make([]PaymentRecord, 0, len(payments))
		for _, p := range payments {
			paymentHistory = append(paymentHistory, PaymentRecord{
				Date:        p.PaymentDate.Format(member.DateLayout),
				AmountCents: p.AmountCents,
				Status:      string(p.Status),
			})
		}

		profiles = append(profiles, MemberProfile{
			MemberID:          m.ID,
			JoinDate:          m.JoinDate.Format(member.DateLayout),
			MembershipPlan:    planName,
			AttendanceHistory: attendanceHistory,
			PaymentHistory:    paymentHistory,
		})
	}

	result, err := s.client.AnalyzeMembers(ctx, profiles)
	if err != nil {
		metrics.RecordInsightRequest("error")
		return nil, err
	}

	metrics.RecordInsightRequest("ok")
	return result, nil
}
