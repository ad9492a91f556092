package insight

// The shapes below are the external AI collaborator's contract. They are
// validated on both sides: the assembler only ever produces well-formed
// input, and responses are schema-checked before anything downstream
// trusts them.

type PaymentRecord struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

type MemberProfile struct {
	MemberID          int             `json:"member_id"`
	JoinDate          string          `json:"join_date"`
	MembershipPlan    string          `json:"membership_plan"`
	AttendanceHistory []string        `json:"attendance_history"`
	PaymentHistory    []PaymentRecord `json:"payment_history"`
}

type AnalyzeRequest struct {
	Members []MemberProfile `json:"members"`
}

type AtRiskMember struct {
	MemberID               int      `json:"member_id" validate:"required"`
	RiskReason             string   `json:"risk_reason" validate:"required"`
	SuggestedInterventions []string `json:"suggested_interventions" validate:"required"`
}

type InsightResponse struct {
	AtRiskMembers []AtRiskMember `json:"at_risk_members" validate:"dive"`
}
