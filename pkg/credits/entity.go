package credits

// CanAfford is the advisory affordability check. The backend remains the authority.
func CanAfford(balance, cost int64) bool {
	return balance >= cost
}

// Settings is the admin-tunable credit economy (GET/PUT credits/settings).
type Settings struct {
	ContactRevealCost           int64 `json:"contact_reveal_cost" validate:"gte=0"`
	InterviewRequestCost        int64 `json:"interview_request_cost" validate:"gte=0"`
	InterviewCompletionEarnings int64 `json:"interview_completion_earnings" validate:"gte=0"`
	ReferralBonus               int64 `json:"referral_bonus" validate:"gte=0"`
	JobseekerSignupBonus        int64 `json:"jobseeker_signup_bonus" validate:"gte=0"`
	EmployerSignupBonus         int64 `json:"employer_signup_bonus" validate:"gte=0"`
	InterviewerSignupBonus      int64 `json:"interviewer_signup_bonus" validate:"gte=0"`
}

// CostTable is the subset of Settings the workflows price actions with.
type CostTable struct {
	ContactReveal      int64 `json:"contact_reveal_cost"`
	InterviewRequest   int64 `json:"interview_request_cost"`
	CompletionEarnings int64 `json:"interview_completion_earnings"`
}

// DefaultCosts is used until settings have been loaded.
func DefaultCosts() CostTable {
	return CostTable{
		ContactReveal:      10000,
		InterviewRequest:   0,
		CompletionEarnings: 500,
	}
}

// Costs prices the workflows. An unset (zero) reveal cost falls back to the default.
func (s Settings) Costs() CostTable {
	t := CostTable{
		ContactReveal:      s.ContactRevealCost,
		InterviewRequest:   s.InterviewRequestCost,
		CompletionEarnings: s.InterviewCompletionEarnings,
	}
	if t.ContactReveal <= 0 {
		t.ContactReveal = DefaultCosts().ContactReveal
	}
	return t
}

// Stats feeds the admin credits dashboard.
type Stats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalTransactions int64 `json:"total_transactions"`
}
