package api

import "github.com/shopspring/decimal"

// Split is a shared trip or event.
type Split struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Currency     string          `json:"currency"`
	Budget       decimal.Decimal `json:"budget"`
	Participants []string        `json:"participants"`
	CreatedAt    int64           `json:"created_at"`
	UpdatedAt    int64           `json:"updated_at"`
}

type CreateSplitRequest struct {
	Title        string          `json:"title"`
	Currency     string          `json:"currency"`
	Budget       decimal.Decimal `json:"budget"`
	Participants []string        `json:"participants"`
}

type CreateSplitResponse struct {
	Split *Split `json:"split"`
}

type GetSplitRequest struct {
	SplitID string `json:"split_id"`
}

type GetSplitResponse struct {
	Split *Split `json:"split"`
}

type ListSplitsRequest struct{}

type ListSplitsResponse struct {
	Splits []*Split `json:"splits"`
}

type UpdateSplitRequest struct {
	SplitID      string          `json:"split_id"`
	Title        string          `json:"title"`
	Currency     string          `json:"currency"`
	Budget       decimal.Decimal `json:"budget"`
	Participants []string        `json:"participants"`
}

type UpdateSplitResponse struct {
	Split *Split `json:"split"`
}

type DeleteSplitRequest struct {
	SplitID string `json:"split_id"`
}

type DeleteSplitResponse struct{}

// MemberBalance is one participant's aggregate position.
// A positive NetBalance means the participant is owed money.
type MemberBalance struct {
	Participant string          `json:"participant"`
	NetBalance  decimal.Decimal `json:"net_balance"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	TotalOwed   decimal.Decimal `json:"total_owed"`
}

// SettlementInstruction says From should transfer Amount to To.
type SettlementInstruction struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// SplitSummary is the spend overview of a split. Settlements are excluded
// from TotalSpend.
type SplitSummary struct {
	Currency     string                     `json:"currency"`
	Budget       decimal.Decimal            `json:"budget"`
	TotalSpend   decimal.Decimal            `json:"total_spend"`
	TotalSettled decimal.Decimal            `json:"total_settled"`
	BudgetLeft   decimal.Decimal            `json:"budget_left"`
	Shares       map[string]decimal.Decimal `json:"shares"`
	ExpenseCount int32                      `json:"expense_count"`
}

// ParticipantPosition is what one participant owes and is owed under the
// suggested settlements.
type ParticipantPosition struct {
	Participant string          `json:"participant"`
	Owes        decimal.Decimal `json:"owes"`
	Owed        decimal.Decimal `json:"owed"`
}

type GetSplitBalancesRequest struct {
	SplitID string `json:"split_id"`
	// ParticipantID optionally asks for that participant's position.
	ParticipantID string `json:"participant_id,omitempty"`
}

type GetSplitBalancesResponse struct {
	MemberBalances []*MemberBalance         `json:"member_balances"`
	Settlements    []*SettlementInstruction `json:"settlements"`
	Summary        *SplitSummary            `json:"summary"`
	Position       *ParticipantPosition     `json:"position,omitempty"`
	// UnknownParticipants lists payers or participants found on expenses
	// that are not part of the split. Their amounts are not in the balances.
	UnknownParticipants []string `json:"unknown_participants,omitempty"`
}
