package api

import "github.com/shopspring/decimal"

const (
	SplitTypeEqual  = "Equal"
	SplitTypeCustom = "Custom"

	KindRegular    = "regular"
	KindSettlement = "settlement"
)

// Expense is one spend or settlement transfer, in the split's currency.
type Expense struct {
	ID               string                     `json:"id"`
	SplitID          string                     `json:"split_id"`
	Title            string                     `json:"title"`
	Category         string                     `json:"category,omitempty"`
	Amount           decimal.Decimal            `json:"amount"`
	PaidBy           string                     `json:"paid_by"`
	Participants     []string                   `json:"participants,omitempty"`
	SplitType        string                     `json:"split_type"`
	CustomAmounts    map[string]decimal.Decimal `json:"custom_amounts,omitempty"`
	Kind             string                     `json:"kind"`
	OriginalAmount   *decimal.Decimal           `json:"original_amount,omitempty"`
	OriginalCurrency string                     `json:"original_currency,omitempty"`
	ConversionRate   *decimal.Decimal           `json:"conversion_rate,omitempty"`
	CreatedAt        int64                      `json:"created_at"`
}

type AddExpenseRequest struct {
	SplitID  string          `json:"split_id"`
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	// Currency is the currency Amount was entered in. Empty means the
	// split's currency.
	Currency string `json:"currency,omitempty"`
	PaidBy   string `json:"paid_by"`
	// Participants defaults to every split participant when empty.
	Participants []string `json:"participants,omitempty"`
	// SplitType is "Equal" (default) or "Custom".
	SplitType string `json:"split_type,omitempty"`
	// CustomAmounts are in the split's currency.
	CustomAmounts map[string]decimal.Decimal `json:"custom_amounts,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	SplitID string `json:"split_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

// RecordSettlementRequest records that From paid To directly.
type RecordSettlementRequest struct {
	SplitID string          `json:"split_id"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Amount  decimal.Decimal `json:"amount"`
}

type RecordSettlementResponse struct {
	Expense *Expense `json:"expense"`
}
