package models

import "github.com/shopspring/decimal"

// SplitType is how an expense is divided among its participants.
type SplitType string

const (
	SplitTypeEqual  SplitType = "Equal"
	SplitTypeCustom SplitType = "Custom"
)

// ExpenseKind separates real spending from settlement transfers.
type ExpenseKind string

const (
	ExpenseKindRegular    ExpenseKind = "regular"
	ExpenseKindSettlement ExpenseKind = "settlement"
)

// Expense represents one financial event inside a split.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// SplitID is the split this expense belongs to.
	SplitID string

	// Title describes the expense (e.g., "Dinner", "Settlement").
	Title string

	// Category is an optional free-form label.
	Category string

	// Amount is the total in the split's currency.
	Amount decimal.Decimal

	// PaidBy is the participant who fronted the money.
	PaidBy string

	// Participants share liability for the expense.
	// Nil means every participant of the split.
	Participants []string

	// SplitType selects equal or custom division.
	SplitType SplitType

	// CustomAmounts holds each participant's share for custom splits.
	CustomAmounts map[string]decimal.Decimal

	// Kind is regular spend or a settlement transfer.
	Kind ExpenseKind

	// OriginalAmount, OriginalCurrency and ConversionRate are set when the
	// expense was entered in a currency other than the split's.
	OriginalAmount   decimal.NullDecimal
	OriginalCurrency string
	ConversionRate   decimal.NullDecimal

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsSettlement reports whether the expense is a settlement transfer.
func (e *Expense) IsSettlement() bool {
	return e.Kind == ExpenseKindSettlement
}
