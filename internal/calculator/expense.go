package calculator

import "github.com/shopspring/decimal"

// Epsilon is the currency tolerance below which a balance or remainder is
// treated as settled.
var Epsilon = decimal.New(1, -2)

// Kind distinguishes real spending from settlement transfers.
type Kind int

const (
	// KindRegular is an ordinary shared spend.
	KindRegular Kind = iota
	// KindSettlement is a direct payment from PaidBy to the other participant.
	// It moves balances but is not spend.
	KindSettlement
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindSettlement:
		return "settlement"
	default:
		return "unknown"
	}
}

// Rule is how an expense's amount is divided among its participants.
// It is implemented only by EqualSplit and CustomSplit.
type Rule interface {
	isRule()
}

// EqualSplit divides the amount evenly across the participants.
type EqualSplit struct{}

// CustomSplit assigns each participant an explicit share.
// Participants missing from Amounts owe nothing. A nil Amounts map falls
// back to an equal split.
type CustomSplit struct {
	Amounts map[string]decimal.Decimal
}

func (EqualSplit) isRule()  {}
func (CustomSplit) isRule() {}

// Expense is one spend or settlement with the minimal information needed for
// balance calculations.
type Expense struct {
	Amount decimal.Decimal
	PaidBy string
	// Participants share liability for this expense. Empty means every
	// participant of the split.
	Participants []string
	Rule         Rule
	Kind         Kind
}
