package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/Whyudothiss/SplitBettter/internal/calculator"
	"github.com/Whyudothiss/SplitBettter/internal/models"
	"github.com/Whyudothiss/SplitBettter/internal/storage"
	"github.com/Whyudothiss/SplitBettter/pkg/api"
)

// storeError maps a storage error to a Connect error.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func toAPISplit(split *models.Split) *api.Split {
	return &api.Split{
		ID:           split.ID,
		Title:        split.Title,
		Currency:     split.Currency,
		Budget:       split.Budget,
		Participants: split.Participants,
		CreatedAt:    split.CreatedAt,
		UpdatedAt:    split.UpdatedAt,
	}
}

func toAPIExpense(expense *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:               expense.ID,
		SplitID:          expense.SplitID,
		Title:            expense.Title,
		Category:         expense.Category,
		Amount:           expense.Amount,
		PaidBy:           expense.PaidBy,
		Participants:     expense.Participants,
		SplitType:        string(expense.SplitType),
		CustomAmounts:    expense.CustomAmounts,
		Kind:             string(expense.Kind),
		OriginalCurrency: expense.OriginalCurrency,
		CreatedAt:        expense.CreatedAt,
	}
	if expense.OriginalAmount.Valid {
		amount := expense.OriginalAmount.Decimal
		out.OriginalAmount = &amount
	}
	if expense.ConversionRate.Valid {
		rate := expense.ConversionRate.Decimal
		out.ConversionRate = &rate
	}
	return out
}

// toCalculatorExpenses converts stored expenses to the calculator's input.
func toCalculatorExpenses(expenses []*models.Expense) []calculator.Expense {
	out := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		var rule calculator.Rule = calculator.EqualSplit{}
		if e.SplitType == models.SplitTypeCustom {
			rule = calculator.CustomSplit{Amounts: e.CustomAmounts}
		}
		kind := calculator.KindRegular
		if e.IsSettlement() {
			kind = calculator.KindSettlement
		}
		out[i] = calculator.Expense{
			Amount:       e.Amount,
			PaidBy:       e.PaidBy,
			Participants: e.Participants,
			Rule:         rule,
			Kind:         kind,
		}
	}
	return out
}

// uniqueParticipants returns an error naming the first duplicate.
func uniqueParticipants(participants []string) error {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p == "" {
			return errors.New("participant id must not be empty")
		}
		if seen[p] {
			return fmt.Errorf("participant %q is listed more than once", p)
		}
		seen[p] = true
	}
	return nil
}

func isParticipant(id string, participants []string) bool {
	for _, p := range participants {
		if p == id {
			return true
		}
	}
	return false
}

func sumAmounts(amounts map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
