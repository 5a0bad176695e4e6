package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/Whyudothiss/SplitBettter/internal/calculator"
	"github.com/Whyudothiss/SplitBettter/internal/currency"
	"github.com/Whyudothiss/SplitBettter/internal/metrics"
	"github.com/Whyudothiss/SplitBettter/internal/models"
	"github.com/Whyudothiss/SplitBettter/internal/storage"
	"github.com/Whyudothiss/SplitBettter/pkg/api"
	"github.com/Whyudothiss/SplitBettter/pkg/api/apiconnect"
)

// Converter converts an amount between currencies. *currency.Converter
// implements it.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (currency.Conversion, error)
}

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store     storage.Store
	converter Converter
	metrics   *metrics.Metrics
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, converter Converter, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{store: store, converter: converter, metrics: m}
}

// AddExpense validates and records a regular expense. Amounts entered in a
// foreign currency are converted to the split's currency before storing.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	msg := req.Msg
	slog.Info("AddExpense request received",
		"split_id", msg.SplitID,
		"amount", msg.Amount.String(),
		"currency", msg.Currency,
		"paid_by", msg.PaidBy,
		"split_type", msg.SplitType,
	)

	if !msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be greater than zero")
	}

	splitType := models.SplitTypeEqual
	switch msg.SplitType {
	case "", api.SplitTypeEqual:
	case api.SplitTypeCustom:
		splitType = models.SplitTypeCustom
	default:
		return nil, invalidArgument("unknown split type %q", msg.SplitType)
	}
	if splitType == models.SplitTypeEqual && len(msg.CustomAmounts) > 0 {
		return nil, invalidArgument("custom amounts are only allowed for custom splits")
	}

	split, err := s.store.GetSplit(ctx, msg.SplitID)
	if err != nil {
		slog.Error("AddExpense: failed to get split", "split_id", msg.SplitID, "error", err)
		return nil, storeError(err)
	}

	if msg.PaidBy == "" {
		return nil, invalidArgument("paid_by is required")
	}
	if !split.HasParticipant(msg.PaidBy) {
		return nil, invalidArgument("payer %q is not part of split %s", msg.PaidBy, split.ID)
	}
	if err := uniqueParticipants(msg.Participants); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	for _, p := range msg.Participants {
		if !split.HasParticipant(p) {
			return nil, invalidArgument("participant %q is not part of split %s", p, split.ID)
		}
	}

	expense := &models.Expense{
		SplitID:      split.ID,
		Title:        strings.TrimSpace(msg.Title),
		Category:     msg.Category,
		Amount:       msg.Amount,
		PaidBy:       msg.PaidBy,
		Participants: msg.Participants,
		SplitType:    splitType,
		Kind:         models.ExpenseKindRegular,
	}
	if expense.Title == "" {
		expense.Title = defaultTitle(msg.Category)
	}

	if msg.Currency != "" && !strings.EqualFold(msg.Currency, split.Currency) {
		conv, err := s.converter.Convert(ctx, msg.Amount, msg.Currency, split.Currency)
		if err != nil {
			slog.Error("AddExpense: currency conversion failed",
				"from", msg.Currency,
				"to", split.Currency,
				"error", err,
			)
			if errors.Is(err, currency.ErrRateNotFound) {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			return nil, connect.NewError(connect.CodeUnavailable, err)
		}
		expense.Amount = conv.Amount
		expense.OriginalAmount = decimal.NewNullDecimal(conv.OriginalAmount)
		expense.OriginalCurrency = conv.OriginalCurrency
		expense.ConversionRate = decimal.NewNullDecimal(conv.Rate)
	}

	if splitType == models.SplitTypeCustom {
		participants := calculator.ResolveParticipants(calculator.Expense{Participants: msg.Participants}, split.Participants)
		if err := validateCustomAmounts(expense.Amount, msg.CustomAmounts, participants); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		expense.CustomAmounts = msg.CustomAmounts
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "split_id", split.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.ExpensesAdded.WithLabelValues(string(splitType)).Inc()

	slog.Info("Expense added", "expense_id", expense.ID, "split_id", split.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

func defaultTitle(category string) string {
	if category = strings.TrimSpace(category); category != "" {
		return category
	}
	return "Expense"
}

// validateCustomAmounts checks that only participants have shares, that no
// share is negative and that the shares add up to amount within Epsilon.
// A participant without an entry owes nothing.
func validateCustomAmounts(amount decimal.Decimal, amounts map[string]decimal.Decimal, participants []string) error {
	if len(amounts) == 0 {
		return errors.New("custom split requires custom amounts")
	}
	for p, share := range amounts {
		if !isParticipant(p, participants) {
			return fmt.Errorf("custom amount given for non-participant %q", p)
		}
		if share.IsNegative() {
			return fmt.Errorf("custom amount for %q must not be negative", p)
		}
	}
	total := sumAmounts(amounts)
	if total.Sub(amount).Abs().GreaterThan(calculator.Epsilon) {
		return fmt.Errorf("custom amounts add up to %s, expected %s", total, amount)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("GetExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns every expense of a split, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := s.store.GetSplit(ctx, req.Msg.SplitID); err != nil {
		slog.Error("ListExpenses: failed to get split", "split_id", req.Msg.SplitID, "error", err)
		return nil, storeError(err)
	}

	expenses, err := s.store.ListExpensesBySplit(ctx, req.Msg.SplitID)
	if err != nil {
		slog.Error("ListExpenses failed", "split_id", req.Msg.SplitID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, expense := range expenses {
		out[i] = toAPIExpense(expense)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense. Balances change on the next read.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// RecordSettlement records that From paid To directly. The transfer is
// stored as a settlement expense so it moves balances without counting as
// spend.
func (s *ExpenseService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	msg := req.Msg
	slog.Info("RecordSettlement request received",
		"split_id", msg.SplitID,
		"from", msg.From,
		"to", msg.To,
		"amount", msg.Amount.String(),
	)

	if !msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be greater than zero")
	}
	if msg.From == "" || msg.To == "" {
		return nil, invalidArgument("from and to are required")
	}
	if msg.From == msg.To {
		return nil, invalidArgument("cannot settle with yourself")
	}

	split, err := s.store.GetSplit(ctx, msg.SplitID)
	if err != nil {
		slog.Error("RecordSettlement: failed to get split", "split_id", msg.SplitID, "error", err)
		return nil, storeError(err)
	}
	for _, p := range []string{msg.From, msg.To} {
		if !split.HasParticipant(p) {
			return nil, invalidArgument("participant %q is not part of split %s", p, split.ID)
		}
	}

	expense := &models.Expense{
		SplitID:      split.ID,
		Title:        "Settlement",
		Amount:       msg.Amount,
		PaidBy:       msg.From,
		Participants: []string{msg.From, msg.To},
		SplitType:    models.SplitTypeEqual,
		Kind:         models.ExpenseKindSettlement,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("RecordSettlement failed", "split_id", split.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.SettlementsRecorded.Inc()

	slog.Info("Settlement recorded", "expense_id", expense.ID, "split_id", split.ID)

	return connect.NewResponse(&api.RecordSettlementResponse{Expense: toAPIExpense(expense)}), nil
}
