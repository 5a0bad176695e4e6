package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/Whyudothiss/SplitBettter/internal/calculator"
	"github.com/Whyudothiss/SplitBettter/internal/metrics"
	"github.com/Whyudothiss/SplitBettter/internal/models"
	"github.com/Whyudothiss/SplitBettter/internal/storage"
	"github.com/Whyudothiss/SplitBettter/pkg/api"
	"github.com/Whyudothiss/SplitBettter/pkg/api/apiconnect"
)

// SplitService implements the Connect SplitService
type SplitService struct {
	apiconnect.UnimplementedSplitServiceHandler
	store   storage.Store
	metrics *metrics.Metrics
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store, m *metrics.Metrics) *SplitService {
	return &SplitService{store: store, metrics: m}
}

func validateSplit(title, currency string, budget decimal.Decimal, participants []string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(currency) == "" {
		return errors.New("currency is required")
	}
	if budget.IsNegative() {
		return errors.New("budget must not be negative")
	}
	if len(participants) == 0 {
		return errors.New("at least one participant is required")
	}
	return uniqueParticipants(participants)
}

// CreateSplit creates a new split.
func (s *SplitService) CreateSplit(ctx context.Context, req *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error) {
	slog.Info("CreateSplit request received",
		"title", req.Msg.Title,
		"participants_count", len(req.Msg.Participants),
	)

	if err := validateSplit(req.Msg.Title, req.Msg.Currency, req.Msg.Budget, req.Msg.Participants); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	split := &models.Split{
		Title:        strings.TrimSpace(req.Msg.Title),
		Currency:     strings.ToUpper(req.Msg.Currency),
		Budget:       req.Msg.Budget,
		Participants: req.Msg.Participants,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateSplit(ctx, split); err != nil {
		slog.Error("CreateSplit failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Split created", "split_id", split.ID)

	return connect.NewResponse(&api.CreateSplitResponse{Split: toAPISplit(split)}), nil
}

// GetSplit retrieves a split by ID.
func (s *SplitService) GetSplit(ctx context.Context, req *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error) {
	split, err := s.store.GetSplit(ctx, req.Msg.SplitID)
	if err != nil {
		slog.Error("GetSplit failed", "split_id", req.Msg.SplitID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.GetSplitResponse{Split: toAPISplit(split)}), nil
}

// ListSplits retrieves all splits, newest first.
func (s *SplitService) ListSplits(ctx context.Context, req *connect.Request[api.ListSplitsRequest]) (*connect.Response[api.ListSplitsResponse], error) {
	splits, err := s.store.ListSplits(ctx)
	if err != nil {
		slog.Error("ListSplits failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Split, len(splits))
	for i, split := range splits {
		out[i] = toAPISplit(split)
	}
	return connect.NewResponse(&api.ListSplitsResponse{Splits: out}), nil
}

// UpdateSplit replaces a split's details. Participants that still appear on
// expenses cannot be removed.
func (s *SplitService) UpdateSplit(ctx context.Context, req *connect.Request[api.UpdateSplitRequest]) (*connect.Response[api.UpdateSplitResponse], error) {
	slog.Info("UpdateSplit request received", "split_id", req.Msg.SplitID)

	if err := validateSplit(req.Msg.Title, req.Msg.Currency, req.Msg.Budget, req.Msg.Participants); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	existing, err := s.store.GetSplit(ctx, req.Msg.SplitID)
	if err != nil {
		slog.Error("UpdateSplit: failed to get existing split", "split_id", req.Msg.SplitID, "error", err)
		return nil, storeError(err)
	}

	currency := strings.ToUpper(req.Msg.Currency)
	expenses, err := s.store.ListExpensesBySplit(ctx, existing.ID)
	if err != nil {
		slog.Error("UpdateSplit: failed to list expenses", "split_id", existing.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if len(expenses) > 0 && currency != existing.Currency {
		return nil, invalidArgument("cannot change currency of a split that has expenses")
	}
	if unknown := calculator.UnknownParticipants(req.Msg.Participants, toCalculatorExpenses(expenses)); len(unknown) > 0 {
		return nil, invalidArgument("participants %v still appear on expenses", unknown)
	}

	split := &models.Split{
		ID:           existing.ID,
		Title:        strings.TrimSpace(req.Msg.Title),
		Currency:     currency,
		Budget:       req.Msg.Budget,
		Participants: req.Msg.Participants,
		CreatedAt:    existing.CreatedAt,
	}
	if err := s.store.UpdateSplit(ctx, split); err != nil {
		slog.Error("UpdateSplit failed", "split_id", split.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Split updated", "split_id", split.ID)

	return connect.NewResponse(&api.UpdateSplitResponse{Split: toAPISplit(split)}), nil
}

// DeleteSplit removes a split and all of its expenses.
func (s *SplitService) DeleteSplit(ctx context.Context, req *connect.Request[api.DeleteSplitRequest]) (*connect.Response[api.DeleteSplitResponse], error) {
	slog.Info("DeleteSplit request received", "split_id", req.Msg.SplitID)

	if err := s.store.DeleteSplit(ctx, req.Msg.SplitID); err != nil {
		slog.Error("DeleteSplit failed", "split_id", req.Msg.SplitID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.DeleteSplitResponse{}), nil
}

// GetSplitBalances computes net balances, suggested settlements and the spend
// summary over the split's full expense history.
func (s *SplitService) GetSplitBalances(ctx context.Context, req *connect.Request[api.GetSplitBalancesRequest]) (*connect.Response[api.GetSplitBalancesResponse], error) {
	split, err := s.store.GetSplit(ctx, req.Msg.SplitID)
	if err != nil {
		slog.Error("GetSplitBalances: failed to get split", "split_id", req.Msg.SplitID, "error", err)
		return nil, storeError(err)
	}
	if req.Msg.ParticipantID != "" && !split.HasParticipant(req.Msg.ParticipantID) {
		return nil, invalidArgument("participant %q is not part of split %s", req.Msg.ParticipantID, split.ID)
	}

	stored, err := s.store.ListExpensesBySplit(ctx, split.ID)
	if err != nil {
		slog.Error("GetSplitBalances: failed to list expenses", "split_id", split.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	expenses := toCalculatorExpenses(stored)

	unknown := calculator.UnknownParticipants(split.Participants, expenses)
	if len(unknown) > 0 {
		slog.Warn("Expenses reference participants outside the split",
			"split_id", split.ID,
			"unknown", unknown,
		)
		s.metrics.UnknownParticipants.Add(float64(len(unknown)))
	}

	balances := calculator.ComputeNetBalances(split.Participants, expenses)
	edges := calculator.ComputeSettlements(balances)
	summary := calculator.Summarize(split.Participants, split.Budget, expenses)

	s.metrics.BalanceComputations.Inc()
	s.metrics.SettlementInstructions.Observe(float64(len(edges)))

	slog.Debug("Computed split balances",
		"split_id", split.ID,
		"expenses", len(expenses),
		"settlements", len(edges),
	)

	resp := &api.GetSplitBalancesResponse{
		MemberBalances:      make([]*api.MemberBalance, len(balances)),
		Settlements:         make([]*api.SettlementInstruction, len(edges)),
		UnknownParticipants: unknown,
	}
	for i, b := range balances {
		resp.MemberBalances[i] = &api.MemberBalance{
			Participant: b.Participant,
			NetBalance:  b.NetBalance,
			TotalPaid:   b.TotalPaid,
			TotalOwed:   b.TotalOwed,
		}
	}
	for i, e := range edges {
		resp.Settlements[i] = &api.SettlementInstruction{
			From:   e.From,
			To:     e.To,
			Amount: e.Amount,
		}
	}

	var regular int32
	for _, e := range stored {
		if !e.IsSettlement() {
			regular++
		}
	}
	resp.Summary = &api.SplitSummary{
		Currency:     split.Currency,
		Budget:       split.Budget,
		TotalSpend:   summary.TotalSpend,
		TotalSettled: summary.TotalSettled,
		BudgetLeft:   summary.BudgetLeft,
		Shares:       summary.Shares,
		ExpenseCount: regular,
	}

	if req.Msg.ParticipantID != "" {
		pos := calculator.ParticipantPosition(edges, req.Msg.ParticipantID)
		resp.Position = &api.ParticipantPosition{
			Participant: req.Msg.ParticipantID,
			Owes:        pos.Owes,
			Owed:        pos.Owed,
		}
	}

	return connect.NewResponse(resp), nil
}
