package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Whyudothiss/SplitBettter/internal/models"
	"github.com/Whyudothiss/SplitBettter/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestSplit(t *testing.T, store *SQLiteStore, participants ...string) *models.Split {
	t.Helper()
	split := &models.Split{
		Title:        "Lisbon",
		Currency:     "EUR",
		Budget:       decimal.RequireFromString("500"),
		Participants: participants,
	}
	if err := store.CreateSplit(context.Background(), split); err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}
	return split
}

func TestSQLiteStore_Splits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateSplit generates ID and timestamps", func(t *testing.T) {
		split := createTestSplit(t, store, "Alice", "Bob")
		if split.ID == "" {
			t.Error("Expected split ID to be generated")
		}
		if split.CreatedAt == 0 || split.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
	})

	t.Run("GetSplit keeps participant order", func(t *testing.T) {
		original := createTestSplit(t, store, "Zoe", "Alice", "Mike")

		retrieved, err := store.GetSplit(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetSplit failed: %v", err)
		}
		if retrieved.Title != "Lisbon" || retrieved.Currency != "EUR" {
			t.Errorf("unexpected split: %+v", retrieved)
		}
		if !retrieved.Budget.Equal(decimal.RequireFromString("500")) {
			t.Errorf("Budget = %s, want 500", retrieved.Budget)
		}
		want := []string{"Zoe", "Alice", "Mike"}
		if len(retrieved.Participants) != len(want) {
			t.Fatalf("Participants = %v, want %v", retrieved.Participants, want)
		}
		for i := range want {
			if retrieved.Participants[i] != want[i] {
				t.Errorf("Participants[%d] = %s, want %s", i, retrieved.Participants[i], want[i])
			}
		}
	})

	t.Run("GetSplit not found", func(t *testing.T) {
		_, err := store.GetSplit(ctx, "nonexistent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateSplit replaces participants", func(t *testing.T) {
		split := createTestSplit(t, store, "Alice", "Bob")
		split.Title = "Porto"
		split.Budget = decimal.RequireFromString("750.50")
		split.Participants = []string{"Alice", "Bob", "Charlie"}

		if err := store.UpdateSplit(ctx, split); err != nil {
			t.Fatalf("UpdateSplit failed: %v", err)
		}

		retrieved, err := store.GetSplit(ctx, split.ID)
		if err != nil {
			t.Fatalf("GetSplit failed: %v", err)
		}
		if retrieved.Title != "Porto" {
			t.Errorf("Title = %s, want Porto", retrieved.Title)
		}
		if !retrieved.Budget.Equal(decimal.RequireFromString("750.50")) {
			t.Errorf("Budget = %s, want 750.50", retrieved.Budget)
		}
		if len(retrieved.Participants) != 3 {
			t.Errorf("Participants = %v, want 3 entries", retrieved.Participants)
		}
	})

	t.Run("UpdateSplit not found", func(t *testing.T) {
		err := store.UpdateSplit(ctx, &models.Split{ID: "nonexistent", Title: "x", Currency: "EUR"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListSplits returns every split", func(t *testing.T) {
		splits, err := store.ListSplits(ctx)
		if err != nil {
			t.Fatalf("ListSplits failed: %v", err)
		}
		if len(splits) < 3 {
			t.Errorf("expected at least 3 splits, got %d", len(splits))
		}
		for _, s := range splits {
			if len(s.Participants) == 0 {
				t.Errorf("split %s listed without participants", s.ID)
			}
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	split := createTestSplit(t, store, "Alice", "Bob", "Charlie")

	t.Run("equal expense without participants reads back nil", func(t *testing.T) {
		expense := &models.Expense{
			SplitID: split.ID,
			Title:   "Groceries",
			Amount:  decimal.RequireFromString("45.30"),
			PaidBy:  "Alice",
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}

		retrieved, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if retrieved.Participants != nil {
			t.Errorf("Participants = %v, want nil", retrieved.Participants)
		}
		if retrieved.SplitType != models.SplitTypeEqual {
			t.Errorf("SplitType = %s, want Equal", retrieved.SplitType)
		}
		if retrieved.Kind != models.ExpenseKindRegular {
			t.Errorf("Kind = %s, want regular", retrieved.Kind)
		}
		if !retrieved.Amount.Equal(decimal.RequireFromString("45.30")) {
			t.Errorf("Amount = %s, want 45.30", retrieved.Amount)
		}
		if retrieved.OriginalAmount.Valid {
			t.Error("OriginalAmount should be null")
		}
	})

	t.Run("custom expense keeps amounts and conversion", func(t *testing.T) {
		expense := &models.Expense{
			SplitID:      split.ID,
			Title:        "Hotel",
			Amount:       decimal.RequireFromString("90"),
			PaidBy:       "Bob",
			Participants: []string{"Bob", "Charlie"},
			SplitType:    models.SplitTypeCustom,
			CustomAmounts: map[string]decimal.Decimal{
				"Bob":     decimal.RequireFromString("30"),
				"Charlie": decimal.RequireFromString("60"),
			},
			OriginalAmount:   decimal.NewNullDecimal(decimal.RequireFromString("100")),
			OriginalCurrency: "USD",
			ConversionRate:   decimal.NewNullDecimal(decimal.RequireFromString("0.9")),
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		retrieved, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if len(retrieved.Participants) != 2 || retrieved.Participants[0] != "Bob" {
			t.Errorf("Participants = %v, want [Bob Charlie]", retrieved.Participants)
		}
		if !retrieved.CustomAmounts["Charlie"].Equal(decimal.RequireFromString("60")) {
			t.Errorf("Charlie amount = %s, want 60", retrieved.CustomAmounts["Charlie"])
		}
		if !retrieved.OriginalAmount.Valid || !retrieved.OriginalAmount.Decimal.Equal(decimal.RequireFromString("100")) {
			t.Errorf("OriginalAmount = %v, want 100", retrieved.OriginalAmount)
		}
		if retrieved.OriginalCurrency != "USD" {
			t.Errorf("OriginalCurrency = %s, want USD", retrieved.OriginalCurrency)
		}
	})

	t.Run("ListExpensesBySplit returns all", func(t *testing.T) {
		expenses, err := store.ListExpensesBySplit(ctx, split.ID)
		if err != nil {
			t.Fatalf("ListExpensesBySplit failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(expenses))
		}
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		expense := &models.Expense{SplitID: split.ID, Title: "Taxi", Amount: decimal.NewFromInt(12), PaidBy: "Charlie"}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("DeleteSplit cascades to expenses", func(t *testing.T) {
		if err := store.DeleteSplit(ctx, split.ID); err != nil {
			t.Fatalf("DeleteSplit failed: %v", err)
		}
		expenses, err := store.ListExpensesBySplit(ctx, split.ID)
		if err != nil {
			t.Fatalf("ListExpensesBySplit failed: %v", err)
		}
		if len(expenses) != 0 {
			t.Errorf("expected expenses to be deleted, got %d", len(expenses))
		}
	})
}
