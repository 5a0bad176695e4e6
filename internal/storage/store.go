// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/Whyudothiss/SplitBettter/internal/models"
)

// ErrNotFound is returned (wrapped) when a split or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for split and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateSplit persists a new split.
	// The split.ID and CreatedAt fields will be populated by the store.
	CreateSplit(ctx context.Context, split *models.Split) error

	// GetSplit retrieves a split with its participants in their original order.
	GetSplit(ctx context.Context, splitID string) (*models.Split, error)

	// ListSplits returns all splits, newest first.
	ListSplits(ctx context.Context) ([]*models.Split, error)

	// UpdateSplit replaces a split's title, currency, budget and participants.
	UpdateSplit(ctx context.Context, split *models.Split) error

	// DeleteSplit removes a split and all of its expenses.
	DeleteSplit(ctx context.Context, splitID string) error

	// CreateExpense persists a new expense.
	// The expense.ID and CreatedAt fields will be populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesBySplit returns every expense of a split, newest first.
	// Balances are only correct when computed over the complete list.
	ListExpensesBySplit(ctx context.Context, splitID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
