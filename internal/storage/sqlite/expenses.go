package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Whyudothiss/SplitBettter/internal/models"
	"github.com/Whyudothiss/SplitBettter/internal/storage"
)

const expenseColumns = `id, split_id, title, category, amount, paid_by, split_type, kind,
	original_amount, original_currency, conversion_rate, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var splitType, kind string
	err := row.Scan(&expense.ID, &expense.SplitID, &expense.Title, &expense.Category,
		&expense.Amount, &expense.PaidBy, &splitType, &kind,
		&expense.OriginalAmount, &expense.OriginalCurrency, &expense.ConversionRate, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.SplitType = models.SplitType(splitType)
	expense.Kind = models.ExpenseKind(kind)
	return expense, nil
}

// CreateExpense persists a new expense with its participants and custom amounts.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.SplitType == "" {
		expense.SplitType = models.SplitTypeEqual
	}
	if expense.Kind == "" {
		expense.Kind = models.ExpenseKindRegular
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.SplitID, expense.Title, expense.Category,
		expense.Amount, expense.PaidBy, string(expense.SplitType), string(expense.Kind),
		expense.OriginalAmount, expense.OriginalCurrency, expense.ConversionRate, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, p := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, participant, position) VALUES (?, ?, ?)",
			expense.ID, p, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	for p, amount := range expense.CustomAmounts {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_custom_amounts (expense_id, participant, amount) VALUES (?, ?, ?)",
			expense.ID, p, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert custom amount: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`,
		expenseID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadExpenseDetails(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesBySplit retrieves all expenses for a split, newest first.
func (s *SQLiteStore) ListExpensesBySplit(ctx context.Context, splitID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE split_id = ? ORDER BY created_at DESC, rowid DESC`,
		splitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by split: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadExpenseDetails(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// loadExpenseDetails fills participants and custom amounts. An expense stored
// without participants keeps a nil slice.
func (s *SQLiteStore) loadExpenseDetails(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense participants: %w", err)
	}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan expense participant: %w", err)
		}
		expense.Participants = append(expense.Participants, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	amountRows, err := s.db.QueryContext(ctx,
		"SELECT participant, amount FROM expense_custom_amounts WHERE expense_id = ?",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get custom amounts: %w", err)
	}
	defer amountRows.Close()

	for amountRows.Next() {
		var p string
		var amount decimal.Decimal
		if err := amountRows.Scan(&p, &amount); err != nil {
			return fmt.Errorf("failed to scan custom amount: %w", err)
		}
		if expense.CustomAmounts == nil {
			expense.CustomAmounts = make(map[string]decimal.Decimal)
		}
		expense.CustomAmounts[p] = amount
	}
	if err := amountRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate custom amounts: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}
