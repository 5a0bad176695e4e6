// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/Whyudothiss/SplitBettter/internal/models"
	"github.com/Whyudothiss/SplitBettter/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Foreign keys are per connection in SQLite
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSplit persists a new split with its participants.
func (s *SQLiteStore) CreateSplit(ctx context.Context, split *models.Split) error {
	if split.ID == "" {
		split.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if split.CreatedAt == 0 {
		split.CreatedAt = now
	}
	split.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO splits (id, title, currency, budget, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		split.ID, split.Title, split.Currency, split.Budget, split.CreatedAt, split.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}

	if err := insertSplitParticipants(ctx, tx, split.ID, split.Participants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSplitParticipants(ctx context.Context, tx *sql.Tx, splitID string, participants []string) error {
	for i, p := range participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO split_participants (split_id, participant, position) VALUES (?, ?, ?)",
			splitID, p, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// GetSplit retrieves a split by ID, including its participants.
func (s *SQLiteStore) GetSplit(ctx context.Context, splitID string) (*models.Split, error) {
	split := &models.Split{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, currency, budget, created_at, updated_at FROM splits WHERE id = ?",
		splitID,
	).Scan(&split.ID, &split.Title, &split.Currency, &split.Budget, &split.CreatedAt, &split.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("split %s: %w", splitID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}

	split.Participants, err = s.listSplitParticipants(ctx, splitID)
	if err != nil {
		return nil, err
	}
	return split, nil
}

func (s *SQLiteStore) listSplitParticipants(ctx context.Context, splitID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant FROM split_participants WHERE split_id = ? ORDER BY position",
		splitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// ListSplits retrieves all splits, newest first.
func (s *SQLiteStore) ListSplits(ctx context.Context) ([]*models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, currency, budget, created_at, updated_at FROM splits ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	var splits []*models.Split
	for rows.Next() {
		split := &models.Split{}
		if err := rows.Scan(&split.ID, &split.Title, &split.Currency, &split.Budget, &split.CreatedAt, &split.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	for _, split := range splits {
		split.Participants, err = s.listSplitParticipants(ctx, split.ID)
		if err != nil {
			return nil, err
		}
	}
	return splits, nil
}

// UpdateSplit replaces a split's fields and participant list.
func (s *SQLiteStore) UpdateSplit(ctx context.Context, split *models.Split) error {
	split.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE splits SET title = ?, currency = ?, budget = ?, updated_at = ? WHERE id = ?",
		split.Title, split.Currency, split.Budget, split.UpdatedAt, split.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update split: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	} else if n == 0 {
		return fmt.Errorf("split %s: %w", split.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM split_participants WHERE split_id = ?", split.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertSplitParticipants(ctx, tx, split.ID, split.Participants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSplit removes a split. Expenses go with it through ON DELETE CASCADE.
func (s *SQLiteStore) DeleteSplit(ctx context.Context, splitID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM splits WHERE id = ?", splitID)
	if err != nil {
		return fmt.Errorf("failed to delete split: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("split %s: %w", splitID, storage.ErrNotFound)
	}
	return nil
}
