package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts are TEXT so decimals round-trip without float loss.
const schema = `
CREATE TABLE IF NOT EXISTS splits (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    currency TEXT NOT NULL,
    budget TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS split_participants (
    split_id TEXT NOT NULL,
    participant TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (split_id, participant),
    FOREIGN KEY (split_id) REFERENCES splits(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    split_id TEXT NOT NULL,
    title TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    paid_by TEXT NOT NULL,
    split_type TEXT NOT NULL,
    kind TEXT NOT NULL,
    original_amount TEXT,
    original_currency TEXT NOT NULL DEFAULT '',
    conversion_rate TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (split_id) REFERENCES splits(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_participants (
    expense_id TEXT NOT NULL,
    participant TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (expense_id, participant),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_custom_amounts (
    expense_id TEXT NOT NULL,
    participant TEXT NOT NULL,
    amount TEXT NOT NULL,
    PRIMARY KEY (expense_id, participant),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_split_participants_split_id ON split_participants(split_id);
CREATE INDEX IF NOT EXISTS idx_expenses_split_id ON expenses(split_id);
CREATE INDEX IF NOT EXISTS idx_expense_participants_expense_id ON expense_participants(expense_id);
CREATE INDEX IF NOT EXISTS idx_expense_custom_amounts_expense_id ON expense_custom_amounts(expense_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
