package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/repository"
)

// Ensure the SQLite repositories satisfy the repository contracts
var (
	_ repository.MemberRepository  = (*MemberRepository)(nil)
	_ repository.ExpenseRepository = (*ExpenseRepository)(nil)
	_ repository.MealLogRepository = (*MealLogRepository)(nil)
	_ archive.Repository = (*ArchiveRepository)(nil)
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
//
// Amounts and meal counts are stored as TEXT and parsed through
// shopspring/decimal on the way out, so money never round-trips through a
// float. expenses.paid_by deliberately carries no foreign key: an expense
// keeps its payer reference even after that member is removed.
func (db *DB) RunMigrations() error {
	migration := `
-- Members table
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('admin', 'viewer')),
    avatar TEXT NOT NULL,
    deposit TEXT NOT NULL DEFAULT '0',
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL
);

-- Expenses table
CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    amount TEXT NOT NULL,
    description TEXT NOT NULL,
    type TEXT NOT NULL CHECK(type IN ('meal', 'fixed')),
    date TIMESTAMP NOT NULL,
    paid_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expenses_type ON expenses(type);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);

-- Meal logs table, one row per (member, day)
CREATE TABLE IF NOT EXISTS meal_logs (
    id TEXT PRIMARY KEY,
    member_id TEXT NOT NULL,
    date TEXT NOT NULL,
    count TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE(member_id, date)
);
CREATE INDEX IF NOT EXISTS idx_meal_logs_member ON meal_logs(member_id);

-- Archived cycles; stats and member snapshots are frozen JSON
CREATE TABLE IF NOT EXISTS archives (
    id TEXT PRIMARY KEY,
    end_date TIMESTAMP NOT NULL,
    stats TEXT NOT NULL,
    members TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_archives_created ON archives(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse decimal %q: %w", s, err)
	}
	return d, nil
}
