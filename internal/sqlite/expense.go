package sqlite

import (
	"context"
	"fmt"

	"github.com/rahat/messbook/internal/domain/expense"
)

// ExpenseRepository implements repository.ExpenseRepository for SQLite
type ExpenseRepository struct {
	db *DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (id, amount, description, type, date, paid_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Amount.String(),
		e.Description,
		string(e.Type),
		e.Date,
		e.PaidBy,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// List returns all expenses, most recent first
func (r *ExpenseRepository) List(ctx context.Context) ([]expense.Expense, error) {
	query := `
		SELECT id, amount, description, type, date, paid_by, created_at
		FROM expenses
		ORDER BY date DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		var (
			e      expense.Expense
			amount string
			typ    string
		)
		err := rows.Scan(&e.ID, &amount, &e.Description, &typ, &e.Date, &e.PaidBy, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Type = expense.Type(typ)
		if e.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	return expenses, nil
}

// DeleteAll removes every expense
func (r *ExpenseRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	return nil
}
