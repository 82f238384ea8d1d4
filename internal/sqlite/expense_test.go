package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rahat/messbook/internal/domain/expense"
)

func newExpense(t *testing.T, id, amount string, typ expense.Type, date time.Time) *expense.Expense {
	t.Helper()
	return &expense.Expense{
		ID:          id,
		Amount:      dec(t, amount),
		Description: "groceries",
		Type:        typ,
		Date:        date,
		PaidBy:      "m1",
		CreatedAt:   date,
	}
}

func TestExpenseRepository_CreateAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newExpense(t, "e1", "120.50", expense.TypeMeal, now.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, newExpense(t, "e2", "650", expense.TypeFixed, now)))

	expenses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	// Most recent first
	require.Equal(t, "e2", expenses[0].ID)
	require.Equal(t, expense.TypeFixed, expenses[0].Type)
	require.True(t, dec(t, "650").Equal(expenses[0].Amount), "got %s", expenses[0].Amount)
	require.Equal(t, "e1", expenses[1].ID)
	require.Equal(t, "groceries", expenses[1].Description)
	require.Equal(t, "m1", expenses[1].PaidBy)
}

func TestExpenseRepository_DeleteAll(t *testing.T) {
	db := NewTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newExpense(t, "e1", "100", expense.TypeMeal, now)))
	require.NoError(t, repo.Create(ctx, newExpense(t, "e2", "200", expense.TypeFixed, now)))

	require.NoError(t, repo.DeleteAll(ctx))

	expenses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, expenses)

	// Clearing an empty table is a no-op
	require.NoError(t, repo.DeleteAll(ctx))
}
