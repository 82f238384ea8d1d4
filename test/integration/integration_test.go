package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/cycle"
	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/ledger"
	"github.com/rahat/messbook/internal/domain/member"
	"github.com/rahat/messbook/internal/domain/settlement"
	"github.com/rahat/messbook/internal/sqlite"
)

type testEnv struct {
	db *sqlite.DB

	ledgerSvc  *ledger.Service
	archiveSvc *archive.Service
	cycleSvc   *cycle.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	memberRepo := sqlite.NewMemberRepository(db)
	expenseRepo := sqlite.NewExpenseRepository(db)
	mealLogRepo := sqlite.NewMealLogRepository(db)
	archiveRepo := sqlite.NewArchiveRepository(db)

	ledgerSvc := ledger.NewService(memberRepo, expenseRepo, mealLogRepo, nil)
	archiveSvc := archive.NewService(archiveRepo, nil)
	cycleSvc := cycle.NewService(ledgerSvc, archiveRepo, nil)

	return &testEnv{
		db:         db,
		ledgerSvc:  ledgerSvc,
		archiveSvc: archiveSvc,
		cycleSvc:   cycleSvc,
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestIntegration_FullCycleWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a, err := env.ledgerSvc.AddMember(ctx, "rahim", member.RoleAdmin)
	require.NoError(t, err)
	b, err := env.ledgerSvc.AddMember(ctx, "karim", member.RoleViewer)
	require.NoError(t, err)

	require.NoError(t, env.ledgerSvc.AddDeposit(ctx, a.ID, dec(t, "1000")))
	require.NoError(t, env.ledgerSvc.AddDeposit(ctx, b.ID, dec(t, "900")))

	_, err = env.ledgerSvc.AddExpense(ctx, dec(t, "800"), "groceries week 1", expense.TypeMeal, a.ID)
	require.NoError(t, err)
	_, err = env.ledgerSvc.AddExpense(ctx, dec(t, "400"), "groceries week 2", expense.TypeMeal, b.ID)
	require.NoError(t, err)
	_, err = env.ledgerSvc.AddExpense(ctx, dec(t, "650"), "gas and wifi", expense.TypeFixed, a.ID)
	require.NoError(t, err)

	require.NoError(t, env.ledgerSvc.LogMeal(ctx, a.ID, dec(t, "10"), "2025-03-01"))
	require.NoError(t, env.ledgerSvc.LogMeal(ctx, a.ID, dec(t, "8"), "2025-03-02"))
	require.NoError(t, env.ledgerSvc.LogMeal(ctx, b.ID, dec(t, "12"), "2025-03-01"))

	snap, err := env.ledgerSvc.Snapshot(ctx)
	require.NoError(t, err)
	stats := settlement.Compute(snap.Members, snap.Expenses, snap.MealLogs)
	require.True(t, dec(t, "40").Equal(stats.CurrentMealRate), "got %s", stats.CurrentMealRate)
	require.True(t, dec(t, "325").Equal(stats.FixedCostPerMember), "got %s", stats.FixedCostPerMember)
	require.True(t, dec(t, "50").Equal(stats.RemainingCash), "got %s", stats.RemainingCash)

	arch, err := env.cycleSvc.CloseCycle(ctx)
	require.NoError(t, err)
	require.Len(t, arch.Members, 2)

	// Archived figures match the live computation at close time
	require.True(t, stats.CurrentMealRate.Equal(arch.Stats.CurrentMealRate))
	for _, ms := range arch.Members {
		if ms.ID == a.ID {
			require.True(t, dec(t, "18").Equal(ms.MealsEaten))
			require.True(t, dec(t, "-45").Equal(ms.Balance), "got %s", ms.Balance)
		}
	}

	// Ledger is reset: expenses and logs gone, deposits zeroed, members kept
	snap, err = env.ledgerSvc.Snapshot(ctx)
	require.NoError(t, err)
	require.Empty(t, snap.Expenses)
	require.Empty(t, snap.MealLogs)
	require.Len(t, snap.Members, 2)
	for _, m := range snap.Members {
		require.True(t, m.Deposit.IsZero(), "member %s deposit %s", m.ID, m.Deposit)
	}

	archives, err := env.archiveSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, archives, 1)
	require.Equal(t, arch.ID, archives[0].ID)
}

func TestIntegration_BackToBackCycles(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	m, err := env.ledgerSvc.AddMember(ctx, "rahim", member.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, env.ledgerSvc.AddDeposit(ctx, m.ID, dec(t, "500")))
	_, err = env.ledgerSvc.AddExpense(ctx, dec(t, "300"), "groceries", expense.TypeMeal, m.ID)
	require.NoError(t, err)
	require.NoError(t, env.ledgerSvc.LogMeal(ctx, m.ID, dec(t, "10"), "2025-03-01"))

	first, err := env.cycleSvc.CloseCycle(ctx)
	require.NoError(t, err)
	require.True(t, dec(t, "30").Equal(first.Stats.CurrentMealRate))

	// Second cycle starts clean; closing it immediately archives zero stats
	second, err := env.cycleSvc.CloseCycle(ctx)
	require.NoError(t, err)
	require.True(t, second.Stats.CurrentMealRate.IsZero())
	require.True(t, second.Stats.TotalDeposits.IsZero())
	require.Len(t, second.Members, 1, "members carry over between cycles")

	archives, err := env.archiveSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, archives, 2)
	require.Equal(t, second.ID, archives[0].ID, "most recent archive first")
}

func TestIntegration_RemoveMemberCascade(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a, err := env.ledgerSvc.AddMember(ctx, "rahim", member.RoleAdmin)
	require.NoError(t, err)
	b, err := env.ledgerSvc.AddMember(ctx, "karim", member.RoleViewer)
	require.NoError(t, err)

	_, err = env.ledgerSvc.AddExpense(ctx, dec(t, "100"), "groceries", expense.TypeMeal, a.ID)
	require.NoError(t, err)
	require.NoError(t, env.ledgerSvc.LogMeal(ctx, a.ID, dec(t, "2"), "2025-03-01"))
	require.NoError(t, env.ledgerSvc.LogMeal(ctx, b.ID, dec(t, "1"), "2025-03-01"))

	require.NoError(t, env.ledgerSvc.RemoveMember(ctx, a.ID))

	// Their meal logs are gone, the expense they paid survives
	logs, err := env.ledgerSvc.MealLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, b.ID, logs[0].MemberID)

	expenses, err := env.ledgerSvc.Expenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	require.Equal(t, a.ID, expenses[0].PaidBy)
}

func TestIntegration_ArchiveDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.ledgerSvc.AddMember(ctx, "rahim", member.RoleAdmin)
	require.NoError(t, err)

	arch, err := env.cycleSvc.CloseCycle(ctx)
	require.NoError(t, err)

	require.NoError(t, env.archiveSvc.Delete(ctx, arch.ID))
	require.ErrorIs(t, env.archiveSvc.Delete(ctx, arch.ID), archive.ErrArchiveNotFound)

	archives, err := env.archiveSvc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, archives)
}
