package cycle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/cycle"
	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/ledger"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
	"github.com/rahat/messbook/internal/repository/mocks"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeLedger implements cycle.Ledger with a fixed snapshot and
// programmable cleanup failures.
type fakeLedger struct {
	snap        ledger.Snapshot
	snapshotErr error
	clearErr    error
	resetErr    error

	cleared bool
	reset   bool
}

func (f *fakeLedger) WithSnapshot(ctx context.Context, fn func(*ledger.Snapshot) error) error {
	if f.snapshotErr != nil {
		return f.snapshotErr
	}
	snap := f.snap
	return fn(&snap)
}

func (f *fakeLedger) ClearExpensesAndLogs(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	return nil
}

func (f *fakeLedger) ResetDeposits(ctx context.Context) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.reset = true
	return nil
}

func populatedLedger() *fakeLedger {
	return &fakeLedger{snap: ledger.Snapshot{
		Members: []member.Member{
			{ID: "m1", Name: "rahim", Deposit: dec("1000"), IsActive: true},
			{ID: "m2", Name: "karim", Deposit: dec("900"), IsActive: true},
		},
		Expenses: []expense.Expense{
			{ID: "e1", Amount: dec("1200"), Type: expense.TypeMeal},
			{ID: "e2", Amount: dec("650"), Type: expense.TypeFixed},
		},
		MealLogs: []meallog.MealLog{
			{ID: "l1", MemberID: "m1", Date: "2025-03-01", Count: dec("18")},
			{ID: "l2", MemberID: "m2", Date: "2025-03-01", Count: dec("12")},
		},
	}}
}

func TestCloseCycle(t *testing.T) {
	ctx := context.Background()
	led := populatedLedger()
	archives := &mocks.ArchiveRepository{}
	archives.On("Create", ctx, mock.Anything).Return(nil)

	svc := cycle.NewService(led, archives, nil)
	arch, err := svc.CloseCycle(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, arch.ID)
	require.Len(t, arch.Members, 2)
	require.True(t, dec("40").Equal(arch.Stats.CurrentMealRate), "got %s", arch.Stats.CurrentMealRate)
	require.True(t, dec("325").Equal(arch.Stats.FixedCostPerMember), "got %s", arch.Stats.FixedCostPerMember)
	require.True(t, led.cleared)
	require.True(t, led.reset)
	archives.AssertExpectations(t)
}

func TestCloseCycle_PersistFailureLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	led := populatedLedger()
	archives := &mocks.ArchiveRepository{}
	archives.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	svc := cycle.NewService(led, archives, nil)
	arch, err := svc.CloseCycle(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, cycle.ErrInconsistentState)
	require.Nil(t, arch)
	require.False(t, led.cleared)
	require.False(t, led.reset)
}

func TestCloseCycle_CleanupFailureIsInconsistent(t *testing.T) {
	ctx := context.Background()
	led := populatedLedger()
	led.clearErr = errors.New("database is locked")
	archives := &mocks.ArchiveRepository{}
	archives.On("Create", ctx, mock.Anything).Return(nil)

	svc := cycle.NewService(led, archives, nil)
	arch, err := svc.CloseCycle(ctx)
	require.ErrorIs(t, err, cycle.ErrInconsistentState)
	require.NotNil(t, arch, "archive is already persisted when cleanup fails")
	require.False(t, led.reset)
}

func TestCloseCycle_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	led := &fakeLedger{}
	archives := &mocks.ArchiveRepository{}
	var persisted *archive.Cycle
	archives.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*archive.Cycle)
	}).Return(nil)

	svc := cycle.NewService(led, archives, nil)
	arch, err := svc.CloseCycle(ctx)
	require.NoError(t, err)
	require.Same(t, persisted, arch)
	require.Empty(t, arch.Members)
	require.True(t, arch.Stats.CurrentMealRate.IsZero())
	require.True(t, arch.Stats.RemainingCash.IsZero())
}

func TestRepair(t *testing.T) {
	ctx := context.Background()
	led := populatedLedger()
	led.clearErr = errors.New("database is locked")
	archives := &mocks.ArchiveRepository{}
	archives.On("Create", ctx, mock.Anything).Return(nil)

	svc := cycle.NewService(led, archives, nil)
	_, err := svc.CloseCycle(ctx)
	require.ErrorIs(t, err, cycle.ErrInconsistentState)

	// The lock contention clears; Repair finishes the reset.
	led.clearErr = nil
	require.NoError(t, svc.Repair(ctx))
	require.True(t, led.cleared)
	require.True(t, led.reset)

	// Repair is idempotent.
	require.NoError(t, svc.Repair(ctx))
}
