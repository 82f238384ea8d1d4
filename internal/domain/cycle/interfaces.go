package cycle

import (
	"context"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/ledger"
)

// Ledger is the slice of the ledger service the cycle manager needs.
type Ledger interface {
	WithSnapshot(ctx context.Context, fn func(*ledger.Snapshot) error) error
	ClearExpensesAndLogs(ctx context.Context) error
	ResetDeposits(ctx context.Context) error
}

// ArchiveRepository persists closed cycles.
type ArchiveRepository interface {
	Create(ctx context.Context, c *archive.Cycle) error
}
