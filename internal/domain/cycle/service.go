// Package cycle orchestrates the close-cycle transition: snapshot the open
// cycle, archive its final figures, reset the live ledger.
package cycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/ledger"
	"github.com/rahat/messbook/internal/domain/settlement"
)

// Service handles cycle lifecycle operations.
type Service struct {
	mu       sync.Mutex
	ledger   Ledger
	archives ArchiveRepository
	logger   *slog.Logger
}

// NewService creates a new cycle service.
func NewService(ledger Ledger, archives ArchiveRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ledger: ledger, archives: archives, logger: logger}
}

// CloseCycle snapshots the open cycle into an immutable archive and resets
// the live ledger.
//
// Settlement computation, archive construction and archive persistence run
// under the ledger's exclusive lock, so the archive is built from one
// consistent state and a persistence failure leaves the ledger untouched.
// Clearing happens after the lock is released; a failure there returns
// ErrInconsistentState with the archive already safely persisted, and a
// retry (or Repair) finishes the job since the cleanup steps are no-ops on
// already-reset state. Closing an empty ledger archives a zero-stat cycle.
func (s *Service) CloseCycle(ctx context.Context) (*archive.Cycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var arch *archive.Cycle
	err := s.ledger.WithSnapshot(ctx, func(snap *ledger.Snapshot) error {
		arch = buildArchive(snap)
		if err := s.archives.Create(ctx, arch); err != nil {
			return fmt.Errorf("persisting archive: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cycle archived", "archive_id", arch.ID, "members", len(arch.Members))

	if err := s.cleanup(ctx); err != nil {
		s.logger.Error("ledger cleanup failed after archive", "archive_id", arch.ID, "error", err)
		return arch, fmt.Errorf("%w: %v", ErrInconsistentState, err)
	}

	s.logger.Info("cycle closed", "archive_id", arch.ID)
	return arch, nil
}

// Repair re-runs the post-archive cleanup. Safe to call any number of
// times; intended for recovery after ErrInconsistentState.
func (s *Service) Repair(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanup(ctx)
}

func (s *Service) cleanup(ctx context.Context) error {
	if err := s.ledger.ClearExpensesAndLogs(ctx); err != nil {
		return err
	}
	return s.ledger.ResetDeposits(ctx)
}

func buildArchive(snap *ledger.Snapshot) *archive.Cycle {
	stats := settlement.Compute(snap.Members, snap.Expenses, snap.MealLogs)

	members := make([]archive.MemberSettlement, 0, len(snap.Members))
	for _, m := range snap.Members {
		ms := settlement.ComputeMember(m, snap.MealLogs, stats)
		members = append(members, archive.MemberSettlement{
			ID:         m.ID,
			Name:       m.Name,
			Role:       m.Role,
			Avatar:     m.Avatar,
			Deposit:    m.Deposit,
			IsActive:   m.IsActive,
			MealsEaten: ms.MealsEaten,
			MealCost:   ms.MealCost,
			FixedCost:  ms.FixedCost,
			TotalCost:  ms.TotalCost,
			Balance:    ms.Balance,
		})
	}

	now := time.Now()
	return &archive.Cycle{
		ID:        uuid.NewString(),
		EndDate:   now,
		Stats:     stats,
		Members:   members,
		CreatedAt: now,
	}
}
