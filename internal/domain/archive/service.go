// Package archive holds the append-only history of closed cycles.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rahat/messbook/internal/repository"
)

// Service handles archive queries and deletion. Creation happens only
// through the cycle manager.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new archive service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns all archived cycles, most recent first.
func (s *Service) List(ctx context.Context) ([]Cycle, error) {
	return s.repo.List(ctx)
}

// Delete removes an archived cycle. This is a one-way destructive act;
// archives are self-contained, so nothing else is touched.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrArchiveNotFound
		}
		return fmt.Errorf("deleting archive: %w", err)
	}
	s.logger.Info("archive deleted", "archive_id", id)
	return nil
}
