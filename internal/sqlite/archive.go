package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/repository"
)

// ArchiveRepository implements repository.ArchiveRepository for SQLite.
// Stats and member snapshots are frozen at write time as JSON documents;
// nothing ever joins them back to live rows.
type ArchiveRepository struct {
	db *DB
}

// NewArchiveRepository creates a new ArchiveRepository
func NewArchiveRepository(db *DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Create persists a closed cycle
func (r *ArchiveRepository) Create(ctx context.Context, c *archive.Cycle) error {
	stats, err := json.Marshal(c.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal archive stats: %w", err)
	}
	members, err := json.Marshal(c.Members)
	if err != nil {
		return fmt.Errorf("failed to marshal archive members: %w", err)
	}

	query := `
		INSERT INTO archives (id, end_date, stats, members, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.EndDate,
		string(stats),
		string(members),
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	return nil
}

// List returns all archived cycles, most recent first
func (r *ArchiveRepository) List(ctx context.Context) ([]archive.Cycle, error) {
	query := `
		SELECT id, end_date, stats, members, created_at
		FROM archives
		ORDER BY created_at DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	defer rows.Close()

	var cycles []archive.Cycle
	for rows.Next() {
		var (
			c       archive.Cycle
			stats   string
			members string
		)
		if err := rows.Scan(&c.ID, &c.EndDate, &stats, &members, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archive: %w", err)
		}
		if err := json.Unmarshal([]byte(stats), &c.Stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal archive stats: %w", err)
		}
		if err := json.Unmarshal([]byte(members), &c.Members); err != nil {
			return nil, fmt.Errorf("failed to unmarshal archive members: %w", err)
		}
		cycles = append(cycles, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archive rows: %w", err)
	}

	return cycles, nil
}

// Delete removes an archived cycle
func (r *ArchiveRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM archives WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete archive: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
