package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/repository"
)

// MealLogRepository implements repository.MealLogRepository for SQLite
type MealLogRepository struct {
	db *DB
}

// NewMealLogRepository creates a new MealLogRepository
func NewMealLogRepository(db *DB) *MealLogRepository {
	return &MealLogRepository{db: db}
}

// Create inserts a new meal log
func (r *MealLogRepository) Create(ctx context.Context, l *meallog.MealLog) error {
	query := `
		INSERT INTO meal_logs (id, member_id, date, count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.MemberID,
		l.Date,
		l.Count.String(),
		l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create meal log: %w", err)
	}

	return nil
}

// Update overwrites the count of an existing meal log
func (r *MealLogRepository) Update(ctx context.Context, l *meallog.MealLog) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE meal_logs SET count = ? WHERE id = ?`,
		l.Count.String(), l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meal log: %w", err)
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

// Delete removes a meal log by ID
func (r *MealLogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meal_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal log: %w", err)
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

// GetByMemberDate retrieves the log for a (member, date) pair
func (r *MealLogRepository) GetByMemberDate(ctx context.Context, memberID, date string) (*meallog.MealLog, error) {
	query := `
		SELECT id, member_id, date, count, created_at
		FROM meal_logs
		WHERE member_id = ? AND date = ?
	`

	l, err := scanMealLog(r.db.QueryRowContext(ctx, query, memberID, date))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal log: %w", err)
	}

	return l, nil
}

// List returns all meal logs, most recent day first
func (r *MealLogRepository) List(ctx context.Context) ([]meallog.MealLog, error) {
	query := `
		SELECT id, member_id, date, count, created_at
		FROM meal_logs
		ORDER BY date DESC, member_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal logs: %w", err)
	}
	defer rows.Close()

	var logs []meallog.MealLog
	for rows.Next() {
		l, err := scanMealLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal log: %w", err)
		}
		logs = append(logs, *l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meal log rows: %w", err)
	}

	return logs, nil
}

// DeleteByMember removes every log referencing a member
func (r *MealLogRepository) DeleteByMember(ctx context.Context, memberID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meal_logs WHERE member_id = ?`, memberID); err != nil {
		return fmt.Errorf("failed to delete member meal logs: %w", err)
	}
	return nil
}

// DeleteAll removes every meal log
func (r *MealLogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meal_logs`); err != nil {
		return fmt.Errorf("failed to delete meal logs: %w", err)
	}
	return nil
}

func scanMealLog(row rowScanner) (*meallog.MealLog, error) {
	var (
		l     meallog.MealLog
		count string
	)
	err := row.Scan(&l.ID, &l.MemberID, &l.Date, &count, &l.CreatedAt)
	if err != nil {
		return nil, err
	}

	if l.Count, err = parseDecimal(count); err != nil {
		return nil, err
	}
	return &l, nil
}
