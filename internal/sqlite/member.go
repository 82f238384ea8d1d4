package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rahat/messbook/internal/domain/member"
	"github.com/rahat/messbook/internal/repository"
)

// MemberRepository implements repository.MemberRepository for SQLite
type MemberRepository struct {
	db *DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create inserts a new member
func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	query := `
		INSERT INTO members (id, name, role, avatar, deposit, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		string(m.Role),
		m.Avatar,
		m.Deposit.String(),
		m.IsActive,
		m.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// Get retrieves a member by ID
func (r *MemberRepository) Get(ctx context.Context, id string) (*member.Member, error) {
	query := `
		SELECT id, name, role, avatar, deposit, is_active, created_at
		FROM members
		WHERE id = ?
	`

	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return m, nil
}

// Update overwrites an existing member
func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	query := `
		UPDATE members
		SET name = ?, role = ?, avatar = ?, deposit = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		m.Name,
		string(m.Role),
		m.Avatar,
		m.Deposit.String(),
		m.IsActive,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
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

// Delete removes a member
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
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

// List returns all members in creation order
func (r *MemberRepository) List(ctx context.Context) ([]member.Member, error) {
	query := `
		SELECT id, name, role, avatar, deposit, is_active, created_at
		FROM members
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

// ResetDeposits zeroes every member's deposit
func (r *MemberRepository) ResetDeposits(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE members SET deposit = '0'`); err != nil {
		return fmt.Errorf("failed to reset deposits: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*member.Member, error) {
	var (
		m       member.Member
		role    string
		deposit string
	)
	err := row.Scan(&m.ID, &m.Name, &role, &m.Avatar, &deposit, &m.IsActive, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	m.Role = member.Role(role)
	if m.Deposit, err = parseDecimal(deposit); err != nil {
		return nil, err
	}
	return &m, nil
}
