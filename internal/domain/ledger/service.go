// Package ledger owns the live state of the open cycle: members, expenses
// and meal logs. Every mutation is applied write-through under a single
// process-wide lock, so settlement reads never observe a half-applied
// operation.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
	"github.com/rahat/messbook/internal/repository"
)

// Service handles ledger operations.
type Service struct {
	mu       sync.RWMutex
	members  MemberRepository
	expenses ExpenseRepository
	logs     MealLogRepository
	logger   *slog.Logger
}

// NewService creates a new ledger service.
func NewService(members MemberRepository, expenses ExpenseRepository, logs MealLogRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		members:  members,
		expenses: expenses,
		logs:     logs,
		logger:   logger,
	}
}

// Snapshot is a consistent copy of the live ledger taken under the lock.
type Snapshot struct {
	Members  []member.Member
	Expenses []expense.Expense
	MealLogs []meallog.MealLog
}

// AddMember creates a member with a zero deposit and an avatar derived from
// the first two characters of the name.
func (s *Service) AddMember(ctx context.Context, name string, role member.Role) (*member.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", member.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", member.ErrInvalidInput, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := &member.Member{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      role,
		Avatar:    avatarFor(name),
		Deposit:   decimal.Zero,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}

	s.logger.Info("member added", "member_id", m.ID, "name", m.Name, "role", m.Role)
	return m, nil
}

// UpdateMember merges the provided fields into an existing member.
func (s *Service) UpdateMember(ctx context.Context, id string, upd member.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateMemberLocked(ctx, id, upd)
}

func (s *Service) updateMemberLocked(ctx context.Context, id string, upd member.Update) error {
	m, err := s.members.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return member.ErrMemberNotFound
		}
		return fmt.Errorf("loading member: %w", err)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be empty", member.ErrInvalidInput)
		}
		m.Name = name
	}
	if upd.Role != nil {
		if !upd.Role.Valid() {
			return fmt.Errorf("%w: unknown role %q", member.ErrInvalidInput, *upd.Role)
		}
		m.Role = *upd.Role
	}
	if upd.Avatar != nil {
		m.Avatar = *upd.Avatar
	}
	if upd.Deposit != nil {
		m.Deposit = *upd.Deposit
	}
	if upd.IsActive != nil {
		m.IsActive = *upd.IsActive
	}

	if err := s.members.Update(ctx, m); err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return nil
}

// RemoveMember deletes a member and every meal log referencing them.
// Unknown ids are rejected with ErrMemberNotFound rather than treated as a
// no-op, so a stale UI cannot silently "succeed". Expenses paid by the
// removed member keep their now-dangling reference.
func (s *Service) RemoveMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.members.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return member.ErrMemberNotFound
		}
		return fmt.Errorf("loading member: %w", err)
	}

	if err := s.logs.DeleteByMember(ctx, id); err != nil {
		return fmt.Errorf("deleting meal logs: %w", err)
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	s.logger.Info("member removed", "member_id", id)
	return nil
}

// AddExpense records an immutable expense in one of the two cost pools.
func (s *Service) AddExpense(ctx context.Context, amount decimal.Decimal, description string, typ expense.Type, paidBy string) (*expense.Expense, error) {
	description = strings.TrimSpace(description)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", expense.ErrInvalidInput)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", expense.ErrInvalidInput)
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", expense.ErrInvalidInput, typ)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e := &expense.Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: description,
		Type:        typ,
		Date:        now,
		PaidBy:      paidBy,
		CreatedAt:   now,
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	s.logger.Info("expense added", "expense_id", e.ID, "type", e.Type, "amount", e.Amount)
	return e, nil
}

// AddDeposit adds a positive amount to a member's cumulative deposit.
func (s *Service) AddDeposit(ctx context.Context, memberID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit must be positive", member.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return member.ErrMemberNotFound
		}
		return fmt.Errorf("loading member: %w", err)
	}

	deposit := m.Deposit.Add(amount)
	return s.updateMemberLocked(ctx, memberID, member.Update{Deposit: &deposit})
}

// LogMeal upserts the meal count for a (member, date) pair. A zero count
// deletes any existing log instead of storing a zero row; a positive count
// overwrites in place, keeping the pair unique.
func (s *Service) LogMeal(ctx context.Context, memberID string, count decimal.Decimal, date string) error {
	if count.IsNegative() {
		return fmt.Errorf("%w: count must not be negative", meallog.ErrInvalidInput)
	}
	if _, err := meallog.ParseDate(date); err != nil {
		return fmt.Errorf("%w: date must be formatted as %s", meallog.ErrInvalidInput, meallog.DateLayout)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.members.Get(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return member.ErrMemberNotFound
		}
		return fmt.Errorf("loading member: %w", err)
	}

	existing, err := s.logs.GetByMemberDate(ctx, memberID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("loading meal log: %w", err)
	}

	switch {
	case existing == nil && count.IsZero():
		// Nothing to record and nothing to delete.
		return nil
	case existing == nil:
		l := &meallog.MealLog{
			ID:        uuid.NewString(),
			MemberID:  memberID,
			Date:      date,
			Count:     count,
			CreatedAt: time.Now(),
		}
		if err := s.logs.Create(ctx, l); err != nil {
			return fmt.Errorf("creating meal log: %w", err)
		}
	case count.IsZero():
		if err := s.logs.Delete(ctx, existing.ID); err != nil {
			return fmt.Errorf("deleting meal log: %w", err)
		}
	default:
		existing.Count = count
		if err := s.logs.Update(ctx, existing); err != nil {
			return fmt.Errorf("updating meal log: %w", err)
		}
	}

	return nil
}

// Members returns all members in creation order.
func (s *Service) Members(ctx context.Context) ([]member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.List(ctx)
}

// Expenses returns all expenses, most recent first.
func (s *Service) Expenses(ctx context.Context) ([]expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses.List(ctx)
}

// MealLogs returns all meal logs, most recent first.
func (s *Service) MealLogs(ctx context.Context) ([]meallog.MealLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logs.List(ctx)
}

// Snapshot returns a consistent copy of the full ledger.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(ctx)
}

// WithSnapshot runs fn with the ledger exclusively locked, passing a
// consistent snapshot. No mutation can interleave until fn returns; the
// cycle manager uses this to keep settlement computation and archive
// persistence atomic relative to ledger writes.
func (s *Service) WithSnapshot(ctx context.Context, fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	return fn(snap)
}

func (s *Service) snapshot(ctx context.Context) (*Snapshot, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing meal logs: %w", err)
	}
	return &Snapshot{Members: members, Expenses: expenses, MealLogs: logs}, nil
}

// ClearExpensesAndLogs wipes both expense pools and all meal logs. Only the
// cycle manager calls this; clearing an already-empty ledger is a no-op.
func (s *Service) ClearExpensesAndLogs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expenses.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing expenses: %w", err)
	}
	if err := s.logs.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing meal logs: %w", err)
	}
	return nil
}

// ResetDeposits zeroes every member's deposit. Identity, role and active
// flag survive the reset.
func (s *Service) ResetDeposits(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.members.ResetDeposits(ctx); err != nil {
		return fmt.Errorf("resetting deposits: %w", err)
	}
	return nil
}

// avatarFor takes the first two characters of the name, uppercased.
func avatarFor(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
