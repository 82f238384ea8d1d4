package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
)

// MemberRepository is a mock for repository.MemberRepository.
type MemberRepository struct {
	mock.Mock
}

func (m *MemberRepository) Create(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MemberRepository) Get(ctx context.Context, id string) (*member.Member, error) {
	args := m.Called(ctx, id)
	if mem, ok := args.Get(0).(*member.Member); ok {
		return mem, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MemberRepository) Update(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MemberRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MemberRepository) List(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]member.Member); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MemberRepository) ResetDeposits(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ExpenseRepository is a mock for repository.ExpenseRepository.
type ExpenseRepository struct {
	mock.Mock
}

func (m *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *ExpenseRepository) List(ctx context.Context) ([]expense.Expense, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]expense.Expense); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MealLogRepository is a mock for repository.MealLogRepository.
type MealLogRepository struct {
	mock.Mock
}

func (m *MealLogRepository) Create(ctx context.Context, l *meallog.MealLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MealLogRepository) Update(ctx context.Context, l *meallog.MealLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MealLogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MealLogRepository) GetByMemberDate(ctx context.Context, memberID, date string) (*meallog.MealLog, error) {
	args := m.Called(ctx, memberID, date)
	if l, ok := args.Get(0).(*meallog.MealLog); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MealLogRepository) List(ctx context.Context) ([]meallog.MealLog, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]meallog.MealLog); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MealLogRepository) DeleteByMember(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

func (m *MealLogRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ArchiveRepository is a mock for repository.ArchiveRepository.
type ArchiveRepository struct {
	mock.Mock
}

func (m *ArchiveRepository) Create(ctx context.Context, c *archive.Cycle) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ArchiveRepository) List(ctx context.Context) ([]archive.Cycle, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]archive.Cycle); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ArchiveRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
