package repository

import (
	"context"

	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
)

// MemberRepository manages member persistence
type MemberRepository interface {
	Create(ctx context.Context, m *member.Member) error
	Get(ctx context.Context, id string) (*member.Member, error)
	Update(ctx context.Context, m *member.Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]member.Member, error)
	ResetDeposits(ctx context.Context) error
}

// ExpenseRepository manages expense persistence
type ExpenseRepository interface {
	Create(ctx context.Context, e *expense.Expense) error
	List(ctx context.Context) ([]expense.Expense, error)
	DeleteAll(ctx context.Context) error
}

// MealLogRepository manages meal log persistence
type MealLogRepository interface {
	Create(ctx context.Context, l *meallog.MealLog) error
	Update(ctx context.Context, l *meallog.MealLog) error
	Delete(ctx context.Context, id string) error
	GetByMemberDate(ctx context.Context, memberID, date string) (*meallog.MealLog, error)
	List(ctx context.Context) ([]meallog.MealLog, error)
	DeleteByMember(ctx context.Context, memberID string) error
	DeleteAll(ctx context.Context) error
}
