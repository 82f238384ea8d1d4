// Package settlement derives cycle statistics and per-member balances from
// ledger state. Everything here is a pure function over snapshots: no
// stored aggregates exist anywhere, so a computation can never drift out of
// sync with the logs and expenses it was derived from.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
)

// Stats holds the aggregate figures for the open cycle.
type Stats struct {
	TotalDeposits      decimal.Decimal `json:"total_deposits"`
	TotalMealExpenses  decimal.Decimal `json:"total_meal_expenses"`
	TotalFixedExpenses decimal.Decimal `json:"total_fixed_expenses"`
	TotalMealsConsumed decimal.Decimal `json:"total_meals_consumed"`
	ActiveMembers      int             `json:"active_members"`
	CurrentMealRate    decimal.Decimal `json:"current_meal_rate"`
	FixedCostPerMember decimal.Decimal `json:"fixed_cost_per_member"`
	RemainingCash      decimal.Decimal `json:"remaining_cash"`
}

// MemberStats holds one member's derived figures. Balance is the member's
// net position: positive means the mess owes them a refund, negative means
// they owe the mess.
type MemberStats struct {
	MemberID   string          `json:"member_id"`
	MealsEaten decimal.Decimal `json:"meals_eaten"`
	MealCost   decimal.Decimal `json:"meal_cost"`
	FixedCost  decimal.Decimal `json:"fixed_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Balance    decimal.Decimal `json:"balance"`
}

// Compute aggregates cycle statistics from ledger state.
//
// The meal rate is a single pooled average: total meal-type spend divided by
// total meals logged, whatever the mix of grocery runs behind it. Zero meals
// logged means a zero rate, not an error; likewise a fixed share of zero
// when no member is active.
func Compute(members []member.Member, expenses []expense.Expense, logs []meallog.MealLog) Stats {
	var stats Stats

	for _, m := range members {
		stats.TotalDeposits = stats.TotalDeposits.Add(m.Deposit)
		if m.IsActive {
			stats.ActiveMembers++
		}
	}

	for _, e := range expenses {
		switch e.Type {
		case expense.TypeMeal:
			stats.TotalMealExpenses = stats.TotalMealExpenses.Add(e.Amount)
		case expense.TypeFixed:
			stats.TotalFixedExpenses = stats.TotalFixedExpenses.Add(e.Amount)
		}
	}

	for _, l := range logs {
		stats.TotalMealsConsumed = stats.TotalMealsConsumed.Add(l.Count)
	}

	if stats.TotalMealsConsumed.IsPositive() {
		stats.CurrentMealRate = stats.TotalMealExpenses.Div(stats.TotalMealsConsumed)
	}
	if stats.ActiveMembers > 0 {
		stats.FixedCostPerMember = stats.TotalFixedExpenses.Div(decimal.NewFromInt(int64(stats.ActiveMembers)))
	}
	stats.RemainingCash = stats.TotalDeposits.Sub(stats.TotalMealExpenses.Add(stats.TotalFixedExpenses))

	return stats
}

// ComputeMember derives one member's cost and balance figures from the
// aggregate stats. Inactive members carry no fixed-cost share.
func ComputeMember(m member.Member, logs []meallog.MealLog, stats Stats) MemberStats {
	ms := MemberStats{MemberID: m.ID}

	for _, l := range logs {
		if l.MemberID == m.ID {
			ms.MealsEaten = ms.MealsEaten.Add(l.Count)
		}
	}

	ms.MealCost = ms.MealsEaten.Mul(stats.CurrentMealRate)
	if m.IsActive {
		ms.FixedCost = stats.FixedCostPerMember
	}
	ms.TotalCost = ms.MealCost.Add(ms.FixedCost)
	ms.Balance = m.Deposit.Sub(ms.TotalCost)

	return ms
}

// ComputeMembers derives figures for every member against the same stats.
func ComputeMembers(members []member.Member, logs []meallog.MealLog, stats Stats) []MemberStats {
	out := make([]MemberStats, 0, len(members))
	for _, m := range members {
		out = append(out, ComputeMember(m, logs, stats))
	}
	return out
}
