package archive

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rahat/messbook/internal/domain/member"
	"github.com/rahat/messbook/internal/domain/settlement"
)

// Cycle is the immutable record of a closed cycle: the final aggregate
// stats plus a deep copy of every member's identity and settlement figures
// at close time. Nothing in a Cycle points back at live ledger state.
type Cycle struct {
	ID        string             `json:"id"`
	EndDate   time.Time          `json:"end_date"`
	Stats     settlement.Stats   `json:"stats"`
	Members   []MemberSettlement `json:"members"`
	CreatedAt time.Time          `json:"created_at"`
}

// MemberSettlement freezes one member's identity and final figures.
type MemberSettlement struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       member.Role     `json:"role"`
	Avatar     string          `json:"avatar"`
	Deposit    decimal.Decimal `json:"deposit"`
	IsActive   bool            `json:"is_active"`
	MealsEaten decimal.Decimal `json:"meals_eaten"`
	MealCost   decimal.Decimal `json:"meal_cost"`
	FixedCost  decimal.Decimal `json:"fixed_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Balance    decimal.Decimal `json:"balance"`
}
