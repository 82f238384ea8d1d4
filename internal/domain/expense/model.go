package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies an expense into one of the two cost pools.
type Type string

const (
	// TypeMeal expenses form the variable pool divided by meals consumed.
	TypeMeal Type = "meal"
	// TypeFixed expenses are split evenly across active members.
	TypeFixed Type = "fixed"
)

// Valid reports whether the type is one of the known values.
func (t Type) Valid() bool {
	return t == TypeMeal || t == TypeFixed
}

// Expense is a single recorded spend. Expenses are immutable once created;
// the only way they go away is a full cycle reset. PaidBy references a
// member id and may dangle after that member is removed.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        Type            `json:"type"`
	Date        time.Time       `json:"date"`
	PaidBy      string          `json:"paid_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
