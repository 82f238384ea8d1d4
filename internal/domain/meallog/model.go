package meallog

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day-granularity format for meal log dates.
const DateLayout = "2006-01-02"

// MealLog records how many meals a member ate on a given day. At most one
// log exists per (member, date) pair; counts are non-negative and may be
// fractional (half meals).
type MealLog struct {
	ID        string          `json:"id"`
	MemberID  string          `json:"member_id"`
	Date      string          `json:"date"`
	Count     decimal.Decimal `json:"count"`
	CreatedAt time.Time       `json:"created_at"`
}

// ParseDate validates a date string against DateLayout.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}
