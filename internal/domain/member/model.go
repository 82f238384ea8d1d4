package member

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role marks a member as admin or viewer. Roles are advisory data carried
// for the presentation layer; nothing in the core enforces them.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// Member represents a mess member participating in the current cycle.
// MealsEaten is deliberately absent: it is always derived from meal logs
// by the settlement engine, never stored.
type Member struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Role      Role            `json:"role"`
	Avatar    string          `json:"avatar"`
	Deposit   decimal.Decimal `json:"deposit"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// Update is a partial-field patch for UpdateMember. Nil fields are left
// untouched.
type Update struct {
	Name     *string          `json:"name,omitempty"`
	Role     *Role            `json:"role,omitempty"`
	Avatar   *string          `json:"avatar,omitempty"`
	Deposit  *decimal.Decimal `json:"deposit,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}
