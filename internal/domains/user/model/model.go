package model

import "skynest/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldBranchID  = "branch_id"
	FieldActive    = "active"
	FieldLastLogin = "last_login"

	FieldPosition      = "position"
	FieldLoyaltyPoints = "loyalty_points"
	FieldIsVerified    = "is_verified"
)

type User struct {
	ID        string  `db:"id"`
	Email     string  `db:"email"`
	Password  string  `db:"password"`
	Role      string  `db:"role"`
	FullName  string  `db:"full_name"`
	Phone     *string `db:"phone"`
	BranchID  *string `db:"branch_id"`
	Active    bool    `db:"active"`
	LastLogin *string `db:"last_login"`

	// Staff carry a position, guests carry loyalty state. The unused
	// columns stay at their defaults for the other roles.
	Position      *string `db:"position"`
	LoyaltyPoints int     `db:"loyalty_points"`
	IsVerified    bool    `db:"is_verified"`
	model.Metadata
}
