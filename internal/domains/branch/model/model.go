package model

import "skynest/shared/model"

const (
	TableName  = "branches"
	EntityName = "branch"

	FieldID      = "id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldCity    = "city"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldActive  = "active"
)

type Branch struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	City    string `db:"city"`
	Phone   string `db:"phone"`
	Email   string `db:"email"`
	Active  bool   `db:"active"`
	model.Metadata
}
