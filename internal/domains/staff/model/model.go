package model

import "sparkle/shared/model"

const (
	TableName  = "staffs"
	EntityName = "staff"

	FieldID       = "id"
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldPosition = "position"
	FieldActive   = "active"
)

type Staff struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Phone    string  `db:"phone"`
	Email    *string `db:"email"`
	Position *string `db:"position"`
	Active   bool    `db:"active"`
	model.Metadata
	model.SoftDelete
}
