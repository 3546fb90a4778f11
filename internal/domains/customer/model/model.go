package model

import "sparkle/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID      = "id"
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldAddress = "address"
	FieldCity    = "city"
	FieldState   = "state"
	FieldZipCode = "zip_code"
	FieldNotes   = "notes"
)

type Customer struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Phone   string  `db:"phone"`
	Email   *string `db:"email"`
	Address string  `db:"address"`
	City    string  `db:"city"`
	State   string  `db:"state"`
	ZipCode string  `db:"zip_code"`
	Notes   *string `db:"notes"`
	model.Metadata
	model.SoftDelete
}
