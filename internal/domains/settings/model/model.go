package model

import "sparkle/shared/model"

const (
	TableName  = "business_settings"
	EntityName = "business_settings"

	FieldID            = "id"
	FieldBusinessName  = "business_name"
	FieldBusinessPhone = "business_phone"
	FieldBusinessEmail = "business_email"
	FieldAddress       = "address"
	FieldPromptPayID   = "promptpay_id"
	FieldNotifyEnabled = "email_notifications_enabled"
)

// BusinessSettings is a single-row table. DefaultID is the only row id
// ever written; updates always target it.
const DefaultID = "00000000-0000-0000-0000-000000000001"

type BusinessSettings struct {
	ID            string  `db:"id"`
	BusinessName  string  `db:"business_name"`
	BusinessPhone string  `db:"business_phone"`
	BusinessEmail string  `db:"business_email"`
	Address       string  `db:"address"`
	PromptPayID   string  `db:"promptpay_id"`
	NotifyEnabled bool    `db:"email_notifications_enabled"`
	model.Metadata
}
