package dto

import (
	"sparkle/internal/domains/settings/model"
	gDto "sparkle/shared/dto"
)

type UpdateSettingsRequest struct {
	BusinessName  string `db:"business_name"               json:"business_name"  validate:"omitempty,max=100"`
	BusinessPhone string `db:"business_phone"              json:"business_phone" validate:"omitempty,max=20"`
	BusinessEmail string `db:"business_email"              json:"business_email" validate:"omitempty,email,max=100"`
	Address       string `db:"address"                     json:"address"        validate:"omitempty,max=255"`
	PromptPayID   string `db:"promptpay_id"                json:"promptpay_id"   validate:"omitempty,max=15"`
	NotifyEnabled *bool  `db:"email_notifications_enabled" json:"email_notifications_enabled" validate:"omitempty"`
}

type SettingsResponse struct {
	BusinessName  string `json:"business_name"`
	BusinessPhone string `json:"business_phone"`
	BusinessEmail string `json:"business_email"`
	Address       string `json:"address"`
	PromptPayID   string `json:"promptpay_id"`
	NotifyEnabled bool   `json:"email_notifications_enabled"`
	gDto.Metadata
}

func (r *SettingsResponse) FromModel(model model.BusinessSettings) {
	r.BusinessName = model.BusinessName
	r.BusinessPhone = model.BusinessPhone
	r.BusinessEmail = model.BusinessEmail
	r.Address = model.Address
	r.PromptPayID = model.PromptPayID
	r.NotifyEnabled = model.NotifyEnabled
	r.Metadata.FromModel(model.Metadata)
}
