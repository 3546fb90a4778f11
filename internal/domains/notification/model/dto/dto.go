package dto

type BookingConfirmationRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Email     string `json:"email"      validate:"omitempty,email"`
}

type NotificationResponse struct {
	BookingID string `json:"booking_id"`
	Sent      bool   `json:"sent"`
	MessageID string `json:"message_id,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}
