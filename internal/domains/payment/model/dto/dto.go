package dto

type QRResponse struct {
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Payload   string  `json:"payload"`
}

type SlipResponse struct {
	BookingID     string `json:"booking_id"`
	PaymentStatus string `json:"payment_status"`
	SlipURL       string `json:"slip_url"`
}

type ReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

type ReviewResponse struct {
	BookingID     string `json:"booking_id"`
	PaymentStatus string `json:"payment_status"`
}
