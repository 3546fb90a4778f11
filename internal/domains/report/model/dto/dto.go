package dto

type SummaryRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to"   validate:"omitempty,datetime=2006-01-02"`
}

type SummaryResponse struct {
	From             string         `json:"from,omitempty"`
	To               string         `json:"to,omitempty"`
	TotalBookings    int            `json:"total_bookings"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	PaymentsByStatus map[string]int `json:"payments_by_status"`
	TotalRevenue     float64        `json:"total_revenue"`
	CollectedRevenue float64        `json:"collected_revenue"`
	OutstandingCount int            `json:"outstanding_count"`
	UniqueCustomers  int            `json:"unique_customers"`
}

type ExportRequest struct {
	From   string `json:"from"   validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to"     validate:"omitempty,datetime=2006-01-02"`
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

type ExportFile struct {
	FileName    string
	ContentType string
	Payload     []byte
}
