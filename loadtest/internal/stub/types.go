package stub

// BookingResponse mirrors the booking store's JSON shape.
type BookingResponse struct {
	ID           string `json:"id"`
	ClientName   string `json:"client_name"`
	AgentName    string `json:"agent_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

type SeedRequest struct {
	Buckets []SeedBucket `json:"buckets"`
}

// SeedBucket spreads Count bookings evenly over check-in days in [StartDate, EndDate].
// Dates are YYYY-MM-DD.
type SeedBucket struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Count     int    `json:"count"`
	Nights    int    `json:"nights"`
	AgentName string `json:"agent_name"`
}

type PutBookingRequest struct {
	ClientName   string `json:"client_name" binding:"required"`
	AgentName    string `json:"agent_name"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date"`
}
