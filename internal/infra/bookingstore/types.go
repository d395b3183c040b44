package bookingstore

import (
	"errors"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
)

var ErrBookingNotFound = errors.New("booking not found")

// Booking is the booking store's view of a reservation. Dates are DD/MM/YYYY text.
type Booking struct {
	ID           string `json:"id"`
	ClientName   string `json:"client_name"`
	AgentName    string `json:"agent_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

func (b *Booking) Snapshot() domain.BookingSnapshot {
	return domain.BookingSnapshot{
		BookingID:    b.ID,
		ClientName:   b.ClientName,
		AgentName:    b.AgentName,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
	}
}
