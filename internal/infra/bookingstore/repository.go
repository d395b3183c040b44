package bookingstore

import "context"

//go:generate mockgen -source=repository.go -destination=mock.go -package=bookingstore

type Repository interface {
	GetBooking(ctx context.Context, bookingID string) (*Booking, error)
}
