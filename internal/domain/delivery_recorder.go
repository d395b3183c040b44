package domain

import (
	"context"
	"time"
)

// DeliveryRecord is one audit row describing how a job ended.
type DeliveryRecord struct {
	JobID        string
	BookingID    string
	ReminderType string
	Status       string
	Stage        string
	ScheduledAt  time.Time
	RecordedAt   time.Time
	MessageID    string
	Error        string
}

type DeliveryRecorder interface {
	RecordDeliveries(ctx context.Context, records []DeliveryRecord) error
	Close() error
}
