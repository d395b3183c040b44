package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusInFlight  JobStatus = "in_flight"
	JobStatusDelivered JobStatus = "delivered"
	JobStatusFailed    JobStatus = "failed"
)

func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status can no longer change.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusDelivered || s == JobStatusFailed
}

// EarlyDeliveryTolerance is how far before its fire time a job may still be claimed. It absorbs
// clock skew between the task substrate and this service.
const EarlyDeliveryTolerance = time.Minute

// BookingSnapshot is the copy of booking fields captured at schedule time. Later edits to the
// booking never reach jobs created from it. Dates keep the store's DD/MM/YYYY text.
type BookingSnapshot struct {
	BookingID    string `json:"booking_id"`
	ClientName   string `json:"client_name"`
	AgentName    string `json:"agent_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// ScheduledJob is the durable record of one planned event.
type ScheduledJob struct {
	ID             string
	RecipientEmail string
	Snapshot       BookingSnapshot
	Event          PlannedEvent
	Status         JobStatus
	TaskName       string
	MessageID      string
	Error          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClaimedAt      time.Time
	FinishedAt     time.Time
}

func NewScheduledJob(recipient string, snapshot BookingSnapshot, event PlannedEvent, now time.Time) *ScheduledJob {
	return &ScheduledJob{
		ID:             uuid.NewString(),
		RecipientEmail: recipient,
		Snapshot:       snapshot,
		Event:          event,
		Status:         JobStatusPending,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
}
