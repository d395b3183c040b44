package reminder

import (
	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/scheduler"
)

const (
	MessageTooLate   = "check-in is today or in the past; no reminders scheduled"
	MessageScheduled = "reminders scheduled"
	MessagePartial   = "some reminders could not be scheduled"
)

type PreviewEvent struct {
	domain.PlannedEvent
	IsPastDue bool `json:"is_past_due"`
}

type Preview struct {
	CheckInDate      string         `json:"check_in_date"`
	DaysUntilCheckIn int            `json:"days_until_check_in"`
	Events           []PreviewEvent `json:"events"`
	Message          string         `json:"message,omitempty"`
}

type CommitSummary struct {
	BookingID    string                `json:"booking_id"`
	TotalEmails  int                   `json:"total_emails"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	Message      string                `json:"message"`
	Jobs         []scheduler.JobHandle `json:"jobs"`
}
