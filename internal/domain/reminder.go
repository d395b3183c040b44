package domain

import (
	"fmt"
	"time"
)

// ReminderType is one of the fixed categories of reminder email.
type ReminderType string

const (
	ReminderSafariBooking         ReminderType = "SAFARI_BOOKING"
	ReminderReconfirmationVoucher ReminderType = "RECONFIRMATION_VOUCHER"
	ReminderAdvancePayment        ReminderType = "ADVANCE_PAYMENT"
)

var reminderOffsets = map[ReminderType]int{
	ReminderSafariBooking:         100,
	ReminderReconfirmationVoucher: 45,
	ReminderAdvancePayment:        30,
}

// ReminderTypes returns every reminder type in evaluation order.
func ReminderTypes() []ReminderType {
	return []ReminderType{
		ReminderSafariBooking,
		ReminderReconfirmationVoucher,
		ReminderAdvancePayment,
	}
}

func ParseReminderType(s string) (ReminderType, error) {
	t := ReminderType(s)
	if _, ok := reminderOffsets[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownReminderType, s)
	}
	return t, nil
}

func (t ReminderType) String() string {
	return string(t)
}

// CanonicalDaysBefore is the target number of days before check-in for a full schedule.
func (t ReminderType) CanonicalDaysBefore() int {
	return reminderOffsets[t]
}

func (t ReminderType) IsValid() bool {
	_, ok := reminderOffsets[t]
	return ok
}

// PlannedEvent is what should be sent and when, before any durable commitment.
type PlannedEvent struct {
	Type              ReminderType `json:"type"`
	DaysBeforeCheckIn int          `json:"days_before_check_in"`
	ScheduledAt       time.Time    `json:"scheduled_at"`
}

func NewPlannedEvent(t ReminderType, checkIn CheckInDate, daysBefore int) PlannedEvent {
	return PlannedEvent{
		Type:              t,
		DaysBeforeCheckIn: daysBefore,
		ScheduledAt:       checkIn.DaysBefore(daysBefore),
	}
}

func (e PlannedEvent) IsPastDue(now time.Time) bool {
	return e.ScheduledAt.Before(now)
}
