package plan

import (
	"time"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
)

// Planner computes the reminder events for a check-in date. It holds no state.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// Plan returns the reminder events for checkIn as seen at now, in evaluation order
// (SAFARI_BOOKING, RECONFIRMATION_VOUCHER, ADVANCE_PAYMENT). Any entry may be absent.
// An empty result means check-in is today or already past.
//
// The remaining-days count is rounded up while the compressed offsets are rounded down, so
// every compressed offset stays within the remaining window.
func (p *Planner) Plan(checkIn domain.CheckInDate, now time.Time) []domain.PlannedEvent {
	days := domain.DaysBetween(checkIn, now)
	if days <= 0 {
		return []domain.PlannedEvent{}
	}

	events := make([]domain.PlannedEvent, 0, len(domain.ReminderTypes()))
	for _, t := range domain.ReminderTypes() {
		offset := CompressedOffset(t.CanonicalDaysBefore(), days)
		if offset <= 0 {
			continue
		}
		events = append(events, domain.NewPlannedEvent(t, checkIn, offset))
	}

	return events
}

// CompressedOffset returns floor(canonical * days / 100) for days below the full-schedule
// threshold, and canonical otherwise. Integer arithmetic keeps the result exact.
func CompressedOffset(canonical, days int) int {
	if days >= FullScheduleThresholdDays {
		return canonical
	}
	if days <= 0 {
		return 0
	}

	return canonical * days / FullScheduleThresholdDays
}
