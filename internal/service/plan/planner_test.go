package plan

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
)

var baseNow = time.Date(2026, time.January, 10, 9, 30, 0, 0, time.UTC)

// checkInAfter returns the check-in date whose DaysBetween from baseNow equals days.
func checkInAfter(t *testing.T, days int) domain.CheckInDate {
	t.Helper()

	d := domain.CheckInDateOf(baseNow.AddDate(0, 0, days))
	if got := domain.DaysBetween(d, baseNow); got != days {
		t.Fatalf("fixture: DaysBetween = %d, want %d", got, days)
	}
	return d
}

type wantEvent struct {
	reminderType domain.ReminderType
	daysBefore   int
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected []wantEvent
	}{
		{
			name: "200 days away keeps canonical offsets",
			days: 200,
			expected: []wantEvent{
				{domain.ReminderSafariBooking, 100},
				{domain.ReminderReconfirmationVoucher, 45},
				{domain.ReminderAdvancePayment, 30},
			},
		},
		{
			name: "exactly 100 days takes the full schedule",
			days: 100,
			expected: []wantEvent{
				{domain.ReminderSafariBooking, 100},
				{domain.ReminderReconfirmationVoucher, 45},
				{domain.ReminderAdvancePayment, 30},
			},
		},
		{
			name: "99 days compresses",
			days: 99,
			expected: []wantEvent{
				{domain.ReminderSafariBooking, 99},
				{domain.ReminderReconfirmationVoucher, 44},
				{domain.ReminderAdvancePayment, 29},
			},
		},
		{
			name: "50 days halves offsets",
			days: 50,
			expected: []wantEvent{
				{domain.ReminderSafariBooking, 50},
				{domain.ReminderReconfirmationVoucher, 22},
				{domain.ReminderAdvancePayment, 15},
			},
		},
		{
			name: "70 days is exact in integer arithmetic",
			days: 70,
			expected: []wantEvent{
				{domain.ReminderSafariBooking, 70},
				{domain.ReminderReconfirmationVoucher, 31},
				{domain.ReminderAdvancePayment, 21},
			},
		},
		{
			name: "3 days keeps only offsets above zero",
			days: 3,
			expected: []wantEvent{
				{domain.ReminderSafariBooking, 3},
				{domain.ReminderReconfirmationVoucher, 1},
			},
		},
		{
			name: "1 day leaves only the safari reminder",
			days: 1,
			expected: []wantEvent{
				{domain.ReminderSafariBooking, 1},
			},
		},
	}

	planner := NewPlanner()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn := checkInAfter(t, tt.days)

			events := planner.Plan(checkIn, baseNow)
			if len(events) != len(tt.expected) {
				t.Fatalf("got %d events, want %d: %+v", len(events), len(tt.expected), events)
			}

			for i, want := range tt.expected {
				got := events[i]
				if got.Type != want.reminderType {
					t.Errorf("event[%d].Type: got %s, want %s", i, got.Type, want.reminderType)
				}
				if got.DaysBeforeCheckIn != want.daysBefore {
					t.Errorf("event[%d].DaysBeforeCheckIn: got %d, want %d", i, got.DaysBeforeCheckIn, want.daysBefore)
				}
				wantAt := checkIn.Time().AddDate(0, 0, -want.daysBefore)
				if !got.ScheduledAt.Equal(wantAt) {
					t.Errorf("event[%d].ScheduledAt: got %v, want %v", i, got.ScheduledAt, wantAt)
				}
			}
		})
	}
}

func TestPlanFullScheduleForAnyDistantDate(t *testing.T) {
	planner := NewPlanner()

	for days := 100; days <= 730; days += 7 {
		checkIn := checkInAfter(t, days)

		events := planner.Plan(checkIn, baseNow)
		if len(events) != 3 {
			t.Fatalf("days=%d: got %d events, want 3", days, len(events))
		}
		for _, e := range events {
			if e.DaysBeforeCheckIn != e.Type.CanonicalDaysBefore() {
				t.Errorf("days=%d %s: got offset %d, want %d", days, e.Type, e.DaysBeforeCheckIn, e.Type.CanonicalDaysBefore())
			}
			if !e.ScheduledAt.Equal(checkIn.DaysBefore(e.Type.CanonicalDaysBefore())) {
				t.Errorf("days=%d %s: unexpected scheduled time %v", days, e.Type, e.ScheduledAt)
			}
		}
	}
}

func TestPlanTooLate(t *testing.T) {
	planner := NewPlanner()
	today := domain.CheckInDateOf(baseNow)

	tests := []struct {
		name    string
		checkIn domain.CheckInDate
		now     time.Time
	}{
		{name: "check-in today", checkIn: today, now: baseNow},
		{name: "check-in at this exact instant", checkIn: today, now: today.Time()},
		{name: "check-in yesterday", checkIn: domain.CheckInDateOf(baseNow.AddDate(0, 0, -1)), now: baseNow},
		{name: "check-in last year", checkIn: domain.CheckInDateOf(baseNow.AddDate(-1, 0, 0)), now: baseNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := planner.Plan(tt.checkIn, tt.now)
			if events == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(events) != 0 {
				t.Errorf("expected no events, got %+v", events)
			}
		})
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	planner := NewPlanner()
	checkIn := checkInAfter(t, 42)

	first := planner.Plan(checkIn, baseNow)
	second := planner.Plan(checkIn, baseNow)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("event[%d] differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCompressedOffset(t *testing.T) {
	tests := []struct {
		canonical int
		days      int
		expected  int
	}{
		{100, 1, 1},
		{45, 1, 0},
		{30, 1, 0},
		{45, 50, 22},
		{30, 50, 15},
		{30, 70, 21},
		{45, 100, 45},
		{45, 365, 45},
		{30, 0, 0},
		{30, -5, 0},
	}

	for _, tt := range tests {
		if got := CompressedOffset(tt.canonical, tt.days); got != tt.expected {
			t.Errorf("CompressedOffset(%d, %d): got %d, want %d", tt.canonical, tt.days, got, tt.expected)
		}
	}
}
