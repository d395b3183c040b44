package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseCheckInDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CheckInDate
	}{
		{
			name:     "zero padded",
			input:    "05/01/2026",
			expected: CheckInDate{Year: 2026, Month: time.January, Day: 5},
		},
		{
			name:     "single digit fields",
			input:    "5/1/2026",
			expected: CheckInDate{Year: 2026, Month: time.January, Day: 5},
		},
		{
			name:     "surrounding whitespace",
			input:    "  31/12/2025 ",
			expected: CheckInDate{Year: 2025, Month: time.December, Day: 31},
		},
		{
			name:     "leap day",
			input:    "29/02/2028",
			expected: CheckInDate{Year: 2028, Month: time.February, Day: 29},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCheckInDate(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseCheckInDateMalformed(t *testing.T) {
	inputs := []string{
		"31-02-2025",
		"32/01/2025",
		"31/02/2025",
		"29/02/2027",
		"00/01/2025",
		"01/13/2025",
		"01/00/2025",
		"aa/01/2025",
		"01/01/25",
		"2025/01/01",
		"01/01/2025/",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCheckInDate(input)
			if err == nil {
				t.Fatalf("expected error for %q, got nil", input)
			}
			if !errors.Is(err, ErrMalformedDate) {
				t.Errorf("expected ErrMalformedDate, got %v", err)
			}
		})
	}
}

func TestCheckInDateRoundTrip(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3*366; i++ {
		d := CheckInDateOf(start.AddDate(0, 0, i))

		parsed, err := ParseCheckInDate(d.Format())
		if err != nil {
			t.Fatalf("parse %q: %v", d.Format(), err)
		}
		if parsed != d {
			t.Fatalf("round trip mismatch: got %+v, want %+v", parsed, d)
		}
	}
}

func TestCheckInDateLongForm(t *testing.T) {
	d, err := NewCheckInDate(2026, time.January, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := d.LongForm(); got != "05 January 2026" {
		t.Errorf("got %q, want %q", got, "05 January 2026")
	}
	if got := d.Format(); got != "05/01/2026" {
		t.Errorf("got %q, want %q", got, "05/01/2026")
	}
}

func TestDaysBetween(t *testing.T) {
	checkIn := CheckInDate{Year: 2026, Month: time.March, Day: 1}
	midnight := checkIn.Time()

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{
			name:     "exactly 100 days",
			now:      midnight.AddDate(0, 0, -100),
			expected: 100,
		},
		{
			name:     "99.1 days rounds up to 100",
			now:      midnight.Add(-99*24*time.Hour - 150*time.Minute),
			expected: 100,
		},
		{
			name:     "one second before 50 days boundary",
			now:      midnight.Add(-49*24*time.Hour - time.Second),
			expected: 50,
		},
		{
			name:     "check-in midnight",
			now:      midnight,
			expected: 0,
		},
		{
			name:     "later on check-in day",
			now:      midnight.Add(10 * time.Hour),
			expected: 0,
		},
		{
			name:     "a day and a half after",
			now:      midnight.Add(36 * time.Hour),
			expected: -1,
		},
		{
			name:     "non-UTC instant",
			now:      time.Date(2026, time.February, 28, 23, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(checkIn, tt.now); got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestParseReminderType(t *testing.T) {
	for _, rt := range ReminderTypes() {
		got, err := ParseReminderType(rt.String())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", rt, err)
		}
		if got != rt {
			t.Errorf("got %s, want %s", got, rt)
		}
	}

	if _, err := ParseReminderType("BIRTHDAY"); !errors.Is(err, ErrUnknownReminderType) {
		t.Errorf("expected ErrUnknownReminderType, got %v", err)
	}
}
