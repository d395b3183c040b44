package taskqueue

import (
	"testing"
	"time"
)

func TestClampScheduleTime(t *testing.T) {
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   time.Time
	}{
		{name: "past", target: now.Add(-time.Hour), want: now.Add(-time.Hour)},
		{name: "within horizon", target: now.AddDate(0, 0, 10), want: now.AddDate(0, 0, 10)},
		{name: "at horizon", target: now.Add(MaxScheduleHorizon), want: now.Add(MaxScheduleHorizon)},
		{name: "beyond horizon", target: now.AddDate(0, 0, 170), want: now.Add(MaxScheduleHorizon)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampScheduleTime(tt.target, now); !got.Equal(tt.want) {
				t.Errorf("ClampScheduleTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskIDDependsOnScheduleTime(t *testing.T) {
	first := time.Date(2026, time.February, 8, 9, 0, 0, 0, time.UTC)
	second := first.Add(MaxScheduleHorizon)

	if TaskID("job-1", first) != TaskID("job-1", first) {
		t.Error("TaskID should be stable for the same job and time")
	}
	if TaskID("job-1", first) == TaskID("job-1", second) {
		t.Error("TaskID should differ when the job is re-registered at a later time")
	}
	if got := TaskID("job-1", time.Time{}); got != "reminder-job-1" {
		t.Errorf("TaskID() without time = %q, want %q", got, "reminder-job-1")
	}
}
