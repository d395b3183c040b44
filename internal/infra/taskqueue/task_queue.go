package taskqueue

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"
)

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// MaxScheduleHorizon stays under Cloud Tasks' 30 day limit on schedule_time.
const MaxScheduleHorizon = 29 * 24 * time.Hour

// ErrTaskRejected marks a registration the substrate refused outright; retrying cannot help.
var ErrTaskRejected = errors.New("task rejected by queue")

// TaskQueue is the durable event substrate. A registered task survives restarts of the
// registering process and calls back at or after its absolute schedule time, at least once.
type TaskQueue interface {
	RegisterReminder(ctx context.Context, task *ReminderTask) (*TaskResponse, error)
}

// TaskID is the substrate-side name of the task for a job firing at scheduleAt. Registering the
// same job and time twice resolves to the same task.
func TaskID(jobID string, scheduleAt time.Time) string {
	if scheduleAt.IsZero() {
		return "reminder-" + jobID
	}
	return "reminder-" + jobID + "-" + strconv.FormatInt(scheduleAt.Unix(), 10)
}

// ClampScheduleTime returns target, or the furthest time the substrate accepts when target lies
// beyond it. A job registered at a clamped time is re-registered when that task fires early.
func ClampScheduleTime(target, now time.Time) time.Time {
	if limit := now.Add(MaxScheduleHorizon); target.After(limit) {
		return limit
	}
	return target
}

func retryBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
}
