package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/tracing"
)

const auditStage = "schedule"

// JobHandle reports what happened to one planned event.
type JobHandle struct {
	JobID             string              `json:"job_id"`
	Type              domain.ReminderType `json:"reminder_type"`
	DaysBeforeCheckIn int                 `json:"days_before_check_in"`
	ScheduledAt       time.Time           `json:"scheduled_at"`
	Status            domain.JobStatus    `json:"status"`
	TaskName          string              `json:"task_name,omitempty"`
	Error             string              `json:"error,omitempty"`
}

func (h JobHandle) Failed() bool {
	return h.Status == domain.JobStatusFailed
}

type Scheduler struct {
	jobRepo   domain.JobRepository
	taskQueue taskqueue.TaskQueue
	recorder  domain.DeliveryRecorder
	metrics   *metrics.ReminderMetrics
	now       func() time.Time
}

func NewScheduler(
	jobRepo domain.JobRepository,
	taskQueue taskqueue.TaskQueue,
	recorder domain.DeliveryRecorder,
	reminderMetrics *metrics.ReminderMetrics,
) *Scheduler {
	return &Scheduler{
		jobRepo:   jobRepo,
		taskQueue: taskQueue,
		recorder:  recorder,
		metrics:   reminderMetrics,
		now:       time.Now,
	}
}

// Schedule persists one pending job per event and registers its task. A failure affects only
// its own event; the returned handles are in event order.
func (s *Scheduler) Schedule(
	ctx context.Context,
	events []domain.PlannedEvent,
	recipient string,
	snapshot domain.BookingSnapshot,
) []JobHandle {
	handles := make([]JobHandle, 0, len(events))
	var failures []domain.DeliveryRecord

	for _, event := range events {
		handle, err := s.scheduleOne(ctx, event, recipient, snapshot)
		if err != nil {
			failures = append(failures, domain.DeliveryRecord{
				JobID:        handle.JobID,
				BookingID:    snapshot.BookingID,
				ReminderType: event.Type.String(),
				Status:       domain.JobStatusFailed.String(),
				Stage:        auditStage,
				ScheduledAt:  event.ScheduledAt,
				RecordedAt:   s.now().UTC(),
				Error:        err.Error(),
			})
		}
		handles = append(handles, handle)
	}

	if len(failures) > 0 && s.recorder != nil {
		if err := s.recorder.RecordDeliveries(ctx, failures); err != nil {
			slog.WarnContext(ctx, "failed to record schedule failures",
				slog.String("error", err.Error()),
			)
		}
	}

	return handles
}

func (s *Scheduler) scheduleOne(
	ctx context.Context,
	event domain.PlannedEvent,
	recipient string,
	snapshot domain.BookingSnapshot,
) (JobHandle, error) {
	now := s.now()
	job := domain.NewScheduledJob(recipient, snapshot, event, now)

	ctx, span := tracing.StartScheduleJobSpan(ctx, job.ID, event.Type.String(), event.ScheduledAt)
	defer span.End()

	handle := JobHandle{
		JobID:             job.ID,
		Type:              event.Type,
		DaysBeforeCheckIn: event.DaysBeforeCheckIn,
		ScheduledAt:       event.ScheduledAt,
		Status:            domain.JobStatusPending,
	}

	if err := s.jobRepo.SaveJob(ctx, job); err != nil {
		err = fmt.Errorf("failed to persist job: %w", err)
		slog.ErrorContext(ctx, "failed to persist reminder job",
			slog.String("job_id", job.ID),
			slog.String("booking_id", snapshot.BookingID),
			slog.String("reminder_type", event.Type.String()),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return s.fail(ctx, handle, err), err
	}

	resp, err := s.taskQueue.RegisterReminder(ctx, &taskqueue.ReminderTask{
		JobID:        job.ID,
		BookingID:    snapshot.BookingID,
		ReminderType: event.Type.String(),
		ScheduleAt:   taskqueue.ClampScheduleTime(event.ScheduledAt, now),
	})
	if err != nil {
		err = fmt.Errorf("failed to register task: %w", err)
		slog.ErrorContext(ctx, "failed to register reminder task",
			slog.String("job_id", job.ID),
			slog.String("booking_id", snapshot.BookingID),
			slog.String("reminder_type", event.Type.String()),
			slog.Time("scheduled_at", event.ScheduledAt),
			slog.String("error", err.Error()),
		)
		if markErr := s.jobRepo.MarkFailed(ctx, job.ID, err.Error(), s.now()); markErr != nil {
			slog.WarnContext(ctx, "failed to mark reminder job failed",
				slog.String("job_id", job.ID),
				slog.String("error", markErr.Error()),
			)
		}
		tracing.RecordError(span, err)
		return s.fail(ctx, handle, err), err
	}

	handle.TaskName = resp.Name
	if err := s.jobRepo.SetTaskName(ctx, job.ID, resp.Name); err != nil {
		slog.WarnContext(ctx, "failed to store task name",
			slog.String("job_id", job.ID),
			slog.String("task_name", resp.Name),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "reminder scheduled",
		slog.String("job_id", job.ID),
		slog.String("booking_id", snapshot.BookingID),
		slog.String("reminder_type", event.Type.String()),
		slog.Int("days_before_check_in", event.DaysBeforeCheckIn),
		slog.Time("scheduled_at", event.ScheduledAt),
		slog.String("task_name", resp.Name),
	)

	if s.metrics != nil {
		s.metrics.RecordJobScheduled(ctx, event.Type.String(), "success", event.ScheduledAt.Sub(now))
	}
	tracing.RecordError(span, nil)

	return handle, nil
}

func (s *Scheduler) fail(ctx context.Context, handle JobHandle, err error) JobHandle {
	handle.Status = domain.JobStatusFailed
	handle.Error = err.Error()

	if s.metrics != nil {
		s.metrics.RecordJobScheduled(ctx, handle.Type.String(), "failed", handle.ScheduledAt.Sub(s.now()))
	}

	return handle
}
