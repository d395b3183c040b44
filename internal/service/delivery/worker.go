package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/mailer"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/template"
)

const (
	auditStage = "deliver"

	defaultSendTimeout = 10 * time.Second
	defaultClaimLease  = 10 * time.Minute
)

type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
	// OutcomeDeferred means the trigger came before the job's fire time and a later task was
	// registered.
	OutcomeDeferred Outcome = "deferred"
)

type Result struct {
	JobID     string  `json:"job_id"`
	Outcome   Outcome `json:"outcome"`
	MessageID string  `json:"message_id,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

type Config struct {
	SendTimeout time.Duration
	ClaimLease  time.Duration
}

type Worker struct {
	jobRepo     domain.JobRepository
	taskQueue   taskqueue.TaskQueue
	renderer    *template.Renderer
	sender      mailer.Sender
	recorder    domain.DeliveryRecorder
	metrics     *metrics.ReminderMetrics
	sendTimeout time.Duration
	claimLease  time.Duration
	now         func() time.Time
}

func NewWorker(
	jobRepo domain.JobRepository,
	taskQueue taskqueue.TaskQueue,
	renderer *template.Renderer,
	sender mailer.Sender,
	recorder domain.DeliveryRecorder,
	reminderMetrics *metrics.ReminderMetrics,
	cfg Config,
) *Worker {
	sendTimeout := cfg.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	claimLease := cfg.ClaimLease
	if claimLease <= 0 {
		claimLease = defaultClaimLease
	}

	return &Worker{
		jobRepo:     jobRepo,
		taskQueue:   taskQueue,
		renderer:    renderer,
		sender:      sender,
		recorder:    recorder,
		metrics:     reminderMetrics,
		sendTimeout: sendTimeout,
		claimLease:  claimLease,
		now:         time.Now,
	}
}

// Deliver sends the reminder for one job at most once per successful claim. Send and render
// failures end the job as failed and are not returned. Store errors, re-registration errors
// and a live claim held by another attempt are returned (wrapping domain.ErrJobClaimed for the
// latter) so the caller can ask the task substrate to redeliver.
func (w *Worker) Deliver(ctx context.Context, jobID string) (*Result, error) {
	ctx, span := tracing.StartDeliverySpan(ctx, jobID)
	defer span.End()

	start := time.Now()

	job, err := w.jobRepo.ClaimJob(ctx, jobID, w.now(), w.claimLease)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			slog.WarnContext(ctx, "delivery requested for unknown job",
				slog.String("job_id", jobID),
			)
			tracing.RecordDeliveryResult(span, "", string(OutcomeSkipped), nil)
			return &Result{JobID: jobID, Outcome: OutcomeSkipped, Reason: "job not found"}, nil
		case errors.Is(err, domain.ErrJobNotClaimable):
			slog.InfoContext(ctx, "job already finished, skipping",
				slog.String("job_id", jobID),
			)
			tracing.RecordDeliveryResult(span, "", string(OutcomeSkipped), nil)
			return &Result{JobID: jobID, Outcome: OutcomeSkipped, Reason: "job already finished"}, nil
		case errors.Is(err, domain.ErrJobClaimed):
			slog.WarnContext(ctx, "job claimed by another delivery attempt, requesting retry",
				slog.String("job_id", jobID),
			)
			tracing.RecordError(span, err)
			return nil, fmt.Errorf("job %s: %w", jobID, err)
		case errors.Is(err, domain.ErrJobNotDue):
			return w.postpone(ctx, span, jobID)
		default:
			slog.ErrorContext(ctx, "failed to claim job",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()),
			)
			tracing.RecordError(span, err)
			return nil, fmt.Errorf("failed to claim job %s: %w", jobID, err)
		}
	}

	reminderType := job.Event.Type.String()

	msg, err := w.renderer.Render(job.Event.Type, job.Snapshot)
	if err != nil {
		return w.fail(ctx, span, job, fmt.Errorf("failed to render reminder: %w", err), start)
	}

	messageID, err := w.send(ctx, job, msg)
	if err != nil {
		return w.fail(ctx, span, job, err, start)
	}

	if err := w.jobRepo.MarkDelivered(ctx, job.ID, messageID, w.now()); err != nil {
		slog.ErrorContext(ctx, "failed to mark job delivered",
			slog.String("job_id", job.ID),
			slog.String("message_id", messageID),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to mark job %s delivered: %w", job.ID, err)
	}

	slog.InfoContext(ctx, "reminder delivered",
		slog.String("job_id", job.ID),
		slog.String("booking_id", job.Snapshot.BookingID),
		slog.String("reminder_type", reminderType),
		slog.String("message_id", messageID),
	)

	w.record(ctx, job, OutcomeDelivered, messageID, "", start)
	tracing.RecordDeliveryResult(span, reminderType, string(OutcomeDelivered), nil)

	return &Result{JobID: job.ID, Outcome: OutcomeDelivered, MessageID: messageID}, nil
}

// postpone re-registers a job whose task fired before its fire time. That happens when the
// fire time lay beyond the substrate's schedule horizon at registration.
func (w *Worker) postpone(ctx context.Context, span trace.Span, jobID string) (*Result, error) {
	job, err := w.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	now := w.now()
	resp, err := w.taskQueue.RegisterReminder(ctx, &taskqueue.ReminderTask{
		JobID:        job.ID,
		BookingID:    job.Snapshot.BookingID,
		ReminderType: job.Event.Type.String(),
		ScheduleAt:   taskqueue.ClampScheduleTime(job.Event.ScheduledAt, now),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to re-register early reminder task",
			slog.String("job_id", job.ID),
			slog.Time("scheduled_at", job.Event.ScheduledAt),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to re-register job %s: %w", job.ID, err)
	}

	if err := w.jobRepo.SetTaskName(ctx, job.ID, resp.Name); err != nil {
		slog.WarnContext(ctx, "failed to store task name",
			slog.String("job_id", job.ID),
			slog.String("task_name", resp.Name),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "reminder not due yet, task re-registered",
		slog.String("job_id", job.ID),
		slog.Time("scheduled_at", job.Event.ScheduledAt),
		slog.String("task_name", resp.Name),
	)
	tracing.RecordDeliveryResult(span, job.Event.Type.String(), string(OutcomeDeferred), nil)

	return &Result{
		JobID:   job.ID,
		Outcome: OutcomeDeferred,
		Reason:  "not due until " + job.Event.ScheduledAt.UTC().Format(time.RFC3339),
	}, nil
}

func (w *Worker) send(ctx context.Context, job *domain.ScheduledJob, msg *template.Message) (string, error) {
	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	defer cancel()

	messageID, err := w.sender.Send(sendCtx, &mailer.Message{
		To:      job.RecipientEmail,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Tags: []mailer.Tag{
			{Name: "job_id", Value: job.ID},
			{Name: "booking_id", Value: job.Snapshot.BookingID},
			{Name: "reminder_type", Value: job.Event.Type.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send reminder: %w", err)
	}

	return messageID, nil
}

func (w *Worker) fail(
	ctx context.Context,
	span trace.Span,
	job *domain.ScheduledJob,
	cause error,
	start time.Time,
) (*Result, error) {
	reminderType := job.Event.Type.String()

	slog.WarnContext(ctx, "reminder delivery failed",
		slog.String("job_id", job.ID),
		slog.String("booking_id", job.Snapshot.BookingID),
		slog.String("reminder_type", reminderType),
		slog.String("error", cause.Error()),
	)

	if err := w.jobRepo.MarkFailed(ctx, job.ID, cause.Error(), w.now()); err != nil {
		slog.ErrorContext(ctx, "failed to mark job failed",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to mark job %s failed: %w", job.ID, err)
	}

	w.record(ctx, job, OutcomeFailed, "", cause.Error(), start)
	tracing.RecordDeliveryResult(span, reminderType, string(OutcomeFailed), cause)

	return &Result{JobID: job.ID, Outcome: OutcomeFailed, Reason: cause.Error()}, nil
}

func (w *Worker) record(
	ctx context.Context,
	job *domain.ScheduledJob,
	outcome Outcome,
	messageID, reason string,
	start time.Time,
) {
	reminderType := job.Event.Type.String()

	if w.metrics != nil {
		w.metrics.RecordJobDelivered(ctx, reminderType, string(outcome))
		w.metrics.RecordDeliveryDuration(ctx, reminderType, time.Since(start))
	}

	if w.recorder == nil {
		return
	}

	err := w.recorder.RecordDeliveries(ctx, []domain.DeliveryRecord{{
		JobID:        job.ID,
		BookingID:    job.Snapshot.BookingID,
		ReminderType: reminderType,
		Status:       string(outcome),
		Stage:        auditStage,
		ScheduledAt:  job.Event.ScheduledAt,
		RecordedAt:   w.now().UTC(),
		MessageID:    messageID,
		Error:        reason,
	}})
	if err != nil {
		slog.WarnContext(ctx, "failed to record delivery outcome",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()),
		)
	}
}
