package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-booking-reminder/internal/service"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartCommitSpan(ctx context.Context, bookingID, checkIn string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.commit",
		trace.WithAttributes(
			attribute.String("booking.id", bookingID),
			attribute.String("booking.check_in", checkIn),
		),
	)
}

func StartScheduleJobSpan(ctx context.Context, jobID, reminderType string, scheduledAt time.Time) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.schedule_job",
		trace.WithAttributes(
			attribute.String("job.id", jobID),
			attribute.String("reminder.type", reminderType),
			attribute.String("job.scheduled_at", scheduledAt.Format(time.RFC3339)),
		),
	)
}

func StartDeliverySpan(ctx context.Context, jobID string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.deliver",
		trace.WithAttributes(
			attribute.String("job.id", jobID),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordCommitResult(span trace.Span, total, success, failed int, err error) {
	span.SetAttributes(
		attribute.Int("commit.total_emails", total),
		attribute.Int("commit.success_count", success),
		attribute.Int("commit.failed_count", failed),
	)
	recordStatus(span, err)
}

func RecordDeliveryResult(span trace.Span, reminderType, outcome string, err error) {
	span.SetAttributes(
		attribute.String("reminder.type", reminderType),
		attribute.String("delivery.outcome", outcome),
	)
	recordStatus(span, err)
}

func RecordError(span trace.Span, err error) {
	recordStatus(span, err)
}

func recordStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
