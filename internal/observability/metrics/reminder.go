package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	jobsScheduled    metric.Int64Counter
	jobsDelivered    metric.Int64Counter
	plansEmpty       metric.Int64Counter
	commitDuration   metric.Float64Histogram
	deliveryDuration metric.Float64Histogram
	scheduleLead     metric.Float64Histogram
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	jobsScheduled, err := meter.Int64Counter(
		"reminder_jobs_scheduled_total",
		metric.WithDescription("Reminder jobs handed to the task queue"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, err
	}

	jobsDelivered, err := meter.Int64Counter(
		"reminder_jobs_delivered_total",
		metric.WithDescription("Reminder delivery attempts by outcome"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, err
	}

	plansEmpty, err := meter.Int64Counter(
		"reminder_plans_empty_total",
		metric.WithDescription("Commits that produced no reminders because check-in had passed"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return nil, err
	}

	commitDuration, err := meter.Float64Histogram(
		"reminder_commit_duration_seconds",
		metric.WithDescription("Time spent planning and scheduling a booking"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	deliveryDuration, err := meter.Float64Histogram(
		"reminder_delivery_duration_seconds",
		metric.WithDescription("Time spent rendering and sending one reminder"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	scheduleLead, err := meter.Float64Histogram(
		"reminder_schedule_lead_days",
		metric.WithDescription("Days between scheduling a reminder and its fire time"),
		metric.WithUnit("d"),
		metric.WithExplicitBucketBoundaries(
			0, 1, 7, 15, 30, 45, 60, 100, 200, 365,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		jobsScheduled:    jobsScheduled,
		jobsDelivered:    jobsDelivered,
		plansEmpty:       plansEmpty,
		commitDuration:   commitDuration,
		deliveryDuration: deliveryDuration,
		scheduleLead:     scheduleLead,
	}, nil
}

func (m *ReminderMetrics) RecordJobScheduled(ctx context.Context, reminderType, outcome string, lead time.Duration) {
	m.jobsScheduled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reminder_type", reminderType),
		attribute.String("outcome", outcome),
	))
	if lead < 0 {
		lead = 0
	}
	m.scheduleLead.Record(ctx, lead.Hours()/24, metric.WithAttributes(
		attribute.String("reminder_type", reminderType),
	))
}

func (m *ReminderMetrics) RecordJobDelivered(ctx context.Context, reminderType, outcome string) {
	m.jobsDelivered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reminder_type", reminderType),
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordEmptyPlan(ctx context.Context) {
	m.plansEmpty.Add(ctx, 1)
}

func (m *ReminderMetrics) RecordCommitDuration(ctx context.Context, duration time.Duration) {
	m.commitDuration.Record(ctx, duration.Seconds())
}

func (m *ReminderMetrics) RecordDeliveryDuration(ctx context.Context, reminderType string, duration time.Duration) {
	m.deliveryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("reminder_type", reminderType),
	))
}
