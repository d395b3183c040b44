package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/bookingstore"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-booking-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/plan"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/scheduler"
)

type Service struct {
	planner   *plan.Planner
	scheduler *scheduler.Scheduler
	bookings  bookingstore.Repository
	jobRepo   domain.JobRepository
	metrics   *metrics.ReminderMetrics
	now       func() time.Time
}

func NewService(
	planner *plan.Planner,
	sched *scheduler.Scheduler,
	bookings bookingstore.Repository,
	jobRepo domain.JobRepository,
	reminderMetrics *metrics.ReminderMetrics,
) *Service {
	return &Service{
		planner:   planner,
		scheduler: sched,
		bookings:  bookings,
		jobRepo:   jobRepo,
		metrics:   reminderMetrics,
		now:       time.Now,
	}
}

// Preview runs the planner without scheduling anything.
func (s *Service) Preview(checkInText string) (*Preview, error) {
	checkIn, err := domain.ParseCheckInDate(checkInText)
	if err != nil {
		return nil, err
	}

	now := s.now()
	events := s.planner.Plan(checkIn, now)

	preview := &Preview{
		CheckInDate:      checkIn.Format(),
		DaysUntilCheckIn: domain.DaysBetween(checkIn, now),
		Events:           make([]PreviewEvent, 0, len(events)),
	}
	for _, event := range events {
		preview.Events = append(preview.Events, PreviewEvent{
			PlannedEvent: event,
			IsPastDue:    event.IsPastDue(now),
		})
	}
	if len(events) == 0 {
		preview.Message = MessageTooLate
	}

	return preview, nil
}

// Commit plans the booking's reminders from its snapshot and schedules them. An empty plan is
// a successful zero summary.
func (s *Service) Commit(ctx context.Context, snapshot domain.BookingSnapshot, recipient string) (*CommitSummary, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, ErrRecipientRequired
	}

	ctx, span := tracing.StartCommitSpan(ctx, snapshot.BookingID, snapshot.CheckInDate)
	defer span.End()

	start := time.Now()

	checkIn, err := domain.ParseCheckInDate(snapshot.CheckInDate)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	events := s.planner.Plan(checkIn, s.now())

	summary := &CommitSummary{
		BookingID: snapshot.BookingID,
		Jobs:      []scheduler.JobHandle{},
	}

	if len(events) == 0 {
		slog.InfoContext(ctx, "check-in is too close, no reminders scheduled",
			slog.String("booking_id", snapshot.BookingID),
			slog.String("check_in_date", checkIn.Format()),
		)
		if s.metrics != nil {
			s.metrics.RecordEmptyPlan(ctx)
		}
		summary.Message = MessageTooLate
		tracing.RecordCommitResult(span, 0, 0, 0, nil)
		return summary, nil
	}

	summary.Jobs = s.scheduler.Schedule(ctx, events, recipient, snapshot)
	summary.TotalEmails = len(summary.Jobs)
	for _, handle := range summary.Jobs {
		if handle.Failed() {
			summary.FailedCount++
		} else {
			summary.SuccessCount++
		}
	}

	summary.Message = MessageScheduled
	if summary.FailedCount > 0 {
		summary.Message = MessagePartial
	}

	slog.InfoContext(ctx, "booking reminders committed",
		slog.String("booking_id", snapshot.BookingID),
		slog.Int("total_emails", summary.TotalEmails),
		slog.Int("success_count", summary.SuccessCount),
		slog.Int("failed_count", summary.FailedCount),
	)

	if s.metrics != nil {
		s.metrics.RecordCommitDuration(ctx, time.Since(start))
	}
	tracing.RecordCommitResult(span, summary.TotalEmails, summary.SuccessCount, summary.FailedCount, nil)

	return summary, nil
}

// CommitBooking snapshots the stored booking and commits it.
func (s *Service) CommitBooking(ctx context.Context, bookingID, recipient string) (*CommitSummary, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}

	return s.Commit(ctx, booking.Snapshot(), recipient)
}

func (s *Service) Jobs(ctx context.Context, bookingID string) ([]*domain.ScheduledJob, error) {
	return s.jobRepo.ListJobsByBooking(ctx, bookingID)
}
