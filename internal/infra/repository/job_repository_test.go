package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
	"github.com/KasumiMercury/primind-booking-reminder/internal/testutil"
)

var baseNow = time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)

func newTestJob(t *testing.T, bookingID string, reminderType domain.ReminderType, daysBefore int) *domain.ScheduledJob {
	t.Helper()

	// Every offset of this check-in is already due at baseNow.
	checkIn, err := domain.ParseCheckInDate("05/02/2026")
	if err != nil {
		t.Fatalf("failed to parse check-in: %v", err)
	}

	snapshot := domain.BookingSnapshot{
		BookingID:    bookingID,
		ClientName:   "Amani Otieno",
		AgentName:    "Savannah Trails",
		CheckInDate:  "05/02/2026",
		CheckOutDate: "12/02/2026",
	}

	return domain.NewScheduledJob("agent@example.com", snapshot, domain.NewPlannedEvent(reminderType, checkIn, daysBefore), baseNow)
}

func TestSaveAndGetJobSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)
	job := newTestJob(t, "BK-1001", domain.ReminderSafariBooking, 100)

	if err := repo.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob() error = %v", err)
	}

	got, err := repo.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}

	if got.ID != job.ID {
		t.Errorf("ID = %q, want %q", got.ID, job.ID)
	}
	if got.Status != domain.JobStatusPending {
		t.Errorf("Status = %q, want %q", got.Status, domain.JobStatusPending)
	}
	if got.Snapshot != job.Snapshot {
		t.Errorf("Snapshot = %+v, want %+v", got.Snapshot, job.Snapshot)
	}
	if got.Event.Type != domain.ReminderSafariBooking || got.Event.DaysBeforeCheckIn != 100 {
		t.Errorf("Event = %+v", got.Event)
	}
	if !got.Event.ScheduledAt.Equal(job.Event.ScheduledAt) {
		t.Errorf("ScheduledAt = %v, want %v", got.Event.ScheduledAt, job.Event.ScheduledAt)
	}
	if !got.CreatedAt.Equal(baseNow) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, baseNow)
	}
	if !got.ClaimedAt.IsZero() {
		t.Errorf("ClaimedAt = %v, want zero", got.ClaimedAt)
	}
}

func TestGetJobNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)

	_, err := repo.GetJob(ctx, "missing")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("GetJob() error = %v, want %v", err, domain.ErrJobNotFound)
	}
}

func TestSaveJobInvalid(t *testing.T) {
	repo := NewJobRepository(nil)

	if err := repo.SaveJob(context.Background(), nil); !errors.Is(err, ErrInvalidJobData) {
		t.Errorf("SaveJob(nil) error = %v, want %v", err, ErrInvalidJobData)
	}
}

func TestListJobsByBookingSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)

	advance := newTestJob(t, "BK-2002", domain.ReminderAdvancePayment, 30)
	safari := newTestJob(t, "BK-2002", domain.ReminderSafariBooking, 100)
	voucher := newTestJob(t, "BK-2002", domain.ReminderReconfirmationVoucher, 45)
	other := newTestJob(t, "BK-3003", domain.ReminderSafariBooking, 100)

	for _, job := range []*domain.ScheduledJob{advance, safari, voucher, other} {
		if err := repo.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob() error = %v", err)
		}
	}

	jobs, err := repo.ListJobsByBooking(ctx, "BK-2002")
	if err != nil {
		t.Fatalf("ListJobsByBooking() error = %v", err)
	}

	want := []string{safari.ID, voucher.ID, advance.ID}
	if len(jobs) != len(want) {
		t.Fatalf("expected %d jobs, got %d", len(want), len(jobs))
	}
	for i, id := range want {
		if jobs[i].ID != id {
			t.Errorf("jobs[%d].ID = %q, want %q", i, jobs[i].ID, id)
		}
	}

	empty, err := repo.ListJobsByBooking(ctx, "BK-none")
	if err != nil {
		t.Fatalf("ListJobsByBooking() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestListJobsByBookingSkipsMissingRecords(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)
	kept := newTestJob(t, "BK-4004", domain.ReminderSafariBooking, 100)
	gone := newTestJob(t, "BK-4004", domain.ReminderAdvancePayment, 30)

	for _, job := range []*domain.ScheduledJob{kept, gone} {
		if err := repo.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob() error = %v", err)
		}
	}
	if err := client.Del(ctx, "reminder:job:"+gone.ID).Err(); err != nil {
		t.Fatalf("failed to delete job: %v", err)
	}

	jobs, err := repo.ListJobsByBooking(ctx, "BK-4004")
	if err != nil {
		t.Fatalf("ListJobsByBooking() error = %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != kept.ID {
		t.Errorf("expected only %q, got %v", kept.ID, jobs)
	}
}

func TestSetTaskName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)
	job := newTestJob(t, "BK-5005", domain.ReminderSafariBooking, 100)
	if err := repo.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob() error = %v", err)
	}

	if err := repo.SetTaskName(ctx, job.ID, "reminder-"+job.ID); err != nil {
		t.Fatalf("SetTaskName() error = %v", err)
	}

	got, err := repo.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if got.TaskName != "reminder-"+job.ID {
		t.Errorf("TaskName = %q, want %q", got.TaskName, "reminder-"+job.ID)
	}

	if err := repo.SetTaskName(ctx, "missing", "reminder-missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("SetTaskName() error = %v, want %v", err, domain.ErrJobNotFound)
	}
}

func TestClaimJob(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)
	lease := 10 * time.Minute

	t.Run("pending job is claimed once", func(t *testing.T) {
		job := newTestJob(t, "BK-6006", domain.ReminderSafariBooking, 100)
		if err := repo.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob() error = %v", err)
		}

		claimed, err := repo.ClaimJob(ctx, job.ID, baseNow, lease)
		if err != nil {
			t.Fatalf("ClaimJob() error = %v", err)
		}
		if claimed.Status != domain.JobStatusInFlight {
			t.Errorf("Status = %q, want %q", claimed.Status, domain.JobStatusInFlight)
		}
		if !claimed.ClaimedAt.Equal(baseNow) {
			t.Errorf("ClaimedAt = %v, want %v", claimed.ClaimedAt, baseNow)
		}

		_, err = repo.ClaimJob(ctx, job.ID, baseNow.Add(time.Minute), lease)
		if !errors.Is(err, domain.ErrJobClaimed) {
			t.Errorf("second ClaimJob() error = %v, want %v", err, domain.ErrJobClaimed)
		}
	})

	t.Run("job before its fire time is not due", func(t *testing.T) {
		job := newTestJob(t, "BK-6009", domain.ReminderSafariBooking, 100)
		job.Event.ScheduledAt = baseNow.Add(48 * time.Hour)
		if err := repo.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob() error = %v", err)
		}

		_, err := repo.ClaimJob(ctx, job.ID, baseNow, lease)
		if !errors.Is(err, domain.ErrJobNotDue) {
			t.Fatalf("ClaimJob() error = %v, want %v", err, domain.ErrJobNotDue)
		}

		got, err := repo.GetJob(ctx, job.ID)
		if err != nil {
			t.Fatalf("GetJob() error = %v", err)
		}
		if got.Status != domain.JobStatusPending {
			t.Errorf("Status = %q, want %q", got.Status, domain.JobStatusPending)
		}

		justBefore := job.Event.ScheduledAt.Add(-domain.EarlyDeliveryTolerance / 2)
		if _, err := repo.ClaimJob(ctx, job.ID, justBefore, lease); err != nil {
			t.Errorf("ClaimJob() within tolerance error = %v", err)
		}
	})

	t.Run("expired claim is taken over", func(t *testing.T) {
		job := newTestJob(t, "BK-6007", domain.ReminderSafariBooking, 100)
		if err := repo.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob() error = %v", err)
		}

		if _, err := repo.ClaimJob(ctx, job.ID, baseNow, lease); err != nil {
			t.Fatalf("ClaimJob() error = %v", err)
		}

		later := baseNow.Add(lease)
		claimed, err := repo.ClaimJob(ctx, job.ID, later, lease)
		if err != nil {
			t.Fatalf("ClaimJob() after lease error = %v", err)
		}
		if !claimed.ClaimedAt.Equal(later) {
			t.Errorf("ClaimedAt = %v, want %v", claimed.ClaimedAt, later)
		}
	})

	t.Run("terminal job is not claimable", func(t *testing.T) {
		job := newTestJob(t, "BK-6008", domain.ReminderSafariBooking, 100)
		if err := repo.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob() error = %v", err)
		}
		if err := repo.MarkFailed(ctx, job.ID, "task queue unavailable", baseNow); err != nil {
			t.Fatalf("MarkFailed() error = %v", err)
		}

		_, err := repo.ClaimJob(ctx, job.ID, baseNow.Add(time.Hour), lease)
		if !errors.Is(err, domain.ErrJobNotClaimable) {
			t.Errorf("ClaimJob() error = %v, want %v", err, domain.ErrJobNotClaimable)
		}
	})

	t.Run("missing job", func(t *testing.T) {
		_, err := repo.ClaimJob(ctx, "missing", baseNow, lease)
		if !errors.Is(err, domain.ErrJobNotFound) {
			t.Errorf("ClaimJob() error = %v, want %v", err, domain.ErrJobNotFound)
		}
	})
}

func TestMarkDelivered(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)
	job := newTestJob(t, "BK-7007", domain.ReminderAdvancePayment, 30)
	if err := repo.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob() error = %v", err)
	}

	if err := repo.MarkDelivered(ctx, job.ID, "msg-1", baseNow); !errors.Is(err, domain.ErrJobNotClaimable) {
		t.Fatalf("MarkDelivered() on pending error = %v, want %v", err, domain.ErrJobNotClaimable)
	}

	if _, err := repo.ClaimJob(ctx, job.ID, baseNow, time.Minute); err != nil {
		t.Fatalf("ClaimJob() error = %v", err)
	}

	finishedAt := baseNow.Add(2 * time.Second)
	if err := repo.MarkDelivered(ctx, job.ID, "msg-1", finishedAt); err != nil {
		t.Fatalf("MarkDelivered() error = %v", err)
	}

	got, err := repo.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if got.Status != domain.JobStatusDelivered {
		t.Errorf("Status = %q, want %q", got.Status, domain.JobStatusDelivered)
	}
	if got.MessageID != "msg-1" {
		t.Errorf("MessageID = %q, want %q", got.MessageID, "msg-1")
	}
	if !got.FinishedAt.Equal(finishedAt) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, finishedAt)
	}

	assertNoExpiry(ctx, t, client, job.ID)

	if err := repo.MarkFailed(ctx, job.ID, "late failure", finishedAt); !errors.Is(err, domain.ErrJobNotClaimable) {
		t.Errorf("MarkFailed() on delivered error = %v, want %v", err, domain.ErrJobNotClaimable)
	}
}

func TestMarkFailed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewJobRepository(client)
	job := newTestJob(t, "BK-8008", domain.ReminderReconfirmationVoucher, 45)
	if err := repo.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob() error = %v", err)
	}

	if err := repo.MarkFailed(ctx, job.ID, "smtp: mailbox unavailable", baseNow); err != nil {
		t.Fatalf("MarkFailed() error = %v", err)
	}

	got, err := repo.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if got.Status != domain.JobStatusFailed {
		t.Errorf("Status = %q, want %q", got.Status, domain.JobStatusFailed)
	}
	if got.Error != "smtp: mailbox unavailable" {
		t.Errorf("Error = %q", got.Error)
	}

	assertNoExpiry(ctx, t, client, job.ID)

	if err := repo.MarkFailed(ctx, "missing", "x", baseNow); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("MarkFailed() error = %v, want %v", err, domain.ErrJobNotFound)
	}
}

// Terminal jobs stay in the store for audit.
func assertNoExpiry(ctx context.Context, t *testing.T, client *redis.Client, jobID string) {
	t.Helper()

	ttl, err := client.TTL(ctx, "reminder:job:"+jobID).Result()
	if err != nil {
		t.Fatalf("TTL() error = %v", err)
	}
	if ttl != -1 {
		t.Errorf("TTL = %v, want -1 (no expiry)", ttl)
	}
}
