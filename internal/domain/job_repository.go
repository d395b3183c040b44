package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=job_repository.go -destination=job_repository_mock.go -package=domain

type JobRepository interface {
	SaveJob(ctx context.Context, job *ScheduledJob) error
	GetJob(ctx context.Context, jobID string) (*ScheduledJob, error)
	ListJobsByBooking(ctx context.Context, bookingID string) ([]*ScheduledJob, error)
	SetTaskName(ctx context.Context, jobID, taskName string) error
	// ClaimJob moves a due pending job (or an in-flight job whose claim is older than lease) to
	// in_flight. It returns ErrJobNotClaimable for a terminal job, ErrJobClaimed while another
	// claim is live and ErrJobNotDue before the job's fire time.
	ClaimJob(ctx context.Context, jobID string, now time.Time, lease time.Duration) (*ScheduledJob, error)
	MarkDelivered(ctx context.Context, jobID, messageID string, now time.Time) error
	MarkFailed(ctx context.Context, jobID, reason string, now time.Time) error
}
