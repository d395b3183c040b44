package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
)

const (
	jobKeyPrefix     = "reminder:job:"
	bookingKeyPrefix = "reminder:booking:"

	fieldData        = "data"
	fieldStatus      = "status"
	fieldScheduledAt = "scheduled_at"
	fieldTaskName    = "task_name"
	fieldMessageID   = "message_id"
	fieldError       = "error"
	fieldUpdatedAt   = "updated_at"
	fieldClaimedAt   = "claimed_at"
	fieldFinishedAt  = "finished_at"
)

// Claim results beyond the shared -1 (missing key), 0 (refused) and 1 (done).
const (
	claimHeld   = 2
	claimNotDue = 3
)

// Scripts return -1 when the job key is missing, 0 when the transition is refused and 1 on success.
// Job records never expire.
var (
	setTaskNameScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return -1
end
redis.call('HSET', KEYS[1], 'task_name', ARGV[1], 'updated_at', ARGV[2])
return 1
`)

	claimScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
  return -1
end
local now = tonumber(ARGV[1])
if status == 'in_flight' then
  local claimed = tonumber(redis.call('HGET', KEYS[1], 'claimed_at') or '0')
  if claimed + tonumber(ARGV[2]) > now then
    return 2
  end
elseif status ~= 'pending' then
  return 0
end
local due = tonumber(redis.call('HGET', KEYS[1], 'scheduled_at') or '0')
if due > now + tonumber(ARGV[3]) then
  return 3
end
redis.call('HSET', KEYS[1], 'status', 'in_flight', 'claimed_at', ARGV[1], 'updated_at', ARGV[1])
return 1
`)

	finishScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
  return -1
end
if status == 'delivered' or status == 'failed' then
  return 0
end
if ARGV[2] ~= '' and status ~= ARGV[2] then
  return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[1], ARGV[4], ARGV[5], 'finished_at', ARGV[3], 'updated_at', ARGV[3])
return 1
`)
)

// jobRecord holds the fields fixed at schedule time. Mutable state lives in
// sibling hash fields so scripts can update it without decoding JSON.
type jobRecord struct {
	ID             string                 `json:"id"`
	RecipientEmail string                 `json:"recipient_email"`
	Snapshot       domain.BookingSnapshot `json:"snapshot"`
	Event          domain.PlannedEvent    `json:"event"`
	CreatedAt      time.Time              `json:"created_at"`
}

type jobRepository struct {
	client *redis.Client
}

func NewJobRepository(client *redis.Client) domain.JobRepository {
	return &jobRepository{
		client: client,
	}
}

func jobKey(jobID string) string {
	return jobKeyPrefix + jobID
}

func bookingKey(bookingID string) string {
	return bookingKeyPrefix + bookingID
}

func (r *jobRepository) SaveJob(ctx context.Context, job *domain.ScheduledJob) error {
	if job == nil || job.ID == "" {
		return ErrInvalidJobData
	}

	data, err := json.Marshal(jobRecord{
		ID:             job.ID,
		RecipientEmail: job.RecipientEmail,
		Snapshot:       job.Snapshot,
		Event:          job.Event,
		CreatedAt:      job.CreatedAt,
	})
	if err != nil {
		return ErrInvalidJobData
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, jobKey(job.ID),
		fieldData, data,
		fieldStatus, job.Status.String(),
		fieldScheduledAt, unixMilli(job.Event.ScheduledAt),
		fieldTaskName, job.TaskName,
		fieldMessageID, job.MessageID,
		fieldError, job.Error,
		fieldUpdatedAt, unixMilli(job.UpdatedAt),
		fieldClaimedAt, unixMilli(job.ClaimedAt),
		fieldFinishedAt, unixMilli(job.FinishedAt),
	)
	pipe.SAdd(ctx, bookingKey(job.Snapshot.BookingID), job.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *jobRepository) GetJob(ctx context.Context, jobID string) (*domain.ScheduledJob, error) {
	fields, err := r.client.HGetAll(ctx, jobKey(jobID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, domain.ErrJobNotFound
	}

	return decodeJob(fields)
}

// ListJobsByBooking returns the booking's jobs ordered by scheduled time. Index entries without
// a job record are skipped.
func (r *jobRepository) ListJobsByBooking(ctx context.Context, bookingID string) ([]*domain.ScheduledJob, error) {
	ids, err := r.client.SMembers(ctx, bookingKey(bookingID)).Result()
	if err != nil {
		return nil, err
	}

	jobs := make([]*domain.ScheduledJob, 0, len(ids))
	if len(ids) == 0 {
		return jobs, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.HGetAll(ctx, jobKey(id)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		job, err := decodeJob(fields)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		if !jobs[i].Event.ScheduledAt.Equal(jobs[j].Event.ScheduledAt) {
			return jobs[i].Event.ScheduledAt.Before(jobs[j].Event.ScheduledAt)
		}
		return jobs[i].ID < jobs[j].ID
	})

	return jobs, nil
}

func (r *jobRepository) SetTaskName(ctx context.Context, jobID, taskName string) error {
	res, err := setTaskNameScript.Run(ctx, r.client, []string{jobKey(jobID)},
		taskName, unixMilli(time.Now()),
	).Int()
	if err != nil {
		return err
	}
	if res < 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) ClaimJob(ctx context.Context, jobID string, now time.Time, lease time.Duration) (*domain.ScheduledJob, error) {
	res, err := claimScript.Run(ctx, r.client, []string{jobKey(jobID)},
		unixMilli(now), lease.Milliseconds(), domain.EarlyDeliveryTolerance.Milliseconds(),
	).Int()
	if err != nil {
		return nil, err
	}

	switch res {
	case -1:
		return nil, domain.ErrJobNotFound
	case 0:
		return nil, domain.ErrJobNotClaimable
	case claimHeld:
		return nil, domain.ErrJobClaimed
	case claimNotDue:
		return nil, domain.ErrJobNotDue
	}

	return r.GetJob(ctx, jobID)
}

// MarkDelivered finishes a claimed job.
func (r *jobRepository) MarkDelivered(ctx context.Context, jobID, messageID string, now time.Time) error {
	return r.finish(ctx, jobID, domain.JobStatusDelivered, domain.JobStatusInFlight, fieldMessageID, messageID, now)
}

// MarkFailed finishes any non-terminal job.
func (r *jobRepository) MarkFailed(ctx context.Context, jobID, reason string, now time.Time) error {
	return r.finish(ctx, jobID, domain.JobStatusFailed, "", fieldError, reason, now)
}

func (r *jobRepository) finish(
	ctx context.Context,
	jobID string,
	target, required domain.JobStatus,
	field, value string,
	now time.Time,
) error {
	res, err := finishScript.Run(ctx, r.client, []string{jobKey(jobID)},
		target.String(),
		required.String(),
		unixMilli(now),
		field,
		value,
	).Int()
	if err != nil {
		return err
	}

	switch res {
	case -1:
		return domain.ErrJobNotFound
	case 0:
		return domain.ErrJobNotClaimable
	}
	return nil
}

func decodeJob(fields map[string]string) (*domain.ScheduledJob, error) {
	var record jobRecord
	if err := json.Unmarshal([]byte(fields[fieldData]), &record); err != nil {
		return nil, ErrInvalidJobData
	}

	return &domain.ScheduledJob{
		ID:             record.ID,
		RecipientEmail: record.RecipientEmail,
		Snapshot:       record.Snapshot,
		Event:          record.Event,
		Status:         domain.JobStatus(fields[fieldStatus]),
		TaskName:       fields[fieldTaskName],
		MessageID:      fields[fieldMessageID],
		Error:          fields[fieldError],
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      fromUnixMilli(fields[fieldUpdatedAt]),
		ClaimedAt:      fromUnixMilli(fields[fieldClaimedAt]),
		FinishedAt:     fromUnixMilli(fields[fieldFinishedAt]),
	}, nil
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMilli(raw string) time.Time {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
