//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var _ TaskQueue = (*CloudTasksClient)(nil)

type CloudTasksClient struct {
	client         *cloudtasks.Client
	projectID      string
	locationID     string
	queueID        string
	targetURL      string
	invokerAccount string
	maxRetries     int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	// InvokerServiceAccount signs an OIDC token for the target when set.
	InvokerServiceAccount string
	// Endpoint overrides the API endpoint, e.g. for a local emulator.
	Endpoint   string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksClient{
		client:         client,
		projectID:      cfg.ProjectID,
		locationID:     cfg.LocationID,
		queueID:        cfg.QueueID,
		targetURL:      cfg.TargetURL,
		invokerAccount: cfg.InvokerServiceAccount,
		maxRetries:     maxRetries,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) RegisterReminder(ctx context.Context, task *ReminderTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder task: %w", err)
	}

	httpReq := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        c.targetURL,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			MessageTypeHeader: ReminderMessageType,
		},
		Body: payload,
	}
	if c.invokerAccount != "" {
		httpReq.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: c.invokerAccount,
			},
		}
	}

	cloudTask := &taskspb.Task{
		Name: fmt.Sprintf("%s/tasks/%s", c.queuePath(), TaskID(task.JobID, task.ScheduleAt)),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: httpReq,
		},
	}

	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBackoff(attempt)
			slog.DebugContext(ctx, "retrying task registration",
				slog.String("job_id", task.JobID),
				slog.String("booking_id", task.BookingID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.createTask(ctx, req, task)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, ErrTaskRejected) {
			return nil, err
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for task registration",
		slog.String("job_id", task.JobID),
		slog.String("booking_id", task.BookingID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to register task after %d retries: %w", c.maxRetries, lastErr)
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, task *ReminderTask) (*TaskResponse, error) {
	slog.DebugContext(ctx, "registering reminder to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("job_id", task.JobID),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		// The task name is derived from the job id, so AlreadyExists means an earlier
		// attempt went through.
		if status.Code(err) == codes.AlreadyExists {
			slog.InfoContext(ctx, "reminder task already registered in Cloud Tasks",
				slog.String("task_name", req.Task.Name),
				slog.String("job_id", task.JobID),
			)
			return &TaskResponse{
				Name:         req.Task.Name,
				ScheduleTime: task.ScheduleAt,
			}, nil
		}

		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("job_id", task.JobID),
			slog.String("error", err.Error()),
		)
		if isPermanent(status.Code(err)) {
			return nil, fmt.Errorf("%w: %w", ErrTaskRejected, err)
		}
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "reminder task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("job_id", task.JobID),
		slog.String("booking_id", task.BookingID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &TaskResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func isPermanent(code codes.Code) bool {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.PermissionDenied, codes.NotFound:
		return true
	default:
		return false
	}
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
