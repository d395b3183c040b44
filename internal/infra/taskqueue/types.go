package taskqueue

import "time"

const (
	// MessageTypeHeader carries the task kind so the receiving middleware can name the job.
	MessageTypeHeader   = "message_type"
	ReminderMessageType = "booking.reminder.deliver"
)

// ReminderTask asks the substrate to call the delivery endpoint for one job at ScheduleAt.
type ReminderTask struct {
	JobID        string    `json:"job_id"`
	BookingID    string    `json:"booking_id"`
	ReminderType string    `json:"reminder_type"`
	ScheduleAt   time.Time `json:"-"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	URL     string            `json:"url,omitempty"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
