package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
	"github.com/KasumiMercury/primind-booking-reminder/internal/infra/bookingstore"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/reminder"
)

type ReminderService interface {
	Preview(checkInText string) (*reminder.Preview, error)
	CommitBooking(ctx context.Context, bookingID, recipient string) (*reminder.CommitSummary, error)
	Jobs(ctx context.Context, bookingID string) ([]*domain.ScheduledJob, error)
}

type ReminderHandler struct {
	service ReminderService
}

func NewReminderHandler(service ReminderService) *ReminderHandler {
	return &ReminderHandler{
		service: service,
	}
}

type commitRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
}

type jobView struct {
	JobID             string              `json:"job_id"`
	BookingID         string              `json:"booking_id"`
	RecipientEmail    string              `json:"recipient_email"`
	ReminderType      domain.ReminderType `json:"reminder_type"`
	DaysBeforeCheckIn int                 `json:"days_before_check_in"`
	ScheduledAt       time.Time           `json:"scheduled_at"`
	Status            domain.JobStatus    `json:"status"`
	TaskName          string              `json:"task_name,omitempty"`
	MessageID         string              `json:"message_id,omitempty"`
	Error             string              `json:"error,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	FinishedAt        *time.Time          `json:"finished_at,omitempty"`
}

type jobsResponse struct {
	BookingID string    `json:"booking_id"`
	Count     int       `json:"count"`
	Jobs      []jobView `json:"jobs"`
}

func (h *ReminderHandler) HandlePreview(c *gin.Context) {
	checkIn := c.Query("check_in")
	if checkIn == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "check_in query parameter is required (DD/MM/YYYY)")
		return
	}

	preview, err := h.service.Preview(checkIn)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedDate) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(c.Request.Context(), "failed to preview schedule",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to preview schedule")
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (h *ReminderHandler) HandleCommit(c *gin.Context) {
	ctx := c.Request.Context()
	bookingID := c.Param("booking_id")

	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request validation failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	summary, err := h.service.CommitBooking(ctx, bookingID, req.RecipientEmail)
	if err != nil {
		switch {
		case errors.Is(err, bookingstore.ErrBookingNotFound):
			respondError(c, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, domain.ErrMalformedDate), errors.Is(err, reminder.ErrRecipientRequired):
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			slog.ErrorContext(ctx, "failed to commit booking reminders",
				slog.String("booking_id", bookingID),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "processing_error", "failed to schedule reminders")
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ReminderHandler) HandleListJobs(c *gin.Context) {
	ctx := c.Request.Context()
	bookingID := c.Param("booking_id")

	jobs, err := h.service.Jobs(ctx, bookingID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list booking reminders",
			slog.String("booking_id", bookingID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to list reminders")
		return
	}

	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, newJobView(job))
	}

	c.JSON(http.StatusOK, jobsResponse{
		BookingID: bookingID,
		Count:     len(views),
		Jobs:      views,
	})
}

func newJobView(job *domain.ScheduledJob) jobView {
	view := jobView{
		JobID:             job.ID,
		BookingID:         job.Snapshot.BookingID,
		RecipientEmail:    job.RecipientEmail,
		ReminderType:      job.Event.Type,
		DaysBeforeCheckIn: job.Event.DaysBeforeCheckIn,
		ScheduledAt:       job.Event.ScheduledAt,
		Status:            job.Status,
		TaskName:          job.TaskName,
		MessageID:         job.MessageID,
		Error:             job.Error,
		CreatedAt:         job.CreatedAt,
	}
	if !job.FinishedAt.IsZero() {
		finishedAt := job.FinishedAt
		view.FinishedAt = &finishedAt
	}
	return view
}
