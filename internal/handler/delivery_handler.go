package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
	"github.com/KasumiMercury/primind-booking-reminder/internal/service/delivery"
)

type DeliveryWorker interface {
	Deliver(ctx context.Context, jobID string) (*delivery.Result, error)
}

type DeliveryHandler struct {
	worker DeliveryWorker
}

func NewDeliveryHandler(worker DeliveryWorker) *DeliveryHandler {
	return &DeliveryHandler{
		worker: worker,
	}
}

type deliverRequest struct {
	JobID string `json:"job_id" binding:"required"`
}

// HandleDeliver is the task queue callback. Any non-2xx response makes the queue redeliver, so
// infrastructure errors answer 500 and a job still claimed by another attempt answers 409;
// finished, skipped and deferred jobs are acknowledged.
func (h *DeliveryHandler) HandleDeliver(c *gin.Context) {
	ctx := c.Request.Context()

	var req deliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "delivery request validation failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.worker.Deliver(ctx, req.JobID)
	if errors.Is(err, domain.ErrJobClaimed) {
		slog.WarnContext(ctx, "job is being delivered by another attempt, requesting redelivery",
			slog.String("job_id", req.JobID),
		)
		respondError(c, http.StatusConflict, "job_in_flight", "job is being delivered by another attempt")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "delivery attempt failed, requesting redelivery",
			slog.String("job_id", req.JobID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "delivery could not be completed")
		return
	}

	c.JSON(http.StatusOK, result)
}
