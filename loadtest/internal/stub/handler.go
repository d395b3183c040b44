package stub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *BookingStorage
}

func NewHandler(storage *BookingStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/reset", h.HandleReset)
	r.POST("/seed", h.HandleSeed)
	r.GET("/api/v1/bookings/:id", h.HandleGetBooking)
	r.PUT("/api/v1/bookings/:id", h.HandlePutBooking)
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.Reset()

	slog.Info("reset data")

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids := make([]string, 0)
	for _, sb := range req.Buckets {
		startDate, err := time.Parse(time.DateOnly, sb.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date: " + sb.StartDate})
			return
		}
		endDate, err := time.Parse(time.DateOnly, sb.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date: " + sb.EndDate})
			return
		}
		if endDate.Before(startDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date is before start_date"})
			return
		}

		ids = append(ids, h.storage.AddBucket(runID, &Bucket{
			StartDate: startDate,
			EndDate:   endDate,
			Count:     sb.Count,
			Nights:    sb.Nights,
			AgentName: sb.AgentName,
		})...)
	}

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("bucket_count", len(req.Buckets)),
		slog.Int("total_booking_count", len(ids)),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":       "seeded",
		"run_id":       runID,
		"bucket_count": len(req.Buckets),
		"total_count":  len(ids),
		"booking_ids":  ids,
	})
}

// GET /api/v1/bookings/:id
func (h *Handler) HandleGetBooking(c *gin.Context) {
	id := c.Param("id")

	booking, ok := h.storage.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	slog.Debug("get booking", slog.String("booking_id", id))

	c.JSON(http.StatusOK, booking)
}

// PUT /api/v1/bookings/:id
func (h *Handler) HandlePutBooking(c *gin.Context) {
	id := c.Param("id")

	var req PutBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.storage.Put(BookingResponse{
		ID:           id,
		ClientName:   req.ClientName,
		AgentName:    req.AgentName,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	})

	c.Status(http.StatusNoContent)
}
