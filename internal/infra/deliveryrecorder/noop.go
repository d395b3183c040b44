package deliveryrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DeliveryRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordDeliveries(_ context.Context, _ []domain.DeliveryRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
