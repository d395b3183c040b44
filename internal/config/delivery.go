package config

import (
	"os"
	"time"
)

const (
	deliveryClaimLeaseEnv = "DELIVERY_CLAIM_LEASE"

	defaultDeliveryClaimLease = 10 * time.Minute
)

type DeliveryConfig struct {
	// ClaimLease bounds how long an in-flight job stays claimed before another
	// delivery attempt may take it over.
	ClaimLease time.Duration
}

func LoadDeliveryConfig() (*DeliveryConfig, error) {
	lease := defaultDeliveryClaimLease
	if v := os.Getenv(deliveryClaimLeaseEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidClaimLease
		}
		lease = parsed
	}

	return &DeliveryConfig{
		ClaimLease: lease,
	}, nil
}
