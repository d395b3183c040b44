package config

import "errors"

var (
	ErrRedisAddrMissing        = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB          = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidRedisDialTimeout = errors.New("REDIS_DIAL_TIMEOUT must be a positive duration")
	ErrInvalidMailProvider     = errors.New("MAIL_PROVIDER must be one of smtp, ses")
	ErrInvalidMailSendTimeout  = errors.New("MAIL_SEND_TIMEOUT must be a positive duration")
	ErrInvalidSMTPPort         = errors.New("SMTP_PORT must be a positive integer")
	ErrInvalidClaimLease       = errors.New("DELIVERY_CLAIM_LEASE must be a positive duration")
	ErrBookingStoreURLMissing  = errors.New("BOOKING_STORE_URL environment variable is required")
)
