package repository

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrInvalidJobData  = errors.New("invalid scheduled job data")
)
