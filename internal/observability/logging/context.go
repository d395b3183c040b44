package logging

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

type jobNameKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// ValidateAndExtractRequestID returns id when it is a UUID and a fresh UUID otherwise.
func ValidateAndExtractRequestID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.NewString()
}

func WithJobName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, jobNameKey{}, name)
}

func JobNameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(jobNameKey{}).(string); ok {
		return v
	}
	return ""
}
