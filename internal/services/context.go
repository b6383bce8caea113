package services

import (
	"context"
	"fmt"
)

type contextKey string

const (
	clipKey      contextKey = "clip"
	trackKey     contextKey = "track"
	requestIDKey contextKey = "request_id"
)

// WithClip annotates context with the timeline clip name being processed.
func WithClip(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, clipKey, name)
}

// ClipFromContext returns the clip name if present.
func ClipFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(clipKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithTrack annotates context with the track selector (type plus 1-based index).
func WithTrack(ctx context.Context, trackType string, index int) context.Context {
	if trackType == "" {
		return ctx
	}
	return context.WithValue(ctx, trackKey, fmt.Sprintf("%s:%d", trackType, index))
}

// TrackFromContext returns the track selector if present.
func TrackFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(trackKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
