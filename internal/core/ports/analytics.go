package ports

import (
	"context"
	"time"
)

// AnalyticsEventInput is the DTO passed from the transport layer to the
// analytics pipeline.
type AnalyticsEventInput struct {
	AccountID  string
	Name       string
	Timestamp  time.Time
	Properties map[string]any
}

// EventSink consumes analytics events, typically behind the sharded
// dispatcher so per-account ordering is preserved.
type EventSink interface {
	Record(ctx context.Context, event AnalyticsEventInput) error
}
