package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/ports"
)

// AnalyticsRecorder implements ports.EventSink: it resolves the account an
// event belongs to and records it through the account's analytics service.
type AnalyticsRecorder struct {
	repo ports.AccountRepository
	deps AggregateDeps
	log  zerolog.Logger
}

func NewAnalyticsRecorder(repo ports.AccountRepository, deps AggregateDeps, log zerolog.Logger) *AnalyticsRecorder {
	return &AnalyticsRecorder{repo: repo, deps: deps, log: log}
}

func (r *AnalyticsRecorder) Record(ctx context.Context, event ports.AnalyticsEventInput) error {
	account, err := r.repo.FindByID(ctx, event.AccountID)
	if err != nil {
		return fmt.Errorf("record event %q: %w", event.Name, err)
	}
	NewAnalyticsService(account, r.log).TrackEvent(event.Name, event.Properties)
	return nil
}
