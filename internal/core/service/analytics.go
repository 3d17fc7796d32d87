package service

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

// loginScoreWeight converts the login count into the activity score.
const loginScoreWeight = 0.5

// AnalyticsService produces the basic usage view over one account and
// records named events. It reads session counters through snapshots, so it
// never observes a torn login update.
type AnalyticsService struct {
	account *domain.Account
	log     zerolog.Logger
}

func NewAnalyticsService(account *domain.Account, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{account: account, log: log}
}

// Report summarizes the account's tracked activity.
func (s *AnalyticsService) Report() *ports.ActivityReport {
	session := s.account.Session()
	return &ports.ActivityReport{
		TotalLogins:   session.LoginCount,
		LastLogin:     session.LastLoginAt,
		ActivityScore: activityScore(session.LoginCount),
		AccountID:     s.account.ID,
		CreatedAt:     s.account.CreatedAt,
	}
}

// TrackEvent records one named event with arbitrary properties.
func (s *AnalyticsService) TrackEvent(name string, properties map[string]any) {
	s.log.Info().
		Str("account_id", s.account.ID).
		Str("event", name).
		Interface("properties", properties).
		Msg("analytics event")
}

// activityScore is login count weighted and rounded to two decimals.
func activityScore(logins int) float64 {
	return math.Round(float64(logins)*loginScoreWeight*100) / 100
}
