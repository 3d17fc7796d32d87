package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

// AggregateDeps carries everything an account aggregate composes. Building
// happens up front — no lazy memoization, so there is nothing to race on
// under concurrent first use.
type AggregateDeps struct {
	Hasher         ports.PasswordHasher
	Tokens         ports.TokenGenerator
	SessionTTL     time.Duration
	RoleOverrides  map[string]domain.RoleGrant
	ImageProcessor ImageProcessor
	Log            zerolog.Logger
}

// Aggregate is the stable public surface over one account: identity plus
// its composed authentication, authorization, and collaborator services.
// External callers operate only on the aggregate; the services mutate
// session state held on the account and report back.
type Aggregate struct {
	Account       *domain.Account
	Auth          *AuthenticationService
	Authz         *AuthorizationService
	Notifications *NotificationService
	Payments      *PaymentService
	Profile       *ProfileService
	Analytics     *AnalyticsService
}

// NewAggregate wires all services for one account with explicit dependency
// injection.
func NewAggregate(account *domain.Account, deps AggregateDeps) *Aggregate {
	notifications := NewNotificationService(account, deps.Log)
	return &Aggregate{
		Account:       account,
		Auth:          NewAuthenticationService(account, deps.Hasher, deps.Tokens, deps.SessionTTL, deps.Log),
		Authz:         NewAuthorizationService(account, deps.RoleOverrides),
		Notifications: notifications,
		Payments:      NewPaymentService(account, notifications, deps.Log),
		Profile:       NewProfileService(account, deps.ImageProcessor, deps.Log),
		Analytics:     NewAnalyticsService(account, deps.Log),
	}
}
