package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/api/metrics"
	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

// LoginThrottle limits repeated failed logins per identity. Backed by Redis
// in production; a throttle outage degrades open with a warning.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// EventRecorder receives analytics events emitted by the auth flow,
// typically the sharded dispatcher.
type EventRecorder interface {
	Enqueue(event ports.AnalyticsEventInput)
}

// AuthService implements registration and the session lifecycle across the
// account directory. Each call builds the account's aggregate up front and
// works through it.
type AuthService struct {
	repo      ports.AccountRepository
	deps      AggregateDeps
	jwtSecret string
	throttle  LoginThrottle
	events    EventRecorder
	log       zerolog.Logger
}

// NewAuthService wires the auth use cases. throttle and events may be nil;
// the corresponding steps are skipped.
func NewAuthService(
	repo ports.AccountRepository,
	deps AggregateDeps,
	jwtSecret string,
	throttle LoginThrottle,
	events EventRecorder,
	log zerolog.Logger,
) *AuthService {
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		repo:      repo,
		deps:      deps,
		jwtSecret: jwtSecret,
		throttle:  throttle,
		events:    events,
		log:       log,
	}
}

// Register opens a new account: hashes the credential, stores the account
// with its default role, greets it by email, and emits a registration
// analytics event.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	digest, err := s.deps.Hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	account := &domain.Account{
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		CredentialHash: digest,
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	agg := NewAggregate(created, s.deps)
	if err := agg.Notifications.SendWelcomeEmail(); err != nil {
		s.log.Warn().Err(err).Str("account_id", created.ID).Msg("welcome email failed")
	}
	s.record(created.ID, "account_registered", map[string]any{"role": created.Role})

	return created, nil
}

// Login verifies the credential, issues a fresh opaque session token
// (replacing any previous session), tracks the login, and signs a JWT
// access token for the API. Every failure that is the caller's fault maps
// to ErrInvalidCredentials so responses never reveal whether the account
// exists; the real cause goes to the log.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyAttempts(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if blocked {
			s.log.Info().Str("email", email).Msg("login blocked by throttle")
			return nil, domain.ErrInvalidCredentials
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, email, "unknown account")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	agg := NewAggregate(account, s.deps)
	if !agg.Auth.Authenticate(password) {
		s.recordFailure(ctx, email, "wrong credential")
		return nil, domain.ErrInvalidCredentials
	}

	session, err := agg.Auth.IssueToken()
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	metrics.SessionsIssuedTotal.Inc()
	agg.Auth.TrackLogin()

	if err := s.repo.SaveSession(ctx, account); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	// The tracked login and the analytics login event are two independent
	// records of the same user action.
	s.record(account.ID, "login", map[string]any{"role": account.Role})
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	accessToken, err := s.signAccessToken(account, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &ports.LoginResult{
		AccessToken:      accessToken,
		SessionToken:     session.Token,
		SessionExpiresAt: session.ExpiresAt,
		Account:          account,
	}, nil
}

// Logout clears the account's session token and expiry together.
func (s *AuthService) Logout(ctx context.Context, accountID string) error {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}
	agg := NewAggregate(account, s.deps)
	agg.Auth.Invalidate()
	if err := s.repo.SaveSession(ctx, account); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.record(account.ID, "logout", nil)
	return nil
}

// SessionValid re-evaluates the session predicate at call time.
func (s *AuthService) SessionValid(ctx context.Context, accountID string) (bool, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	agg := NewAggregate(account, s.deps)
	return agg.Auth.TokenValid(), nil
}

// signAccessToken mints the HS256 API token carrying the account identity.
// The access token expires with the session window.
func (s *AuthService) signAccessToken(account *domain.Account, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"account_id": account.ID,
		"email":      account.Email,
		"role":       account.Role,
		"exp":        expiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) record(accountID, name string, properties map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(ports.AnalyticsEventInput{
		AccountID:  accountID,
		Name:       name,
		Timestamp:  time.Now().UTC(),
		Properties: properties,
	})
}

func (s *AuthService) recordFailure(ctx context.Context, email, cause string) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.log.Info().Str("email", email).Str("cause", cause).Msg("authentication failed")
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle record failed")
		}
	}
}
