package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

// DefaultSessionTTL is how long an issued session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// AuthenticationService owns one account's credential verification and
// session-token lifecycle. All state lives on the account; the service is
// pure plumbing over the hasher and token generator.
type AuthenticationService struct {
	account *domain.Account
	hasher  ports.PasswordHasher
	tokens  ports.TokenGenerator
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

func NewAuthenticationService(
	account *domain.Account,
	hasher ports.PasswordHasher,
	tokens ports.TokenGenerator,
	ttl time.Duration,
	log zerolog.Logger,
) *AuthenticationService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthenticationService{
		account: account,
		hasher:  hasher,
		tokens:  tokens,
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *AuthenticationService) WithClock(now func() time.Time) *AuthenticationService {
	s.now = now
	return s
}

// Authenticate checks a plaintext credential against the stored digest.
// No side effects: authenticating does not create a session.
func (s *AuthenticationService) Authenticate(password string) bool {
	return s.hasher.Verify(password, s.account.CredentialHash)
}

// IssueToken generates a fresh session token valid for the configured TTL
// and installs it on the account, replacing any existing session. The old
// token stops being the account's session token the moment this returns.
func (s *AuthenticationService) IssueToken() (domain.Session, error) {
	token, err := s.tokens.Generate()
	if err != nil {
		return domain.Session{}, err
	}
	expiresAt := s.now().Add(s.ttl)
	s.account.SetSession(token, expiresAt)
	s.log.Debug().
		Str("account_id", s.account.ID).
		Time("expires_at", expiresAt).
		Msg("session token issued")
	return s.account.Session(), nil
}

// TokenValid reports whether the account holds an unexpired session token.
// Evaluated against the clock on every call; expiry is never cached.
func (s *AuthenticationService) TokenValid() bool {
	return s.account.Session().Active(s.now())
}

// TrackLogin records one login event: last-login timestamp plus a counter
// increment. Calling twice records two logins on purpose.
func (s *AuthenticationService) TrackLogin() {
	count := s.account.RecordLogin(s.now())
	s.log.Info().
		Str("account_id", s.account.ID).
		Int("login_count", count).
		Msg("login tracked")
}

// Invalidate clears the session token and expiry as one atomic pair.
func (s *AuthenticationService) Invalidate() {
	s.account.ClearSession()
	s.log.Debug().Str("account_id", s.account.ID).Msg("session invalidated")
}
