package ports

import (
	"context"
	"time"

	"github.com/identitylab/account-system/internal/core/domain"
)

// RegisterInput carries everything needed to open a new account.
type RegisterInput struct {
	Email       string
	Password    string
	PhoneNumber string
	Role        string // empty defaults to "user"
}

// LoginResult is returned on successful authentication: the opaque session
// token the account now holds, plus a signed access token for the API.
type LoginResult struct {
	AccessToken      string
	SessionToken     string
	SessionExpiresAt time.Time
	Account          *domain.Account
}

// AuthService covers the account credential and session lifecycle for the
// transport layer.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout clears the account's session. Logging out an account with no
	// session is not an error; logout is idempotent.
	Logout(ctx context.Context, accountID string) error
	// SessionValid re-evaluates the session predicate at call time.
	SessionValid(ctx context.Context, accountID string) (bool, error)
}
