package ports

import (
	"context"

	"github.com/identitylab/account-system/internal/core/domain"
)

// AccountRepository is the external account directory. It assigns IDs and
// enforces email uniqueness; the core never does either itself.
type AccountRepository interface {
	// Create stores a new account and returns it with its assigned ID.
	// Returns domain.ErrAccountExists when the email is already taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// SaveSession persists the account's current session fields
	// (token, expiry, last login, login count).
	SaveSession(ctx context.Context, account *domain.Account) error
	// SaveProfile persists the account's mutable profile fields
	// (phone number, avatar URL).
	SaveProfile(ctx context.Context, account *domain.Account) error
}
