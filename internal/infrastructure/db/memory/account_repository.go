package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/identitylab/account-system/internal/core/domain"
)

// AccountRepository is the in-memory account directory: thread-safe,
// process-lifetime storage. Accounts are held by pointer, so session
// mutations made through the aggregate are immediately visible; SaveSession
// is a no-op kept for interface symmetry with durable adapters.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byEmail map[string]*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]*domain.Account),
	}
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	if account.ID == "" {
		account.ID = newID()
	}
	r.byID[account.ID] = account
	r.byEmail[account.Email] = account
	return account, nil
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) SaveSession(_ context.Context, account *domain.Account) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SaveProfile is a no-op existence check like SaveSession: profile writes on
// the shared pointer are already visible to every reader.
func (r *AccountRepository) SaveProfile(_ context.Context, account *domain.Account) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

// newID returns a 24-hex-char identifier.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "000000000000000000000000"
	}
	return hex.EncodeToString(b)
}
