package domain

import (
	"sync"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session is an immutable snapshot of an account's session state, taken
// under the account lock so token and expiry are never observed torn.
type Session struct {
	Token       string
	ExpiresAt   time.Time
	LastLoginAt time.Time
	LoginCount  int
}

// Active reports whether the session holds a token that has not expired at
// the given instant.
func (s Session) Active(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}

// Account is the aggregate root for one end-user: identity, credential
// digest, role, and session state. Session fields are guarded by a
// per-account mutex; all mutation goes through the methods below. Profile
// writes take the same mutex via ApplyProfile, so updates never interleave;
// a reader serializing the account without the lock observes each field's
// old or new value.
type Account struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CredentialHash string    `json:"-"` // never expose the digest
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`

	mu          sync.Mutex
	token       string
	expiresAt   time.Time
	lastLoginAt time.Time
	loginCount  int
}

// ApplyProfile updates the mutable profile fields under the account lock.
// Nil fields are left untouched.
func (a *Account) ApplyProfile(phoneNumber, avatarURL *string) {
	a.mu.Lock()
	if phoneNumber != nil {
		a.PhoneNumber = *phoneNumber
	}
	if avatarURL != nil {
		a.AvatarURL = *avatarURL
	}
	a.mu.Unlock()
}

// SetSession installs a new session token and expiry as one atomic pair,
// replacing any previous session.
func (a *Account) SetSession(token string, expiresAt time.Time) {
	a.mu.Lock()
	a.token = token
	a.expiresAt = expiresAt
	a.mu.Unlock()
}

// ClearSession removes both session fields atomically.
func (a *Account) ClearSession() {
	a.mu.Lock()
	a.token = ""
	a.expiresAt = time.Time{}
	a.mu.Unlock()
}

// RecordLogin stores the login timestamp and increments the login counter,
// returning the new total. Two calls record two distinct login events.
func (a *Account) RecordLogin(at time.Time) int {
	a.mu.Lock()
	a.lastLoginAt = at
	a.loginCount++
	n := a.loginCount
	a.mu.Unlock()
	return n
}

// Session returns a consistent snapshot of the session fields.
func (a *Account) Session() Session {
	a.mu.Lock()
	s := Session{
		Token:       a.token,
		ExpiresAt:   a.expiresAt,
		LastLoginAt: a.lastLoginAt,
		LoginCount:  a.loginCount,
	}
	a.mu.Unlock()
	return s
}

// RestoreSession rehydrates session state loaded from a directory adapter.
// Intended for repository implementations only.
func (a *Account) RestoreSession(s Session) {
	a.mu.Lock()
	a.token = s.Token
	a.expiresAt = s.ExpiresAt
	a.lastLoginAt = s.LastLoginAt
	a.loginCount = s.LoginCount
	a.mu.Unlock()
}
