package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

type stubAccountRepo struct {
	byID         map[string]*domain.Account
	byEmail      map[string]*domain.Account
	saves        int
	profileSaves int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]*domain.Account),
	}
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	if account.ID == "" {
		account.ID = "acc_" + account.Email
	}
	r.byID[account.ID] = account
	r.byEmail[account.Email] = account
	return account, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *stubAccountRepo) SaveSession(_ context.Context, account *domain.Account) error {
	r.saves++
	if _, ok := r.byID[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *stubAccountRepo) SaveProfile(_ context.Context, account *domain.Account) error {
	r.profileSaves++
	if _, ok := r.byID[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

type stubThrottle struct {
	blocked  bool
	failures []string
	resets   []string
}

func (t *stubThrottle) TooManyAttempts(_ context.Context, _ string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures = append(t.failures, email)
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.resets = append(t.resets, email)
	return nil
}

type stubRecorder struct {
	events []ports.AnalyticsEventInput
}

func (r *stubRecorder) Enqueue(event ports.AnalyticsEventInput) {
	r.events = append(r.events, event)
}

func (r *stubRecorder) names() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

func testDeps() AggregateDeps {
	return AggregateDeps{
		Hasher:     stubHasher{},
		Tokens:     &stubTokens{next: "session_tok"},
		SessionTTL: time.Hour,
		Log:        zerolog.Nop(),
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	events := &stubRecorder{}
	svc := NewAuthService(repo, testDeps(), "secret", nil, events, zerolog.Nop())

	account, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.CredentialHash == "pass123" {
		t.Fatalf("expected credential to be hashed")
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", account.Role)
	}
	if got := events.names(); len(got) != 1 || got[0] != "account_registered" {
		t.Fatalf("expected account_registered event, got %v", got)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), testDeps(), "secret", nil, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Password: "pass"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for missing email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.c"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for missing password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, testDeps(), "secret", nil, nil, zerolog.Nop())

	input := ports.RegisterInput{Email: "alice@example.com", Password: "pass123"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	events := &stubRecorder{}
	throttle := &stubThrottle{}
	svc := NewAuthService(repo, testDeps(), "secret", throttle, events, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pass123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.SessionToken != "session_tok" {
		t.Fatalf("unexpected session token: %s", result.SessionToken)
	}
	if !result.SessionExpiresAt.After(time.Now()) {
		t.Fatalf("session must expire in the future")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	if claims["account_id"] != result.Account.ID {
		t.Fatalf("access token carries wrong account: %v", claims["account_id"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("access token carries wrong role: %v", claims["role"])
	}

	if result.Account.Session().LoginCount != 1 {
		t.Fatalf("login must be tracked once, got %d", result.Account.Session().LoginCount)
	}
	if repo.saves != 1 {
		t.Fatalf("session must be persisted, saves=%d", repo.saves)
	}
	if len(throttle.resets) != 1 {
		t.Fatalf("throttle must be reset on success")
	}

	// Registration and login each leave an analytics event; the login
	// event is deliberately separate from the tracked login counter.
	if got := events.names(); len(got) != 2 || got[1] != "login" {
		t.Fatalf("expected [account_registered login], got %v", got)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	throttle := &stubThrottle{}
	svc := NewAuthService(repo, testDeps(), "secret", throttle, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pass123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(throttle.failures) != 1 {
		t.Fatalf("failure must be counted against the throttle")
	}
}

func TestAuthService_Login_UnknownEmailLooksTheSame(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), testDeps(), "secret", nil, nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown account must yield the same error as a bad password, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubAccountRepo()
	throttle := &stubThrottle{blocked: true}
	svc := NewAuthService(repo, testDeps(), "secret", throttle, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pass123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("throttled login must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Login_ReplacesSession(t *testing.T) {
	repo := newStubAccountRepo()
	deps := testDeps()
	tokens := deps.Tokens.(*stubTokens)
	svc := NewAuthService(repo, deps, "secret", nil, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pass123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	tokens.next = "session_tok_2"
	second, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if second.Account.Session().Token != "session_tok_2" {
		t.Fatalf("second login must replace the session token")
	}
	if first.SessionToken == second.SessionToken {
		t.Fatalf("expected a fresh token per login")
	}
	if second.Account.Session().LoginCount != 2 {
		t.Fatalf("each login must be tracked, got %d", second.Account.Session().LoginCount)
	}
}

func TestAuthService_LogoutAndSessionValid(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, testDeps(), "secret", nil, nil, zerolog.Nop())

	account, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pass123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	valid, err := svc.SessionValid(context.Background(), account.ID)
	if err != nil || valid {
		t.Fatalf("no session yet: valid=%v err=%v", valid, err)
	}

	if _, err := svc.Login(context.Background(), "alice@example.com", "pass123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	valid, err = svc.SessionValid(context.Background(), account.ID)
	if err != nil || !valid {
		t.Fatalf("session should be valid after login: valid=%v err=%v", valid, err)
	}

	if err := svc.Logout(context.Background(), account.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	valid, err = svc.SessionValid(context.Background(), account.ID)
	if err != nil || valid {
		t.Fatalf("session must be invalid after logout: valid=%v err=%v", valid, err)
	}

	// Logging out again, or for an unknown account, is not an error.
	if err := svc.Logout(context.Background(), account.ID); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
	if err := svc.Logout(context.Background(), "ghost"); err != nil {
		t.Fatalf("logout of unknown account: %v", err)
	}
}
