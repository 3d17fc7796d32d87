package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/identitylab/account-system/internal/core/domain"
)

func TestAccountRepository_CreateAndFind(t *testing.T) {
	repo := NewAccountRepository()

	created, err := repo.Create(context.Background(), &domain.Account{
		Email: "alice@example.com",
		Role:  domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an ID to be assigned")
	}

	byEmail, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	byID, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byEmail != byID {
		t.Fatalf("both lookups must return the same account instance")
	}
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	repo := NewAccountRepository()

	if _, err := repo.Create(context.Background(), &domain.Account{Email: "alice@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(context.Background(), &domain.Account{Email: "alice@example.com"})
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAccountRepository_NotFound(t *testing.T) {
	repo := NewAccountRepository()

	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "ghost"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_SessionMutationsVisible(t *testing.T) {
	repo := NewAccountRepository()

	created, err := repo.Create(context.Background(), &domain.Account{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.SetSession("tok", time.Now().Add(time.Hour))
	if err := repo.SaveSession(context.Background(), created); err != nil {
		t.Fatalf("save session: %v", err)
	}

	found, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Session().Token != "tok" {
		t.Fatalf("session mutation must be visible through the repository")
	}

	if err := repo.SaveSession(context.Background(), &domain.Account{ID: "ghost"}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for unknown account, got %v", err)
	}
}

func TestAccountRepository_ProfileMutationsVisible(t *testing.T) {
	repo := NewAccountRepository()

	created, err := repo.Create(context.Background(), &domain.Account{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	phone := "+15550100"
	avatar := "processed_200x200_selfie.png"
	created.ApplyProfile(&phone, &avatar)
	if err := repo.SaveProfile(context.Background(), created); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	found, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.PhoneNumber != phone || found.AvatarURL != avatar {
		t.Fatalf("profile mutation must be visible through the repository: %+v", found)
	}

	if err := repo.SaveProfile(context.Background(), &domain.Account{ID: "ghost"}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for unknown account, got %v", err)
	}
}
