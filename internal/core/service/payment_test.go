package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/domain"
)

func TestPayment_ProcessKnownMethods(t *testing.T) {
	account := &domain.Account{ID: "acc_1", Email: "alice@example.com"}
	svc := NewPaymentService(account, nil, zerolog.Nop())

	cases := []struct {
		method domain.PaymentMethod
		prefix string
	}{
		{domain.PaymentCreditCard, "cc_"},
		{domain.PaymentPaypal, "pp_"},
	}
	for _, tc := range cases {
		result, err := svc.ProcessPayment(49.99, tc.method)
		if err != nil {
			t.Fatalf("process %s: %v", tc.method, err)
		}
		if !result.Success {
			t.Fatalf("expected success for %s", tc.method)
		}
		if !strings.HasPrefix(result.TransactionID, tc.prefix) {
			t.Fatalf("expected %s transaction ID, got %s", tc.prefix, result.TransactionID)
		}
	}
}

func TestPayment_UnknownMethodIsHardFailure(t *testing.T) {
	account := &domain.Account{ID: "acc_1", Email: "alice@example.com"}
	svc := NewPaymentService(account, nil, zerolog.Nop())

	result, err := svc.ProcessPayment(10, domain.PaymentMethod("barter"))
	if !errors.Is(err, domain.ErrUnknownPaymentMethod) {
		t.Fatalf("expected ErrUnknownPaymentMethod, got %v", err)
	}
	if result != nil {
		t.Fatalf("no result expected on contract violation")
	}
}

func TestPayment_CreateSubscription(t *testing.T) {
	account := &domain.Account{ID: "acc_1", Email: "alice@example.com"}
	notifications := NewNotificationService(account, zerolog.Nop())
	svc := NewPaymentService(account, notifications, zerolog.Nop())

	sub, err := svc.CreateSubscription("premium")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if sub.Plan != "premium" || sub.AccountID != "acc_1" || sub.Status != "active" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}
}

func TestPayment_SubscriptionSurvivesConfirmationFailure(t *testing.T) {
	// No email address: the confirmation cannot be delivered, but the
	// subscription still activates.
	account := &domain.Account{ID: "acc_1"}
	notifications := NewNotificationService(account, zerolog.Nop())
	svc := NewPaymentService(account, notifications, zerolog.Nop())

	sub, err := svc.CreateSubscription("basic")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if sub.Status != "active" {
		t.Fatalf("expected active subscription, got %s", sub.Status)
	}
}
