package service

import (
	"crypto/rand"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/api/metrics"
	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

// PaymentProcessor simulates charging one customer through one provider.
type PaymentProcessor interface {
	Process(customer string, amount float64) (*ports.PaymentResult, error)
}

// PaymentService dispatches payments for one account through a closed table
// of processors. An unknown method is a caller contract violation and comes
// back as a hard error, never a logged shrug.
type PaymentService struct {
	account       *domain.Account
	notifications *NotificationService
	processors    map[domain.PaymentMethod]PaymentProcessor
	log           zerolog.Logger
}

// NewPaymentService wires the default processor table. notifications may be
// nil; subscription activation then skips the confirmation email.
func NewPaymentService(account *domain.Account, notifications *NotificationService, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		account:       account,
		notifications: notifications,
		processors: map[domain.PaymentMethod]PaymentProcessor{
			domain.PaymentCreditCard: simulatedProcessor{prefix: "cc", log: log},
			domain.PaymentPaypal:     simulatedProcessor{prefix: "pp", log: log},
		},
		log: log,
	}
}

// ProcessPayment charges the account's customer identity via the named
// method. Returns domain.ErrUnknownPaymentMethod for methods outside the
// processor table.
func (s *PaymentService) ProcessPayment(amount float64, method domain.PaymentMethod) (*ports.PaymentResult, error) {
	processor, ok := s.processors[method]
	if !ok {
		return nil, fmt.Errorf("process payment %q: %w", method, domain.ErrUnknownPaymentMethod)
	}

	result, err := processor.Process(s.account.Email, amount)
	if err != nil {
		metrics.PaymentsProcessedTotal.WithLabelValues(string(method), "failure").Inc()
		return nil, fmt.Errorf("process payment %q: %w", method, err)
	}

	metrics.PaymentsProcessedTotal.WithLabelValues(string(method), "success").Inc()
	if result.Success {
		s.log.Info().
			Str("account_id", s.account.ID).
			Str("transaction_id", result.TransactionID).
			Float64("amount", amount).
			Msg("payment recorded")
	}
	return result, nil
}

// CreateSubscription activates a plan and confirms it by email. A failed
// confirmation does not unwind the subscription.
func (s *PaymentService) CreateSubscription(plan string) (*ports.Subscription, error) {
	sub := &ports.Subscription{
		Plan:      plan,
		AccountID: s.account.ID,
		Status:    "active",
	}
	s.log.Info().
		Str("account_id", s.account.ID).
		Str("plan", plan).
		Msg("subscription created")

	if s.notifications != nil {
		if err := s.notifications.Send(domain.ChannelEmail, "Subscription activated for "+plan); err != nil {
			s.log.Warn().Err(err).Str("account_id", s.account.ID).Msg("subscription confirmation failed")
		}
	}
	return sub, nil
}

// simulatedProcessor stands in for a real provider integration: it always
// succeeds and mints a prefixed transaction ID.
type simulatedProcessor struct {
	prefix string
	log    zerolog.Logger
}

func (p simulatedProcessor) Process(customer string, amount float64) (*ports.PaymentResult, error) {
	p.log.Info().
		Str("processor", p.prefix).
		Str("customer", customer).
		Float64("amount", amount).
		Msg("processing payment")
	return &ports.PaymentResult{
		Success:       true,
		TransactionID: p.prefix + "_" + randomSuffix(),
	}, nil
}

// randomSuffix returns an 8-hex-char transaction suffix.
func randomSuffix() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return fmt.Sprintf("%08x", b)
}
