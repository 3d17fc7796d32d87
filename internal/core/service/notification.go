package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/api/metrics"
	"github.com/identitylab/account-system/internal/core/domain"
)

// NotificationChannel delivers one message to one recipient. Delivery here
// is simulated: implementations log what a real provider would send.
type NotificationChannel interface {
	Deliver(recipient, message string) error
}

// NotificationService routes messages to the right channel for one account.
// Channel failures are reported, never raised through the caller: an unknown
// channel or a missing recipient comes back as a typed error the caller can
// log and move past.
type NotificationService struct {
	account  *domain.Account
	channels map[domain.Channel]NotificationChannel
	log      zerolog.Logger
}

func NewNotificationService(account *domain.Account, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		account: account,
		channels: map[domain.Channel]NotificationChannel{
			domain.ChannelEmail: emailChannel{log: log},
			domain.ChannelSMS:   smsChannel{log: log},
			domain.ChannelPush:  pushChannel{log: log},
		},
		log: log,
	}
}

// Send dispatches one message through the named channel.
func (s *NotificationService) Send(channel domain.Channel, message string) error {
	ch, ok := s.channels[channel]
	if !ok {
		return fmt.Errorf("send %q: %w", channel, domain.ErrUnknownChannel)
	}
	recipient, err := s.recipient(channel)
	if err != nil {
		metrics.NotificationsSentTotal.WithLabelValues(string(channel), "failed").Inc()
		return err
	}
	if err := ch.Deliver(recipient, message); err != nil {
		metrics.NotificationsSentTotal.WithLabelValues(string(channel), "failed").Inc()
		return err
	}
	metrics.NotificationsSentTotal.WithLabelValues(string(channel), "sent").Inc()
	return nil
}

// Broadcast sends the same message over several channels, continuing past
// per-channel failures. The first failure is returned so the caller can
// report it; delivery to the remaining channels is unaffected.
func (s *NotificationService) Broadcast(message string, channels ...domain.Channel) error {
	var firstErr error
	for _, ch := range channels {
		if err := s.Send(ch, message); err != nil {
			s.log.Warn().Err(err).
				Str("account_id", s.account.ID).
				Str("channel", string(ch)).
				Msg("broadcast channel failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// SendWelcomeEmail greets a freshly registered account.
func (s *NotificationService) SendWelcomeEmail() error {
	return s.Send(domain.ChannelEmail, "Welcome! Your account is ready.")
}

// SendPasswordResetEmail delivers the password reset flow entry point.
func (s *NotificationService) SendPasswordResetEmail() error {
	return s.Send(domain.ChannelEmail, "A password reset was requested for your account.")
}

// recipient resolves the per-channel address. Push needs no recipient
// beyond the account itself.
func (s *NotificationService) recipient(channel domain.Channel) (string, error) {
	switch channel {
	case domain.ChannelEmail:
		if s.account.Email == "" {
			return "", fmt.Errorf("email: %w", domain.ErrNoRecipient)
		}
		return s.account.Email, nil
	case domain.ChannelSMS:
		if s.account.PhoneNumber == "" {
			return "", fmt.Errorf("sms: %w", domain.ErrNoRecipient)
		}
		return s.account.PhoneNumber, nil
	default:
		return s.account.ID, nil
	}
}

// --- Simulated channels ---

type emailChannel struct {
	log zerolog.Logger
}

func (c emailChannel) Deliver(recipient, message string) error {
	c.log.Info().Str("channel", "email").Str("to", recipient).Str("message", message).Msg("notification delivered")
	return nil
}

type smsChannel struct {
	log zerolog.Logger
}

func (c smsChannel) Deliver(recipient, message string) error {
	c.log.Info().Str("channel", "sms").Str("to", recipient).Str("message", message).Msg("notification delivered")
	return nil
}

type pushChannel struct {
	log zerolog.Logger
}

func (c pushChannel) Deliver(recipient, message string) error {
	c.log.Info().Str("channel", "push").Str("to", recipient).Str("message", message).Msg("notification delivered")
	return nil
}
