package ports

import (
	"context"
	"time"

	"github.com/identitylab/account-system/internal/core/domain"
)

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	PhoneNumber *string
	AvatarPath  *string // raw upload path, run through the image processor
}

// PaymentResult reports the outcome of a processed payment.
type PaymentResult struct {
	Success       bool
	TransactionID string
}

// Subscription is returned when a plan is activated for an account.
type Subscription struct {
	Plan      string
	AccountID string
	Status    string
}

// ActivityReport is the basic usage summary for one account.
type ActivityReport struct {
	TotalLogins   int
	LastLogin     time.Time
	ActivityScore float64
	AccountID     string
	CreatedAt     time.Time
}

// NotificationInput is a single outbound notification request.
type NotificationInput struct {
	Channel domain.Channel
	Message string
}

// ResourceCheckInput asks whether the account may access a resource.
type ResourceCheckInput struct {
	OwnerID string
	Public  bool
}

// AccountService is the multi-account facade the transport layer uses. Each
// call resolves the account and operates through its composed services.
type AccountService interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) (*domain.Account, error)
	ProcessPayment(ctx context.Context, accountID string, amount float64, method domain.PaymentMethod) (*PaymentResult, error)
	CreateSubscription(ctx context.Context, accountID, plan string) (*Subscription, error)
	Notify(ctx context.Context, accountID string, input NotificationInput) error
	Permissions(ctx context.Context, accountID string) ([]string, error)
	CheckResource(ctx context.Context, accountID string, input ResourceCheckInput) (domain.Decision, error)
	ActivityReport(ctx context.Context, accountID string) (*ActivityReport, error)
}
