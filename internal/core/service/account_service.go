package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

// AccountProvider implements ports.AccountService over the directory: each
// call resolves the account, builds its aggregate with explicit dependency
// injection, and forwards to the composed services.
type AccountProvider struct {
	repo ports.AccountRepository
	deps AggregateDeps
	log  zerolog.Logger
}

func NewAccountProvider(repo ports.AccountRepository, deps AggregateDeps, log zerolog.Logger) *AccountProvider {
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = DefaultSessionTTL
	}
	return &AccountProvider{repo: repo, deps: deps, log: log}
}

// aggregate resolves the account and composes its services.
func (p *AccountProvider) aggregate(ctx context.Context, accountID string) (*Aggregate, error) {
	account, err := p.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return NewAggregate(account, p.deps), nil
}

func (p *AccountProvider) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return p.repo.FindByID(ctx, accountID)
}

func (p *AccountProvider) UpdateProfile(ctx context.Context, accountID string, update ports.ProfileUpdate) (*domain.Account, error) {
	agg, err := p.aggregate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := agg.Profile.UpdateProfile(update); err != nil {
		return nil, err
	}
	if err := p.repo.SaveProfile(ctx, agg.Account); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return agg.Account, nil
}

func (p *AccountProvider) ProcessPayment(ctx context.Context, accountID string, amount float64, method domain.PaymentMethod) (*ports.PaymentResult, error) {
	agg, err := p.aggregate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return agg.Payments.ProcessPayment(amount, method)
}

func (p *AccountProvider) CreateSubscription(ctx context.Context, accountID, plan string) (*ports.Subscription, error) {
	agg, err := p.aggregate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return agg.Payments.CreateSubscription(plan)
}

func (p *AccountProvider) Notify(ctx context.Context, accountID string, input ports.NotificationInput) error {
	agg, err := p.aggregate(ctx, accountID)
	if err != nil {
		return err
	}
	return agg.Notifications.Send(input.Channel, input.Message)
}

func (p *AccountProvider) Permissions(ctx context.Context, accountID string) ([]string, error) {
	agg, err := p.aggregate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return agg.Authz.Permissions(), nil
}

func (p *AccountProvider) CheckResource(ctx context.Context, accountID string, input ports.ResourceCheckInput) (domain.Decision, error) {
	agg, err := p.aggregate(ctx, accountID)
	if err != nil {
		return domain.Decision{}, err
	}
	decision := agg.Authz.CheckResource(domain.Resource{OwnerID: input.OwnerID, Public: input.Public})
	if decision.Reason == domain.ReasonUnknownRole {
		// Misconfiguration is logged distinctly but the decision surface
		// stays a plain denial for the caller.
		p.log.Warn().
			Str("account_id", accountID).
			Str("role", agg.Account.Role).
			Msg("resource check against unknown role")
	}
	return decision, nil
}

func (p *AccountProvider) ActivityReport(ctx context.Context, accountID string) (*ports.ActivityReport, error) {
	agg, err := p.aggregate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return agg.Analytics.Report(), nil
}
