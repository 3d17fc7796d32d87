package service

import (
	"fmt"

	"github.com/identitylab/account-system/internal/api/metrics"
	"github.com/identitylab/account-system/internal/core/domain"
)

// AuthorizationService resolves one account's role against an immutable
// role-grant table. The table is fixed at construction — overrides replace
// colliding roles wholesale — and is safe for concurrent reads. Session
// validity is a separate concern: callers wanting session-gated access must
// check AuthenticationService.TokenValid themselves.
type AuthorizationService struct {
	account *domain.Account
	grants  map[string]domain.RoleGrant
}

// NewAuthorizationService builds the service over the default role table
// with optional per-instance overrides layered on top.
func NewAuthorizationService(account *domain.Account, overrides map[string]domain.RoleGrant) *AuthorizationService {
	return &AuthorizationService{
		account: account,
		grants:  domain.MergeRoleGrants(domain.DefaultRoleGrants(), overrides),
	}
}

// CheckPermission resolves the account's role and reports a full decision,
// distinguishing a plain denial from a role missing in the table.
func (s *AuthorizationService) CheckPermission(permission string) domain.Decision {
	grant, ok := s.grants[s.account.Role]
	if !ok {
		return domain.DenyUnknownRole()
	}
	if grant.HasPermission(permission) {
		return domain.Grant()
	}
	return domain.Deny()
}

// HasPermission is the boolean surface: default-deny, with unknown roles
// indistinguishable from denials.
func (s *AuthorizationService) HasPermission(permission string) bool {
	return s.CheckPermission(permission).Allowed
}

// CheckResource resolves the role's resource-access policy against one
// resource instance.
func (s *AuthorizationService) CheckResource(resource domain.Resource) domain.Decision {
	grant, ok := s.grants[s.account.Role]
	if !ok {
		return domain.DenyUnknownRole()
	}
	switch grant.ResourceAccess {
	case domain.AccessAll:
		return domain.Grant()
	case domain.AccessPublicOnly:
		if resource.Public {
			return domain.Grant()
		}
	case domain.AccessOwnerAndPublic:
		if resource.Public || resource.OwnerID == s.account.ID {
			return domain.Grant()
		}
	}
	return domain.Deny()
}

// CanAccessResource is the boolean surface over CheckResource.
func (s *AuthorizationService) CanAccessResource(resource domain.Resource) bool {
	return s.CheckResource(resource).Allowed
}

// Authorize is for call sites that want to halt on denial instead of
// branching: it returns a hard error wrapping domain.ErrPermissionDenied.
func (s *AuthorizationService) Authorize(permission string) error {
	d := s.CheckPermission(permission)
	if d.Allowed {
		return nil
	}
	if d.Reason == domain.ReasonUnknownRole {
		metrics.AuthDenialsTotal.WithLabelValues("unknown_role").Inc()
		return fmt.Errorf("authorize %q: %w", permission, domain.ErrUnknownRole)
	}
	metrics.AuthDenialsTotal.WithLabelValues("permission").Inc()
	return fmt.Errorf("authorize %q: %w", permission, domain.ErrPermissionDenied)
}

// AuthorizeResource halts on resource denial with a hard error.
func (s *AuthorizationService) AuthorizeResource(resource domain.Resource) error {
	d := s.CheckResource(resource)
	if d.Allowed {
		return nil
	}
	if d.Reason == domain.ReasonUnknownRole {
		metrics.AuthDenialsTotal.WithLabelValues("unknown_role").Inc()
		return fmt.Errorf("authorize resource: %w", domain.ErrUnknownRole)
	}
	metrics.AuthDenialsTotal.WithLabelValues("resource").Inc()
	return fmt.Errorf("authorize resource: %w", domain.ErrResourceDenied)
}

// Permissions returns the enumerable permission set for the account's role.
// A role holding everything yields the single "all" marker, never an
// expansion into every known permission name.
func (s *AuthorizationService) Permissions() []string {
	grant, ok := s.grants[s.account.Role]
	if !ok {
		return []string{}
	}
	if grant.AllPermissions {
		return []string{domain.PermissionAll}
	}
	out := make([]string, len(grant.Permissions))
	copy(out, grant.Permissions)
	return out
}

// IsAdmin reports whether the account carries the admin role.
func (s *AuthorizationService) IsAdmin() bool {
	return s.account.Role == domain.RoleAdmin
}

// IsRegularUser reports whether the account carries the plain user role.
func (s *AuthorizationService) IsRegularUser() bool {
	return s.account.Role == domain.RoleUser
}
