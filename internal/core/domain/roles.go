package domain

// AccessPolicy determines which resource instances a role may reach,
// independent of named permissions.
type AccessPolicy string

const (
	AccessAll            AccessPolicy = "all"
	AccessOwnerAndPublic AccessPolicy = "owner_and_public"
	AccessPublicOnly     AccessPolicy = "public_only"
	AccessNone           AccessPolicy = "none"
)

// PermissionAll is the marker returned when a role holds every permission.
// Callers enumerating permissions must treat it specially; it is never
// expanded into concrete permission names.
const PermissionAll = "all"

// RoleGrant is one row of the role table: either every permission
// (AllPermissions) or an explicit set, plus the resource-access policy.
type RoleGrant struct {
	AllPermissions bool
	Permissions    []string
	ResourceAccess AccessPolicy
}

// HasPermission reports whether the grant covers the named permission.
func (g RoleGrant) HasPermission(permission string) bool {
	if g.AllPermissions {
		return true
	}
	for _, p := range g.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Resource is the minimal shape authorization decisions need: who owns it
// and whether it is public.
type Resource struct {
	OwnerID string
	Public  bool
}

// DefaultRoleGrants returns the base role table. Admins hold every
// permission and reach every resource; regular users can read and reach
// their own or public resources. Unknown roles are denied everything.
func DefaultRoleGrants() map[string]RoleGrant {
	return map[string]RoleGrant{
		RoleAdmin: {
			AllPermissions: true,
			ResourceAccess: AccessAll,
		},
		RoleUser: {
			Permissions:    []string{"read"},
			ResourceAccess: AccessOwnerAndPublic,
		},
	}
}

// MergeRoleGrants layers overrides on top of base. A colliding role is
// replaced wholesale — permissions and resource access together — never
// merged field by field. The inputs are not mutated.
func MergeRoleGrants(base, overrides map[string]RoleGrant) map[string]RoleGrant {
	merged := make(map[string]RoleGrant, len(base)+len(overrides))
	for role, grant := range base {
		merged[role] = grant
	}
	for role, grant := range overrides {
		merged[role] = grant
	}
	return merged
}
