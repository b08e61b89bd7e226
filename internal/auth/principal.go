package auth

import (
	"context"
	"strings"
)

// Role is the caller's authority. Only ADMIN and CLIENT exist.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// Authority is the Spring style name of the role, e.g. ROLE_ADMIN.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// ParseRole accepts "ADMIN", "admin" and "ROLE_ADMIN".
func ParseRole(s string) (Role, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleClient:
		return RoleClient, true
	}
	return "", false
}

// ParseRoles maps authority names onto roles, dropping unknown and duplicate ones.
func ParseRoles(names []string) []Role {
	seen := map[Role]struct{}{}
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r, ok := ParseRole(n)
		if !ok {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}
	return roles
}

// Principal is the authenticated caller.
type Principal struct {
	Email string
	Roles []Role
}

// HasRole checks if the caller holds role.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller stored by Authenticate, or nil for anonymous requests.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
