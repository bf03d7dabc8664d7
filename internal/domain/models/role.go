package models

import (
	"context"
	"strings"
)

// Role is the operator profile selected at login.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFinance    Role = "finance"
	RoleSupervisor Role = "supervisor"
)

// ParseRole normalizes a role name; ok is false for unknown roles.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleFinance:
		return RoleFinance, true
	case RoleSupervisor:
		return RoleSupervisor, true
	default:
		return "", false
	}
}

// CanViewFinance covers loans, repayments and rental payments.
func (r Role) CanViewFinance() bool {
	return r == RoleAdmin || r == RoleFinance
}

// CanViewProduction covers production logs.
func (r Role) CanViewProduction() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// CanAdminister covers history and settings.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

type roleKey struct{}

// WithRole stores the acting role on the context.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFrom returns the acting role, defaulting to admin for internal callers.
func RoleFrom(ctx context.Context) Role {
	if role, ok := ctx.Value(roleKey{}).(Role); ok && role != "" {
		return role
	}
	return RoleAdmin
}
