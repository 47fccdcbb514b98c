package common

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. The canonical wire form uses
// underscores; ParseRole also accepts the legacy space-separated spelling
// still present in old data.
type Role string

const (
	RoleAdmin                 Role = "ADMIN"
	RoleCompany               Role = "COMPANY"
	RoleInternalAccountant    Role = "INTERNAL_ACCOUNTANT"
	RoleIndependentAccountant Role = "INDEPENDENT_ACCOUNTANT"
)

// ParseRole normalizes s into a canonical Role. It is case-insensitive and
// maps spaces to underscores, so "independent accountant" parses too.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleInternalAccountant, RoleIndependentAccountant:
		return true
	}
	return false
}

// Capability table. The view layer decides which actions to show from these
// predicates instead of comparing role strings.

// CanManageUsers reports whether the role administers accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanManageFolders reports whether the role creates and edits folders.
func (r Role) CanManageFolders() bool {
	switch r {
	case RoleCompany, RoleInternalAccountant, RoleIndependentAccountant:
		return true
	}
	return false
}

// CanManageClients reports whether the role creates and edits clients.
func (r Role) CanManageClients() bool {
	switch r {
	case RoleCompany, RoleIndependentAccountant:
		return true
	}
	return false
}

// CanAssignAccountants reports whether the role may assign a client to an
// accountant.
func (r Role) CanAssignAccountants() bool {
	switch r {
	case RoleAdmin, RoleCompany:
		return true
	}
	return false
}

// ClientScope is the role-dependent subset of clients a list call may
// fetch. It becomes the scope query parameter of the list endpoint.
type ClientScope string

const (
	// ScopeAll: every client (admin).
	ScopeAll ClientScope = "all"
	// ScopeCompany: all clients of the caller's company.
	ScopeCompany ClientScope = "company"
	// ScopeAssigned: only clients assigned to the calling accountant.
	ScopeAssigned ClientScope = "assigned"
)

// ListScope maps a role to the client-list scope it must request. Total
// over all defined roles; ok is false for roles with no scope, and callers
// must then produce an empty result instead of calling an unscoped
// endpoint.
func (r Role) ListScope() (ClientScope, bool) {
	switch r {
	case RoleAdmin:
		return ScopeAll, true
	case RoleCompany:
		return ScopeCompany, true
	case RoleInternalAccountant, RoleIndependentAccountant:
		return ScopeAssigned, true
	default:
		return "", false
	}
}
