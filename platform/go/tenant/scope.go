package tenant

import (
	"github.com/google/uuid"
)

// Scope is the security context a database session runs under. It is passed explicitly to every
// store call; nothing about it lives on the pooled connection after the transaction ends.
type Scope struct {
	UserID     uuid.UUID
	TenantID   uuid.UUID // uuid.Nil when the caller has no tenant yet (pre-onboarding or superadmin)
	Superadmin bool
}

// System is the scope used by trusted internal processes (webhooks, CLI, maintenance).
func System() Scope {
	return Scope{Superadmin: true}
}

// ForUser builds a non-privileged scope.
func ForUser(userID, tenantID uuid.UUID) Scope {
	return Scope{UserID: userID, TenantID: tenantID}
}

// HasTenant reports whether the scope is bound to a tenant.
func (s Scope) HasTenant() bool {
	return s.TenantID != uuid.Nil
}

// Elevated returns a copy with the superadmin flag set, keeping the caller identity for auditing.
func (s Scope) Elevated() Scope {
	s.Superadmin = true
	return s
}

// SettingValues renders the scope as the values stored in the app.* transaction settings.
func (s Scope) SettingValues() (userID, tenantID, superadmin string) {
	if s.UserID != uuid.Nil {
		userID = s.UserID.String()
	}
	if s.TenantID != uuid.Nil {
		tenantID = s.TenantID.String()
	}
	superadmin = "false"
	if s.Superadmin {
		superadmin = "true"
	}
	return userID, tenantID, superadmin
}
