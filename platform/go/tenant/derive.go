package tenant

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID returns the first 8 hexadecimal characters of a UUID (without dashes).
func ShortID(id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	if len(hex) < 8 {
		return hex
	}
	return hex[:8]
}

// BuildBasePrefix returns `tenants/<tenantSlug>-<shortTenantId>/`, the object storage prefix owned by a tenant.
func BuildBasePrefix(slug string, id uuid.UUID) string {
	return "tenants/" + strings.ToLower(strings.TrimSpace(slug)) + "-" + ShortID(id) + "/"
}
