package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const AuditLogsTable = "audit_logs"

// AuditLog represents a row in the audit_logs table.
type AuditLog struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	UserID    *uuid.UUID
	Action    string
	Details   map[string]any
	CreatedAt time.Time
}

// AuditLogStore appends and lists audit entries.
type AuditLogStore struct{}

// NewAuditLogStore returns a store instance.
func NewAuditLogStore() *AuditLogStore { return &AuditLogStore{} }

// Insert appends an audit entry.
func (st *AuditLogStore) Insert(ctx context.Context, s *Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	if _, err := s.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, tenant_id, user_id, action, details)
        VALUES ($1, $2, $3, $4, $5)
    `, AuditLogsTable), uuid.New(), tenantID, nullableUUID(userID), action, details); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List returns a tenant's audit entries, newest first, plus the total count.
func (st *AuditLogStore) List(ctx context.Context, s *Session, tenantID uuid.UUID, skip, limit int) ([]AuditLog, int, error) {
	limit = clampLimit(limit, 100, 1000)

	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	var total int
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND %s
    `, AuditLogsTable, scope), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}
	if total == 0 {
		return []AuditLog{}, 0, nil
	}

	args = append(args, limit, max(skip, 0))
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT id, tenant_id, user_id, action, details, created_at
        FROM %s
        WHERE tenant_id = $1 AND %s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d
    `, AuditLogsTable, scope, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]AuditLog, 0)
	for rows.Next() {
		var entry AuditLog
		if err := rows.Scan(&entry.ID, &entry.TenantID, &entry.UserID, &entry.Action, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, total, nil
}
