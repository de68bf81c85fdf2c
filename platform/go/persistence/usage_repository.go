package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const UsageRecordsTable = "usage_records"

// UsageStore appends to and aggregates the usage_records ledger.
type UsageStore struct{}

// NewUsageStore returns a store instance.
func NewUsageStore() *UsageStore { return &UsageStore{} }

// Record appends a usage entry.
func (st *UsageStore) Record(ctx context.Context, s *Session, tenantID uuid.UUID, featureSlug string, amount int64, at time.Time) error {
	if _, err := s.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, tenant_id, feature_slug, usage_amount, recorded_at)
        VALUES ($1, $2, $3, $4, $5)
    `, UsageRecordsTable), uuid.New(), tenantID, featureSlug, amount, at); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// Sum returns the usage recorded for a tenant feature with recorded_at inside [from, to].
func (st *UsageStore) Sum(ctx context.Context, s *Session, tenantID uuid.UUID, featureSlug string, from, to time.Time) (int64, error) {
	args := []any{tenantID, featureSlug, from, to}
	scope := scopeClause(s, "tenant_id", &args)

	var total int64
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COALESCE(SUM(usage_amount), 0)::bigint
        FROM %s
        WHERE tenant_id = $1 AND feature_slug = $2 AND recorded_at >= $3 AND recorded_at <= $4 AND %s
    `, UsageRecordsTable, scope), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum usage: %w", err)
	}
	return total, nil
}
