package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const APIKeysTable = "api_keys"

const apiKeyColumns = `id, tenant_id, user_id, name, key_prefix, hashed_key, created_at, last_used_at, expires_at`

// APIKey represents a row in the api_keys table.
type APIKey struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	UserID     uuid.UUID
	Name       string
	KeyPrefix  string
	HashedKey  string
	CreatedAt  time.Time
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
}

// Expired reports whether the key has an expiry in the past.
func (k APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && !now.Before(*k.ExpiresAt)
}

var (
	// ErrAPIKeyNotFound indicates a missing (or invisible) key.
	ErrAPIKeyNotFound = errors.New("api key not found")
	// ErrAPIKeyConflict indicates a prefix or hash collision.
	ErrAPIKeyConflict = errors.New("api key conflict")
)

// APIKeyStore exposes persistence helpers for the api_keys table.
type APIKeyStore struct{}

// NewAPIKeyStore returns a store instance.
func NewAPIKeyStore() *APIKeyStore { return &APIKeyStore{} }

// CreateAPIKeyParams captures the fields required to insert a key.
type CreateAPIKeyParams struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	Name      string
	KeyPrefix string
	HashedKey string
	ExpiresAt *time.Time
}

// Create inserts a key record. Only the hash is ever stored.
func (st *APIKeyStore) Create(ctx context.Context, s *Session, params CreateAPIKeyParams) (APIKey, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, tenant_id, user_id, name, key_prefix, hashed_key, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING %s
    `, APIKeysTable, apiKeyColumns),
		uuid.New(), params.TenantID, params.UserID, params.Name, params.KeyPrefix, params.HashedKey, params.ExpiresAt,
	)

	key, err := scanAPIKey(row)
	if err != nil {
		if isUniqueViolation(err) {
			return APIKey{}, ErrAPIKeyConflict
		}
		return APIKey{}, fmt.Errorf("insert api key: %w", err)
	}
	return key, nil
}

// FindByPrefix returns the single key registered under prefix.
func (st *APIKeyStore) FindByPrefix(ctx context.Context, s *Session, prefix string) (APIKey, error) {
	args := []any{prefix}
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE key_prefix = $1 AND %s
    `, apiKeyColumns, APIKeysTable, scope), args...)

	key, err := scanAPIKey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return APIKey{}, ErrAPIKeyNotFound
		}
		return APIKey{}, fmt.Errorf("find api key: %w", err)
	}
	return key, nil
}

// ListByUser returns the keys owned by a user, newest first.
func (st *APIKeyStore) ListByUser(ctx context.Context, s *Session, userID uuid.UUID) ([]APIKey, error) {
	args := []any{userID}
	scope := scopeClause(s, "tenant_id", &args)

	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE user_id = $1 AND %s ORDER BY created_at DESC
    `, apiKeyColumns, APIKeysTable, scope), args...)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	keys := make([]APIKey, 0)
	for rows.Next() {
		key, scanErr := scanAPIKey(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan api key: %w", scanErr)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}
	return keys, nil
}

// CountByTenant returns the number of keys issued in a tenant.
func (st *APIKeyStore) CountByTenant(ctx context.Context, s *Session, tenantID uuid.UUID) (int64, error) {
	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	var count int64
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND %s
    `, APIKeysTable, scope), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count api keys: %w", err)
	}
	return count, nil
}

// Delete removes a key owned by userID.
func (st *APIKeyStore) Delete(ctx context.Context, s *Session, id, userID uuid.UUID) error {
	args := []any{id, userID}
	scope := scopeClause(s, "tenant_id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`
        DELETE FROM %s WHERE id = $1 AND user_id = $2 AND %s
    `, APIKeysTable, scope), args...)
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAPIKeyNotFound
	}
	return nil
}

// Touch stamps last_used_at.
func (st *APIKeyStore) Touch(ctx context.Context, s *Session, id uuid.UUID, at time.Time) error {
	args := []any{at, id}
	scope := scopeClause(s, "tenant_id", &args)

	if _, err := s.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET last_used_at = $1 WHERE id = $2 AND %s
    `, APIKeysTable, scope), args...); err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}

func scanAPIKey(row pgx.Row) (APIKey, error) {
	var k APIKey
	if err := row.Scan(&k.ID, &k.TenantID, &k.UserID, &k.Name, &k.KeyPrefix, &k.HashedKey, &k.CreatedAt, &k.LastUsedAt, &k.ExpiresAt); err != nil {
		return APIKey{}, err
	}
	return k, nil
}
