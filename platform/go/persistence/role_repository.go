package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const RolesTable = "user_roles"

const roleColumns = `id, tenant_id, name, permission_set, is_admin_role, created_at, updated_at`

// Role represents a row in the user_roles table. Permissions holds the raw bitmask.
type Role struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        string
	Permissions int64
	IsAdminRole bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	// ErrRoleNotFound indicates a missing (or invisible) role.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleConflict indicates a duplicated role name within a tenant.
	ErrRoleConflict = errors.New("role conflict")
	// ErrRoleInUse indicates users still reference the role.
	ErrRoleInUse = errors.New("role in use")
)

// RoleStore exposes persistence helpers for the user_roles table.
type RoleStore struct{}

// NewRoleStore returns a store instance.
func NewRoleStore() *RoleStore { return &RoleStore{} }

// CreateRoleParams captures the fields required to insert a role.
type CreateRoleParams struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        string
	Permissions int64
	IsAdminRole bool
	CreatedBy   uuid.UUID
}

// Create inserts a role.
func (st *RoleStore) Create(ctx context.Context, s *Session, params CreateRoleParams) (Role, error) {
	if params.ID == uuid.Nil {
		params.ID = uuid.New()
	}

	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, tenant_id, name, permission_set, is_admin_role, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        RETURNING %s
    `, RolesTable, roleColumns),
		params.ID, params.TenantID, strings.TrimSpace(params.Name), params.Permissions, params.IsAdminRole, nullableUUID(params.CreatedBy),
	)

	role, err := scanRole(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Role{}, ErrRoleConflict
		}
		return Role{}, fmt.Errorf("insert role: %w", err)
	}
	return role, nil
}

// Get returns a role of the session tenant.
func (st *RoleStore) Get(ctx context.Context, s *Session, id uuid.UUID) (Role, error) {
	args := []any{id}
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE id = $1 AND %s
    `, roleColumns, RolesTable, scope), args...)

	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// List returns the roles of a tenant ordered by name.
func (st *RoleStore) List(ctx context.Context, s *Session, tenantID uuid.UUID) ([]Role, error) {
	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE tenant_id = $1 AND %s ORDER BY name ASC
    `, roleColumns, RolesTable, scope), args...)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]Role, 0)
	for rows.Next() {
		role, scanErr := scanRole(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan role: %w", scanErr)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return roles, nil
}

// UpdateRoleParams holds the editable role fields; nil leaves a column unchanged.
type UpdateRoleParams struct {
	Name        *string
	Permissions *int64
	UpdatedBy   uuid.UUID
}

// Update applies the provided fields.
func (st *RoleStore) Update(ctx context.Context, s *Session, id uuid.UUID, params UpdateRoleParams) (Role, error) {
	setParts := []string{}
	var args []any

	if params.Name != nil {
		args = append(args, strings.TrimSpace(*params.Name))
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Permissions != nil {
		args = append(args, *params.Permissions)
		setParts = append(setParts, fmt.Sprintf("permission_set = $%d", len(args)))
	}
	if len(setParts) == 0 {
		return st.Get(ctx, s, id)
	}

	args = append(args, nullableUUID(params.UpdatedBy))
	setParts = append(setParts, fmt.Sprintf("updated_by = $%d", len(args)))
	args = append(args, id)
	idPos := len(args)
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s
        SET %s, updated_at = NOW()
        WHERE id = $%d AND %s
        RETURNING %s
    `, RolesTable, strings.Join(setParts, ", "), idPos, scope, roleColumns), args...)

	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		if isUniqueViolation(err) {
			return Role{}, ErrRoleConflict
		}
		return Role{}, fmt.Errorf("update role: %w", err)
	}
	return role, nil
}

// Delete removes a role. Roles still referenced by users are refused by the foreign key.
func (st *RoleStore) Delete(ctx context.Context, s *Session, id uuid.UUID) error {
	args := []any{id}
	scope := scopeClause(s, "tenant_id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s`, RolesTable, scope), args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrRoleInUse
		}
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoleNotFound
	}
	return nil
}

func scanRole(row pgx.Row) (Role, error) {
	var r Role
	if err := row.Scan(&r.ID, &r.TenantID, &r.Name, &r.Permissions, &r.IsAdminRole, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return Role{}, err
	}
	return r, nil
}
