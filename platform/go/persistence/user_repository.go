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

const UsersTable = "users"

const userColumns = `u.id, u.email, u.tenant_id, u.role_id, u.terms_accepted_at, u.created_at, u.updated_at`

// User represents a row in the users table.
type User struct {
	ID              uuid.UUID
	Email           string
	TenantID        *uuid.UUID
	RoleID          *uuid.UUID
	TermsAcceptedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TermsAccepted reports whether the user accepted the terms of service.
func (u User) TermsAccepted() bool { return u.TermsAcceptedAt != nil }

var (
	// ErrUserNotFound indicates a missing (or invisible) user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserConflict indicates a uniqueness violation (e.g., duplicated email).
	ErrUserConflict = errors.New("user conflict")
)

// UserStore exposes persistence helpers for the users table.
type UserStore struct{}

// NewUserStore returns a store instance.
func NewUserStore() *UserStore { return &UserStore{} }

// CreateUserParams captures the fields required to insert a new user record.
type CreateUserParams struct {
	ID              uuid.UUID
	Email           string
	TenantID        uuid.UUID
	RoleID          uuid.UUID
	TermsAcceptedAt *time.Time
	CreatedBy       uuid.UUID
}

// Create inserts a new user and returns the persisted record.
func (st *UserStore) Create(ctx context.Context, s *Session, params CreateUserParams) (User, error) {
	if params.ID == uuid.Nil {
		return User{}, errors.New("user id is required")
	}

	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s AS u (id, email, tenant_id, role_id, terms_accepted_at, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        RETURNING %s
    `, UsersTable, userColumns),
		params.ID,
		strings.ToLower(strings.TrimSpace(params.Email)),
		nullableUUID(params.TenantID),
		nullableUUID(params.RoleID),
		params.TermsAcceptedAt,
		nullableUUID(params.CreatedBy),
	)

	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUserConflict
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Get returns a user visible to the session: members of the session tenant or the caller's own profile.
func (st *UserStore) Get(ctx context.Context, s *Session, id uuid.UUID) (User, error) {
	args := []any{id}
	visible := userVisibility(s, &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s u
        WHERE u.id = $1 AND %s
    `, userColumns, UsersTable, visible), args...)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetWithRole returns the user together with its role, if one is assigned.
func (st *UserStore) GetWithRole(ctx context.Context, s *Session, id uuid.UUID) (User, *Role, error) {
	args := []any{id}
	visible := userVisibility(s, &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s,
               r.id, r.tenant_id, r.name, r.permission_set, r.is_admin_role, r.created_at, r.updated_at
        FROM %s u
        LEFT JOIN %s r ON r.id = u.role_id
        WHERE u.id = $1 AND %s
    `, userColumns, UsersTable, RolesTable, visible), args...)

	var (
		u        User
		roleID   *uuid.UUID
		tenantID *uuid.UUID
		name     *string
		perms    *int64
		isAdmin  *bool
		created  *time.Time
		updated  *time.Time
	)
	if err := row.Scan(
		&u.ID, &u.Email, &u.TenantID, &u.RoleID, &u.TermsAcceptedAt, &u.CreatedAt, &u.UpdatedAt,
		&roleID, &tenantID, &name, &perms, &isAdmin, &created, &updated,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, nil, ErrUserNotFound
		}
		return User{}, nil, fmt.Errorf("get user with role: %w", err)
	}

	if roleID == nil {
		return u, nil, nil
	}
	role := &Role{
		ID:          *roleID,
		TenantID:    *tenantID,
		Name:        *name,
		Permissions: *perms,
		IsAdminRole: *isAdmin,
		CreatedAt:   *created,
		UpdatedAt:   *updated,
	}
	return u, role, nil
}

// FindByEmail looks a user up by normalized email.
func (st *UserStore) FindByEmail(ctx context.Context, s *Session, email string) (User, error) {
	args := []any{strings.ToLower(strings.TrimSpace(email))}
	visible := userVisibility(s, &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s u
        WHERE u.email = $1 AND %s
    `, userColumns, UsersTable, visible), args...)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// ListUsersParams captures pagination for List.
type ListUsersParams struct {
	TenantID uuid.UUID
	Skip     int
	Limit    int
}

// List returns the users of a tenant ordered by creation time, plus the total count.
func (st *UserStore) List(ctx context.Context, s *Session, params ListUsersParams) ([]User, int, error) {
	limit := clampLimit(params.Limit, 100, 1000)

	args := []any{params.TenantID}
	scope := scopeClause(s, "u.tenant_id", &args)

	var total int
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s u WHERE u.tenant_id = $1 AND %s
    `, UsersTable, scope), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	if total == 0 {
		return []User{}, 0, nil
	}

	args = append(args, limit, max(params.Skip, 0))
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s u
        WHERE u.tenant_id = $1 AND %s
        ORDER BY u.created_at ASC
        LIMIT $%d OFFSET $%d
    `, userColumns, UsersTable, scope, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan user: %w", scanErr)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}
	return users, total, nil
}

// CountByTenant returns the number of users in a tenant.
func (st *UserStore) CountByTenant(ctx context.Context, s *Session, tenantID uuid.UUID) (int64, error) {
	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	var count int64
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND %s
    `, UsersTable, scope), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tenant users: %w", err)
	}
	return count, nil
}

// LockAdmins returns the ids of users holding an admin-flagged role in the tenant and locks those rows,
// serializing concurrent demotions.
func (st *UserStore) LockAdmins(ctx context.Context, s *Session, tenantID uuid.UUID) ([]uuid.UUID, error) {
	args := []any{tenantID}
	scope := scopeClause(s, "u.tenant_id", &args)

	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT u.id FROM %s u
        JOIN %s r ON r.id = u.role_id
        WHERE u.tenant_id = $1 AND r.is_admin_role AND %s
        ORDER BY u.id
        FOR UPDATE OF u
    `, UsersTable, RolesTable, scope), args...)
	if err != nil {
		return nil, fmt.Errorf("lock tenant admins: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan admin id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admins: %w", err)
	}
	return ids, nil
}

// CountByRole returns how many users reference the role.
func (st *UserStore) CountByRole(ctx context.Context, s *Session, roleID uuid.UUID) (int64, error) {
	args := []any{roleID}
	scope := scopeClause(s, "tenant_id", &args)

	var count int64
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE role_id = $1 AND %s
    `, UsersTable, scope), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count role users: %w", err)
	}
	return count, nil
}

// UpdateRole assigns a role to a user of the session tenant.
func (st *UserStore) UpdateRole(ctx context.Context, s *Session, id, roleID, updatedBy uuid.UUID) (User, error) {
	args := []any{roleID, nullableUUID(updatedBy), id}
	scope := scopeClause(s, "u.tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s u
        SET role_id = $1, updated_by = $2, updated_at = NOW()
        WHERE u.id = $3 AND %s
        RETURNING %s
    `, UsersTable, scope, userColumns), args...)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("update user role: %w", err)
	}
	return user, nil
}

// AcceptTerms stamps terms_accepted_at for the user when it is not already set.
func (st *UserStore) AcceptTerms(ctx context.Context, s *Session, id uuid.UUID, at time.Time) (User, error) {
	args := []any{at, id}
	visible := userVisibility(s, &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s u
        SET terms_accepted_at = $1, updated_at = NOW()
        WHERE u.id = $2 AND u.terms_accepted_at IS NULL AND %s
        RETURNING %s
    `, UsersTable, visible, userColumns), args...)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("accept terms: %w", err)
	}
	return user, nil
}

// Delete removes a user of the session tenant.
func (st *UserStore) Delete(ctx context.Context, s *Session, id uuid.UUID) error {
	args := []any{id}
	scope := scopeClause(s, "tenant_id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s`, UsersTable, scope), args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// userVisibility mirrors the users RLS policy: same tenant, or the caller's own row.
func userVisibility(s *Session, args *[]any) string {
	scope := s.Scope()
	if scope.Superadmin {
		return "TRUE"
	}
	*args = append(*args, scope.TenantID, scope.UserID)
	return fmt.Sprintf("(u.tenant_id = $%d OR u.id = $%d)", len(*args)-1, len(*args))
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.TenantID, &u.RoleID, &u.TermsAcceptedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}
