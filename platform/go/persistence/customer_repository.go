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

const CustomersTable = "customers"

const customerColumns = `id, tenant_id, name, email, customer_data, created_by, created_at, updated_at, updated_by`

// Customer represents a row in the customers table.
type Customer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     *string
	Data      map[string]any
	CreatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy *uuid.UUID
}

var (
	// ErrCustomerNotFound indicates a missing (or invisible) customer.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCustomerConflict indicates a duplicated email within a tenant.
	ErrCustomerConflict = errors.New("customer conflict")
)

// CustomerStore exposes persistence helpers for the customers table.
type CustomerStore struct{}

// NewCustomerStore returns a store instance.
func NewCustomerStore() *CustomerStore { return &CustomerStore{} }

// CreateCustomerParams captures the fields required to insert a customer.
type CreateCustomerParams struct {
	TenantID  uuid.UUID
	Name      string
	Email     *string
	Data      map[string]any
	CreatedBy uuid.UUID
}

// Create inserts a customer.
func (st *CustomerStore) Create(ctx context.Context, s *Session, params CreateCustomerParams) (Customer, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, tenant_id, name, email, customer_data, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        RETURNING %s
    `, CustomersTable, customerColumns),
		uuid.New(), params.TenantID, strings.TrimSpace(params.Name), normalizeEmail(params.Email), params.Data, nullableUUID(params.CreatedBy),
	)

	customer, err := scanCustomer(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, ErrCustomerConflict
		}
		return Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return customer, nil
}

// Get returns a customer of the session tenant.
func (st *CustomerStore) Get(ctx context.Context, s *Session, id uuid.UUID) (Customer, error) {
	args := []any{id}
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE id = $1 AND %s
    `, customerColumns, CustomersTable, scope), args...)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrCustomerNotFound
		}
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

// List returns the customers of a tenant, newest first, plus the total count.
func (st *CustomerStore) List(ctx context.Context, s *Session, tenantID uuid.UUID, skip, limit int) ([]Customer, int, error) {
	limit = clampLimit(limit, 100, 1000)

	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	var total int
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND %s
    `, CustomersTable, scope), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	if total == 0 {
		return []Customer{}, 0, nil
	}

	args = append(args, limit, max(skip, 0))
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s
        WHERE tenant_id = $1 AND %s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d
    `, customerColumns, CustomersTable, scope, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	for rows.Next() {
		customer, scanErr := scanCustomer(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", scanErr)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, total, nil
}

// UpdateCustomerParams holds the editable customer fields; nil leaves a column unchanged.
type UpdateCustomerParams struct {
	Name      *string
	Email     *string
	Data      map[string]any
	UpdatedBy uuid.UUID
}

// Update applies the provided fields. A non-nil Data replaces the stored document.
func (st *CustomerStore) Update(ctx context.Context, s *Session, id uuid.UUID, params UpdateCustomerParams) (Customer, error) {
	setParts := []string{}
	var args []any

	if params.Name != nil {
		args = append(args, strings.TrimSpace(*params.Name))
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Email != nil {
		args = append(args, normalizeEmail(params.Email))
		setParts = append(setParts, fmt.Sprintf("email = $%d", len(args)))
	}
	if params.Data != nil {
		args = append(args, params.Data)
		setParts = append(setParts, fmt.Sprintf("customer_data = $%d", len(args)))
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
    `, CustomersTable, strings.Join(setParts, ", "), idPos, scope, customerColumns), args...)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrCustomerNotFound
		}
		if isUniqueViolation(err) {
			return Customer{}, ErrCustomerConflict
		}
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// Delete removes a customer.
func (st *CustomerStore) Delete(ctx context.Context, s *Session, id uuid.UUID) error {
	args := []any{id}
	scope := scopeClause(s, "tenant_id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s`, CustomersTable, scope), args...)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// normalizeEmail lower-cases an address so the per-tenant uniqueness ignores case. Blank becomes NULL.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil
	}
	return &v
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Data, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.UpdatedBy); err != nil {
		return Customer{}, err
	}
	return c, nil
}
