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

const ItemsTable = "items"

const itemColumns = `id, tenant_id, name, price, quantity, image_path, created_by, created_at, updated_at, updated_by`

// Item represents a row in the items table. Price is in cents.
type Item struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Price     int64
	Quantity  int64
	ImagePath *string
	CreatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy *uuid.UUID
}

// ErrItemNotFound indicates a missing (or invisible) item.
var ErrItemNotFound = errors.New("item not found")

// ItemStore exposes persistence helpers for the items table.
type ItemStore struct{}

// NewItemStore returns a store instance.
func NewItemStore() *ItemStore { return &ItemStore{} }

// CreateItemParams captures the fields required to insert an item.
type CreateItemParams struct {
	TenantID  uuid.UUID
	Name      string
	Price     int64
	Quantity  int64
	CreatedBy uuid.UUID
}

// Create inserts an item.
func (st *ItemStore) Create(ctx context.Context, s *Session, params CreateItemParams) (Item, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, tenant_id, name, price, quantity, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        RETURNING %s
    `, ItemsTable, itemColumns),
		uuid.New(), params.TenantID, strings.TrimSpace(params.Name), params.Price, params.Quantity, nullableUUID(params.CreatedBy),
	)

	item, err := scanItem(row)
	if err != nil {
		return Item{}, fmt.Errorf("insert item: %w", err)
	}
	return item, nil
}

// Get returns an item of the session tenant.
func (st *ItemStore) Get(ctx context.Context, s *Session, id uuid.UUID) (Item, error) {
	args := []any{id}
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE id = $1 AND %s
    `, itemColumns, ItemsTable, scope), args...)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns the items of a tenant, newest first, plus the total count.
func (st *ItemStore) List(ctx context.Context, s *Session, tenantID uuid.UUID, skip, limit int) ([]Item, int, error) {
	limit = clampLimit(limit, 100, 1000)

	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	var total int
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND %s
    `, ItemsTable, scope), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	if total == 0 {
		return []Item{}, 0, nil
	}

	args = append(args, limit, max(skip, 0))
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s
        WHERE tenant_id = $1 AND %s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d
    `, itemColumns, ItemsTable, scope, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan item: %w", scanErr)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}
	return items, total, nil
}

// UpdateItemParams holds the editable item fields; nil leaves a column unchanged.
type UpdateItemParams struct {
	Name      *string
	Price     *int64
	Quantity  *int64
	ImagePath *string
	UpdatedBy uuid.UUID
}

// Update applies the provided fields.
func (st *ItemStore) Update(ctx context.Context, s *Session, id uuid.UUID, params UpdateItemParams) (Item, error) {
	setParts := []string{}
	var args []any

	if params.Name != nil {
		args = append(args, strings.TrimSpace(*params.Name))
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Price != nil {
		args = append(args, *params.Price)
		setParts = append(setParts, fmt.Sprintf("price = $%d", len(args)))
	}
	if params.Quantity != nil {
		args = append(args, *params.Quantity)
		setParts = append(setParts, fmt.Sprintf("quantity = $%d", len(args)))
	}
	if params.ImagePath != nil {
		args = append(args, *params.ImagePath)
		setParts = append(setParts, fmt.Sprintf("image_path = $%d", len(args)))
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
    `, ItemsTable, strings.Join(setParts, ", "), idPos, scope, itemColumns), args...)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes an item.
func (st *ItemStore) Delete(ctx context.Context, s *Session, id uuid.UUID) error {
	args := []any{id}
	scope := scopeClause(s, "tenant_id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s`, ItemsTable, scope), args...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (Item, error) {
	var i Item
	if err := row.Scan(&i.ID, &i.TenantID, &i.Name, &i.Price, &i.Quantity, &i.ImagePath, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt, &i.UpdatedBy); err != nil {
		return Item{}, err
	}
	return i, nil
}
