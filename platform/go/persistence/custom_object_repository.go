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

const (
	CustomObjectsTable = "custom_objects"
	CustomFieldsTable  = "custom_fields"
	RecordsTable       = "records"
)

const (
	customObjectColumns = `id, tenant_id, name, slug, created_by, created_at, updated_at`
	customFieldColumns  = `id, object_id, tenant_id, name, slug, field_type, is_required, options, created_at`
	recordColumns       = `id, object_id, tenant_id, data, created_by, created_at, updated_at, updated_by`
)

// CustomObject represents a tenant-defined object type together with its fields.
type CustomObject struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Slug      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    []CustomField
}

// CustomField represents a row in custom_fields.
type CustomField struct {
	ID        uuid.UUID
	ObjectID  uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Slug      string
	Type      string
	Required  bool
	Options   []string
	CreatedAt time.Time
}

// Record represents a row in records.
type Record struct {
	ID        uuid.UUID
	ObjectID  uuid.UUID
	TenantID  uuid.UUID
	Data      map[string]any
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy *uuid.UUID
}

var (
	// ErrCustomObjectNotFound indicates a missing (or invisible) custom object.
	ErrCustomObjectNotFound = errors.New("custom object not found")
	// ErrCustomObjectConflict indicates a duplicated object or field slug.
	ErrCustomObjectConflict = errors.New("custom object conflict")
	// ErrRecordNotFound indicates a missing (or invisible) record.
	ErrRecordNotFound = errors.New("record not found")
)

// CustomObjectStore persists custom objects, their fields and their records.
type CustomObjectStore struct{}

// NewCustomObjectStore returns a store instance.
func NewCustomObjectStore() *CustomObjectStore { return &CustomObjectStore{} }

// CreateObjectParams captures a new object definition.
type CreateObjectParams struct {
	TenantID  uuid.UUID
	Name      string
	Slug      string
	CreatedBy uuid.UUID
}

// CreateObject inserts a custom object.
func (st *CustomObjectStore) CreateObject(ctx context.Context, s *Session, params CreateObjectParams) (CustomObject, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, tenant_id, name, slug, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s
    `, CustomObjectsTable, customObjectColumns),
		uuid.New(), params.TenantID, strings.TrimSpace(params.Name), params.Slug, params.CreatedBy,
	)

	obj, err := scanCustomObject(row)
	if err != nil {
		if isUniqueViolation(err) {
			return CustomObject{}, ErrCustomObjectConflict
		}
		return CustomObject{}, fmt.Errorf("insert custom object: %w", err)
	}
	obj.Fields = []CustomField{}
	return obj, nil
}

// GetObjectBySlug returns an object of the tenant with its fields.
func (st *CustomObjectStore) GetObjectBySlug(ctx context.Context, s *Session, tenantID uuid.UUID, slug string) (CustomObject, error) {
	args := []any{tenantID, slug}
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE tenant_id = $1 AND slug = $2 AND %s
    `, customObjectColumns, CustomObjectsTable, scope), args...)

	obj, err := scanCustomObject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CustomObject{}, ErrCustomObjectNotFound
		}
		return CustomObject{}, fmt.Errorf("get custom object: %w", err)
	}

	fields, err := st.ListFields(ctx, s, obj.ID)
	if err != nil {
		return CustomObject{}, err
	}
	obj.Fields = fields
	return obj, nil
}

// ListObjects returns the tenant's objects ordered by name, without fields.
func (st *CustomObjectStore) ListObjects(ctx context.Context, s *Session, tenantID uuid.UUID) ([]CustomObject, error) {
	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE tenant_id = $1 AND %s ORDER BY name ASC
    `, customObjectColumns, CustomObjectsTable, scope), args...)
	if err != nil {
		return nil, fmt.Errorf("list custom objects: %w", err)
	}
	defer rows.Close()

	objects := make([]CustomObject, 0)
	for rows.Next() {
		obj, scanErr := scanCustomObject(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan custom object: %w", scanErr)
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom objects: %w", err)
	}
	return objects, nil
}

// CountObjects returns the number of objects defined by a tenant.
func (st *CustomObjectStore) CountObjects(ctx context.Context, s *Session, tenantID uuid.UUID) (int64, error) {
	args := []any{tenantID}
	scope := scopeClause(s, "tenant_id", &args)

	var count int64
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE tenant_id = $1 AND %s
    `, CustomObjectsTable, scope), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count custom objects: %w", err)
	}
	return count, nil
}

// CreateFieldParams captures a new field definition.
type CreateFieldParams struct {
	ObjectID  uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Slug      string
	Type      string
	Required  bool
	Options   []string
	CreatedBy uuid.UUID
}

// CreateField adds a field to an object.
func (st *CustomObjectStore) CreateField(ctx context.Context, s *Session, params CreateFieldParams) (CustomField, error) {
	var options any
	if len(params.Options) > 0 {
		options = params.Options
	}

	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, object_id, tenant_id, name, slug, field_type, is_required, options, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING %s
    `, CustomFieldsTable, customFieldColumns),
		uuid.New(), params.ObjectID, params.TenantID, strings.TrimSpace(params.Name), params.Slug,
		params.Type, params.Required, options, params.CreatedBy,
	)

	field, err := scanCustomField(row)
	if err != nil {
		if isUniqueViolation(err) {
			return CustomField{}, ErrCustomObjectConflict
		}
		return CustomField{}, fmt.Errorf("insert custom field: %w", err)
	}
	return field, nil
}

// ListFields returns the fields of an object in creation order.
func (st *CustomObjectStore) ListFields(ctx context.Context, s *Session, objectID uuid.UUID) ([]CustomField, error) {
	args := []any{objectID}
	scope := scopeClause(s, "tenant_id", &args)

	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE object_id = $1 AND %s ORDER BY created_at ASC, slug ASC
    `, customFieldColumns, CustomFieldsTable, scope), args...)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer rows.Close()

	fields := make([]CustomField, 0)
	for rows.Next() {
		field, scanErr := scanCustomField(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan custom field: %w", scanErr)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom fields: %w", err)
	}
	return fields, nil
}

// CreateRecordParams captures a validated record payload.
type CreateRecordParams struct {
	ObjectID  uuid.UUID
	TenantID  uuid.UUID
	Data      map[string]any
	CreatedBy uuid.UUID
}

// CreateRecord inserts a record.
func (st *CustomObjectStore) CreateRecord(ctx context.Context, s *Session, params CreateRecordParams) (Record, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, object_id, tenant_id, data, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s
    `, RecordsTable, recordColumns),
		uuid.New(), params.ObjectID, params.TenantID, params.Data, params.CreatedBy,
	)

	record, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}
	return record, nil
}

// GetRecord returns a record of an object.
func (st *CustomObjectStore) GetRecord(ctx context.Context, s *Session, objectID, id uuid.UUID) (Record, error) {
	return st.getRecord(ctx, s, objectID, id, "")
}

// GetRecordForUpdate returns a record and locks it for a read-modify-write.
func (st *CustomObjectStore) GetRecordForUpdate(ctx context.Context, s *Session, objectID, id uuid.UUID) (Record, error) {
	return st.getRecord(ctx, s, objectID, id, "FOR UPDATE")
}

func (st *CustomObjectStore) getRecord(ctx context.Context, s *Session, objectID, id uuid.UUID, suffix string) (Record, error) {
	args := []any{id, objectID}
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE id = $1 AND object_id = $2 AND %s %s
    `, recordColumns, RecordsTable, scope, suffix), args...)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// ListRecords returns the records of an object, newest first, plus the total count.
func (st *CustomObjectStore) ListRecords(ctx context.Context, s *Session, objectID uuid.UUID, skip, limit int) ([]Record, int, error) {
	limit = clampLimit(limit, 100, 1000)

	args := []any{objectID}
	scope := scopeClause(s, "tenant_id", &args)

	var total int
	if err := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT COUNT(*) FROM %s WHERE object_id = $1 AND %s
    `, RecordsTable, scope), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}
	if total == 0 {
		return []Record{}, 0, nil
	}

	args = append(args, limit, max(skip, 0))
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s
        WHERE object_id = $1 AND %s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d
    `, recordColumns, RecordsTable, scope, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan record: %w", scanErr)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate records: %w", err)
	}
	return records, total, nil
}

// ReplaceRecordData overwrites the record payload.
func (st *CustomObjectStore) ReplaceRecordData(ctx context.Context, s *Session, objectID, id uuid.UUID, data map[string]any, updatedBy uuid.UUID) (Record, error) {
	args := []any{data, nullableUUID(updatedBy), id, objectID}
	scope := scopeClause(s, "tenant_id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s
        SET data = $1, updated_by = $2, updated_at = NOW()
        WHERE id = $3 AND object_id = $4 AND %s
        RETURNING %s
    `, RecordsTable, scope, recordColumns), args...)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, fmt.Errorf("update record: %w", err)
	}
	return record, nil
}

// DeleteRecord removes a record.
func (st *CustomObjectStore) DeleteRecord(ctx context.Context, s *Session, objectID, id uuid.UUID) error {
	args := []any{id, objectID}
	scope := scopeClause(s, "tenant_id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`
        DELETE FROM %s WHERE id = $1 AND object_id = $2 AND %s
    `, RecordsTable, scope), args...)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func scanCustomObject(row pgx.Row) (CustomObject, error) {
	var o CustomObject
	if err := row.Scan(&o.ID, &o.TenantID, &o.Name, &o.Slug, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return CustomObject{}, err
	}
	return o, nil
}

func scanCustomField(row pgx.Row) (CustomField, error) {
	var f CustomField
	if err := row.Scan(&f.ID, &f.ObjectID, &f.TenantID, &f.Name, &f.Slug, &f.Type, &f.Required, &f.Options, &f.CreatedAt); err != nil {
		return CustomField{}, err
	}
	return f, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	if err := row.Scan(&r.ID, &r.ObjectID, &r.TenantID, &r.Data, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt, &r.UpdatedBy); err != nil {
		return Record{}, err
	}
	return r, nil
}
