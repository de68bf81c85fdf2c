package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository defines the persistence operations required by the custom objects service.
type Repository interface {
	CreateObject(ctx context.Context, s *persistence.Session, params persistence.CreateObjectParams) (persistence.CustomObject, error)
	GetObject(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, slug string) (persistence.CustomObject, error)
	ListObjects(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]persistence.CustomObject, error)
	CreateField(ctx context.Context, s *persistence.Session, params persistence.CreateFieldParams) (persistence.CustomField, error)

	CreateRecord(ctx context.Context, s *persistence.Session, params persistence.CreateRecordParams) (persistence.Record, error)
	GetRecord(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID) (persistence.Record, error)
	GetRecordForUpdate(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID) (persistence.Record, error)
	ListRecords(ctx context.Context, s *persistence.Session, objectID uuid.UUID, skip, limit int) ([]persistence.Record, int, error)
	ReplaceRecord(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID, data map[string]any, updatedBy uuid.UUID) (persistence.Record, error)
	DeleteRecord(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID) error

	Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

type postgresRepository struct {
	objects *persistence.CustomObjectStore
	audit   *persistence.AuditLogStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(objects *persistence.CustomObjectStore, audit *persistence.AuditLogStore) Repository {
	if objects == nil || audit == nil {
		panic("custom object and audit stores are required")
	}
	return &postgresRepository{objects: objects, audit: audit}
}

func (r *postgresRepository) CreateObject(ctx context.Context, s *persistence.Session, params persistence.CreateObjectParams) (persistence.CustomObject, error) {
	return r.objects.CreateObject(ctx, s, params)
}

func (r *postgresRepository) GetObject(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, slug string) (persistence.CustomObject, error) {
	return r.objects.GetObjectBySlug(ctx, s, tenantID, slug)
}

func (r *postgresRepository) ListObjects(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]persistence.CustomObject, error) {
	return r.objects.ListObjects(ctx, s, tenantID)
}

func (r *postgresRepository) CreateField(ctx context.Context, s *persistence.Session, params persistence.CreateFieldParams) (persistence.CustomField, error) {
	return r.objects.CreateField(ctx, s, params)
}

func (r *postgresRepository) CreateRecord(ctx context.Context, s *persistence.Session, params persistence.CreateRecordParams) (persistence.Record, error) {
	return r.objects.CreateRecord(ctx, s, params)
}

func (r *postgresRepository) GetRecord(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID) (persistence.Record, error) {
	return r.objects.GetRecord(ctx, s, objectID, id)
}

func (r *postgresRepository) GetRecordForUpdate(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID) (persistence.Record, error) {
	return r.objects.GetRecordForUpdate(ctx, s, objectID, id)
}

func (r *postgresRepository) ListRecords(ctx context.Context, s *persistence.Session, objectID uuid.UUID, skip, limit int) ([]persistence.Record, int, error) {
	return r.objects.ListRecords(ctx, s, objectID, skip, limit)
}

func (r *postgresRepository) ReplaceRecord(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID, data map[string]any, updatedBy uuid.UUID) (persistence.Record, error) {
	return r.objects.ReplaceRecordData(ctx, s, objectID, id, data, updatedBy)
}

func (r *postgresRepository) DeleteRecord(ctx context.Context, s *persistence.Session, objectID, id uuid.UUID) error {
	return r.objects.DeleteRecord(ctx, s, objectID, id)
}

func (r *postgresRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	return r.audit.Insert(ctx, s, tenantID, userID, action, details)
}
