package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/custom-objects/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/customfields"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
)

// Audit actions written by this service.
const (
	ActionObjectCreated = "CUSTOM_OBJECT_CREATED"
	ActionFieldCreated  = "CUSTOM_FIELD_CREATED"
)

// Domain sentinel errors.
var (
	ErrObjectNotFound = apperr.WithCode(apperr.KindNotFound, "CUSTOM_OBJECT_NOT_FOUND", "Custom object not found.")
	ErrRecordNotFound = apperr.WithCode(apperr.KindNotFound, "RECORD_NOT_FOUND", "Record not found.")
	ErrObjectConflict = apperr.WithCode(apperr.KindConflict, "CUSTOM_OBJECT_EXISTS", "A custom object with this slug already exists.")
	ErrFieldConflict  = apperr.WithCode(apperr.KindConflict, "CUSTOM_FIELD_EXISTS", "A field with this slug already exists for this object.")
)

// Field is the domain view of a field definition.
type Field struct {
	ID        uuid.UUID
	ObjectID  uuid.UUID
	Name      string
	Slug      string
	Type      string
	Required  bool
	Options   []string
	CreatedAt time.Time
}

// Object is a tenant-defined object type.
type Object struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Fields    []Field
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record is a stored instance of an object.
type Record struct {
	ID        uuid.UUID
	ObjectID  uuid.UUID
	Data      map[string]any
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy *uuid.UUID
}

// CreateObjectInput defines a new object.
type CreateObjectInput struct {
	Name string
	Slug string
}

// CreateFieldInput defines a new field on an object.
type CreateFieldInput struct {
	Name     string
	Slug     string
	Type     string
	Required bool
	Options  []string
}

// ListOptions controls record pagination.
type ListOptions struct {
	Skip  int
	Limit int
}

// RecordPage wraps a page of records.
type RecordPage struct {
	Records []Record
	Total   int
	Skip    int
	Limit   int
}

// Service defines the operations on custom objects and their records.
type Service interface {
	CreateObject(ctx context.Context, id auth.Identity, input CreateObjectInput) (Object, error)
	ListObjects(ctx context.Context, id auth.Identity) ([]Object, error)
	GetObject(ctx context.Context, id auth.Identity, slug string) (Object, error)
	AddField(ctx context.Context, id auth.Identity, slug string, input CreateFieldInput) (Field, error)

	CreateRecord(ctx context.Context, id auth.Identity, slug string, data map[string]any) (Record, error)
	ListRecords(ctx context.Context, id auth.Identity, slug string, opts ListOptions) (RecordPage, error)
	GetRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID) (Record, error)
	PatchRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID, patch map[string]any) (Record, error)
	ReplaceRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID, data map[string]any) (Record, error)
	DeleteRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID) error
}

// Permissions builds permission checks.
type Permissions interface {
	RequirePermission(p permissions.Permission) access.Check
}

// Entitlements gates object creation on a plan limit and meters record creation.
type Entitlements interface {
	Require(featureSlug string) access.Check
	Consume(ctx context.Context, s *persistence.Session, id auth.Identity, featureSlug string, amount int64) error
}

// Config wires the service collaborators.
type Config struct {
	Runner       persistence.Runner
	Repo         repo.Repository
	Permissions  Permissions
	Entitlements Entitlements
	Validator    *customfields.Validator
	Logger       *zap.Logger
}

type service struct {
	runner       persistence.Runner
	repo         repo.Repository
	perms        Permissions
	entitlements Entitlements
	validator    *customfields.Validator
	logger       *zap.Logger
}

// New constructs a custom objects Service instance.
func New(cfg Config) Service {
	if cfg.Runner == nil || cfg.Repo == nil || cfg.Permissions == nil || cfg.Entitlements == nil {
		panic("custom objects service requires runner, repository, permissions and entitlements")
	}
	if cfg.Validator == nil {
		cfg.Validator = customfields.NewValidator()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &service{
		runner:       cfg.Runner,
		repo:         cfg.Repo,
		perms:        cfg.Permissions,
		entitlements: cfg.Entitlements,
		validator:    cfg.Validator,
		logger:       cfg.Logger,
	}
}

func (s *service) CreateObject(ctx context.Context, id auth.Identity, input CreateObjectInput) (Object, error) {
	slug, err := persistence.NormalizeIdentifier(input.Slug)
	if err != nil {
		return Object{}, apperr.ValidationField("slug", err.Error())
	}

	var out Object
	err = s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id,
			access.RequireTenantMember(),
			s.perms.RequirePermission(permissions.CustomObjectsCreate),
			s.entitlements.Require(entitlements.FeatureMaxCustomObjects),
		); err != nil {
			return err
		}

		obj, err := s.repo.CreateObject(ctx, sess, persistence.CreateObjectParams{
			TenantID:  id.Tenant(),
			Name:      input.Name,
			Slug:      slug,
			CreatedBy: id.UserID,
		})
		if err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"object_id": obj.ID.String(),
			"slug":      obj.Slug,
		})
		if err := s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionObjectCreated, details); err != nil {
			return err
		}

		out = mapObject(obj)
		return nil
	})
	return out, err
}

func (s *service) ListObjects(ctx context.Context, id auth.Identity) ([]Object, error) {
	var out []Object
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomObjectsRead); err != nil {
			return err
		}
		objects, err := s.repo.ListObjects(ctx, sess, id.Tenant())
		if err != nil {
			return err
		}
		out = make([]Object, 0, len(objects))
		for _, obj := range objects {
			out = append(out, mapObject(obj))
		}
		return nil
	})
	return out, err
}

func (s *service) GetObject(ctx context.Context, id auth.Identity, slug string) (Object, error) {
	var out Object
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomObjectsRead); err != nil {
			return err
		}
		obj, err := s.repo.GetObject(ctx, sess, id.Tenant(), slug)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapObject(obj)
		return nil
	})
	return out, err
}

func (s *service) AddField(ctx context.Context, id auth.Identity, slug string, input CreateFieldInput) (Field, error) {
	fieldSlug, err := persistence.NormalizeIdentifier(input.Slug)
	if err != nil {
		return Field{}, apperr.ValidationField("slug", err.Error())
	}
	kind, err := customfields.ParseKind(input.Type)
	if err != nil {
		return Field{}, apperr.ValidationField("field_type", err.Error())
	}
	def := customfields.Definition{Slug: fieldSlug, Name: input.Name, Kind: kind, Required: input.Required, Options: input.Options}
	if err := def.Check(); err != nil {
		return Field{}, apperr.ValidationField("options", err.Error())
	}

	var out Field
	err = s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomObjectsCreate); err != nil {
			return err
		}
		obj, err := s.repo.GetObject(ctx, sess, id.Tenant(), slug)
		if err != nil {
			return mapPersistenceError(err)
		}

		field, err := s.repo.CreateField(ctx, sess, persistence.CreateFieldParams{
			ObjectID:  obj.ID,
			TenantID:  obj.TenantID,
			Name:      def.Name,
			Slug:      def.Slug,
			Type:      string(def.Kind),
			Required:  def.Required,
			Options:   def.Options,
			CreatedBy: id.UserID,
		})
		if err != nil {
			if errors.Is(err, persistence.ErrCustomObjectConflict) {
				return ErrFieldConflict
			}
			return err
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"object_id":  obj.ID.String(),
			"field_slug": field.Slug,
			"field_type": field.Type,
		})
		if err := s.repo.Audit(ctx, sess, obj.TenantID, id.UserID, ActionFieldCreated, details); err != nil {
			return err
		}

		out = mapField(field)
		return nil
	})
	return out, err
}

// CreateRecord meters one unit of the records feature before writing. A rejected payload rolls the usage
// entry back with the rest of the transaction.
func (s *service) CreateRecord(ctx context.Context, id auth.Identity, slug string, data map[string]any) (Record, error) {
	var out Record
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.RecordsCreate); err != nil {
			return err
		}
		if err := s.entitlements.Consume(ctx, sess, id, entitlements.FeatureRecords, 1); err != nil {
			return err
		}

		obj, err := s.repo.GetObject(ctx, sess, id.Tenant(), slug)
		if err != nil {
			return mapPersistenceError(err)
		}
		valid, err := s.validator.Validate(definitions(obj.Fields), data)
		if err != nil {
			return err
		}

		record, err := s.repo.CreateRecord(ctx, sess, persistence.CreateRecordParams{
			ObjectID:  obj.ID,
			TenantID:  obj.TenantID,
			Data:      valid,
			CreatedBy: id.UserID,
		})
		if err != nil {
			return err
		}
		out = mapRecord(record)
		return nil
	})
	return out, err
}

func (s *service) ListRecords(ctx context.Context, id auth.Identity, slug string, opts ListOptions) (RecordPage, error) {
	var out RecordPage
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.RecordsRead); err != nil {
			return err
		}
		obj, err := s.repo.GetObject(ctx, sess, id.Tenant(), slug)
		if err != nil {
			return mapPersistenceError(err)
		}
		records, total, err := s.repo.ListRecords(ctx, sess, obj.ID, opts.Skip, opts.Limit)
		if err != nil {
			return err
		}
		out = RecordPage{Records: make([]Record, 0, len(records)), Total: total, Skip: opts.Skip, Limit: opts.Limit}
		for _, r := range records {
			out.Records = append(out.Records, mapRecord(r))
		}
		return nil
	})
	return out, err
}

func (s *service) GetRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID) (Record, error) {
	var out Record
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.RecordsRead); err != nil {
			return err
		}
		obj, err := s.repo.GetObject(ctx, sess, id.Tenant(), slug)
		if err != nil {
			return mapPersistenceError(err)
		}
		record, err := s.repo.GetRecord(ctx, sess, obj.ID, recordID)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapRecord(record)
		return nil
	})
	return out, err
}

// PatchRecord validates only the supplied fields and enforces required fields on the merged result.
func (s *service) PatchRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID, patch map[string]any) (Record, error) {
	return s.rewrite(ctx, id, slug, recordID, func(defs []customfields.Definition, current map[string]any) (map[string]any, error) {
		return s.validator.ValidatePatch(defs, current, patch)
	})
}

// ReplaceRecord validates data as a complete payload and overwrites the stored one.
func (s *service) ReplaceRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID, data map[string]any) (Record, error) {
	return s.rewrite(ctx, id, slug, recordID, func(defs []customfields.Definition, _ map[string]any) (map[string]any, error) {
		return s.validator.Validate(defs, data)
	})
}

func (s *service) rewrite(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID, build func([]customfields.Definition, map[string]any) (map[string]any, error)) (Record, error) {
	var out Record
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.RecordsUpdate); err != nil {
			return err
		}
		obj, err := s.repo.GetObject(ctx, sess, id.Tenant(), slug)
		if err != nil {
			return mapPersistenceError(err)
		}
		current, err := s.repo.GetRecordForUpdate(ctx, sess, obj.ID, recordID)
		if err != nil {
			return mapPersistenceError(err)
		}

		data, err := build(definitions(obj.Fields), current.Data)
		if err != nil {
			return err
		}
		record, err := s.repo.ReplaceRecord(ctx, sess, obj.ID, recordID, data, id.UserID)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapRecord(record)
		return nil
	})
	return out, err
}

func (s *service) DeleteRecord(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID) error {
	return s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.RecordsDelete); err != nil {
			return err
		}
		obj, err := s.repo.GetObject(ctx, sess, id.Tenant(), slug)
		if err != nil {
			return mapPersistenceError(err)
		}
		return mapPersistenceError(s.repo.DeleteRecord(ctx, sess, obj.ID, recordID))
	})
}

func (s *service) enforce(ctx context.Context, sess *persistence.Session, id auth.Identity, p permissions.Permission) error {
	return access.Enforce(ctx, sess, id, access.RequireTenantMember(), s.perms.RequirePermission(p))
}

func definitions(fields []persistence.CustomField) []customfields.Definition {
	defs := make([]customfields.Definition, 0, len(fields))
	for _, f := range fields {
		defs = append(defs, customfields.Definition{
			Slug:     f.Slug,
			Name:     f.Name,
			Kind:     customfields.Kind(f.Type),
			Required: f.Required,
			Options:  f.Options,
		})
	}
	return defs
}

func mapObject(o persistence.CustomObject) Object {
	out := Object{ID: o.ID, Name: o.Name, Slug: o.Slug, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt, Fields: make([]Field, 0, len(o.Fields))}
	for _, f := range o.Fields {
		out.Fields = append(out.Fields, mapField(f))
	}
	return out
}

func mapField(f persistence.CustomField) Field {
	return Field{
		ID:        f.ID,
		ObjectID:  f.ObjectID,
		Name:      f.Name,
		Slug:      f.Slug,
		Type:      f.Type,
		Required:  f.Required,
		Options:   f.Options,
		CreatedAt: f.CreatedAt,
	}
}

func mapRecord(r persistence.Record) Record {
	data := r.Data
	if data == nil {
		data = map[string]any{}
	}
	return Record{
		ID:        r.ID,
		ObjectID:  r.ObjectID,
		Data:      data,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		UpdatedBy: r.UpdatedBy,
	}
}

func mapPersistenceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrCustomObjectNotFound):
		return ErrObjectNotFound
	case errors.Is(err, persistence.ErrCustomObjectConflict):
		return ErrObjectConflict
	case errors.Is(err, persistence.ErrRecordNotFound):
		return ErrRecordNotFound
	default:
		return err
	}
}
