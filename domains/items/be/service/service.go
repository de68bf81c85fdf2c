package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/items/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
	"github.com/zenGate-Global/tenantgate/platform/go/storage"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// Audit actions written by this service.
const (
	ActionItemCreated = "ITEM_CREATED"
	ActionItemUpdated = "ITEM_UPDATED"
	ActionItemDeleted = "ITEM_DELETED"
)

const imageFolder = "items"

// Domain sentinel errors.
var (
	ErrItemNotFound     = apperr.WithCode(apperr.KindNotFound, "ITEM_NOT_FOUND", "Item not found.")
	ErrStorageDisabled  = apperr.New(apperr.KindUnavailable, "object storage is not configured")
	ErrImagePath        = apperr.ValidationField("image_path", "image path must be inside the tenant item prefix")
	ErrImageContentType = apperr.ValidationField("content_type", "content type must be one of image/png, image/jpeg, image/webp, image/svg+xml")
)

// Item is the domain view of an inventory item. Price is in cents.
type Item struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Price     int64
	Quantity  int64
	ImagePath *string
	ImageURL  *string
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput defines a new item.
type CreateInput struct {
	Name     string
	Price    int64
	Quantity int64
}

// UpdateInput holds a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name      *string
	Price     *int64
	Quantity  *int64
	ImagePath *string
}

// ListOptions controls pagination.
type ListOptions struct {
	Skip  int
	Limit int
}

// Page wraps a page of items.
type Page struct {
	Items []Item
	Total int
	Skip  int
	Limit int
}

// ImageUpload is a presigned PUT for an item image, plus the path to store on the item afterwards.
type ImageUpload struct {
	UploadURL string
	Method    string
	ImagePath string
	ExpiresAt time.Time
}

// Service defines the item operations.
type Service interface {
	Create(ctx context.Context, id auth.Identity, input CreateInput) (Item, error)
	List(ctx context.Context, id auth.Identity, opts ListOptions) (Page, error)
	Get(ctx context.Context, id auth.Identity, itemID uuid.UUID) (Item, error)
	Update(ctx context.Context, id auth.Identity, itemID uuid.UUID, input UpdateInput) (Item, error)
	Delete(ctx context.Context, id auth.Identity, itemID uuid.UUID) error
	ImageUploadURL(ctx context.Context, id auth.Identity, itemID uuid.UUID, contentType string) (ImageUpload, error)
}

// Permissions builds permission checks.
type Permissions interface {
	RequirePermission(p permissions.Permission) access.Check
}

// Config wires the service collaborators. Presigner may be nil when object storage is not configured.
type Config struct {
	Runner      persistence.Runner
	Repo        repo.Repository
	Permissions Permissions
	Presigner   storage.Presigner
	Logger      *zap.Logger
}

type service struct {
	runner    persistence.Runner
	repo      repo.Repository
	perms     Permissions
	presigner storage.Presigner
	logger    *zap.Logger
}

// New constructs an items Service instance.
func New(cfg Config) Service {
	if cfg.Runner == nil || cfg.Repo == nil || cfg.Permissions == nil {
		panic("items service requires runner, repository and permissions")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &service{
		runner:    cfg.Runner,
		repo:      cfg.Repo,
		perms:     cfg.Permissions,
		presigner: cfg.Presigner,
		logger:    cfg.Logger,
	}
}

func (s *service) Create(ctx context.Context, id auth.Identity, input CreateInput) (Item, error) {
	if err := validateItem(&input.Name, &input.Price, &input.Quantity); err != nil {
		return Item{}, err
	}

	var out Item
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.ItemsCreate); err != nil {
			return err
		}
		item, err := s.repo.Create(ctx, sess, persistence.CreateItemParams{
			TenantID:  id.Tenant(),
			Name:      input.Name,
			Price:     input.Price,
			Quantity:  input.Quantity,
			CreatedBy: id.UserID,
		})
		if err != nil {
			return err
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"item_id": item.ID.String(),
			"name":    item.Name,
		})
		if err := s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionItemCreated, details); err != nil {
			return err
		}
		out = mapItem(item)
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	return out, nil
}

func (s *service) List(ctx context.Context, id auth.Identity, opts ListOptions) (Page, error) {
	var out Page
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.ItemsRead); err != nil {
			return err
		}
		items, total, err := s.repo.List(ctx, sess, id.Tenant(), opts.Skip, opts.Limit)
		if err != nil {
			return err
		}
		out = Page{Items: make([]Item, 0, len(items)), Total: total, Skip: opts.Skip, Limit: opts.Limit}
		for _, item := range items {
			out.Items = append(out.Items, mapItem(item))
		}
		return nil
	})
	if err != nil {
		return Page{}, err
	}
	for i := range out.Items {
		out.Items[i].ImageURL = s.imageURL(ctx, out.Items[i])
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id auth.Identity, itemID uuid.UUID) (Item, error) {
	var out Item
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.ItemsRead); err != nil {
			return err
		}
		item, err := s.repo.Get(ctx, sess, itemID)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapItem(item)
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	out.ImageURL = s.imageURL(ctx, out)
	return out, nil
}

// Update applies a partial update. A new image path must point inside the tenant's item prefix.
func (s *service) Update(ctx context.Context, id auth.Identity, itemID uuid.UUID, input UpdateInput) (Item, error) {
	if err := validateItem(input.Name, input.Price, input.Quantity); err != nil {
		return Item{}, err
	}

	var out Item
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.ItemsUpdate); err != nil {
			return err
		}

		params := persistence.UpdateItemParams{Name: input.Name, Price: input.Price, Quantity: input.Quantity, UpdatedBy: id.UserID}
		if input.ImagePath != nil {
			owner, err := s.repo.Tenant(ctx, sess, id.Tenant())
			if err != nil {
				return err
			}
			imagePath := strings.TrimSpace(*input.ImagePath)
			if !ownsItemImage(imagePath, owner, itemID) {
				return ErrImagePath
			}
			params.ImagePath = &imagePath
		}

		item, err := s.repo.Update(ctx, sess, itemID, params)
		if err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"item_id": item.ID.String(),
			"changes": changedFields(input),
		})
		if err := s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionItemUpdated, details); err != nil {
			return err
		}
		out = mapItem(item)
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	out.ImageURL = s.imageURL(ctx, out)
	return out, nil
}

func (s *service) Delete(ctx context.Context, id auth.Identity, itemID uuid.UUID) error {
	return s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.ItemsDelete); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, sess, itemID); err != nil {
			return mapPersistenceError(err)
		}
		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{"item_id": itemID.String()})
		return s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionItemDeleted, details)
	})
}

// ImageUploadURL returns a presigned PUT under tenants/<slug-id>/items/<item id>/.
func (s *service) ImageUploadURL(ctx context.Context, id auth.Identity, itemID uuid.UUID, contentType string) (ImageUpload, error) {
	if s.presigner == nil {
		return ImageUpload{}, ErrStorageDisabled
	}
	key, err := storage.ImageKey(imageFolder+"/"+itemID.String(), contentType)
	if err != nil {
		return ImageUpload{}, ErrImageContentType
	}

	var owner persistence.Tenant
	err = s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.ItemsUpdate); err != nil {
			return err
		}
		if _, err := s.repo.Get(ctx, sess, itemID); err != nil {
			return mapPersistenceError(err)
		}
		record, err := s.repo.Tenant(ctx, sess, id.Tenant())
		if err != nil {
			return err
		}
		owner = record
		return nil
	})
	if err != nil {
		return ImageUpload{}, err
	}

	loc, err := storage.ResolveObjectLocation(tenant.BuildBasePrefix(owner.Slug, owner.ID), s.presigner.Bucket(), key)
	if err != nil {
		return ImageUpload{}, err
	}
	req, err := s.presigner.PresignPut(ctx, loc, contentType)
	if err != nil {
		return ImageUpload{}, apperr.Wrap(apperr.KindUnavailable, err, "could not sign upload url")
	}
	return ImageUpload{UploadURL: req.URL, Method: req.Method, ImagePath: loc.FullPath, ExpiresAt: req.ExpiresAt}, nil
}

func (s *service) enforce(ctx context.Context, sess *persistence.Session, id auth.Identity, p permissions.Permission) error {
	return access.Enforce(ctx, sess, id, access.RequireTenantMember(), s.perms.RequirePermission(p))
}

// imageURL signs a GET for the stored image. Signing failures only drop the URL.
func (s *service) imageURL(ctx context.Context, item Item) *string {
	if s.presigner == nil || item.ImagePath == nil || *item.ImagePath == "" {
		return nil
	}
	req, err := s.presigner.PresignGet(ctx, storage.ObjectLocation{Bucket: s.presigner.Bucket(), FullPath: *item.ImagePath})
	if err != nil {
		s.logger.Warn("could not sign item image url", zap.String("item_id", item.ID.String()), zap.Error(err))
		return nil
	}
	return &req.URL
}

func ownsItemImage(imagePath string, owner persistence.Tenant, itemID uuid.UUID) bool {
	prefix := tenant.BuildBasePrefix(owner.Slug, owner.ID) + imageFolder + "/" + itemID.String() + "/"
	return storage.OwnedBy(imagePath, owner.Slug, owner.ID) && strings.HasPrefix(imagePath, prefix) && len(imagePath) > len(prefix)
}

func validateItem(name *string, price, quantity *int64) error {
	fields := apperr.FieldErrors{}
	if name != nil && strings.TrimSpace(*name) == "" {
		fields.Add("name", "field is required")
	}
	if price != nil && *price <= 0 {
		fields.Add("price", "must be greater than 0")
	}
	if quantity != nil && *quantity < 0 {
		fields.Add("quantity", "must be at least 0")
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func changedFields(input UpdateInput) []string {
	changes := []string{}
	if input.Name != nil {
		changes = append(changes, "name")
	}
	if input.Price != nil {
		changes = append(changes, "price")
	}
	if input.Quantity != nil {
		changes = append(changes, "quantity")
	}
	if input.ImagePath != nil {
		changes = append(changes, "image_path")
	}
	return changes
}

func mapItem(i persistence.Item) Item {
	return Item{
		ID:        i.ID,
		TenantID:  i.TenantID,
		Name:      i.Name,
		Price:     i.Price,
		Quantity:  i.Quantity,
		ImagePath: i.ImagePath,
		CreatedBy: i.CreatedBy,
		UpdatedBy: i.UpdatedBy,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func mapPersistenceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrItemNotFound):
		return ErrItemNotFound
	default:
		return err
	}
}
