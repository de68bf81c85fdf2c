package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/tenants/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/identity"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
	"github.com/zenGate-Global/tenantgate/platform/go/storage"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// Audit actions written by this service.
const (
	ActionTenantCreated      = "TENANT_CREATED"
	ActionTenantUpdated      = "TENANT_UPDATED"
	ActionTenantPlanAssigned = "TENANT_PLAN_ASSIGNED"
)

// AdminRoleName is the name of the role created for the onboarding user.
const AdminRoleName = "Admin"

// Domain sentinel errors.
var (
	ErrNotFound          = apperr.WithCode(apperr.KindNotFound, "TENANT_NOT_FOUND", "tenant not found")
	ErrSlugConflict      = apperr.WithCode(apperr.KindConflict, "TENANT_SLUG_EXISTS", "a tenant with this slug already exists")
	ErrTermsRequired     = apperr.New(apperr.KindBadRequest, "You must accept the Terms and Conditions to proceed.")
	ErrAlreadyOnboarded  = apperr.New(apperr.KindBadRequest, "This user is already associated with a tenant.")
	ErrEmailTaken        = apperr.WithCode(apperr.KindConflict, "USER_EXISTS", "a user with this email already exists")
	ErrSlugChange        = apperr.New(apperr.KindForbidden, "Tenant slug can only be changed by a superadmin.")
	ErrLogoPath          = apperr.ValidationField("logo_path", "logo path must be inside the tenant storage prefix")
	ErrLogoContentType   = apperr.ValidationField("content_type", "content type must be one of image/png, image/jpeg, image/webp, image/svg+xml")
	ErrStorageDisabled   = apperr.New(apperr.KindUnavailable, "object storage is not configured")
	ErrPlanNotFound      = apperr.WithCode(apperr.KindNotFound, "PLAN_NOT_FOUND", "plan not found")
	ErrNothingToUpdate   = apperr.New(apperr.KindBadRequest, "no fields to update")
	ErrInvalidPeriodEnds = apperr.ValidationField("current_period_ends_at", "period end must be after period start")
)

// Subscription statuses a superadmin may assign directly.
var assignableStatuses = map[string]struct{}{
	persistence.SubscriptionActive:   {},
	persistence.SubscriptionTrialing: {},
	persistence.SubscriptionInactive: {},
	persistence.SubscriptionPastDue:  {},
}

// Billing is the subscription view of a tenant.
type Billing struct {
	PlanID                 *uuid.UUID
	Status                 string
	CurrentPeriodStartsAt  *time.Time
	CurrentPeriodEndsAt    *time.Time
	ExternalSubscriptionID *string
	ExternalCustomerID     *string
}

// Tenant represents the domain view of a tenant.
type Tenant struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	AdminUserID *uuid.UUID
	LogoPath    *string
	LogoURL     *string
	Billing     Billing
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OnboardInput is submitted by a freshly signed-up user to create their organisation.
type OnboardInput struct {
	Name          string
	Slug          string
	TermsAccepted bool
}

// UpdateInput carries the editable profile fields. Nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Slug     *string
	LogoPath *string
}

// LogoUpload is a presigned PUT the client uses to upload a logo, plus the path to store afterwards.
type LogoUpload struct {
	UploadURL string
	Method    string
	LogoPath  string
	ExpiresAt time.Time
}

// ListOptions controls pagination.
type ListOptions struct {
	Skip  int
	Limit int
}

// ListResult wraps a page of tenants.
type ListResult struct {
	Tenants []Tenant
	Total   int
	Skip    int
	Limit   int
}

// AssignPlanInput is the superadmin override of a tenant subscription.
type AssignPlanInput struct {
	PlanID                uuid.UUID
	Status                string
	CurrentPeriodStartsAt *time.Time
	CurrentPeriodEndsAt   *time.Time
}

// Service defines the business operations for the tenants domain.
type Service interface {
	Onboard(ctx context.Context, id auth.Identity, input OnboardInput) (Tenant, error)
	GetMine(ctx context.Context, id auth.Identity) (Tenant, error)
	UpdateMine(ctx context.Context, id auth.Identity, input UpdateInput) (Tenant, error)
	LogoUploadURL(ctx context.Context, id auth.Identity, contentType string) (LogoUpload, error)

	List(ctx context.Context, id auth.Identity, opts ListOptions) (ListResult, error)
	Get(ctx context.Context, id auth.Identity, tenantID uuid.UUID) (Tenant, error)
	Update(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input UpdateInput) (Tenant, error)
	Delete(ctx context.Context, id auth.Identity, tenantID uuid.UUID) error
	AssignPlan(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input AssignPlanInput) (Tenant, error)
}

// Admins builds the tenant-admin check.
type Admins interface {
	RequireTenantAdmin() access.Check
}

// Config wires the service collaborators. Presigner may be nil when object storage is not configured.
type Config struct {
	Runner    persistence.Runner
	Repo      repo.Repository
	Admins    Admins
	Identity  identity.Provider
	Presigner storage.Presigner
	Logger    *zap.Logger
	Now       func() time.Time
}

type service struct {
	runner    persistence.Runner
	repo      repo.Repository
	admins    Admins
	identity  identity.Provider
	presigner storage.Presigner
	logger    *zap.Logger
	now       func() time.Time
}

// New constructs a tenants Service instance.
func New(cfg Config) Service {
	if cfg.Runner == nil || cfg.Repo == nil || cfg.Admins == nil || cfg.Identity == nil {
		panic("tenants service requires runner, repository, admin guard and identity provider")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		runner:    cfg.Runner,
		repo:      cfg.Repo,
		admins:    cfg.Admins,
		identity:  cfg.Identity,
		presigner: cfg.Presigner,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
}

// Onboard creates the tenant, its Admin role and the caller's profile in one transaction. The caller has no
// profile or tenant yet, so every write runs elevated.
func (s *service) Onboard(ctx context.Context, id auth.Identity, input OnboardInput) (Tenant, error) {
	if !input.TermsAccepted {
		return Tenant{}, ErrTermsRequired
	}
	if id.TenantID != nil {
		return Tenant{}, ErrAlreadyOnboarded
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Tenant{}, apperr.ValidationField("name", "name is required")
	}
	slug, err := persistence.NormalizeSlug(input.Slug)
	if err != nil {
		return Tenant{}, apperr.ValidationField("slug", err.Error())
	}

	var out Tenant
	err = s.runner.WithScope(ctx, tenant.ForUser(id.UserID, uuid.Nil), func(sess *persistence.Session) error {
		return sess.Elevate(ctx, func(elevated *persistence.Session) error {
			if _, err := s.repo.GetUser(ctx, elevated, id.UserID); err == nil {
				return ErrAlreadyOnboarded
			} else if !errors.Is(err, persistence.ErrUserNotFound) {
				return err
			}

			created, err := s.repo.Create(ctx, elevated, persistence.CreateTenantParams{
				ID:        uuid.New(),
				Name:      name,
				Slug:      slug,
				CreatedBy: id.UserID,
			})
			if err != nil {
				return mapPersistenceError(err)
			}

			role, err := s.repo.CreateRole(ctx, elevated, persistence.CreateRoleParams{
				TenantID:    created.ID,
				Name:        AdminRoleName,
				Permissions: int64(permissions.TenantAdmin),
				IsAdminRole: true,
				CreatedBy:   id.UserID,
			})
			if err != nil {
				return err
			}

			acceptedAt := s.now().UTC()
			if _, err := s.repo.CreateUser(ctx, elevated, persistence.CreateUserParams{
				ID:              id.UserID,
				Email:           strings.ToLower(strings.TrimSpace(id.Email)),
				TenantID:        created.ID,
				RoleID:          role.ID,
				TermsAcceptedAt: &acceptedAt,
				CreatedBy:       id.UserID,
			}); err != nil {
				if errors.Is(err, persistence.ErrUserConflict) {
					return ErrEmailTaken
				}
				return err
			}

			if err := s.repo.SetAdminUser(ctx, elevated, created.ID, id.UserID); err != nil {
				return err
			}
			adminID := id.UserID
			created.AdminUserID = &adminID

			details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
				"tenant_name": created.Name,
				"tenant_slug": created.Slug,
			})
			if err := s.repo.Audit(ctx, elevated, created.ID, id.UserID, ActionTenantCreated, details); err != nil {
				return err
			}

			out = mapTenant(created)
			return nil
		})
	})
	return out, err
}

func (s *service) GetMine(ctx context.Context, id auth.Identity) (Tenant, error) {
	var out Tenant
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireTenantMember(), s.admins.RequireTenantAdmin()); err != nil {
			return err
		}
		record, err := s.repo.Get(ctx, sess, id.Tenant())
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapTenant(record)
		return nil
	})
	if err != nil {
		return Tenant{}, err
	}
	out.LogoURL = s.logoURL(ctx, out)
	return out, nil
}

func (s *service) UpdateMine(ctx context.Context, id auth.Identity, input UpdateInput) (Tenant, error) {
	if input.Slug != nil && !id.Superadmin {
		return Tenant{}, ErrSlugChange
	}
	return s.update(ctx, id, id.Tenant(), input, access.RequireTenantMember(), s.admins.RequireTenantAdmin())
}

// LogoUploadURL returns a presigned PUT under the tenant's storage prefix.
func (s *service) LogoUploadURL(ctx context.Context, id auth.Identity, contentType string) (LogoUpload, error) {
	if s.presigner == nil {
		return LogoUpload{}, ErrStorageDisabled
	}
	key, err := storage.LogoKey(contentType)
	if err != nil {
		return LogoUpload{}, ErrLogoContentType
	}

	var current persistence.Tenant
	err = s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireTenantMember(), s.admins.RequireTenantAdmin()); err != nil {
			return err
		}
		record, err := s.repo.Get(ctx, sess, id.Tenant())
		if err != nil {
			return mapPersistenceError(err)
		}
		current = record
		return nil
	})
	if err != nil {
		return LogoUpload{}, err
	}

	loc, err := storage.ResolveObjectLocation(tenant.BuildBasePrefix(current.Slug, current.ID), s.presigner.Bucket(), key)
	if err != nil {
		return LogoUpload{}, err
	}
	req, err := s.presigner.PresignPut(ctx, loc, contentType)
	if err != nil {
		return LogoUpload{}, apperr.Wrap(apperr.KindUnavailable, err, "could not sign upload url")
	}
	return LogoUpload{UploadURL: req.URL, Method: req.Method, LogoPath: loc.FullPath, ExpiresAt: req.ExpiresAt}, nil
}

func (s *service) List(ctx context.Context, id auth.Identity, opts ListOptions) (ListResult, error) {
	var result ListResult
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireSuperadmin()); err != nil {
			return err
		}
		records, total, err := s.repo.List(ctx, sess, persistence.ListTenantsParams{Skip: opts.Skip, Limit: opts.Limit})
		if err != nil {
			return err
		}
		tenants := make([]Tenant, 0, len(records))
		for _, record := range records {
			tenants = append(tenants, mapTenant(record))
		}
		result = ListResult{Tenants: tenants, Total: total, Skip: opts.Skip, Limit: opts.Limit}
		return nil
	})
	return result, err
}

func (s *service) Get(ctx context.Context, id auth.Identity, tenantID uuid.UUID) (Tenant, error) {
	var out Tenant
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireSuperadmin()); err != nil {
			return err
		}
		record, err := s.repo.Get(ctx, sess, tenantID)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapTenant(record)
		return nil
	})
	if err != nil {
		return Tenant{}, err
	}
	out.LogoURL = s.logoURL(ctx, out)
	return out, nil
}

func (s *service) Update(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input UpdateInput) (Tenant, error) {
	return s.update(ctx, id, tenantID, input, access.RequireSuperadmin())
}

// Delete removes the tenant with everything it owns, then the identity accounts of its users on a best-effort
// basis.
func (s *service) Delete(ctx context.Context, id auth.Identity, tenantID uuid.UUID) error {
	var members []uuid.UUID
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireSuperadmin()); err != nil {
			return err
		}
		if _, err := s.repo.GetForUpdate(ctx, sess, tenantID); err != nil {
			return mapPersistenceError(err)
		}

		for skip := 0; ; {
			page, total, err := s.repo.ListUsers(ctx, sess, persistence.ListUsersParams{TenantID: tenantID, Skip: skip, Limit: 1000})
			if err != nil {
				return err
			}
			for _, user := range page {
				members = append(members, user.ID)
			}
			skip += len(page)
			if len(page) == 0 || skip >= total {
				break
			}
		}

		return mapPersistenceError(s.repo.Delete(ctx, sess, tenantID))
	})
	if err != nil {
		return err
	}

	for _, userID := range members {
		if delErr := s.identity.DeleteUser(ctx, userID); delErr != nil && !errors.Is(delErr, identity.ErrUserNotFound) {
			s.logger.Warn("could not delete identity account of removed tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.String("user_id", userID.String()),
				zap.Error(delErr),
			)
		}
	}
	s.logger.Info("tenant deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("users", len(members)),
	)
	return nil
}

// AssignPlan overrides the subscription of a tenant. External provider ids are kept so a later webhook can
// still resolve the tenant.
func (s *service) AssignPlan(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input AssignPlanInput) (Tenant, error) {
	status := input.Status
	if status == "" {
		status = persistence.SubscriptionActive
	}
	if _, ok := assignableStatuses[status]; !ok {
		return Tenant{}, apperr.ValidationField("subscription_status", "must be one of: active, trialing, inactive, past_due")
	}
	startsAt := s.now().UTC()
	if input.CurrentPeriodStartsAt != nil {
		startsAt = input.CurrentPeriodStartsAt.UTC()
	}
	if input.CurrentPeriodEndsAt != nil && !input.CurrentPeriodEndsAt.After(startsAt) {
		return Tenant{}, ErrInvalidPeriodEnds
	}

	var out Tenant
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireSuperadmin()); err != nil {
			return err
		}
		plan, err := s.repo.GetPlan(ctx, sess, input.PlanID)
		if err != nil {
			if errors.Is(err, persistence.ErrPlanNotFound) {
				return ErrPlanNotFound
			}
			return err
		}
		current, err := s.repo.GetForUpdate(ctx, sess, tenantID)
		if err != nil {
			return mapPersistenceError(err)
		}

		state := current.Billing
		state.PlanID = &plan.ID
		state.Status = status
		state.CurrentPeriodStartsAt = &startsAt
		state.CurrentPeriodEndsAt = input.CurrentPeriodEndsAt

		updated, err := s.repo.UpdateBilling(ctx, sess, tenantID, state)
		if err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"plan_id":             plan.ID.String(),
			"plan_name":           plan.Name,
			"subscription_status": status,
		})
		if err := s.repo.Audit(ctx, sess, tenantID, id.UserID, ActionTenantPlanAssigned, details); err != nil {
			return err
		}

		out = mapTenant(updated)
		return nil
	})
	return out, err
}

func (s *service) update(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input UpdateInput, checks ...access.Check) (Tenant, error) {
	if input.Name == nil && input.Slug == nil && input.LogoPath == nil {
		return Tenant{}, ErrNothingToUpdate
	}
	params := persistence.UpdateTenantParams{Name: input.Name, UpdatedBy: id.UserID}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return Tenant{}, apperr.ValidationField("name", "name must not be empty")
	}
	if input.Slug != nil {
		slug, err := persistence.NormalizeSlug(*input.Slug)
		if err != nil {
			return Tenant{}, apperr.ValidationField("slug", err.Error())
		}
		params.Slug = &slug
	}

	var out Tenant
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, checks...); err != nil {
			return err
		}
		current, err := s.repo.GetForUpdate(ctx, sess, tenantID)
		if err != nil {
			return mapPersistenceError(err)
		}
		if input.LogoPath != nil {
			logoPath := strings.TrimSpace(*input.LogoPath)
			if !storage.OwnedBy(logoPath, current.Slug, current.ID) {
				return ErrLogoPath
			}
			params.LogoPath = &logoPath
		}

		updated, err := s.repo.Update(ctx, sess, tenantID, params)
		if err != nil {
			return mapPersistenceError(err)
		}

		changes := map[string]any{}
		if input.Name != nil {
			changes["name"] = updated.Name
		}
		if params.Slug != nil {
			changes["slug"] = updated.Slug
		}
		if params.LogoPath != nil {
			changes["logo_path"] = *params.LogoPath
		}
		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{"changes": changes})
		if err := s.repo.Audit(ctx, sess, tenantID, id.UserID, ActionTenantUpdated, details); err != nil {
			return err
		}

		out = mapTenant(updated)
		return nil
	})
	if err != nil {
		return Tenant{}, err
	}
	out.LogoURL = s.logoURL(ctx, out)
	return out, nil
}

// logoURL signs a GET for the stored logo. Signing failures only drop the URL.
func (s *service) logoURL(ctx context.Context, t Tenant) *string {
	if s.presigner == nil || t.LogoPath == nil || *t.LogoPath == "" {
		return nil
	}
	req, err := s.presigner.PresignGet(ctx, storage.ObjectLocation{Bucket: s.presigner.Bucket(), FullPath: *t.LogoPath})
	if err != nil {
		s.logger.Warn("could not sign logo url", zap.String("tenant_id", t.ID.String()), zap.Error(err))
		return nil
	}
	return &req.URL
}

func mapTenant(record persistence.Tenant) Tenant {
	return Tenant{
		ID:          record.ID,
		Name:        record.Name,
		Slug:        record.Slug,
		AdminUserID: record.AdminUserID,
		LogoPath:    record.LogoPath,
		Billing: Billing{
			PlanID:                 record.Billing.PlanID,
			Status:                 record.Billing.Status,
			CurrentPeriodStartsAt:  record.Billing.CurrentPeriodStartsAt,
			CurrentPeriodEndsAt:    record.Billing.CurrentPeriodEndsAt,
			ExternalSubscriptionID: record.Billing.ExternalSubscriptionID,
			ExternalCustomerID:     record.Billing.ExternalCustomerID,
		},
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func mapPersistenceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrTenantNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrTenantConflict):
		return ErrSlugConflict
	default:
		return err
	}
}
