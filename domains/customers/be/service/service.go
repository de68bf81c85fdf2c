package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/customers/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
)

// Audit actions written by this service.
const (
	ActionCustomerCreated = "CUSTOMER_CREATED"
	ActionCustomerUpdated = "CUSTOMER_UPDATED"
	ActionCustomerDeleted = "CUSTOMER_DELETED"
)

// Domain sentinel errors.
var (
	ErrCustomerNotFound = apperr.WithCode(apperr.KindNotFound, "CUSTOMER_NOT_FOUND", "Customer not found.")
	ErrCustomerConflict = apperr.WithCode(apperr.KindConflict, "CUSTOMER_EXISTS", "A customer with this email already exists.")
)

var validate = validator.New()

// Customer is the domain view of a tenant's customer.
type Customer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     *string
	Data      map[string]any
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput defines a new customer.
type CreateInput struct {
	Name  string
	Email *string
	Data  map[string]any
}

// UpdateInput holds a partial update; nil fields are left unchanged. An empty Email clears the address.
type UpdateInput struct {
	Name  *string
	Email *string
	Data  map[string]any
}

// ListOptions controls pagination.
type ListOptions struct {
	Skip  int
	Limit int
}

// Page wraps a page of customers.
type Page struct {
	Customers []Customer
	Total     int
	Skip      int
	Limit     int
}

// Service defines the customer operations.
type Service interface {
	Create(ctx context.Context, id auth.Identity, input CreateInput) (Customer, error)
	List(ctx context.Context, id auth.Identity, opts ListOptions) (Page, error)
	Get(ctx context.Context, id auth.Identity, customerID uuid.UUID) (Customer, error)
	Update(ctx context.Context, id auth.Identity, customerID uuid.UUID, input UpdateInput) (Customer, error)
	Delete(ctx context.Context, id auth.Identity, customerID uuid.UUID) error
}

// Permissions builds permission checks.
type Permissions interface {
	RequirePermission(p permissions.Permission) access.Check
}

// Config wires the service collaborators.
type Config struct {
	Runner      persistence.Runner
	Repo        repo.Repository
	Permissions Permissions
	Logger      *zap.Logger
}

type service struct {
	runner persistence.Runner
	repo   repo.Repository
	perms  Permissions
	logger *zap.Logger
}

// New constructs a customers Service instance.
func New(cfg Config) Service {
	if cfg.Runner == nil || cfg.Repo == nil || cfg.Permissions == nil {
		panic("customers service requires runner, repository and permissions")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &service{runner: cfg.Runner, repo: cfg.Repo, perms: cfg.Permissions, logger: cfg.Logger}
}

func (s *service) Create(ctx context.Context, id auth.Identity, input CreateInput) (Customer, error) {
	if err := validateCustomer(&input.Name, input.Email); err != nil {
		return Customer{}, err
	}

	var out Customer
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomersCreate); err != nil {
			return err
		}
		customer, err := s.repo.Create(ctx, sess, persistence.CreateCustomerParams{
			TenantID:  id.Tenant(),
			Name:      input.Name,
			Email:     input.Email,
			Data:      input.Data,
			CreatedBy: id.UserID,
		})
		if err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"customer_id": customer.ID.String(),
		})
		if err := s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionCustomerCreated, details); err != nil {
			return err
		}
		out = mapCustomer(customer)
		return nil
	})
	return out, err
}

// List returns the tenant's customers, newest first.
func (s *service) List(ctx context.Context, id auth.Identity, opts ListOptions) (Page, error) {
	var out Page
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomersRead); err != nil {
			return err
		}
		customers, total, err := s.repo.List(ctx, sess, id.Tenant(), opts.Skip, opts.Limit)
		if err != nil {
			return err
		}
		out = Page{Customers: make([]Customer, 0, len(customers)), Total: total, Skip: opts.Skip, Limit: opts.Limit}
		for _, c := range customers {
			out.Customers = append(out.Customers, mapCustomer(c))
		}
		return nil
	})
	return out, err
}

func (s *service) Get(ctx context.Context, id auth.Identity, customerID uuid.UUID) (Customer, error) {
	var out Customer
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomersRead); err != nil {
			return err
		}
		customer, err := s.repo.Get(ctx, sess, customerID)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapCustomer(customer)
		return nil
	})
	return out, err
}

func (s *service) Update(ctx context.Context, id auth.Identity, customerID uuid.UUID, input UpdateInput) (Customer, error) {
	email := input.Email
	if email != nil && strings.TrimSpace(*email) == "" {
		email = nil
	}
	if err := validateCustomer(input.Name, email); err != nil {
		return Customer{}, err
	}

	var out Customer
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomersUpdate); err != nil {
			return err
		}
		customer, err := s.repo.Update(ctx, sess, customerID, persistence.UpdateCustomerParams{
			Name:      input.Name,
			Email:     input.Email,
			Data:      input.Data,
			UpdatedBy: id.UserID,
		})
		if err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"customer_id": customer.ID.String(),
		})
		if err := s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionCustomerUpdated, details); err != nil {
			return err
		}
		out = mapCustomer(customer)
		return nil
	})
	return out, err
}

func (s *service) Delete(ctx context.Context, id auth.Identity, customerID uuid.UUID) error {
	return s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.enforce(ctx, sess, id, permissions.CustomersDelete); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, sess, customerID); err != nil {
			return mapPersistenceError(err)
		}
		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{"customer_id": customerID.String()})
		return s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionCustomerDeleted, details)
	})
}

func (s *service) enforce(ctx context.Context, sess *persistence.Session, id auth.Identity, p permissions.Permission) error {
	return access.Enforce(ctx, sess, id, access.RequireTenantMember(), s.perms.RequirePermission(p))
}

func validateCustomer(name, email *string) error {
	fields := apperr.FieldErrors{}
	if name != nil && strings.TrimSpace(*name) == "" {
		fields.Add("name", "field is required")
	}
	if email != nil {
		if err := validate.Var(strings.TrimSpace(*email), "required,email"); err != nil {
			fields.Add("email", "must be a valid email address")
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func mapCustomer(c persistence.Customer) Customer {
	data := c.Data
	if data == nil {
		data = map[string]any{}
	}
	return Customer{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Name:      c.Name,
		Email:     c.Email,
		Data:      data,
		CreatedBy: c.CreatedBy,
		UpdatedBy: c.UpdatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func mapPersistenceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrCustomerNotFound):
		return ErrCustomerNotFound
	case errors.Is(err, persistence.ErrCustomerConflict):
		return ErrCustomerConflict
	default:
		return err
	}
}
