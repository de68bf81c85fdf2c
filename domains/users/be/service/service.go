package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/users/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/identity"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// Audit actions written by this service.
const (
	ActionUserInvited     = "USER_INVITED"
	ActionUserRoleUpdated = "USER_ROLE_UPDATED"
	ActionUserDeleted     = "USER_DELETED"
)

// Domain sentinel errors.
var (
	ErrNotFound         = apperr.WithCode(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrRoleNotFound     = apperr.WithCode(apperr.KindNotFound, "ROLE_NOT_FOUND", "role not found or you do not have permission to assign it")
	ErrConflict         = apperr.WithCode(apperr.KindConflict, "USER_EXISTS", "user with this email already exists")
	ErrSelfRoleChange   = apperr.New(apperr.KindBadRequest, "you cannot update your own role via this endpoint")
	ErrSelfDelete       = apperr.New(apperr.KindBadRequest, "admins cannot delete themselves")
	ErrLastAdmin        = apperr.WithCode(apperr.KindConflict, "LAST_ADMIN", "cannot remove the last admin from the tenant; assign a new admin first")
	ErrTermsRequired    = apperr.ValidationField("terms_accepted", "you must accept the terms and conditions to complete your account setup")
	ErrAlreadySetUp     = apperr.New(apperr.KindBadRequest, "account has already been set up")
	ErrPasswordRejected = apperr.New(apperr.KindUnavailable, "could not update user password")
)

// Role is the role summary embedded in user views.
type Role struct {
	ID          uuid.UUID
	Name        string
	IsAdminRole bool
	Permissions []string
}

// User represents the domain view of a user record.
type User struct {
	ID              uuid.UUID
	Email           string
	TenantID        *uuid.UUID
	RoleID          *uuid.UUID
	Role            *Role
	TermsAcceptedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListOptions controls pagination. TenantID is honoured for superadmins only.
type ListOptions struct {
	TenantID *uuid.UUID
	Skip     int
	Limit    int
}

// ListResult wraps a page of users.
type ListResult struct {
	Users []User
	Total int
	Skip  int
	Limit int
}

// InviteInput is the payload of an invitation.
type InviteInput struct {
	Email  string
	RoleID uuid.UUID
}

// Invitation is the created profile plus the link the invitee uses to finish setup.
type Invitation struct {
	User User
	Link string
}

// CompleteInviteInput is submitted by an invited user on first login.
type CompleteInviteInput struct {
	Password      string
	TermsAccepted bool
}

// Service defines the business operations for the users domain.
type Service interface {
	Me(ctx context.Context, id auth.Identity) (User, error)
	List(ctx context.Context, id auth.Identity, opts ListOptions) (ListResult, error)
	Invite(ctx context.Context, id auth.Identity, input InviteInput) (Invitation, error)
	UpdateRole(ctx context.Context, id auth.Identity, userID, roleID uuid.UUID) (User, error)
	Delete(ctx context.Context, id auth.Identity, userID uuid.UUID) error
	CompleteInvite(ctx context.Context, id auth.Identity, input CompleteInviteInput) error
}

// Permissions builds permission checks.
type Permissions interface {
	RequirePermission(p permissions.Permission) access.Check
}

// Entitlements builds plan checks.
type Entitlements interface {
	Require(featureSlug string) access.Check
}

// Config wires the service collaborators.
type Config struct {
	Runner       persistence.Runner
	Repo         repo.Repository
	Permissions  Permissions
	Entitlements Entitlements
	Identity     identity.Provider
	Logger       *zap.Logger
	Now          func() time.Time
}

type service struct {
	runner       persistence.Runner
	repo         repo.Repository
	perms        Permissions
	entitlements Entitlements
	identity     identity.Provider
	logger       *zap.Logger
	now          func() time.Time
}

// New constructs a users Service instance.
func New(cfg Config) Service {
	if cfg.Runner == nil || cfg.Repo == nil || cfg.Permissions == nil || cfg.Entitlements == nil || cfg.Identity == nil {
		panic("users service requires runner, repository, permissions, entitlements and identity provider")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		runner:       cfg.Runner,
		repo:         cfg.Repo,
		perms:        cfg.Permissions,
		entitlements: cfg.Entitlements,
		identity:     cfg.Identity,
		logger:       cfg.Logger,
		now:          cfg.Now,
	}
}

func (s *service) Me(ctx context.Context, id auth.Identity) (User, error) {
	var out User
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		user, role, err := s.repo.GetWithRole(ctx, sess, id.UserID)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapUser(user, role)
		return nil
	})
	return out, err
}

func (s *service) List(ctx context.Context, id auth.Identity, opts ListOptions) (ListResult, error) {
	tenantID := id.Tenant()
	if id.Superadmin && opts.TenantID != nil {
		tenantID = *opts.TenantID
	}
	if tenantID == uuid.Nil {
		return ListResult{Users: []User{}, Skip: opts.Skip, Limit: opts.Limit}, nil
	}

	var result ListResult
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, s.perms.RequirePermission(permissions.UsersRead)); err != nil {
			return err
		}
		records, total, err := s.repo.List(ctx, sess, persistence.ListUsersParams{TenantID: tenantID, Skip: opts.Skip, Limit: opts.Limit})
		if err != nil {
			return err
		}
		users := make([]User, 0, len(records))
		for _, record := range records {
			users = append(users, mapUser(record, nil))
		}
		result = ListResult{Users: users, Total: total, Skip: opts.Skip, Limit: opts.Limit}
		return nil
	})
	return result, err
}

// Invite checks permission and the max_users entitlement before the identity provider is contacted, so a
// rejected invite has no side effects. A failure after the provider account exists removes that account.
func (s *service) Invite(ctx context.Context, id auth.Identity, input InviteInput) (Invitation, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var (
		invitation Invitation
		invited    *identity.InvitedUser
	)
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id,
			access.RequireTenantMember(),
			s.perms.RequirePermission(permissions.UsersInvite),
			s.entitlements.Require(entitlements.FeatureMaxUsers),
		); err != nil {
			return err
		}

		role, err := s.repo.GetRole(ctx, sess, input.RoleID)
		if err != nil || role.TenantID != id.Tenant() {
			if err == nil || errors.Is(err, persistence.ErrRoleNotFound) {
				return ErrRoleNotFound
			}
			return err
		}

		account, err := s.identity.InviteUser(ctx, email)
		if err != nil {
			if errors.Is(err, identity.ErrUserExists) {
				return ErrConflict
			}
			return apperr.Wrap(apperr.KindUnavailable, err, "identity provider rejected the invitation")
		}
		invited = &account

		user, err := s.repo.Create(ctx, sess, persistence.CreateUserParams{
			ID:        account.ID,
			Email:     email,
			TenantID:  id.Tenant(),
			RoleID:    role.ID,
			CreatedBy: id.UserID,
		})
		if err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"invited_user_id": user.ID.String(),
			"invited_email":   user.Email,
			"role_id":         role.ID.String(),
		})
		if err := s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionUserInvited, details); err != nil {
			return err
		}

		invitation = Invitation{User: mapUser(user, &role), Link: account.Link}
		return nil
	})
	if err != nil && invited != nil {
		if delErr := s.identity.DeleteUser(context.WithoutCancel(ctx), invited.ID); delErr != nil {
			s.logger.Warn("remove identity account after failed invite",
				zap.String("user_id", invited.ID.String()),
				zap.Error(delErr),
			)
		}
	}
	return invitation, err
}

func (s *service) UpdateRole(ctx context.Context, id auth.Identity, userID, roleID uuid.UUID) (User, error) {
	if userID == id.UserID {
		return User{}, ErrSelfRoleChange
	}

	var out User
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, s.perms.RequirePermission(permissions.UsersUpdateRole)); err != nil {
			return err
		}

		target, currentRole, err := s.repo.GetWithRole(ctx, sess, userID)
		if err != nil {
			return mapPersistenceError(err)
		}
		if target.TenantID == nil {
			return ErrNotFound
		}
		newRole, err := s.repo.GetRole(ctx, sess, roleID)
		if err != nil || newRole.TenantID != *target.TenantID {
			if err == nil || errors.Is(err, persistence.ErrRoleNotFound) {
				return ErrRoleNotFound
			}
			return err
		}

		if currentRole != nil && currentRole.IsAdminRole && !newRole.IsAdminRole {
			if err := s.ensureOtherAdmin(ctx, sess, *target.TenantID); err != nil {
				return err
			}
		}

		updated, err := s.repo.UpdateRole(ctx, sess, userID, roleID, id.UserID)
		if err != nil {
			return mapPersistenceError(err)
		}

		details := map[string]any{
			"updated_user_id":    updated.ID.String(),
			"updated_user_email": updated.Email,
			"new_role_id":        roleID.String(),
		}
		if target.RoleID != nil {
			details["old_role_id"] = target.RoleID.String()
		}
		details = requesttrace.FromContextOrAnonymous(ctx).Details(details)
		if err := s.repo.Audit(ctx, sess, *target.TenantID, id.UserID, ActionUserRoleUpdated, details); err != nil {
			return err
		}

		out = mapUser(updated, &newRole)
		return nil
	})
	return out, err
}

// Delete removes the profile, then the identity-provider account on a best-effort basis.
func (s *service) Delete(ctx context.Context, id auth.Identity, userID uuid.UUID) error {
	if userID == id.UserID {
		return ErrSelfDelete
	}

	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, s.perms.RequirePermission(permissions.UsersDelete)); err != nil {
			return err
		}

		target, role, err := s.repo.GetWithRole(ctx, sess, userID)
		if err != nil {
			return mapPersistenceError(err)
		}
		if target.TenantID == nil {
			return ErrNotFound
		}
		if role != nil && role.IsAdminRole {
			if err := s.ensureOtherAdmin(ctx, sess, *target.TenantID); err != nil {
				return err
			}
		}

		if err := s.repo.Delete(ctx, sess, userID); err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"deleted_user_id":    target.ID.String(),
			"deleted_user_email": target.Email,
		})
		return s.repo.Audit(ctx, sess, *target.TenantID, id.UserID, ActionUserDeleted, details)
	})
	if err != nil {
		return err
	}

	if delErr := s.identity.DeleteUser(ctx, userID); delErr != nil && !errors.Is(delErr, identity.ErrUserNotFound) {
		s.logger.Warn("could not delete identity account, local profile removed",
			zap.String("user_id", userID.String()),
			zap.Error(delErr),
		)
	}
	return nil
}

// CompleteInvite sets the invitee's password and records terms acceptance. The caller is authenticated but has
// not accepted the terms yet, so it runs without the terms gate.
func (s *service) CompleteInvite(ctx context.Context, id auth.Identity, input CompleteInviteInput) error {
	if !input.TermsAccepted {
		return ErrTermsRequired
	}

	return s.runner.WithScope(ctx, tenant.ForUser(id.UserID, id.Tenant()), func(sess *persistence.Session) error {
		user, err := s.repo.Get(ctx, sess, id.UserID)
		if err != nil {
			if errors.Is(err, persistence.ErrUserNotFound) {
				return auth.ErrProfileNotFound
			}
			return err
		}
		if user.TermsAccepted() {
			return ErrAlreadySetUp
		}

		if err := s.identity.SetPassword(ctx, user.ID, input.Password); err != nil {
			return apperr.Wrap(ErrPasswordRejected.Kind, err, ErrPasswordRejected.Message)
		}

		// The caller may hold a token without tenant claims, so the write runs elevated.
		return sess.Elevate(ctx, func(elevated *persistence.Session) error {
			if _, err := s.repo.AcceptTerms(ctx, elevated, user.ID, s.now().UTC()); err != nil {
				if errors.Is(err, persistence.ErrUserNotFound) {
					return ErrAlreadySetUp
				}
				return err
			}
			return nil
		})
	})
}

func (s *service) ensureOtherAdmin(ctx context.Context, sess *persistence.Session, tenantID uuid.UUID) error {
	admins, err := s.repo.LockAdmins(ctx, sess, tenantID)
	if err != nil {
		return err
	}
	if len(admins) <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func mapUser(record persistence.User, role *persistence.Role) User {
	user := User{
		ID:              record.ID,
		Email:           record.Email,
		TenantID:        record.TenantID,
		RoleID:          record.RoleID,
		TermsAcceptedAt: record.TermsAcceptedAt,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	if role != nil {
		user.Role = &Role{
			ID:          role.ID,
			Name:        role.Name,
			IsAdminRole: role.IsAdminRole,
			Permissions: permissions.Set(role.Permissions).Names(),
		}
	}
	return user
}

func mapPersistenceError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrUserNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrUserConflict):
		return ErrConflict
	case errors.Is(err, persistence.ErrRoleNotFound):
		return ErrRoleNotFound
	default:
		return err
	}
}
