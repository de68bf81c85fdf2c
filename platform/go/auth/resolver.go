package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/apikey"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

var (
	// ErrUnauthenticated covers missing, malformed, invalid and expired credentials.
	ErrUnauthenticated = apperr.New(apperr.KindUnauthenticated, "authentication required")
	// ErrProfileNotFound is returned for valid tokens whose user profile was never provisioned.
	ErrProfileNotFound = apperr.WithCode(apperr.KindProfileNotFound, "PROFILE_NOT_FOUND", "user profile not found")
	// ErrTermsNotAccepted is returned when the caller still has to accept the terms of service.
	ErrTermsNotAccepted = apperr.WithCode(apperr.KindForbiddenTerms, "TERMS_NOT_ACCEPTED", "terms and conditions have not been accepted")
)

// UserLookup loads user profiles.
type UserLookup interface {
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error)
}

// KeyLookup loads and stamps API key records.
type KeyLookup interface {
	FindByPrefix(ctx context.Context, s *persistence.Session, prefix string) (persistence.APIKey, error)
	Touch(ctx context.Context, s *persistence.Session, id uuid.UUID, at time.Time) error
}

// ResolverConfig wires the resolver's collaborators.
type ResolverConfig struct {
	Runner       persistence.Runner
	Verifier     TokenVerifier
	Users        UserLookup
	Keys         KeyLookup
	SuperadminID string
	Logger       *zap.Logger
	Now          func() time.Time
}

// Resolver turns a bearer token or an API key into an Identity.
type Resolver struct {
	runner       persistence.Runner
	verifier     TokenVerifier
	users        UserLookup
	keys         KeyLookup
	superadminID string
	logger       *zap.Logger
	now          func() time.Time
}

// NewResolver validates the configuration and builds a Resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Runner == nil || cfg.Verifier == nil || cfg.Users == nil || cfg.Keys == nil {
		panic("auth.NewResolver requires runner, verifier, users and keys")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Resolver{
		runner:       cfg.Runner,
		verifier:     cfg.Verifier,
		users:        cfg.Users,
		keys:         cfg.Keys,
		superadminID: strings.TrimSpace(cfg.SuperadminID),
		logger:       cfg.Logger,
		now:          cfg.Now,
	}
}

// VerifyTokenOnly validates the token without requiring a user profile. Used by onboarding.
func (r *Resolver) VerifyTokenOnly(ctx context.Context, token string) (Identity, error) {
	claims, err := r.verifier.Verify(ctx, token)
	if err != nil {
		return Identity{}, ErrUnauthenticated.WithMessage("invalid or expired token")
	}
	return Identity{
		UserID:     SubjectUUID(claims.Subject),
		Email:      claims.Email,
		Superadmin: r.isSuperadmin(claims.Subject),
		Method:     MethodTokenOnly,
	}, nil
}

// ResolveBearer validates the token and loads the caller's profile. Superadmin status depends only on the
// subject matching the configured superadmin id.
func (r *Resolver) ResolveBearer(ctx context.Context, token string) (Identity, error) {
	claims, err := r.verifier.Verify(ctx, token)
	if err != nil {
		return Identity{}, ErrUnauthenticated.WithMessage("invalid or expired token")
	}

	userID := SubjectUUID(claims.Subject)
	if r.isSuperadmin(claims.Subject) {
		return Identity{
			UserID:        userID,
			Email:         claims.Email,
			Superadmin:    true,
			Method:        MethodBearer,
			TermsAccepted: true,
		}, nil
	}

	var user persistence.User
	err = r.runner.WithScope(ctx, tenant.ForUser(userID, uuid.Nil), func(s *persistence.Session) error {
		var getErr error
		user, getErr = r.users.Get(ctx, s, userID)
		return getErr
	})
	if err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			return Identity{}, ErrProfileNotFound
		}
		return Identity{}, err
	}

	return Identity{
		UserID:        user.ID,
		TenantID:      user.TenantID,
		Email:         user.Email,
		Method:        MethodBearer,
		TermsAccepted: user.TermsAccepted(),
	}, nil
}

// ResolveAPIKey finds the key by its lookup prefix under an elevated session, verifies the full secret against
// that record's hash and stamps last_used_at. API-key identities are never superadmin.
func (r *Resolver) ResolveAPIKey(ctx context.Context, raw string) (Identity, error) {
	prefix, err := apikey.LookupPrefix(raw)
	if err != nil {
		return Identity{}, ErrUnauthenticated.WithMessage("invalid api key")
	}

	var (
		key  persistence.APIKey
		user persistence.User
	)
	err = r.runner.WithScope(ctx, tenant.Scope{}, func(s *persistence.Session) error {
		return s.Elevate(ctx, func(elevated *persistence.Session) error {
			var lookupErr error
			if key, lookupErr = r.keys.FindByPrefix(ctx, elevated, prefix); lookupErr != nil {
				return lookupErr
			}
			user, lookupErr = r.users.Get(ctx, elevated, key.UserID)
			return lookupErr
		})
	})
	if err != nil {
		if errors.Is(err, persistence.ErrAPIKeyNotFound) || errors.Is(err, persistence.ErrUserNotFound) {
			return Identity{}, ErrUnauthenticated.WithMessage("invalid api key")
		}
		return Identity{}, err
	}

	if !apikey.Verify(key.HashedKey, raw) || key.Expired(r.now()) {
		return Identity{}, ErrUnauthenticated.WithMessage("invalid api key")
	}

	r.touch(ctx, key.ID)

	keyID := key.ID
	return Identity{
		UserID:        user.ID,
		TenantID:      user.TenantID,
		Email:         user.Email,
		Method:        MethodAPIKey,
		TermsAccepted: user.TermsAccepted(),
		APIKeyID:      &keyID,
	}, nil
}

// touch stamps last_used_at in its own system transaction. Failures never block the request.
func (r *Resolver) touch(ctx context.Context, keyID uuid.UUID) {
	err := r.runner.WithSystem(ctx, func(s *persistence.Session) error {
		return r.keys.Touch(ctx, s, keyID, r.now().UTC())
	})
	if err != nil {
		r.logger.Warn("failed to stamp api key usage", zap.String("api_key_id", keyID.String()), zap.Error(err))
	}
}

func (r *Resolver) isSuperadmin(subject string) bool {
	return r.superadminID != "" && subject == r.superadminID
}
