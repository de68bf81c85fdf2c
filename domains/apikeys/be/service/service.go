package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/domains/apikeys/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apikey"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
)

// Audit actions written by this service.
const (
	ActionAPIKeyCreated = "API_KEY_CREATED"
	ActionAPIKeyRevoked = "API_KEY_REVOKED"
)

const maxIssueAttempts = 3

// Domain sentinel errors.
var (
	ErrNotFound     = apperr.WithCode(apperr.KindNotFound, "API_KEY_NOT_FOUND", "API key not found")
	ErrNoTenant     = apperr.New(apperr.KindBadRequest, "superadmins cannot create API keys")
	ErrKeyExhausted = apperr.New(apperr.KindUnavailable, "could not allocate a unique API key, try again")
)

// Key is the stored view of an API key. The secret is never part of it.
type Key struct {
	ID         uuid.UUID
	Name       string
	KeyPrefix  string
	CreatedAt  time.Time
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
}

// CreateInput describes a new key.
type CreateInput struct {
	Name      string
	ExpiresAt *time.Time
}

// Created carries the full key, returned to the caller exactly once.
type Created struct {
	Key     Key
	FullKey string
}

// Service defines the business operations for API keys.
type Service interface {
	Create(ctx context.Context, id auth.Identity, input CreateInput) (Created, error)
	List(ctx context.Context, id auth.Identity) ([]Key, error)
	Delete(ctx context.Context, id auth.Identity, keyID uuid.UUID) error
}

// Entitlements builds plan checks.
type Entitlements interface {
	Require(featureSlug string) access.Check
}

// Config wires the service collaborators.
type Config struct {
	Runner       persistence.Runner
	Repo         repo.Repository
	Entitlements Entitlements
	// Generate defaults to apikey.Generate.
	Generate func() (apikey.Issued, error)
	Now      func() time.Time
}

type service struct {
	runner       persistence.Runner
	repo         repo.Repository
	entitlements Entitlements
	generate     func() (apikey.Issued, error)
	now          func() time.Time
}

// New constructs an api keys Service instance.
func New(cfg Config) Service {
	if cfg.Runner == nil || cfg.Repo == nil || cfg.Entitlements == nil {
		panic("api keys service requires runner, repository and entitlements")
	}
	if cfg.Generate == nil {
		cfg.Generate = apikey.Generate
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{runner: cfg.Runner, repo: cfg.Repo, entitlements: cfg.Entitlements, generate: cfg.Generate, now: cfg.Now}
}

func (s *service) Create(ctx context.Context, id auth.Identity, input CreateInput) (Created, error) {
	if id.TenantID == nil {
		return Created{}, ErrNoTenant
	}
	if input.ExpiresAt != nil && !input.ExpiresAt.After(s.now()) {
		return Created{}, apperr.ValidationField("expires_at", "must be in the future")
	}

	// A prefix collision aborts the transaction, so each attempt runs in its own unit of work.
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		out, err := s.issue(ctx, id, input)
		if errors.Is(err, persistence.ErrAPIKeyConflict) {
			continue
		}
		return out, err
	}
	return Created{}, ErrKeyExhausted
}

func (s *service) issue(ctx context.Context, id auth.Identity, input CreateInput) (Created, error) {
	issued, err := s.generate()
	if err != nil {
		return Created{}, err
	}

	var out Created
	err = s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id,
			access.RequireTenantMember(),
			s.entitlements.Require(entitlements.FeatureMaxAPIKeys),
		); err != nil {
			return err
		}

		record, err := s.repo.Create(ctx, sess, persistence.CreateAPIKeyParams{
			TenantID:  id.Tenant(),
			UserID:    id.UserID,
			Name:      strings.TrimSpace(input.Name),
			KeyPrefix: issued.Prefix,
			HashedKey: issued.Hash,
			ExpiresAt: input.ExpiresAt,
		})
		if err != nil {
			return err
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"api_key_id": record.ID.String(),
			"key_prefix": record.KeyPrefix,
		})
		if err := s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionAPIKeyCreated, details); err != nil {
			return err
		}
		out = Created{Key: mapKey(record), FullKey: issued.Full}
		return nil
	})
	return out, err
}

func (s *service) List(ctx context.Context, id auth.Identity) ([]Key, error) {
	var out []Key
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		records, err := s.repo.ListByUser(ctx, sess, id.UserID)
		if err != nil {
			return err
		}
		out = make([]Key, 0, len(records))
		for _, record := range records {
			out = append(out, mapKey(record))
		}
		return nil
	})
	return out, err
}

// Delete revokes a key. Keys of other users are reported as not found.
func (s *service) Delete(ctx context.Context, id auth.Identity, keyID uuid.UUID) error {
	return s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := s.repo.Delete(ctx, sess, keyID, id.UserID); err != nil {
			if errors.Is(err, persistence.ErrAPIKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		if id.TenantID == nil {
			return nil
		}
		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{"api_key_id": keyID.String()})
		return s.repo.Audit(ctx, sess, id.Tenant(), id.UserID, ActionAPIKeyRevoked, details)
	})
}

func mapKey(record persistence.APIKey) Key {
	return Key{
		ID:         record.ID,
		Name:       record.Name,
		KeyPrefix:  record.KeyPrefix,
		CreatedAt:  record.CreatedAt,
		LastUsedAt: record.LastUsedAt,
		ExpiresAt:  record.ExpiresAt,
	}
}
