package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/domains/audit-logs/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Entry is one audit log line.
type Entry struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Action    string
	Details   map[string]any
	CreatedAt time.Time
}

// ListOptions controls pagination.
type ListOptions struct {
	Skip  int
	Limit int
}

// ListResult wraps a page of entries, newest first.
type ListResult struct {
	Entries []Entry
	Total   int
	Skip    int
	Limit   int
}

// Service exposes the audit trail of the caller's tenant.
type Service interface {
	List(ctx context.Context, id auth.Identity, opts ListOptions) (ListResult, error)
}

// Admins builds the tenant-admin check.
type Admins interface {
	RequireTenantAdmin() access.Check
}

type service struct {
	runner persistence.Runner
	repo   repo.Repository
	admins Admins
}

// New constructs an audit logs Service instance.
func New(runner persistence.Runner, repository repo.Repository, admins Admins) Service {
	if runner == nil || repository == nil || admins == nil {
		panic("audit logs service requires runner, repository and admins")
	}
	return &service{runner: runner, repo: repository, admins: admins}
}

func (s *service) List(ctx context.Context, id auth.Identity, opts ListOptions) (ListResult, error) {
	var out ListResult
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireTenantMember(), s.admins.RequireTenantAdmin()); err != nil {
			return err
		}
		logs, total, err := s.repo.List(ctx, sess, id.Tenant(), opts.Skip, opts.Limit)
		if err != nil {
			return err
		}
		out = ListResult{Entries: make([]Entry, 0, len(logs)), Total: total, Skip: opts.Skip, Limit: opts.Limit}
		for _, l := range logs {
			details := l.Details
			if details == nil {
				details = map[string]any{}
			}
			out.Entries = append(out.Entries, Entry{ID: l.ID, UserID: l.UserID, Action: l.Action, Details: details, CreatedAt: l.CreatedAt})
		}
		return nil
	})
	return out, err
}
