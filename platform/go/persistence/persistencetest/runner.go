// Package persistencetest provides in-process stand-ins for the session binder.
package persistencetest

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// ErrNoDatabase is returned by Query and QueryRow; services under test talk to fake stores instead.
var ErrNoDatabase = errors.New("persistencetest: no database behind this session")

// NopQuerier accepts scope changes and rejects everything else.
type NopQuerier struct{}

func (NopQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (NopQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, ErrNoDatabase
}

func (NopQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoDatabase }

// Runner implements persistence.Runner without a database. It records every scope it opens and, when
// OnRollback is set, calls it for units of work that return an error.
type Runner struct {
	mu         sync.Mutex
	scopes     []tenant.Scope
	commits    int
	rollbacks  int
	OnRollback func()
}

// NewRunner returns an empty Runner.
func NewRunner() *Runner { return &Runner{} }

func (r *Runner) WithScope(_ context.Context, scope tenant.Scope, fn func(s *persistence.Session) error) error {
	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()

	err := fn(persistence.NewSession(NopQuerier{}, scope))

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.rollbacks++
		if r.OnRollback != nil {
			r.OnRollback()
		}
		return err
	}
	r.commits++
	return nil
}

func (r *Runner) WithSystem(ctx context.Context, fn func(s *persistence.Session) error) error {
	return r.WithScope(ctx, tenant.System(), fn)
}

// Scopes returns the scopes opened so far.
func (r *Runner) Scopes() []tenant.Scope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tenant.Scope(nil), r.scopes...)
}

// Commits returns how many units of work completed without error.
func (r *Runner) Commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commits
}

// Rollbacks returns how many units of work returned an error.
func (r *Runner) Rollbacks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rollbacks
}
