package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// scopeRecorder captures the superadmin flag of every scope change issued through a session.
type scopeRecorder struct {
	mu    sync.Mutex
	flags []string
}

func (q *scopeRecorder) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(args) == 3 {
		q.flags = append(q.flags, args[2].(string))
	}
	return pgconn.CommandTag{}, nil
}

func (q *scopeRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported")
}

func (q *scopeRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("QueryRow not supported")
}

type fakeRunner struct {
	q      *scopeRecorder
	mu     sync.Mutex
	scopes []tenant.Scope
}

func newFakeRunner() *fakeRunner { return &fakeRunner{q: &scopeRecorder{}} }

func (r *fakeRunner) WithScope(_ context.Context, scope tenant.Scope, fn func(s *persistence.Session) error) error {
	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()
	return fn(persistence.NewSession(r.q, scope))
}

func (r *fakeRunner) WithSystem(ctx context.Context, fn func(s *persistence.Session) error) error {
	return r.WithScope(ctx, tenant.System(), fn)
}

type stubVerifier struct {
	claims Claims
	err    error
}

func (v stubVerifier) Verify(context.Context, string) (Claims, error) { return v.claims, v.err }

type fakeUsers struct {
	getFn func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error)
}

func (f *fakeUsers) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error) {
	if f.getFn == nil {
		panic("getFn not configured")
	}
	return f.getFn(ctx, s, id)
}

type fakeKeys struct {
	findFn  func(ctx context.Context, s *persistence.Session, prefix string) (persistence.APIKey, error)
	touchFn func(ctx context.Context, s *persistence.Session, id uuid.UUID, at time.Time) error
}

func (f *fakeKeys) FindByPrefix(ctx context.Context, s *persistence.Session, prefix string) (persistence.APIKey, error) {
	if f.findFn == nil {
		panic("findFn not configured")
	}
	return f.findFn(ctx, s, prefix)
}

func (f *fakeKeys) Touch(ctx context.Context, s *persistence.Session, id uuid.UUID, at time.Time) error {
	if f.touchFn == nil {
		panic("touchFn not configured")
	}
	return f.touchFn(ctx, s, id, at)
}
