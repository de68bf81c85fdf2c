package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/logging"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// ErrSessionClosed is returned when a session is used after its transaction ended
// or after the elevated block that produced it returned.
var ErrSessionClosed = errors.New("persistence: session is closed")

const setScopeSQL = `SELECT set_config('app.current_user_id', $1, true),
       set_config('app.current_tenant_id', $2, true),
       set_config('app.is_superadmin', $3, true)`

type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Querier is the subset of pgx.Tx used by stores.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Runner opens scoped sessions. *Binder is the production implementation.
type Runner interface {
	WithScope(ctx context.Context, scope tenant.Scope, fn func(s *Session) error) error
	WithSystem(ctx context.Context, fn func(s *Session) error) error
}

// Binder opens one transaction per unit of work and binds a tenant.Scope to it.
type Binder struct {
	pool txBeginner
}

// NewBinder constructs a Binder over a pgx pool.
func NewBinder(pool *pgxpool.Pool) *Binder {
	if pool == nil {
		panic("Binder requires pool")
	}
	return &Binder{pool: pool}
}

// WithScope executes fn inside a transaction whose app.* settings reflect scope. The transaction commits when
// fn returns nil and rolls back otherwise; the session handed to fn is unusable once WithScope returns.
func (b *Binder) WithScope(ctx context.Context, scope tenant.Scope, fn func(s *Session) error) error {
	tx, err := b.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := applyScope(ctx, tx, scope); err != nil {
		return err
	}
	tagScope(ctx, scope)

	session := NewSession(tx, scope)
	defer session.revoke()

	if err := fn(session); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// WithSystem executes fn with system scope for the whole transaction. Only trusted internal callers
// (webhooks, CLI, bookkeeping) use it; tenant-facing routes never do.
func (b *Binder) WithSystem(ctx context.Context, fn func(s *Session) error) error {
	return b.WithScope(ctx, tenant.System(), fn)
}

// Session is a capability bound to one transaction and one scope.
type Session struct {
	q       Querier
	scope   tenant.Scope
	revoked atomic.Bool
}

// NewSession wraps q with scope. Binders and tests use it; the caller is responsible for the
// app.* settings matching scope.
func NewSession(q Querier, scope tenant.Scope) *Session {
	return &Session{q: q, scope: scope}
}

// Scope returns the scope the session runs under.
func (s *Session) Scope() tenant.Scope { return s.scope }

// Elevate runs fn with a superadmin child session and restores the parent's settings on every exit path,
// including panics. The child is revoked when fn returns. A failed restore fails the unit of work.
func (s *Session) Elevate(ctx context.Context, fn func(elevated *Session) error) (err error) {
	if s.revoked.Load() {
		return ErrSessionClosed
	}

	elevatedScope := s.scope.Elevated()
	if err := applyScope(ctx, s.q, elevatedScope); err != nil {
		return fmt.Errorf("elevate session: %w", err)
	}

	logging.Tag(ctx, zap.Bool("db_elevated", true))

	child := NewSession(s.q, elevatedScope)
	defer func() {
		child.revoke()
		if restoreErr := applyScope(context.WithoutCancel(ctx), s.q, s.scope); restoreErr != nil && err == nil {
			err = fmt.Errorf("restore session scope: %w", restoreErr)
		}
	}()

	return fn(child)
}

func (s *Session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if s.revoked.Load() {
		return pgconn.CommandTag{}, ErrSessionClosed
	}
	return s.q.Exec(ctx, sql, args...)
}

func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.revoked.Load() {
		return nil, ErrSessionClosed
	}
	return s.q.Query(ctx, sql, args...)
}

func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.revoked.Load() {
		return errRow{err: ErrSessionClosed}
	}
	return s.q.QueryRow(ctx, sql, args...)
}

func (s *Session) revoke() { s.revoked.Store(true) }

func applyScope(ctx context.Context, q Querier, scope tenant.Scope) error {
	userID, tenantID, superadmin := scope.SettingValues()
	if _, err := q.Exec(ctx, setScopeSQL, userID, tenantID, superadmin); err != nil {
		return fmt.Errorf("set session scope: %w", err)
	}
	return nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// scopeClause returns a predicate restricting column to the session tenant, appending the bound
// argument to args. Superadmin sessions are unrestricted.
func scopeClause(s *Session, column string, args *[]any) string {
	scope := s.Scope()
	if scope.Superadmin {
		return "TRUE"
	}
	*args = append(*args, scope.TenantID)
	return fmt.Sprintf("%s = $%d", column, len(*args))
}

// tagScope puts the scope a request's database work ran under on its completion log line.
func tagScope(ctx context.Context, scope tenant.Scope) {
	fields := []zap.Field{zap.Bool("db_superadmin", scope.Superadmin)}
	if scope.HasTenant() {
		fields = append(fields, zap.String("db_tenant_id", scope.TenantID.String()))
	}
	logging.Tag(ctx, fields...)
}
