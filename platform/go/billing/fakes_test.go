package billing

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// txParticipant lets in-memory stores take part in fakeRunner rollbacks.
type txParticipant interface {
	snapshot() any
	restore(any)
}

// fakeRunner serializes units of work and restores every participant when fn fails.
type fakeRunner struct {
	mu           sync.Mutex
	participants []txParticipant
	scopes       []tenant.Scope
}

func (r *fakeRunner) WithScope(_ context.Context, scope tenant.Scope, fn func(s *persistence.Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = append(r.scopes, scope)

	snaps := make([]any, len(r.participants))
	for i, p := range r.participants {
		snaps[i] = p.snapshot()
	}
	if err := fn(persistence.NewSession(nil, scope)); err != nil {
		for i, p := range r.participants {
			p.restore(snaps[i])
		}
		return err
	}
	return nil
}

func (r *fakeRunner) WithSystem(ctx context.Context, fn func(s *persistence.Session) error) error {
	return r.WithScope(ctx, tenant.System(), fn)
}

type eventKey struct{ provider, id string }

type memLedger struct {
	rows map[eventKey]persistence.WebhookEvent
}

func newMemLedger() *memLedger { return &memLedger{rows: map[eventKey]persistence.WebhookEvent{}} }

func (l *memLedger) snapshot() any {
	cp := make(map[eventKey]persistence.WebhookEvent, len(l.rows))
	for k, v := range l.rows {
		cp[k] = v
	}
	return cp
}

func (l *memLedger) restore(v any) { l.rows = v.(map[eventKey]persistence.WebhookEvent) }

func (l *memLedger) Claim(_ context.Context, _ *persistence.Session, provider, id, eventType string, _ []byte) (bool, error) {
	k := eventKey{provider, id}
	if _, ok := l.rows[k]; ok {
		return false, nil
	}
	l.rows[k] = persistence.WebhookEvent{ID: id, Provider: provider, EventType: eventType, ReceivedAt: time.Now()}
	return true, nil
}

func (l *memLedger) Lock(_ context.Context, _ *persistence.Session, provider, id string) (persistence.WebhookEvent, error) {
	row, ok := l.rows[eventKey{provider, id}]
	if !ok {
		return row, persistence.ErrWebhookEventNotFound
	}
	return row, nil
}

func (l *memLedger) MarkProcessed(_ context.Context, _ *persistence.Session, provider, id string, at time.Time) error {
	k := eventKey{provider, id}
	row, ok := l.rows[k]
	if !ok {
		return persistence.ErrWebhookEventNotFound
	}
	row.ProcessedSuccessfully = true
	row.ProcessedAt = &at
	l.rows[k] = row
	return nil
}

type memTenants struct {
	rows      map[uuid.UUID]persistence.Tenant
	updates   int
	updateErr error
}

func newMemTenants(ts ...persistence.Tenant) *memTenants {
	m := &memTenants{rows: map[uuid.UUID]persistence.Tenant{}}
	for _, t := range ts {
		m.rows[t.ID] = t
	}
	return m
}

func (m *memTenants) snapshot() any {
	cp := make(map[uuid.UUID]persistence.Tenant, len(m.rows))
	for k, v := range m.rows {
		cp[k] = v
	}
	return [2]any{cp, m.updates}
}

func (m *memTenants) restore(v any) {
	pair := v.([2]any)
	m.rows = pair[0].(map[uuid.UUID]persistence.Tenant)
	m.updates = pair[1].(int)
}

func (m *memTenants) GetForUpdate(_ context.Context, _ *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
	t, ok := m.rows[id]
	if !ok {
		return t, persistence.ErrTenantNotFound
	}
	return t, nil
}

func (m *memTenants) FindByExternalCustomerForUpdate(_ context.Context, _ *persistence.Session, customerID string) (persistence.Tenant, error) {
	for _, t := range m.rows {
		if t.Billing.ExternalCustomerID != nil && *t.Billing.ExternalCustomerID == customerID {
			return t, nil
		}
	}
	return persistence.Tenant{}, persistence.ErrTenantNotFound
}

func (m *memTenants) UpdateBilling(_ context.Context, _ *persistence.Session, id uuid.UUID, state persistence.BillingState) (persistence.Tenant, error) {
	if m.updateErr != nil {
		return persistence.Tenant{}, m.updateErr
	}
	t, ok := m.rows[id]
	if !ok {
		return t, persistence.ErrTenantNotFound
	}
	t.Billing = state
	m.rows[id] = t
	m.updates++
	return t, nil
}

type memUsers struct {
	byEmail map[string]persistence.User
}

func (m *memUsers) FindByEmail(_ context.Context, _ *persistence.Session, email string) (persistence.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return u, persistence.ErrUserNotFound
	}
	return u, nil
}

type memPlans struct {
	plans []persistence.Plan
}

func (m *memPlans) FindByExternalPrice(_ context.Context, _ *persistence.Session, priceID string) (persistence.Plan, error) {
	for _, p := range m.plans {
		if p.ExternalPriceID != nil && *p.ExternalPriceID == priceID {
			return p, nil
		}
	}
	return persistence.Plan{}, persistence.ErrPlanNotFound
}

func (m *memPlans) FindByExternalProduct(_ context.Context, _ *persistence.Session, productID string) (persistence.Plan, error) {
	for _, p := range m.plans {
		if p.ExternalProductID != nil && *p.ExternalProductID == productID {
			return p, nil
		}
	}
	return persistence.Plan{}, persistence.ErrPlanNotFound
}

type memCheckouts struct {
	statuses map[string]string
}

func (m *memCheckouts) snapshot() any {
	cp := make(map[string]string, len(m.statuses))
	for k, v := range m.statuses {
		cp[k] = v
	}
	return cp
}

func (m *memCheckouts) restore(v any) { m.statuses = v.(map[string]string) }

func (m *memCheckouts) UpdateStatus(_ context.Context, _ *persistence.Session, id, status string) error {
	if _, ok := m.statuses[id]; ok {
		m.statuses[id] = status
	}
	return nil
}

type fakeProvider struct {
	name    string
	policy  ClaimPolicy
	parseFn func(header http.Header, body []byte) (Event, error)
	subFn   func(ctx context.Context, id string) (*Subscription, error)
}

func (p *fakeProvider) Name() string             { return p.name }
func (p *fakeProvider) ClaimPolicy() ClaimPolicy { return p.policy }

func (p *fakeProvider) ParseWebhook(header http.Header, body []byte) (Event, error) {
	if p.parseFn == nil {
		panic("parseFn not configured")
	}
	return p.parseFn(header, body)
}

func (p *fakeProvider) SubscriptionDetails(ctx context.Context, id string) (*Subscription, error) {
	if p.subFn == nil {
		panic("subFn not configured")
	}
	return p.subFn(ctx, id)
}

func (p *fakeProvider) CreateCheckoutSession(context.Context, CheckoutRequest) (CheckoutSession, error) {
	return CheckoutSession{}, errors.New("not used")
}

func (p *fakeProvider) CreateCustomerPortalSession(context.Context, string, string) (string, error) {
	return "", errors.New("not used")
}

// staticEvent returns a provider that always yields ev.
func staticEvent(policy ClaimPolicy, ev Event) *fakeProvider {
	return &fakeProvider{name: "fake", policy: policy, parseFn: func(http.Header, []byte) (Event, error) { return ev, nil }}
}
