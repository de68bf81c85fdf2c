package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	CheckoutSessionsTable = "checkout_sessions"
	WebhookEventsTable    = "webhook_events"
)

// CheckoutSession represents a row in checkout_sessions.
type CheckoutSession struct {
	ID        string
	Provider  string
	TenantID  uuid.UUID
	PlanID    uuid.UUID
	Status    string
	CreatedAt time.Time
}

// WebhookEvent represents a row in webhook_events.
type WebhookEvent struct {
	ID                    string
	Provider              string
	EventType             string
	ProcessedSuccessfully bool
	ReceivedAt            time.Time
	ProcessedAt           *time.Time
}

// ErrWebhookEventNotFound indicates the dedup row is missing.
var ErrWebhookEventNotFound = errors.New("webhook event not found")

// CheckoutSessionStore tracks in-flight checkout attempts.
type CheckoutSessionStore struct{}

// NewCheckoutSessionStore returns a store instance.
func NewCheckoutSessionStore() *CheckoutSessionStore { return &CheckoutSessionStore{} }

// Create records a checkout session once per provider session id. It reports whether a new row was written.
func (st *CheckoutSessionStore) Create(ctx context.Context, s *Session, cs CheckoutSession) (bool, error) {
	status := cs.Status
	if status == "" {
		status = "PENDING"
	}
	tag, err := s.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, provider, tenant_id, plan_id, status)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO NOTHING
    `, CheckoutSessionsTable), cs.ID, cs.Provider, cs.TenantID, cs.PlanID, status)
	if err != nil {
		return false, fmt.Errorf("insert checkout session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateStatus sets the status of a checkout session; unknown ids are ignored.
func (st *CheckoutSessionStore) UpdateStatus(ctx context.Context, s *Session, id, status string) error {
	if _, err := s.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET status = $1 WHERE id = $2
    `, CheckoutSessionsTable), status, id); err != nil {
		return fmt.Errorf("update checkout session: %w", err)
	}
	return nil
}

// WebhookEventStore implements the dedup ledger for provider webhooks.
type WebhookEventStore struct{}

// NewWebhookEventStore returns a store instance.
func NewWebhookEventStore() *WebhookEventStore { return &WebhookEventStore{} }

// Claim inserts the dedup row if it does not exist yet. Concurrent claims for the same id are resolved by the
// primary key; the loser sees inserted=false.
func (st *WebhookEventStore) Claim(ctx context.Context, s *Session, provider, id, eventType string, payload []byte) (bool, error) {
	var body any
	if len(payload) > 0 {
		body = string(payload)
	}
	tag, err := s.Exec(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, provider, event_type, payload)
        VALUES ($1, $2, $3, $4::jsonb)
        ON CONFLICT (provider, id) DO NOTHING
    `, WebhookEventsTable), id, provider, eventType, body)
	if err != nil {
		return false, fmt.Errorf("claim webhook event: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Lock returns the dedup row and holds a row lock until the transaction ends, serializing concurrent
// deliveries of the same event.
func (st *WebhookEventStore) Lock(ctx context.Context, s *Session, provider, id string) (WebhookEvent, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT id, provider, event_type, processed_successfully, received_at, processed_at
        FROM %s
        WHERE provider = $1 AND id = $2
        FOR UPDATE
    `, WebhookEventsTable), provider, id)

	var ev WebhookEvent
	if err := row.Scan(&ev.ID, &ev.Provider, &ev.EventType, &ev.ProcessedSuccessfully, &ev.ReceivedAt, &ev.ProcessedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WebhookEvent{}, ErrWebhookEventNotFound
		}
		return WebhookEvent{}, fmt.Errorf("lock webhook event: %w", err)
	}
	return ev, nil
}

// MarkProcessed flags the event as successfully applied.
func (st *WebhookEventStore) MarkProcessed(ctx context.Context, s *Session, provider, id string, at time.Time) error {
	tag, err := s.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET processed_successfully = TRUE, processed_at = $1
        WHERE provider = $2 AND id = $3
    `, WebhookEventsTable), at, provider, id)
	if err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWebhookEventNotFound
	}
	return nil
}
