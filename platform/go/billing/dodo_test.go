package billing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
)

var dodoKey = []byte("standard-webhooks-test-key")

func dodoSecret() string { return "whsec_" + base64.StdEncoding.EncodeToString(dodoKey) }

// dodoHeader signs body the way Dodo does. An unrelated v1 entry precedes the real signature.
func dodoHeader(t *testing.T, id string, at time.Time, body []byte, key []byte) http.Header {
	t.Helper()
	wh, err := standardwebhooks.NewWebhookRaw(key)
	require.NoError(t, err)
	sig, err := wh.Sign(id, at, body)
	require.NoError(t, err)

	h := http.Header{}
	h.Set(WebhookIDHeader, id)
	h.Set(WebhookTimestampHeader, strconv.FormatInt(at.Unix(), 10))
	h.Set(WebhookSignatureHeader, "v1,bm90LXRoaXMtb25l "+sig)
	return h
}

func newTestDodo(t *testing.T, baseURL string) *DodoProvider {
	t.Helper()
	p, err := NewDodoProvider(DodoConfig{APIKey: "dodo_key", WebhookSecret: dodoSecret(), BaseURL: baseURL})
	require.NoError(t, err)
	return p
}

func TestDodoSubscriptionActive(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	tenantID := uuid.New()
	body := []byte(`{
		"business_id": "bus_1", "type": "subscription.active", "timestamp": "2026-03-01T11:59:00Z",
		"data": {"subscription_id": "sub_9", "product_id": "prod_team", "status": "active",
			"customer": {"customer_id": "cus_9", "email": "Owner@Acme.test"},
			"metadata": {"internal_tenant_id": "` + tenantID.String() + `"},
			"previous_billing_date": "2026-03-01T00:00:00Z", "next_billing_date": "2026-04-01T00:00:00Z"}
	}`)

	ev, err := newTestDodo(t, "").ParseWebhook(dodoHeader(t, "msg_1", now, body, dodoKey), body)
	require.NoError(t, err)
	require.Equal(t, "msg_1", ev.ID)
	require.Equal(t, ActionActivate, ev.Action)
	require.Equal(t, tenantID, *ev.TenantRef)
	require.Equal(t, "owner@acme.test", ev.CustomerEmail)
	require.Equal(t, "prod_team", ev.ProductID)
	require.Equal(t, time.Date(2026, 3, 1, 11, 59, 0, 0, time.UTC), ev.OccurredAt)
	require.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *ev.PeriodEnd)
}

func TestDodoEventActions(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	p := newTestDodo(t, "")
	for typ, want := range map[string]Action{
		"subscription.renewed":   ActionActivate,
		"subscription.on_hold":   ActionPastDue,
		"subscription.failed":    ActionPastDue,
		"subscription.cancelled": ActionDeactivate,
		"subscription.expired":   ActionDeactivate,
		"payment.succeeded":      ActionIgnore,
	} {
		body := []byte(`{"type":"` + typ + `","data":{"subscription_id":"sub_1","customer":{"email":"a@b.test"}}}`)
		ev, err := p.ParseWebhook(dodoHeader(t, "msg_"+typ, now, body, dodoKey), body)
		require.NoError(t, err, typ)
		require.Equal(t, want, ev.Action, typ)
		require.Equal(t, now.Truncate(time.Second), ev.OccurredAt, typ)
	}
}

func TestDodoSignatureFailures(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	p := newTestDodo(t, "")
	body := []byte(`{"type":"subscription.active","data":{}}`)

	testCases := []struct {
		name   string
		header http.Header
	}{
		{name: "missing headers", header: http.Header{}},
		{name: "wrong key", header: dodoHeader(t, "msg_1", now, body, []byte("other"))},
		{name: "too old", header: dodoHeader(t, "msg_1", now.Add(-6*time.Minute), body, dodoKey)},
		{name: "from the future", header: dodoHeader(t, "msg_1", now.Add(6*time.Minute), body, dodoKey)},
		{name: "tampered body", header: dodoHeader(t, "msg_1", now, []byte(`{"type":"subscription.expired"}`), dodoKey)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := p.ParseWebhook(tc.header, body)
			require.ErrorIs(t, err, ErrSignature)
		})
	}
}

func TestNewDodoProviderRejectsBadSecret(t *testing.T) {
	t.Parallel()

	_, err := NewDodoProvider(DodoConfig{WebhookSecret: "whsec_***"})
	require.ErrorContains(t, err, "decode webhook secret")

	_, err = NewDodoProvider(DodoConfig{WebhookSecret: "whsec_"})
	require.ErrorContains(t, err, "webhook secret is empty")
}

func TestDodoAPI(t *testing.T) {
	t.Parallel()

	tenantID, userID := uuid.New(), uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer dodo_key", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/subscriptions/sub_1":
			_, _ = w.Write([]byte(`{"subscription_id":"sub_1","status":"active","product_id":"prod_team",
				"customer":{"customer_id":"cus_1","email":"a@b.test"},"next_billing_date":"2026-04-01T00:00:00Z"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/checkouts":
			var req dodoCheckoutRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "prod_team", req.ProductCart[0].ProductID)
			require.Equal(t, tenantID.String(), req.Metadata["internal_tenant_id"])
			require.Equal(t, "owner", req.Customer.Name)
			_, _ = w.Write([]byte(`{"session_id":"chk_1","checkout_url":"https://pay.test/chk_1"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	p := newTestDodo(t, srv.URL)
	ctx := context.Background()

	sub, err := p.SubscriptionDetails(ctx, "sub_1")
	require.NoError(t, err)
	require.Equal(t, "prod_team", sub.ProductID)
	require.Equal(t, "cus_1", sub.CustomerID)

	missing, err := p.SubscriptionDetails(ctx, "sub_missing")
	require.NoError(t, err)
	require.Nil(t, missing)

	cs, err := p.CreateCheckoutSession(ctx, CheckoutRequest{TenantID: tenantID, UserID: userID, Email: "owner@acme.test", ProductID: "prod_team", SuccessURL: "https://app.test/ok"})
	require.NoError(t, err)
	require.Equal(t, CheckoutSession{ID: "chk_1", URL: "https://pay.test/chk_1"}, cs)

	_, err = p.CreateCustomerPortalSession(ctx, "cus_1", "https://app.test")
	require.True(t, apperr.IsKind(err, apperr.KindNotImplemented))
}
