package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/subscriptions/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/billing"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	listPlansOperation operation = "plansList"
	mineOperation      operation = "subscriptionsMine"
	checkoutOperation  operation = "subscriptionsCheckout"
	portalOperation    operation = "subscriptionsPortal"
)

// Handler wires the subscriptions service to the HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("subscriptions service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// PublicRoutes mounts the unauthenticated plan catalogue.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/plans", h.ListPlans)
}

// Routes mounts the authenticated subscription endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/subscriptions/me", h.Mine)
	r.Post("/subscriptions/checkout-session", h.Checkout)
	r.Post("/subscriptions/customer-portal-session", h.Portal)
}

type entitlementResponse struct {
	FeatureSlug     string `json:"feature_slug"`
	EntitlementType string `json:"entitlement_type"`
	Value           int64  `json:"value"`
}

type planResponse struct {
	ID                uuid.UUID             `json:"id"`
	Name              string                `json:"name"`
	Description       *string               `json:"description"`
	IsActive          bool                  `json:"is_active"`
	ExternalProductID *string               `json:"external_product_id"`
	ExternalPriceID   *string               `json:"external_price_id"`
	Entitlements      []entitlementResponse `json:"entitlements"`
}

type detailsResponse struct {
	Plan                  planResponse              `json:"plan"`
	SubscriptionStatus    string                    `json:"subscription_status"`
	CurrentPeriodStartsAt *time.Time                `json:"current_period_starts_at"`
	CurrentPeriodEndsAt   *time.Time                `json:"current_period_ends_at"`
	PaymentProviderData   *billing.Subscription     `json:"payment_provider_data"`
	Usage                 map[string]int64          `json:"usage"`
	Meters                []entitlements.MeterUsage `json:"meters"`
}

type checkoutRequest struct {
	PlanID     uuid.UUID `json:"plan_id" validate:"required"`
	SuccessURL string    `json:"success_url" validate:"required,url"`
	CancelURL  string    `json:"cancel_url" validate:"required,url"`
}

type checkoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type portalRequest struct {
	ReturnURL string `json:"return_url" validate:"required,url"`
}

type portalResponse struct {
	PortalURL string `json:"portal_url"`
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.ListPlans(r.Context())
	if err != nil {
		h.fail(w, r, listPlansOperation, err)
		return
	}
	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	details, err := h.svc.Mine(r.Context(), id)
	if err != nil {
		h.fail(w, r, mineOperation, err)
		return
	}

	usage := make(map[string]int64, len(details.Usage))
	for _, m := range details.Usage {
		usage[m.FeatureSlug] = m.Used
	}
	meters := details.Usage
	if meters == nil {
		meters = []entitlements.MeterUsage{}
	}
	httpx.WriteJSON(w, http.StatusOK, detailsResponse{
		Plan:                  toPlanResponse(details.Plan),
		SubscriptionStatus:    details.Status,
		CurrentPeriodStartsAt: details.CurrentPeriodStartsAt,
		CurrentPeriodEndsAt:   details.CurrentPeriodEndsAt,
		PaymentProviderData:   details.Provider,
		Usage:                 usage,
		Meters:                meters,
	})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req checkoutRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.fail(w, r, checkoutOperation, err)
		return
	}

	session, err := h.svc.Checkout(r.Context(), id, service.CheckoutInput{PlanID: req.PlanID, SuccessURL: req.SuccessURL, CancelURL: req.CancelURL})
	if err != nil {
		h.fail(w, r, checkoutOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, checkoutResponse{CheckoutURL: session.URL})
}

func (h *Handler) Portal(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req portalRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.fail(w, r, portalOperation, err)
		return
	}

	url, err := h.svc.PortalSession(r.Context(), id, req.ReturnURL)
	if err != nil {
		h.fail(w, r, portalOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalResponse{PortalURL: url})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op operation, err error) {
	httpx.Fail(w, r, h.logger, string(op), err)
}

func toPlanResponse(p service.Plan) planResponse {
	out := planResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		IsActive:          p.IsActive,
		ExternalProductID: p.ExternalProductID,
		ExternalPriceID:   p.ExternalPriceID,
		Entitlements:      make([]entitlementResponse, 0, len(p.Entitlements)),
	}
	for _, e := range p.Entitlements {
		out.Entitlements = append(out.Entitlements, entitlementResponse{FeatureSlug: e.FeatureSlug, EntitlementType: e.Type, Value: e.Value})
	}
	return out
}
