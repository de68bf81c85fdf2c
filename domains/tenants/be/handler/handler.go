package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/tenants/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	onboardOperation    operation = "onboardingCreateTenant"
	getMineOperation    operation = "tenantsGetMine"
	updateMineOperation operation = "tenantsUpdateMine"
	logoUploadOperation operation = "tenantsLogoUploadURL"
	listOperation       operation = "superadminTenantsList"
	getOperation        operation = "superadminTenantsGet"
	updateOperation     operation = "superadminTenantsUpdate"
	deleteOperation     operation = "superadminTenantsDelete"
	assignPlanOperation operation = "superadminTenantsAssignPlan"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler wires the tenants service to the HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("tenants service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// OnboardingRoutes mounts the onboarding endpoint. The caller applies token-only authentication.
func (h *Handler) OnboardingRoutes(r chi.Router) {
	r.Post("/onboarding/tenant", h.Onboard)
}

// Routes mounts the tenant-admin endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/tenants/me", h.GetMine)
	r.Put("/tenants/me", h.UpdateMine)
	r.Post("/tenants/me/logo-upload-url", h.LogoUploadURL)
}

// SuperadminRoutes mounts the cross-tenant management endpoints.
func (h *Handler) SuperadminRoutes(r chi.Router) {
	r.Route("/superadmin/tenants", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{tenantId}", h.Get)
		r.Put("/{tenantId}", h.Update)
		r.Delete("/{tenantId}", h.Delete)
		r.Post("/{tenantId}/assign-plan", h.AssignPlan)
	})
}

type tenantResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	AdminUserID           *uuid.UUID `json:"admin_user_id"`
	LogoPath              *string    `json:"logo_path"`
	LogoURL               *string    `json:"logo_url"`
	PlanID                *uuid.UUID `json:"plan_id"`
	SubscriptionStatus    string     `json:"subscription_status"`
	CurrentPeriodStartsAt *time.Time `json:"current_period_starts_at"`
	CurrentPeriodEndsAt   *time.Time `json:"current_period_ends_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type listResponse struct {
	Items []tenantResponse `json:"items"`
	Total int              `json:"total"`
	Skip  int              `json:"skip"`
	Limit int              `json:"limit"`
}

type onboardRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Slug          string `json:"slug" validate:"required,max=63"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type updateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Slug     *string `json:"slug" validate:"omitempty,max=63"`
	LogoPath *string `json:"logo_path" validate:"omitempty,max=512"`
}

type logoUploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

type logoUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	Method    string    `json:"method"`
	LogoPath  string    `json:"logo_path"`
	ExpiresAt time.Time `json:"expires_at"`
}

type assignPlanRequest struct {
	PlanID                uuid.UUID  `json:"plan_id" validate:"required"`
	SubscriptionStatus    string     `json:"subscription_status" validate:"omitempty,oneof=active trialing inactive past_due"`
	CurrentPeriodStartsAt *time.Time `json:"current_period_starts_at"`
	CurrentPeriodEndsAt   *time.Time `json:"current_period_ends_at"`
}

// Onboard implements POST /onboarding/tenant.
func (h *Handler) Onboard(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req onboardRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.fail(w, r, onboardOperation, err)
		return
	}

	created, err := h.svc.Onboard(r.Context(), id, service.OnboardInput{Name: req.Name, Slug: req.Slug, TermsAccepted: req.TermsAccepted})
	if err != nil {
		h.fail(w, r, onboardOperation, err)
		return
	}
	h.logger.Info("tenant onboarded",
		zap.String("tenant_id", created.ID.String()),
		zap.String("slug", created.Slug),
	)
	httpx.WriteJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	t, err := h.svc.GetMine(r.Context(), id)
	if err != nil {
		h.fail(w, r, getMineOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.fail(w, r, updateMineOperation, err)
		return
	}

	t, err := h.svc.UpdateMine(r.Context(), id, service.UpdateInput(req))
	if err != nil {
		h.fail(w, r, updateMineOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) LogoUploadURL(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req logoUploadRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.fail(w, r, logoUploadOperation, err)
		return
	}

	upload, err := h.svc.LogoUploadURL(r.Context(), id, req.ContentType)
	if err != nil {
		h.fail(w, r, logoUploadOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, logoUploadResponse(upload))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	skip, err := httpx.QueryInt(r, "skip", 0)
	if err != nil {
		h.fail(w, r, listOperation, err)
		return
	}
	limit, err := httpx.QueryInt(r, "limit", defaultLimit)
	if err != nil {
		h.fail(w, r, listOperation, err)
		return
	}
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	result, err := h.svc.List(r.Context(), id, service.ListOptions{Skip: skip, Limit: limit})
	if err != nil {
		h.fail(w, r, listOperation, err)
		return
	}
	items := make([]tenantResponse, 0, len(result.Tenants))
	for _, t := range result.Tenants {
		items = append(items, toResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{Items: items, Total: result.Total, Skip: result.Skip, Limit: result.Limit})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	tenantID, err := httpx.PathUUID(chi.URLParam(r, "tenantId"))
	if err != nil {
		h.fail(w, r, getOperation, err)
		return
	}
	t, err := h.svc.Get(r.Context(), id, tenantID)
	if err != nil {
		h.fail(w, r, getOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	tenantID, err := httpx.PathUUID(chi.URLParam(r, "tenantId"))
	if err != nil {
		h.fail(w, r, updateOperation, err)
		return
	}
	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.fail(w, r, updateOperation, err)
		return
	}

	t, err := h.svc.Update(r.Context(), id, tenantID, service.UpdateInput(req))
	if err != nil {
		h.fail(w, r, updateOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	tenantID, err := httpx.PathUUID(chi.URLParam(r, "tenantId"))
	if err != nil {
		h.fail(w, r, deleteOperation, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id, tenantID); err != nil {
		h.fail(w, r, deleteOperation, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignPlan(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	tenantID, err := httpx.PathUUID(chi.URLParam(r, "tenantId"))
	if err != nil {
		h.fail(w, r, assignPlanOperation, err)
		return
	}
	var req assignPlanRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.fail(w, r, assignPlanOperation, err)
		return
	}

	t, err := h.svc.AssignPlan(r.Context(), id, tenantID, service.AssignPlanInput{
		PlanID:                req.PlanID,
		Status:                req.SubscriptionStatus,
		CurrentPeriodStartsAt: req.CurrentPeriodStartsAt,
		CurrentPeriodEndsAt:   req.CurrentPeriodEndsAt,
	})
	if err != nil {
		h.fail(w, r, assignPlanOperation, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(t))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op operation, err error) {
	httpx.Fail(w, r, h.logger, string(op), err)
}

func toResponse(t service.Tenant) tenantResponse {
	return tenantResponse{
		ID:                    t.ID,
		Name:                  t.Name,
		Slug:                  t.Slug,
		AdminUserID:           t.AdminUserID,
		LogoPath:              t.LogoPath,
		LogoURL:               t.LogoURL,
		PlanID:                t.Billing.PlanID,
		SubscriptionStatus:    t.Billing.Status,
		CurrentPeriodStartsAt: t.Billing.CurrentPeriodStartsAt,
		CurrentPeriodEndsAt:   t.Billing.CurrentPeriodEndsAt,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}
