package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/audit-logs/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

const listOperation = "auditLogsList"

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler wires the audit logs service to the HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("audit logs service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/audit-logs", h.List)
}

type entryResponse struct {
	ID        uuid.UUID      `json:"id"`
	UserID    *uuid.UUID     `json:"user_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

type listResponse struct {
	Items []entryResponse `json:"items"`
	Total int             `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	skip, err := httpx.QueryInt(r, "skip", 0)
	if err != nil {
		httpx.Fail(w, r, h.logger, listOperation, err)
		return
	}
	limit, err := httpx.QueryInt(r, "limit", defaultLimit)
	if err != nil {
		httpx.Fail(w, r, h.logger, listOperation, err)
		return
	}
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	result, err := h.svc.List(r.Context(), id, service.ListOptions{Skip: skip, Limit: limit})
	if err != nil {
		httpx.Fail(w, r, h.logger, listOperation, err)
		return
	}

	items := make([]entryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		items = append(items, entryResponse(e))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{Items: items, Total: result.Total, Skip: result.Skip, Limit: result.Limit})
}
