package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/apikeys/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	createOperation operation = "apiKeysCreate"
	listOperation   operation = "apiKeysList"
	deleteOperation operation = "apiKeysDelete"
)

const createdMessage = "API key created successfully. Please save this key securely. You will not be able to see it again."

// Handler exposes API key management over HTTP.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("api keys service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the api key endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api-keys", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Delete("/{keyId}", h.Delete)
	})
}

type createRequest struct {
	Name      string     `json:"name" validate:"max=100"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type keyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"key_prefix"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

type createResponse struct {
	Message    string      `json:"message"`
	Details    keyResponse `json:"api_key_details"`
	FullAPIKey string      `json:"full_api_key"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req createRequest
	if r.ContentLength != 0 {
		if err := httpx.Decode(r, &req); err != nil {
			h.fail(w, r, createOperation, err)
			return
		}
	}

	created, err := h.svc.Create(r.Context(), id, service.CreateInput{Name: req.Name, ExpiresAt: req.ExpiresAt})
	if err != nil {
		h.fail(w, r, createOperation, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httpx.WriteJSON(w, http.StatusCreated, createResponse{Message: createdMessage, Details: toResponse(created.Key), FullAPIKey: created.FullKey})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	keys, err := h.svc.List(r.Context(), id)
	if err != nil {
		h.fail(w, r, listOperation, err)
		return
	}
	out := make([]keyResponse, 0, len(keys))
	for _, key := range keys {
		out = append(out, toResponse(key))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	keyID, err := httpx.PathUUID(chi.URLParam(r, "keyId"))
	if err != nil {
		h.fail(w, r, deleteOperation, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id, keyID); err != nil {
		h.fail(w, r, deleteOperation, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op operation, err error) {
	httpx.Fail(w, r, h.logger, string(op), err)
}

func toResponse(key service.Key) keyResponse {
	return keyResponse{
		ID:         key.ID,
		Name:       key.Name,
		KeyPrefix:  key.KeyPrefix,
		CreatedAt:  key.CreatedAt,
		LastUsedAt: key.LastUsedAt,
		ExpiresAt:  key.ExpiresAt,
	}
}
