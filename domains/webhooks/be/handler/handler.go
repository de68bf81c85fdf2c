package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/webhooks/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/billing"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

// maxPayload bounds a single delivery.
const maxPayload = 1 << 20

// Handler exposes the payment-provider webhook endpoints. Requests are authenticated by signature only.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("webhooks service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts one endpoint per provider.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/webhooks/stripe", h.receive(billing.ProviderStripe))
	r.Post("/webhooks/dodo", h.receive(billing.ProviderDodo))
}

func (h *Handler) receive(provider string) http.HandlerFunc {
	op := provider + "Webhook"
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxPayload))
		if err != nil {
			httpx.Fail(w, r, h.logger, op, apperr.Wrap(apperr.KindBadRequest, err, "unable to read webhook payload"))
			return
		}

		res, err := h.svc.Receive(r.Context(), provider, r.Header, body)
		if err != nil {
			httpx.Fail(w, r, h.logger, op, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}
