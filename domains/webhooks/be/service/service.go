package service

import (
	"context"
	"net/http"
	"reflect"

	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/billing"
)

// Processor applies verified deliveries.
type Processor interface {
	Handle(ctx context.Context, provider billing.Provider, header http.Header, body []byte) (billing.Result, error)
}

// Service routes provider deliveries to the webhook processor.
type Service interface {
	Receive(ctx context.Context, providerName string, header http.Header, body []byte) (billing.Result, error)
}

// Config wires the webhooks service.
type Config struct {
	Processor Processor
	Providers []billing.Provider
	Logger    *zap.Logger
}

type service struct {
	processor Processor
	providers map[string]billing.Provider
	logger    *zap.Logger
}

// New builds the webhooks service. Providers without webhook credentials are simply left out.
func New(cfg Config) Service {
	if cfg.Processor == nil {
		panic("webhook processor is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	providers := make(map[string]billing.Provider, len(cfg.Providers))
	for _, p := range cfg.Providers {
		if isNil(p) {
			continue
		}
		providers[p.Name()] = p
	}
	return &service{processor: cfg.Processor, providers: providers, logger: cfg.Logger}
}

func (s *service) Receive(ctx context.Context, providerName string, header http.Header, body []byte) (billing.Result, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		s.logger.Warn("webhook for unconfigured provider", zap.String("provider", providerName))
		return billing.Result{}, apperr.Newf(apperr.KindUnavailable, "payment provider %s is not configured", providerName)
	}
	if len(body) == 0 {
		return billing.Result{}, billing.ErrSignature
	}
	return s.processor.Handle(ctx, provider, header, body)
}

// isNil reports whether p is unset, including a nil pointer stored in the interface.
func isNil(p billing.Provider) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
