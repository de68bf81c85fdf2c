package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

// Security scheme names declared by the API contract.
const (
	SchemeBearer = "bearerAuth"
	SchemeAPIKey = "apiKeyAuth"
)

var (
	errNoRequest     = errors.New("no request in validation input")
	errMissingBearer = errors.New("missing or invalid Authorization header")
	errMissingAPIKey = errors.New("missing X-API-Key header")
)

// ValidateAuthenticationViaSwagger checks that the credential a security scheme names is present. Operations that
// list both schemes pass when either one is satisfied; verifying the credential is left to auth.Authenticate.
func ValidateAuthenticationViaSwagger(_ context.Context, input *openapi3filter.AuthenticationInput) error {
	if input == nil {
		return nil
	}
	r := input.RequestValidationInput.Request
	if r == nil {
		return errNoRequest
	}

	switch input.SecuritySchemeName {
	case SchemeBearer:
		if _, ok := auth.ExtractBearerToken(r); !ok {
			return errMissingBearer
		}
	case SchemeAPIKey:
		if strings.TrimSpace(r.Header.Get(auth.APIKeyHeader)) == "" {
			return errMissingAPIKey
		}
	}
	return nil
}

// SpecValidator validates requests against the contract and renders failures as problem documents.
func SpecValidator(spec *openapi3.T, logger *zap.Logger) func(http.Handler) http.Handler {
	return oapimiddleware.OapiRequestValidatorWithOptions(spec, &oapimiddleware.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: ValidateAuthenticationViaSwagger,
		},
		SilenceServersWarning: true,
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			if logger != nil {
				logger.Debug("request rejected by contract validation", zap.Int("status", statusCode), zap.String("reason", message))
			}
			httpx.WriteProblem(w, validationError(statusCode, message))
		},
	})
}

func validationError(status int, message string) *apperr.Error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return auth.ErrUnauthenticated.WithMessage("%s", firstLine(message))
	case http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, "route not found")
	default:
		return apperr.New(apperr.KindBadRequest, firstLine(message))
	}
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}
