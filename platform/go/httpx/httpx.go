package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/logging"
)

const problemTypeBase = "https://tenantgate.dev/problems/"

// Problem is an RFC 7807 problem document with the error_code extension.
type Problem struct {
	Type      string              `json:"type,omitempty"`
	Title     string              `json:"title"`
	Status    int                 `json:"status"`
	Detail    string              `json:"detail,omitempty"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StatusFor maps an error kind onto an HTTP status code.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindProfileNotFound, apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbiddenTerms, apperr.KindForbiddenPermission, apperr.KindForbiddenRole, apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindPaymentRequired:
		return http.StatusPaymentRequired
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation, apperr.KindBadRequest, apperr.KindSignatureInvalid:
		return http.StatusBadRequest
	case apperr.KindWebhookBusiness:
		return http.StatusOK
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	case apperr.KindNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// ProblemFor builds the problem document for err. Errors that are not *apperr.Error are reported as internal
// without leaking their message.
func ProblemFor(err error) Problem {
	appErr, ok := apperr.As(err)
	if !ok {
		return Problem{
			Type:      problemTypeBase + "internal-error",
			Title:     "Internal server error",
			Status:    http.StatusInternalServerError,
			Detail:    "an unexpected error occurred",
			ErrorCode: string(apperr.KindInternal),
		}
	}

	status := StatusFor(appErr.Kind)
	problem := Problem{
		Type:      problemTypeBase + strings.ToLower(strings.ReplaceAll(string(appErr.Kind), "_", "-")),
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    appErr.Message,
		ErrorCode: appErr.Code,
	}
	if status == http.StatusInternalServerError {
		problem.Detail = "an unexpected error occurred"
	}
	if len(appErr.Fields) > 0 {
		problem.Errors = make(map[string][]string, len(appErr.Fields))
		for field, messages := range appErr.Fields {
			problem.Errors[field] = append([]string(nil), messages...)
		}
	}
	return problem
}

// WriteProblem renders the problem document for err.
func WriteProblem(w http.ResponseWriter, err error) Problem {
	problem := ProblemFor(err)
	writeProblem(w, problem)
	return problem
}

// WriteJSON renders body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// Decode reads a JSON body into dst, rejecting unknown fields, then runs struct validation.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.New(apperr.KindBadRequest, "request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.KindBadRequest, "request body is required")
		}
		return apperr.Wrap(apperr.KindBadRequest, err, "invalid request body")
	}
	return Validate(dst)
}

// Validate runs go-playground struct validation and converts failures into field errors keyed by json name. A nil
// body is a bad request.
func Validate(v any) error {
	if rv := reflect.ValueOf(v); v == nil || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return apperr.New(apperr.KindBadRequest, "request body is required")
	}
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindBadRequest, err, "invalid request body")
	}
	fields := apperr.FieldErrors{}
	for _, fe := range verrs {
		fields.Add(jsonFieldName(fe), describe(fe))
	}
	return apperr.Validation(fields)
}

// PathUUID parses a chi URL parameter already extracted by the caller. Invalid ids are reported as not found
// so malformed and foreign ids are indistinguishable.
func PathUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.KindNotFound, "resource not found")
	}
	return id, nil
}

// QueryInt reads a non-negative integer query parameter, returning def when absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperr.ValidationField(name, fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return v, nil
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Report logs err under op at a level matching its status and returns the problem document. Server errors log at
// Error, not-found at Info and every other rejection at Warn.
func Report(ctx context.Context, logger *zap.Logger, op string, err error) Problem {
	problem := ProblemFor(err)
	fields := []zap.Field{zap.String("operation", op), zap.Int("status", problem.Status), zap.Error(err)}

	logger = logging.FromContextOr(ctx, logger)
	switch {
	case problem.Status >= http.StatusInternalServerError:
		logger.Error("operation failed", fields...)
	case problem.Status == http.StatusNotFound:
		logger.Info("resource not found", fields...)
	default:
		logger.Warn("request rejected", fields...)
	}
	return problem
}

// Fail reports err and renders the problem document.
func Fail(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string, err error) {
	problem := Report(r.Context(), logger, op, err)
	writeProblem(w, problem)
}

// Paging resolves optional skip and limit query values. A zero or oversized limit means maxLimit.
func Paging(skip, limit *int, defaultLimit, maxLimit int) (int, int, error) {
	s, l := 0, defaultLimit
	if skip != nil {
		if *skip < 0 {
			return 0, 0, apperr.ValidationField("skip", "skip must be a non-negative integer")
		}
		s = *skip
	}
	if limit != nil {
		if *limit < 0 {
			return 0, 0, apperr.ValidationField("limit", "limit must be a non-negative integer")
		}
		l = *limit
	}
	if l == 0 || l > maxLimit {
		l = maxLimit
	}
	return s, l, nil
}

// RequestErrorHandler renders request decoding failures raised by generated strict handlers as 400 problems.
func RequestErrorHandler(logger *zap.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		Fail(w, r, logger, "decodeRequest", apperr.Wrap(apperr.KindBadRequest, err, "invalid request"))
	}
}

// ResponseErrorHandler renders errors returned by strict handlers or raised while encoding their responses.
func ResponseErrorHandler(logger *zap.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		Fail(w, r, logger, "encodeResponse", err)
	}
}

// ParamErrorHandler renders parameter binding failures from generated routers as 400 problems.
func ParamErrorHandler(logger *zap.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		Fail(w, r, logger, "bindParameters", apperr.Wrap(apperr.KindBadRequest, err, err.Error()))
	}
}

func writeProblem(w http.ResponseWriter, problem Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}
