package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
)

func TestWriteProblemMapsKinds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "unauthenticated", err: apperr.New(apperr.KindUnauthenticated, "missing credentials"), status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{name: "terms", err: apperr.WithCode(apperr.KindForbiddenTerms, "TERMS_NOT_ACCEPTED", "terms not accepted"), status: http.StatusForbidden, code: "TERMS_NOT_ACCEPTED"},
		{name: "payment", err: apperr.New(apperr.KindPaymentRequired, "limit reached"), status: http.StatusPaymentRequired, code: "PAYMENT_REQUIRED"},
		{name: "conflict", err: apperr.New(apperr.KindConflict, "duplicate"), status: http.StatusConflict, code: "CONFLICT"},
		{name: "not implemented", err: apperr.New(apperr.KindNotImplemented, "nope"), status: http.StatusNotImplemented, code: "NOT_IMPLEMENTED"},
		{name: "plain error", err: errors.New("pq: secret detail"), status: http.StatusInternalServerError, code: "INTERNAL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteProblem(rec, tc.err)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var body Problem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.code, body.ErrorCode)
			require.NotContains(t, body.Detail, "secret detail")
		})
	}
}

type createPayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
}

func TestDecodeValidatesPayload(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","name":""}`))
	var payload createPayload
	err := Decode(req, &payload)

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindValidation, appErr.Kind)
	require.Contains(t, appErr.Fields, "email")
	require.Contains(t, appErr.Fields, "name")
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","name":"Al","extra":1}`))
	var payload createPayload
	err := Decode(req, &payload)
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestPathUUIDInvalidIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := PathUUID("not-a-uuid")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReportLogsAtStatusLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	problem := Report(context.Background(), logger, "itemsGet", apperr.New(apperr.KindNotFound, "item missing"))
	require.Equal(t, http.StatusNotFound, problem.Status)
	problem = Report(context.Background(), logger, "itemsCreate", errors.New("db down"))
	require.Equal(t, http.StatusInternalServerError, problem.Status)
	require.Equal(t, "an unexpected error occurred", problem.Detail)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, "itemsGet", entries[0].ContextMap()["operation"])
	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestRequestErrorHandlerRendersBadRequest(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	RequestErrorHandler(zaptest.NewLogger(t))(rec, req, errors.New("can't decode JSON body: unexpected EOF"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var problem Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "invalid request", problem.Detail)
}

func TestResponseErrorHandlerKeepsKind(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	ResponseErrorHandler(zaptest.NewLogger(t))(rec, req, apperr.New(apperr.KindForbidden, "nope"))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPaging(t *testing.T) {
	t.Parallel()

	ptr := func(v int) *int { return &v }

	testCases := []struct {
		name      string
		skip      *int
		limit     *int
		wantSkip  int
		wantLimit int
		wantField string
	}{
		{name: "defaults", wantSkip: 0, wantLimit: 100},
		{name: "explicit", skip: ptr(20), limit: ptr(10), wantSkip: 20, wantLimit: 10},
		{name: "zero limit means max", limit: ptr(0), wantLimit: 1000},
		{name: "oversized limit is clamped", limit: ptr(5000), wantLimit: 1000},
		{name: "negative skip", skip: ptr(-1), wantField: "skip"},
		{name: "negative limit", limit: ptr(-5), wantField: "limit"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			skip, limit, err := Paging(tc.skip, tc.limit, 100, 1000)
			if tc.wantField != "" {
				appErr, ok := apperr.As(err)
				require.True(t, ok)
				require.Contains(t, appErr.Fields, tc.wantField)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantSkip, skip)
			require.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestValidateNilBody(t *testing.T) {
	t.Parallel()

	var payload *createPayload
	err := Validate(payload)
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))
	appErr, _ := apperr.As(err)
	require.Equal(t, "request body is required", appErr.Message)
}
