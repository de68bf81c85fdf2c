package customfields

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
)

func dealFields() []Definition {
	return []Definition{
		{Slug: "title", Name: "Title", Kind: KindText, Required: true},
		{Slug: "amount", Name: "Amount", Kind: KindNumber},
		{Slug: "closed", Name: "Closed", Kind: KindBoolean},
		{Slug: "close_date", Name: "Close date", Kind: KindDate},
		{Slug: "stage", Name: "Stage", Kind: KindSelect, Required: true, Options: []string{"open", "won", "lost"}},
	}
}

func fieldErrors(t *testing.T, err error) apperr.FieldErrors {
	t.Helper()
	appErr, ok := apperr.As(err)
	require.True(t, ok, "expected apperr, got %v", err)
	require.Equal(t, apperr.KindValidation, appErr.Kind)
	return appErr.Fields
}

func TestValidateCoercesValues(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	out, err := v.Validate(dealFields(), map[string]any{
		"title":      "Big deal",
		"amount":     float64(1200),
		"closed":     false,
		"close_date": "2024-12-31T15:04:05Z",
		"stage":      "open",
	})
	require.NoError(t, err)
	require.Equal(t, "2024-12-31", out["close_date"])
	require.Equal(t, float64(1200), out["amount"])
	require.Equal(t, "open", out["stage"])
}

func TestValidateRejectsStructuralProblems(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		data  map[string]any
		field string
	}{
		{name: "missing required", data: map[string]any{"title": "x"}, field: "data"},
		{name: "unknown field", data: map[string]any{"title": "x", "stage": "open", "color": "red"}, field: "data"},
		{name: "wrong type", data: map[string]any{"title": 42, "stage": "open"}, field: "title"},
		{name: "bad option", data: map[string]any{"title": "x", "stage": "pending"}, field: "stage"},
	}

	v := NewValidator()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate(dealFields(), tc.data)
			require.Contains(t, fieldErrors(t, err), tc.field)
		})
	}
}

func TestValidateRejectsInvalidDate(t *testing.T) {
	t.Parallel()

	_, err := NewValidator().Validate(dealFields(), map[string]any{"title": "x", "stage": "open", "close_date": "31/12/2024"})
	require.Contains(t, fieldErrors(t, err), "close_date")
}

func TestValidatePatchMergesAndChecksRequired(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	current := map[string]any{"title": "Big deal", "stage": "open"}

	merged, err := v.ValidatePatch(dealFields(), current, map[string]any{"stage": "won"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"title": "Big deal", "stage": "won"}, merged)
	require.Equal(t, "open", current["stage"])

	_, err = v.ValidatePatch(dealFields(), map[string]any{"title": "legacy"}, map[string]any{"amount": float64(3)})
	require.Contains(t, fieldErrors(t, err), "stage")
}

func TestCompiledSchemasAreCachedPerDefinitionSet(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = v.Validate(dealFields(), map[string]any{"title": "x", "stage": "open"})
		}()
	}
	wg.Wait()
	_, err := v.ValidatePatch(dealFields(), map[string]any{"title": "x", "stage": "open"}, map[string]any{})
	require.NoError(t, err)

	v.mu.RLock()
	defer v.mu.RUnlock()
	require.Len(t, v.cache, 2)
}

func TestDefinitionCheck(t *testing.T) {
	t.Parallel()

	require.Error(t, Definition{Slug: "s", Kind: KindSelect}.Check())
	require.Error(t, Definition{Slug: "t", Kind: KindText, Options: []string{"a"}}.Check())
	require.Error(t, Definition{Slug: "x", Kind: Kind("json")}.Check())
	require.NoError(t, Definition{Slug: "s", Kind: KindSelect, Options: []string{"a"}}.Check())
}
