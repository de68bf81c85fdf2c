package contracts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// API is the raw OpenAPI document for every /api/v1 route.
//
//go:embed api.yaml
var API []byte

// Load parses and validates the embedded API contract. Each call returns a fresh document so callers may
// mutate it freely.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(API)
	if err != nil {
		return nil, fmt.Errorf("parse api contract: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate api contract: %w", err)
	}
	return spec, nil
}
