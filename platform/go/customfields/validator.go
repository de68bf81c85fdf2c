package customfields

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
)

type mode string

const (
	modeFull    mode = "full"
	modePartial mode = "partial"
)

// Validator checks record payloads in two stages: a structural JSON Schema pass generated from the field
// definitions (compiled once per definition set and cached), then typed coercion per field.
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator returns a validator with an empty schema cache.
func NewValidator() *Validator {
	return &Validator{cache: make(map[string]*jsonschema.Schema)}
}

// Validate checks a complete payload: every required field must be present. Used for create and replace.
func (v *Validator) Validate(defs []Definition, data map[string]any) (map[string]any, error) {
	return v.validate(defs, data, modeFull)
}

// ValidatePatch validates only the supplied fields, merges them onto current, and enforces required fields
// on the merged result.
func (v *Validator) ValidatePatch(defs []Definition, current, patch map[string]any) (map[string]any, error) {
	coerced, err := v.validate(defs, patch, modePartial)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(current)+len(coerced))
	maps.Copy(merged, current)
	maps.Copy(merged, coerced)

	fields := apperr.FieldErrors{}
	for _, d := range defs {
		if _, ok := merged[d.Slug]; d.Required && !ok {
			fields.Add(d.Slug, fmt.Sprintf("required field %s is missing", d.Name))
		}
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}
	return merged, nil
}

func (v *Validator) validate(defs []Definition, data map[string]any, m mode) (map[string]any, error) {
	if data == nil {
		data = map[string]any{}
	}

	compiled, err := v.getOrCompile(defs, m)
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(toDocument(data)); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, apperr.Validation(structuralErrors(verr))
		}
		return nil, fmt.Errorf("validate record: %w", err)
	}

	byslug := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byslug[d.Slug] = d
	}

	out := make(map[string]any, len(data))
	fields := apperr.FieldErrors{}
	for slug, raw := range data {
		def := byslug[slug]
		value, err := def.Coerce(raw)
		if err != nil {
			fields.Add(slug, fmt.Sprintf("invalid value for %s: %s", def.Name, err))
			continue
		}
		out[slug] = value.JSON()
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}
	return out, nil
}

func (v *Validator) getOrCompile(defs []Definition, m mode) (*jsonschema.Schema, error) {
	document, err := json.Marshal(schemaFor(defs, m))
	if err != nil {
		return nil, fmt.Errorf("encode record schema: %w", err)
	}
	key := "memory://records/" + fingerprint(document)

	v.mu.RLock()
	compiled, ok := v.cache[key]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// another goroutine may have populated the cache while we were waiting
	if compiled, ok = v.cache[key]; ok {
		return compiled, nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(key, bytes.NewReader(document)); err != nil {
		return nil, fmt.Errorf("register schema %s: %w", key, err)
	}
	newCompiled, err := compiler.Compile(key)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", key, err)
	}

	v.cache[key] = newCompiled
	return newCompiled, nil
}

// schemaFor renders the JSON Schema for a definition set. Partial schemas omit "required".
func schemaFor(defs []Definition, m mode) map[string]any {
	properties := make(map[string]any, len(defs))
	required := make([]string, 0)
	for _, d := range defs {
		properties[d.Slug] = propertySchema(d)
		if d.Required && m == modeFull {
			required = append(required, d.Slug)
		}
	}
	schema := map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func propertySchema(d Definition) map[string]any {
	switch d.Kind {
	case KindText, KindDate:
		return map[string]any{"type": "string"}
	case KindNumber:
		return map[string]any{"type": "number"}
	case KindBoolean:
		return map[string]any{"type": "boolean"}
	case KindSelect:
		enum := make([]any, len(d.Options))
		for i, o := range d.Options {
			enum[i] = o
		}
		return map[string]any{"enum": enum}
	default:
		return map[string]any{"not": map[string]any{}}
	}
}

// fingerprint returns a SHA-256 hex digest of the compacted schema document. json.Marshal sorts map keys,
// so equal definition sets always produce the same digest.
func fingerprint(document []byte) string {
	var compact bytes.Buffer
	if err := json.Compact(&compact, document); err != nil {
		compact.Reset()
		compact.Write(document)
	}
	sum := sha256.Sum256(compact.Bytes())
	return hex.EncodeToString(sum[:])
}

// toDocument converts the payload into the generic shape the schema validator expects.
func toDocument(data map[string]any) any {
	doc := make(map[string]any, len(data))
	for k, v := range data {
		switch n := v.(type) {
		case int:
			doc[k] = float64(n)
		case int64:
			doc[k] = float64(n)
		default:
			doc[k] = v
		}
	}
	return doc
}

func structuralErrors(verr *jsonschema.ValidationError) apperr.FieldErrors {
	fields := apperr.FieldErrors{}
	for _, e := range verr.BasicOutput().Errors {
		if e.Error == "" || strings.HasPrefix(e.Error, "doesn't validate with") {
			continue
		}
		field := strings.TrimPrefix(e.InstanceLocation, "/")
		if field == "" {
			field = "data"
		}
		fields.Add(field, e.Error)
	}
	if len(fields) == 0 {
		fields.Add("data", verr.Error())
	}
	return fields
}
