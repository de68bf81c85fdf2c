package customfields

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Kind enumerates the supported field types. The set is closed.
type Kind string

const (
	KindText    Kind = "text"
	KindNumber  Kind = "number"
	KindDate    Kind = "date"
	KindBoolean Kind = "boolean"
	KindSelect  Kind = "select"
)

// ParseKind validates a field type name.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindText, KindNumber, KindDate, KindBoolean, KindSelect:
		return k, nil
	default:
		return "", fmt.Errorf("unknown field type %q", raw)
	}
}

// Definition describes one field of a custom object.
type Definition struct {
	Slug     string
	Name     string
	Kind     Kind
	Required bool
	Options  []string
}

// Check validates the definition itself: select fields need options and only select fields may have them.
func (d Definition) Check() error {
	if _, err := ParseKind(string(d.Kind)); err != nil {
		return err
	}
	if d.Kind == KindSelect && len(d.Options) == 0 {
		return fmt.Errorf("options are required for select fields")
	}
	if d.Kind != KindSelect && len(d.Options) > 0 {
		return fmt.Errorf("options are only allowed for select fields")
	}
	return nil
}

// Value is a typed field value. Implementations are TextValue, NumberValue, DateValue, BooleanValue
// and SelectValue.
type Value interface {
	// JSON returns the canonical representation stored in the record payload.
	JSON() any
	kind() Kind
}

type (
	TextValue    string
	NumberValue  float64
	BooleanValue bool
	SelectValue  string
	DateValue    struct{ time.Time }
)

func (v TextValue) JSON() any    { return string(v) }
func (v NumberValue) JSON() any  { return float64(v) }
func (v BooleanValue) JSON() any { return bool(v) }
func (v SelectValue) JSON() any  { return string(v) }
func (v DateValue) JSON() any    { return v.Format(time.DateOnly) }

func (TextValue) kind() Kind    { return KindText }
func (NumberValue) kind() Kind  { return KindNumber }
func (BooleanValue) kind() Kind { return KindBoolean }
func (SelectValue) kind() Kind  { return KindSelect }
func (DateValue) kind() Kind    { return KindDate }

// Coerce converts a decoded JSON value into the typed value for the field.
func (d Definition) Coerce(raw any) (Value, error) {
	switch d.Kind {
	case KindText:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string")
		}
		return TextValue(s), nil
	case KindNumber:
		n, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		return NumberValue(n), nil
	case KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("must be a boolean")
		}
		return BooleanValue(b), nil
	case KindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be an ISO date string")
		}
		t, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		return DateValue{t}, nil
	case KindSelect:
		s, ok := raw.(string)
		if !ok || !slices.Contains(d.Options, s) {
			return nil, fmt.Errorf("%v is not a valid option for %s", raw, d.Name)
		}
		return SelectValue(s), nil
	default:
		return nil, fmt.Errorf("unknown field type %q", d.Kind)
	}
}

func toFloat(raw any) (float64, error) {
	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case json.Number:
		v, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("must be a number")
		}
		f = v
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("must be a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("must be a finite number")
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("must be an ISO date (YYYY-MM-DD)")
}
