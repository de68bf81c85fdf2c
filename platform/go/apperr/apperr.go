package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping. Values are stable and appear in problem responses.
type Kind string

const (
	KindUnauthenticated     Kind = "UNAUTHENTICATED"
	KindProfileNotFound     Kind = "PROFILE_NOT_FOUND"
	KindForbiddenTerms      Kind = "FORBIDDEN_TERMS"
	KindForbiddenPermission Kind = "FORBIDDEN_PERMISSION"
	KindForbiddenRole       Kind = "FORBIDDEN_ROLE"
	KindForbidden           Kind = "FORBIDDEN"
	KindPaymentRequired     Kind = "PAYMENT_REQUIRED"
	KindConflict            Kind = "CONFLICT"
	KindNotFound            Kind = "NOT_FOUND"
	KindValidation          Kind = "VALIDATION"
	KindBadRequest          Kind = "BAD_REQUEST"
	KindSignatureInvalid    Kind = "WEBHOOK_SIGNATURE_INVALID"
	KindWebhookBusiness     Kind = "WEBHOOK_BUSINESS_ERROR"
	KindWebhookSystem       Kind = "WEBHOOK_SYSTEM_ERROR"
	KindRateLimited         Kind = "RATE_LIMITED"
	KindUnavailable         Kind = "UNAVAILABLE"
	KindNotImplemented      Kind = "NOT_IMPLEMENTED"
	KindInternal            Kind = "INTERNAL"
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (f FieldErrors) Add(field, message string) {
	if f == nil {
		return
	}
	f[field] = append(f[field], message)
}

// Error is the single application error type shared by services, stores and handlers.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  FieldErrors
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches on Kind and Code so sentinel values work with errors.Is after wrapping.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Code == other.Code
}

// WithMessage returns a copy carrying a more specific message. Is() still matches the original.
func (e *Error) WithMessage(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// New builds an error of the given kind. Code defaults to the kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Code: string(kind), Message: message}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// WithCode builds an error with an explicit machine code.
func WithCode(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Code: string(kind), Message: message, cause: err}
}

// Validation builds a VALIDATION error carrying field issues.
func Validation(fields FieldErrors) *Error {
	return &Error{Kind: KindValidation, Code: string(KindValidation), Message: "one or more fields are invalid", Fields: fields}
}

// ValidationField is shorthand for a single field issue.
func ValidationField(field, message string) *Error {
	fe := FieldErrors{}
	fe.Add(field, message)
	return Validation(fe)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As extracts the *Error from the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
