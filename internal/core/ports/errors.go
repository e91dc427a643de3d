package ports

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. The REST layer maps kinds to HTTP
// statuses; the orchestrator uses them to decide which failures degrade to
// the sentinel song summary instead of failing the request.
type Kind string

const (
	KindInvalidInput         Kind = "INVALID_INPUT"
	KindConfiguration        Kind = "CONFIGURATION_ERROR"
	KindInferenceUnavailable Kind = "INFERENCE_UNAVAILABLE"
	KindInferenceError       Kind = "INFERENCE_ERROR"
	KindMalformedInference   Kind = "MALFORMED_INFERENCE"
	KindAuthUnavailable      Kind = "AUTH_UNAVAILABLE"
	KindCatalogUnavailable   Kind = "CATALOG_UNAVAILABLE"
)

// Error is a classified pipeline failure. Adapters translate raw transport
// errors into one of these at their boundary; the orchestrator never lets an
// unclassified transport error reach the HTTP layer.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs a classified error wrapping an optional cause.
func NewError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf extracts the classification from err, or "" when err carries none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Describe returns the classification and human-readable detail for err.
// Unclassified errors report an empty kind and their plain message.
func Describe(err error) (Kind, string) {
	var pe *Error
	if errors.As(err, &pe) {
		if pe.Err != nil {
			return pe.Kind, fmt.Sprintf("%s: %v", pe.Detail, pe.Err)
		}
		return pe.Kind, pe.Detail
	}
	return "", err.Error()
}
