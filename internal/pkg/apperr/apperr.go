package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the API layer can map it to a status code
// without inspecting upstream error details.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidQuery
	KindInvalidSortField
	KindNotFound
	KindSearchUnavailable
	KindGeneratorUnavailable
	KindGeneratorTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInvalidQuery:
		return "invalid_query"
	case KindInvalidSortField:
		return "invalid_sort_field"
	case KindNotFound:
		return "not_found"
	case KindSearchUnavailable:
		return "search_unavailable"
	case KindGeneratorUnavailable:
		return "generator_unavailable"
	case KindGeneratorTimeout:
		return "generator_timeout"
	}
	return "unknown"
}

// Error is a classified application error. Message is safe to surface to
// clients; the wrapped cause is not.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// E creates a new classified error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a classification and client-safe message to a cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the Kind of err, or KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-safe message of err. Unclassified errors get a
// generic message so internal details never reach a response body.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
