package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable classification of a scoring failure.
// Every failure surfaced to a caller carries exactly one kind.
type ErrorKind string

const (
	// KindLocation marks an input location that cannot be resolved to
	// supported coordinates.
	KindLocation ErrorKind = "location"

	// KindProviderUnavailable marks an unreachable climate-data provider or
	// a response that could not be parsed at all.
	KindProviderUnavailable ErrorKind = "provider_unavailable"

	// KindDataValidation marks a provider response that parsed but carried
	// out-of-range hazard indices.
	KindDataValidation ErrorKind = "data_validation"

	// KindValidation marks caller-supplied input that is out of bounds or
	// incomplete.
	KindValidation ErrorKind = "validation"
)

// Error is a classified scoring failure. The kind is stable API for callers
// deciding how to react; the message is for humans.
type Error struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Errorf builds a classified error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WrapError classifies an underlying error, preserving it for errors.Is/As.
func WrapError(kind ErrorKind, err error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, err: err}
}

// IsKind reports whether err is (or wraps) a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// KindOf extracts the kind from err, or empty string for unclassified errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
