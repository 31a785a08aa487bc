package leaderboard

import (
	"errors"
	"net/http"
)

// Kind is a stable machine-readable failure category. Clients branch on
// kinds, never on message text.
type Kind string

const (
	KindMissingFields    Kind = "missing-fields"
	KindInvalidName      Kind = "invalid-name"
	KindInvalidScore     Kind = "invalid-score"
	KindInvalidLevel     Kind = "invalid-level"
	KindUnauthorized     Kind = "unauthorized"
	KindImplausibleScore Kind = "implausible-score"
	KindRateLimited      Kind = "rate-limited"
	KindRangeInvalid     Kind = "range-invalid"
	KindStoreUnavailable Kind = "store-unavailable"
	KindStoreConstraint  Kind = "store-constraint-violated"
	KindInternal         Kind = "internal"
)

// Error is a categorized leaderboard failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// HTTPStatus maps the kind to its status class: validation failures are
// 400s, auth 401, throttling 429, store outages 503, everything else 500.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindMissingFields, KindInvalidName, KindInvalidScore, KindInvalidLevel,
		KindImplausibleScore, KindRangeInvalid, KindStoreConstraint:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// E constructs an Error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind from an error chain, defaulting to internal.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindInternal
}

// AsError returns the categorized form of err, wrapping unknown errors as
// internal so no raw detail leaks to clients.
func AsError(err error) *Error {
	var le *Error
	if errors.As(err, &le) {
		return le
	}
	return E(KindInternal, "internal error")
}
