// Package apperr defines the closed set of error kinds used across the auth
// service and the gateway. Each kind carries a default HTTP status and the
// external body text; internals wrap causes with %w and the text is rendered
// only at the handler boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure. The set is closed: handlers switch on kinds,
// never on error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingCredentials
	KindInvalidCredentials
	KindMalformedToken
	KindInvalidSignature
	KindExpired
	KindNotAuthorized
	KindBadRequest
	KindUpstreamUnavailable
	KindStorageFailure
	KindPublishFailure
	KindInternal
)

// Status returns the default HTTP status for the kind.
// Expired and tampered tokens share the NotAuthorized surface so that the
// response gives no signal useful for forging tokens.
func (k Kind) Status() int {
	switch k {
	case KindMissingCredentials, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindMalformedToken, KindInvalidSignature, KindExpired:
		return http.StatusForbidden
	case KindNotAuthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the external body text for the kind. Storage and publish
// failures collapse into a generic message so internal state never leaks.
func (k Kind) Message() string {
	switch k {
	case KindMissingCredentials:
		return "Missing Credentials"
	case KindInvalidCredentials:
		return "Invalid Credentials"
	case KindMalformedToken, KindInvalidSignature, KindExpired, KindNotAuthorized:
		return "Not Authorized"
	case KindBadRequest:
		return "Bad Request"
	case KindUpstreamUnavailable:
		return "Upstream Unavailable"
	default:
		return "Internal Server Error"
	}
}

func (k Kind) String() string {
	switch k {
	case KindMissingCredentials:
		return "missing_credentials"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindMalformedToken:
		return "malformed_token"
	case KindInvalidSignature:
		return "invalid_signature"
	case KindExpired:
		return "expired"
	case KindNotAuthorized:
		return "not_authorized"
	case KindBadRequest:
		return "bad_request"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindStorageFailure:
		return "storage_failure"
	case KindPublishFailure:
		return "publish_failure"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a classified failure. StatusOverride and MessageOverride are set
// only when a remote response must be propagated verbatim (gateway delegate).
type Error struct {
	Kind            Kind
	StatusOverride  int
	MessageOverride string
	Err             error
}

// New wraps err under the given kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf creates a classified error from a format string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Remote carries an upstream response through unchanged. Used by the gateway
// so auth service statuses and bodies reach the caller verbatim.
func Remote(status int, body string) *Error {
	return &Error{Kind: KindUpstreamUnavailable, StatusOverride: status, MessageOverride: body}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	if e.MessageOverride != "" {
		return e.Kind.String() + ": " + e.MessageOverride
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus resolves the status to send, honoring a verbatim override.
func (e *Error) HTTPStatus() int {
	if e.StatusOverride != 0 {
		return e.StatusOverride
	}
	return e.Kind.Status()
}

// ExternalMessage resolves the body text to send, honoring a verbatim override.
func (e *Error) ExternalMessage() string {
	if e.MessageOverride != "" {
		return e.MessageOverride
	}
	return e.Kind.Message()
}

// From extracts a classified error, or wraps an unclassified one as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(KindInternal, err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
