package lastfm

import (
	"errors"
	"fmt"
)

// Error codes declared by the Last.fm web service. Codes not listed here are
// still surfaced verbatim through Error.Code.
const (
	CodeInvalidService         = 2
	CodeInvalidMethod          = 3
	CodeAuthenticationFailed   = 4
	CodeInvalidFormat          = 5
	CodeInvalidParameters      = 6
	CodeInvalidResource        = 7
	CodeOperationFailed        = 8
	CodeInvalidSessionKey      = 9
	CodeInvalidAPIKey          = 10
	CodeServiceOffline         = 11
	CodeInvalidMethodSignature = 13
	CodeTemporaryError         = 16
	CodeSuspendedAPIKey        = 26
	CodeRateLimitExceeded      = 29
)

var codeNames = map[int]string{
	CodeInvalidService:         "invalid service",
	CodeInvalidMethod:          "invalid method",
	CodeAuthenticationFailed:   "authentication failed",
	CodeInvalidFormat:          "invalid format",
	CodeInvalidParameters:      "invalid parameters",
	CodeInvalidResource:        "invalid resource",
	CodeOperationFailed:        "operation failed",
	CodeInvalidSessionKey:      "invalid session key",
	CodeInvalidAPIKey:          "invalid api key",
	CodeServiceOffline:         "service offline",
	CodeInvalidMethodSignature: "invalid method signature",
	CodeTemporaryError:         "temporary error",
	CodeSuspendedAPIKey:        "suspended api key",
	CodeRateLimitExceeded:      "rate limit exceeded",
}

// CodeName returns a short description for a known error code and
// "unknown" otherwise.
func CodeName(code int) string {
	if n, ok := codeNames[code]; ok {
		return n
	}
	return "unknown"
}

var (
	// ErrMalformedResponse is returned when a payload cannot be parsed or
	// lacks the envelope the service always sends.
	ErrMalformedResponse = errors.New("lastfm: malformed response")
	// ErrMissingField marks an entity whose required field is absent.
	ErrMissingField = errors.New("lastfm: missing required field")
	// ErrUnsupportedKind is returned when a build function receives a Kind
	// that was not created by this package.
	ErrUnsupportedKind = errors.New("lastfm: unsupported entity kind")
	// ErrEmptyMethod is returned when Call receives no method name.
	ErrEmptyMethod = errors.New("lastfm: empty method name")
	// ErrReservedParameter is returned when caller parameters collide with
	// the keys managed by the Caller.
	ErrReservedParameter = errors.New("lastfm: reserved parameter")
	// ErrNoCredentials is returned when the supplied Auth carries no usable
	// key or secret.
	ErrNoCredentials = errors.New("lastfm: missing credentials")
)

// Error is a failure declared by the remote service. Code and Message are
// taken from the response without translation.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lastfm: error %d (%s): %s", e.Code, CodeName(e.Code), e.Message)
}

// Temporary reports whether the service described the failure as transient.
func (e *Error) Temporary() bool {
	switch e.Code {
	case CodeServiceOffline, CodeTemporaryError, CodeRateLimitExceeded, CodeOperationFailed:
		return true
	}
	return false
}

// IsCode reports whether err carries a remote error with the given code.
func IsCode(err error, code int) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// StatusError is returned when the transport answered with a non-2xx status
// and a body that could not be read as a service envelope.
type StatusError struct {
	Method string
	Status int
	Body   string
	Err    error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("lastfm: %s: HTTP %d", e.Method, e.Status)
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// FieldError reports the entity kind and field that could not be read.
type FieldError struct {
	Kind  string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("lastfm: %s: missing required field %q", e.Kind, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
