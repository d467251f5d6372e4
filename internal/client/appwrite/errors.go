package appwrite

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies backend failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindNotFound
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("server unavailable")
	ErrNotConfigured = errors.New("appwrite endpoint or project is not configured")
)

// Error is the only error type returned by Client methods.
type Error struct {
	Kind    Kind
	Code    int    // HTTP status, 0 for transport failures
	Type    string // Appwrite error type, e.g. "general_unauthorized_scope"
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("appwrite: %s (%d %s)", e.Message, e.Code, e.Type)
	}
	if e.Code != 0 {
		return fmt.Sprintf("appwrite: %s (%d)", e.Message, e.Code)
	}
	return "appwrite: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match an *Error against the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrUnavailable:
		return e.Kind == KindNetwork
	}
	return false
}

// KindOf returns the Kind of err, or KindUnknown when err did not come from
// this package.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func kindForStatus(code int) Kind {
	switch {
	// 403 means signed in but not allowed; only 401 means "no session".
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return KindNetwork
	default:
		return KindUnknown
	}
}

type errorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// errorFromResponse maps a non-2xx response body to *Error. The HTTP status
// wins over the body code.
func errorFromResponse(status int, body []byte) *Error {
	e := &Error{Kind: kindForStatus(status), Code: status, Message: http.StatusText(status)}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			e.Message = eb.Message
		}
		e.Type = eb.Type
	}
	return e
}

func transportError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}
