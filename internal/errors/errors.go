package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure the console can produce. Keeping the taxonomy
// closed means message extraction lives here once instead of being repeated in
// every screen handler.
type Kind string

const (
	// KindValidation is a client-local field validation failure. It never
	// reaches the backend and always carries field-level messages.
	KindValidation Kind = "VALIDATION"

	// KindTransport is a network or non-2xx HTTP failure from the backend
	// API, surfaced verbatim with whatever message the backend supplied.
	KindTransport Kind = "TRANSPORT"

	// KindAuthorization is a gate decision. It is resolved by redirecting,
	// not by rendering an error, so it rarely becomes user-visible text.
	KindAuthorization Kind = "AUTHORIZATION"
)

// Error is the tagged error variant used throughout the console.
type Error struct {
	Kind    Kind
	Status  int               // HTTP status for transport errors, 0 otherwise
	Message string            // human-readable message, may be empty
	Fields  map[string]string // field name -> message, validation errors only
	Err     error             // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) String() string {
	if e.Kind == KindTransport && e.Status != 0 {
		return fmt.Sprintf("[%s %d] %s", e.Kind, e.Status, e.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Error())
}

// NewValidation creates a validation error from field-level messages
func NewValidation(fields map[string]string) *Error {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return &Error{
		Kind:    KindValidation,
		Message: strings.Join(parts, "; "),
		Fields:  fields,
	}
}

// NewTransport creates a transport error for a failed backend call.
// message should already be the backend's own message when one was present.
func NewTransport(status int, message string, cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Status:  status,
		Message: message,
		Err:     cause,
	}
}

// NewAuthorization creates an authorization error
func NewAuthorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// IsTransport reports whether err is a transport error
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

// StatusCode returns the HTTP status attached to a transport error,
// or 0 when err is not a transport error.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindTransport {
		return e.Status
	}
	return 0
}

// FieldErrors returns the field-level messages of a validation error,
// or nil when err is not one.
func FieldErrors(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindValidation {
		return e.Fields
	}
	return nil
}

// apiErrorBody mirrors the backend's error envelope. The backend is not
// consistent: some endpoints return {"message": ...} at the top level, others
// nest it under "error".
type apiErrorBody struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// MessageFromBody pulls the backend's human-readable message out of an error
// response body. Returns "" when the body has no recognizable message.
func MessageFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return parsed.Error.Message
}

// ExtractMessage resolves the message to show the user for a failed operation:
// the backend's own message when the error carries one, else the error's text,
// else the operation-specific fallback.
func ExtractMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
