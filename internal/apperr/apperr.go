// Package apperr defines the closed set of failure kinds the service can
// surface and maps each one to a stable HTTP status and client message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the failure variants. Every error that reaches the HTTP
// boundary resolves to exactly one kind; anything else is reported as an
// internal server error.
type Kind int

const (
	KindValidation Kind = iota
	KindInvalidCredentials
	KindInvalidToken
	KindForbidden
	KindNotFound
)

// Error is a tagged failure. Message is what the client sees for validation
// errors; for the other kinds the classifier substitutes a fixed message so
// internals never leak. Err carries the internal cause for logging only.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses do not reveal which part failed.
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid email/password"}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Message: "Invalid token"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "You are not authorized"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "Data not found"}
)

// Validation builds a field-level validation error carrying the message the
// client will see.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// InvalidCredentials tags a login failure with its internal reason. The
// reason is logged, never sent to the client.
func InvalidCredentials(reason error) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid email/password", Err: reason}
}

// InvalidToken tags an authentication failure with its internal cause.
func InvalidToken(cause error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "Invalid token", Err: cause}
}

// Is makes the sentinel vars match tagged copies carrying a cause, so
// errors.Is(err, ErrInvalidToken) holds for any invalid-token variant.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Field == "" || t.Field == e.Field)
}

// Classify resolves any error to the HTTP status and client message for it.
// Classification is total: unrecognized errors become 500 with a generic
// message and no internal detail.
func Classify(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return http.StatusBadRequest, e.Message
		case KindInvalidCredentials:
			return http.StatusUnauthorized, "Invalid email/password"
		case KindInvalidToken:
			return http.StatusUnauthorized, "Invalid token"
		case KindForbidden:
			return http.StatusForbidden, "You are not authorized"
		case KindNotFound:
			return http.StatusNotFound, "Data not found"
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}
