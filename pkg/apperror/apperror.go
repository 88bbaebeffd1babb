package apperror

import (
	"errors"
	"net/http"
)

// Code classifies a failure returned by the service layer.
type Code string

const (
	Validation      Code = "VALIDATION"
	NotFound        Code = "NOT_FOUND"
	EmailInUse      Code = "EMAIL_IN_USE"
	AlreadyInactive Code = "ALREADY_INACTIVE"
	Unauthorized    Code = "UNAUTHORIZED"
	Forbidden       Code = "FORBIDDEN"
	Internal        Code = "INTERNAL"
)

// InternalMessage is the only text callers ever see for Internal failures.
const InternalMessage = "internal server error"

// Error is the failure side of every service call. Fields is set for
// Validation failures and maps a field name to its first message.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Invalid builds a Validation failure from a field-error map.
func Invalid(message string, fields map[string]string) *Error {
	return &Error{Code: Validation, Message: message, Fields: fields}
}

// Wrap builds an Internal failure that keeps err for logging only.
func Wrap(err error) *Error {
	return &Error{Code: Internal, Message: InternalMessage, Err: err}
}

// From extracts an *Error from err, treating anything else as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Wrap(err)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}

// HTTPStatus maps a code to the status used by the HTTP handlers.
func HTTPStatus(code Code) int {
	switch code {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case EmailInUse, AlreadyInactive:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Body is the JSON shape placed in the envelope's error member.
type Body struct {
	Code   Code              `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *Error) Body() Body {
	return Body{Code: e.Code, Fields: e.Fields}
}
