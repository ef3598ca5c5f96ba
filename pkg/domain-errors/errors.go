// Package domainerrors defines coded errors shared by services and transports.
//
// Services return these (optionally wrapping an infrastructure cause) so that
// transports can translate them without inspecting messages:
//
//	if dErrors.HasCode(err, dErrors.CodeNotFound) { ... }
//
// CodeNotFound marks a query whose resolved result set is empty. CodeBadRequest
// marks malformed caller input and is only produced at the parameter boundary.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	CodeNotFound   Code = "not_found"
	CodeBadRequest Code = "bad_request"
	CodeValidation Code = "validation_error"
	CodeInternal   Code = "internal_error"
)

// Error is a coded error with a human-readable message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// As extracts the outermost coded error from err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the outermost coded error in err's chain has code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// CodeOf returns the code of err, defaulting to CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
