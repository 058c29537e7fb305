// Package errors provides coded errors shared by every timespiral package.
//
// A render pass fails for one of two reasons: the dataset is unusable
// ([ErrCodeInvalidInput]) or the chart configuration cannot produce a valid
// geometry ([ErrCodeConfiguration]). The remaining codes cover formats,
// styles, files and optional tooling around the layout engine.
//
// The CLI prints [UserMessage]; the HTTP API answers with [HTTPStatus] and
// the code itself.
//
//	err := errors.New(errors.ErrCodeInvalidInput, "dataset is empty")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, origErr, "dataset %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	// Caller input
	ErrCodeInvalidInput  Code = "INVALID_INPUT"  // empty, malformed or unsorted data
	ErrCodeInvalidFormat Code = "INVALID_FORMAT" // unknown output or dataset format
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"  // palettes, colors, font sizes, number formats

	// Chart configuration that cannot produce a geometry
	ErrCodeConfiguration Code = "CONFIGURATION_ERROR"

	// Missing resources
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Everything else
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED" // e.g. PDF without rsvg-convert
)

// Error is an error with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix. Errors without
// a code are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsUserError reports whether err was caused by the caller's input or
// configuration rather than by an internal failure.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidStyle, ErrCodeConfiguration:
		return true
	}
	return false
}

// HTTPStatus maps err to the status the render API answers with.
func HTTPStatus(err error) int {
	switch code := GetCode(err); {
	case IsUserError(err):
		return http.StatusBadRequest
	case code == ErrCodeNotFound, code == ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
