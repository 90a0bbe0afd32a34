package pkg

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every error surfaced by the service core.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindForbidden  ErrorKind = "forbidden"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// AppError is the error type shared by use cases and HTTP handlers.
//
// Two AppErrors are considered the same error (errors.Is) when their codes
// match, so sentinel values can be re-issued with a more specific message.
type AppError struct {
	Code       string
	Message    string
	Kind       ErrorKind
	HTTPStatus int
	Err        error
}

// HTTPError is the JSON body returned to API clients.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Kind: kindForStatus(status), HTTPStatus: status, Err: err}
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return NewDomainError(code, message, nil, status)
}

func NotFound(code, message string) *AppError {
	return NewDomainErrorSimple(code, message, http.StatusNotFound)
}

func Validation(code, message string) *AppError {
	return NewDomainErrorSimple(code, message, http.StatusBadRequest)
}

func Forbidden(code, message string) *AppError {
	return NewDomainErrorSimple(code, message, http.StatusForbidden)
}

func Conflict(code, message string) *AppError {
	return NewDomainErrorSimple(code, message, http.StatusConflict)
}

// Internal hides err behind a fixed, operation specific message.
func Internal(message string, err error) *AppError {
	return NewDomainError("INTERNAL_ERROR", message, err, http.StatusInternalServerError)
}

// Wrap returns err unchanged when it already is a domain error and wraps it
// as Internal otherwise.
func Wrap(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return err
	}
	return Internal(message, err)
}

// WithMessage copies e replacing its message. The copy still matches e.
func (e *AppError) WithMessage(format string, args ...any) *AppError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}

// KindOf reports the kind of err, Internal for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return KindForbidden
	case http.StatusConflict:
		return KindConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindInternal
	}
}
