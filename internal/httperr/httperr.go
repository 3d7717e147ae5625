package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is the structured error every service returns for expected failures.
// Code is combined with Domain on the wire: SHOP + NOT_FOUND -> SHOP_NOT_FOUND.
type AppError struct {
	Status int
	Domain string
	Code   string
	Detail string
	Hint   string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.FullCode(), e.Err)
	}
	return e.FullCode()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) FullCode() string {
	code := e.Code
	if code == "" {
		code = defaultCode(e.Status)
	}
	if e.Domain == "" {
		return code
	}
	return strings.ToUpper(e.Domain) + "_" + code
}

// WithHint returns a copy carrying a human readable hint.
func (e *AppError) WithHint(hint string) *AppError {
	cp := *e
	cp.Hint = hint
	return &cp
}

func (e *AppError) WithCode(code string) *AppError {
	cp := *e
	cp.Code = code
	return &cp
}

var defaults = map[int][2]string{
	http.StatusBadRequest:          {"BAD_REQUEST", "Invalid request."},
	http.StatusUnauthorized:        {"UNAUTHORIZED", "Authentication required."},
	http.StatusForbidden:           {"FORBIDDEN", "Access denied."},
	http.StatusNotFound:            {"NOT_FOUND", "Requested resource was not found."},
	http.StatusConflict:            {"CONFLICT", "Request conflicts with existing data."},
	http.StatusUnprocessableEntity: {"VALIDATION_ERROR", "Request validation failed."},
	http.StatusTooManyRequests:     {"TOO_MANY_REQUESTS", "Too many requests."},
	http.StatusInternalServerError: {"INTERNAL_ERROR", "Internal server error."},
}

func defaultCode(status int) string {
	if d, ok := defaults[status]; ok {
		return d[0]
	}
	return "UNKNOWN_ERROR"
}

func defaultDetail(status int) string {
	if d, ok := defaults[status]; ok {
		return d[1]
	}
	return "Unknown error."
}

func newError(status int, domain, detail string) *AppError {
	if detail == "" {
		detail = defaultDetail(status)
	}
	return &AppError{Status: status, Domain: domain, Detail: detail}
}

func BadRequest(domain, detail string) *AppError {
	return newError(http.StatusBadRequest, domain, detail)
}

func Unauthorized(domain, detail string) *AppError {
	return newError(http.StatusUnauthorized, domain, detail)
}

func Forbidden(domain, detail string) *AppError {
	return newError(http.StatusForbidden, domain, detail)
}

func NotFound(domain, detail string) *AppError {
	return newError(http.StatusNotFound, domain, detail)
}

func Conflict(domain, detail string) *AppError {
	return newError(http.StatusConflict, domain, detail)
}

func Validation(domain, detail string) *AppError {
	return newError(http.StatusUnprocessableEntity, domain, detail)
}

func TooManyRequests(domain, detail string) *AppError {
	return newError(http.StatusTooManyRequests, domain, detail)
}

// Internal wraps an unexpected failure (usually from the store) so the cause
// stays attached for diagnostics without leaking driver types to callers.
func Internal(domain string, err error) *AppError {
	e := newError(http.StatusInternalServerError, domain, "")
	e.Err = err
	return e
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether err is an AppError with the given status and full code.
func Is(err error, status int, fullCode string) bool {
	ae, ok := As(err)
	if !ok {
		return false
	}
	return ae.Status == status && ae.FullCode() == fullCode
}

// StatusOf returns the HTTP status carried by err, 500 when err is not an AppError.
func StatusOf(err error) int {
	if ae, ok := As(err); ok {
		return ae.Status
	}
	return http.StatusInternalServerError
}
