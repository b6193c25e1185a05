package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrGone         = errors.New("gone")
	ErrConflict     = errors.New("conflict")
	ErrInvalidToken = errors.New("invalid token")
	ErrInternal     = errors.New("internal error")
)

func NewValidation(format string, a ...any) error {
	return wrap(ErrValidation, format, a...)
}

func NewNotFound(format string, a ...any) error {
	return wrap(ErrNotFound, format, a...)
}

func NewGone(format string, a ...any) error {
	return wrap(ErrGone, format, a...)
}

func NewConflict(format string, a ...any) error {
	return wrap(ErrConflict, format, a...)
}

func NewInternal(format string, a ...any) error {
	return wrap(ErrInternal, format, a...)
}

// wrap keeps the sentinel reachable through errors.Is while the caller's
// text becomes the message shown to clients.
func wrap(sentinel error, format string, a ...any) error {
	return &appError{sentinel: sentinel, msg: fmt.Sprintf(format, a...)}
}

type appError struct {
	sentinel error
	msg      string
}

func (e *appError) Error() string { return e.msg }

func (e *appError) Unwrap() error { return e.sentinel }

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsGone(err error) bool {
	return errors.Is(err, ErrGone)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// HTTPStatus maps an error onto the status code the API answers with.
// Anything outside the taxonomy is a 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGone):
		return http.StatusGone
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show to a client.
func Message(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return ErrInternal.Error()
	}
	return err.Error()
}
