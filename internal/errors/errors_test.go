package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: NewValidation("message must not be empty"), want: http.StatusBadRequest},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "invalid token", err: ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "forbidden", err: ErrForbidden, want: http.StatusForbidden},
		{name: "not found", err: NewNotFound("notification %d not found", 7), want: http.StatusNotFound},
		{name: "gone", err: NewGone("notification %d was deleted", 7), want: http.StatusGone},
		{name: "conflict wrapped twice", err: fmt.Errorf("register: %w", NewConflict("email taken")), want: http.StatusConflict},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "notification 3 not found", Message(NewNotFound("notification %d not found", 3)))
	assert.Equal(t, "internal error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "internal error", Message(NewInternal("tx failed: %v", errors.New("disk full"))))
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("x")))
	assert.True(t, IsGone(NewGone("x")))
	assert.True(t, IsConflict(NewConflict("x")))
	assert.True(t, IsValidation(NewValidation("x")))
	assert.False(t, IsNotFound(NewGone("x")))
}
