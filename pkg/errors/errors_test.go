package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("product", "42")
	assert.Equal(t, "NOT_FOUND: product with id 42 not found: resource not found", err.Error())

	bare := &AppError{Code: "X", Message: "msg"}
	assert.Equal(t, "X: msg", bare.Error())
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("product", "1"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"invalid input", InvalidInput("bad id"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"internal", Internal(cause), "INTERNAL_ERROR", http.StatusInternalServerError, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		status  int
		message string
	}{
		{"wrapped app error", fmt.Errorf("lookup: %w", NotFound("product", "1")), "NOT_FOUND", http.StatusNotFound, "product with id 1 not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrNotFound), "NOT_FOUND", http.StatusNotFound, "resource not found"},
		{"invalid input keeps detail", fmt.Errorf("limit: %w", ErrInvalidInput), "INVALID_INPUT", http.StatusBadRequest, "limit: invalid input"},
		{"unavailable", fmt.Errorf("breaker open: %w", ErrUnavailable), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable"},
		{"unknown hides cause", errors.New("disk on fire"), "INTERNAL_ERROR", http.StatusInternalServerError, "an internal error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestFrom_KeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	assert.ErrorIs(t, From(cause), cause)

	wrapped := fmt.Errorf("breaker open: %w", ErrUnavailable)
	assert.ErrorIs(t, From(wrapped), ErrUnavailable)
}
