package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("save record: %w", NewUnauthenticatedError("no session"))
	assert.True(t, errors.Is(wrapped, ErrUnauthenticated))
	assert.False(t, errors.Is(NewValidationError("bad"), ErrUnauthenticated))
}

func TestAppError_UnwrapAndMessage(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection refused")
	err := NewStoreUnavailableError("create", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, IsCode(err, CodeStoreUnavailable))
}

func TestStatusFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err    error
		status int
	}{
		{ErrUnauthenticated, fiber.StatusUnauthorized},
		{NewNotFoundError("Post", "p1"), fiber.StatusNotFound},
		{NewValidationError("x"), fiber.StatusBadRequest},
		{NewStoreUnavailableError("read", errors.New("down")), fiber.StatusServiceUnavailable},
		{NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{errors.New("plain"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusFor(tt.err), "%v", tt.err)
	}
}
