package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))

	appErr := FromError(ErrNotFound)
	require.Equal(t, "NOT_FOUND", appErr.Code)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)

	// Wrapped AppErrors survive fmt wrapping.
	wrapped := fmt.Errorf("loading request: %w", ErrForbidden)
	require.Equal(t, "FORBIDDEN", FromError(wrapped).Code)

	// Plain errors collapse to an internal server error.
	plain := FromError(errors.New("disk full"))
	require.Equal(t, "INTERNAL_SERVER_ERROR", plain.Code)
	require.Equal(t, http.StatusInternalServerError, plain.StatusCode)
	require.ErrorContains(t, plain, "disk full")
}

func TestWithMessageCopies(t *testing.T) {
	custom := ErrConflict.WithMessage("Request number already allocated, please retry.")
	require.Equal(t, "Request number already allocated, please retry.", custom.Message)
	require.Equal(t, ErrConflict.Code, custom.Code)

	// The shared sentinel is untouched.
	require.Equal(t, "Resource already exists", ErrConflict.Message)
}

func TestWithInternalCopies(t *testing.T) {
	cause := errors.New("unique constraint violated")
	custom := ErrConflict.WithInternal(cause)

	require.ErrorIs(t, custom, cause)
	require.Nil(t, ErrConflict.Internal)
	require.Contains(t, custom.Error(), "unique constraint violated")
}

func TestErrorsIsMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("context: %w", ErrInvalidCredentials)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewHelpers(t *testing.T) {
	badRequest := NewBadRequest("Name is required.")
	require.Equal(t, http.StatusBadRequest, badRequest.StatusCode)
	require.Equal(t, "BAD_REQUEST", badRequest.Code)

	notFound := NewNotFound("Service not found")
	require.Equal(t, http.StatusNotFound, notFound.StatusCode)
	require.Equal(t, "Service not found", notFound.Message)

	custom := New("EMAIL_TAKEN", "Email already registered", http.StatusConflict)
	require.Equal(t, "EMAIL_TAKEN", custom.Code)
	require.Equal(t, http.StatusConflict, custom.StatusCode)
}
