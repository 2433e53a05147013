package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageIncludesInternal(t *testing.T) {
	base := New("REGISTRATION_FAILED", "Registration failed", http.StatusConflict)
	require.Equal(t, "Registration failed", base.Error())

	wrapped := base.WithInternal(errors.New("duplicate key"))
	require.Equal(t, "Registration failed: duplicate key", wrapped.Error())
	require.EqualError(t, wrapped.Unwrap(), "duplicate key")

	// WithInternal must not mutate the original sentinel.
	require.Nil(t, base.Internal)
}

func TestFromErrorRecognisesAppErrors(t *testing.T) {
	appErr := NewConflict("AGENCY_EXISTS", "Agency already exists")

	got := FromError(fmt.Errorf("register agency: %w", appErr))
	require.Equal(t, appErr.Code, got.Code)
	require.Equal(t, http.StatusConflict, got.StatusCode)
}

func TestFromErrorDefaultsToInternalServer(t *testing.T) {
	plain := errors.New("connection refused")

	got := FromError(plain)
	require.Equal(t, ErrInternalServer.Code, got.Code)
	require.ErrorIs(t, got, plain)
}

func TestFromErrorNil(t *testing.T) {
	require.Nil(t, FromError(nil))
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("company name is required")
	require.Equal(t, ErrBadRequest.Code, err.Code)
	require.Equal(t, http.StatusBadRequest, err.StatusCode)
	require.Equal(t, "company name is required", err.Message)
}
