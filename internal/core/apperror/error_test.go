package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailAndCause(t *testing.T) {
	cause := errors.New("row not found")

	err := NewValidation("bad input").
		WithDetail("field", "quantity").
		WithCause(cause)

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "quantity", err.Details["field"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "row not found")
}

func TestHelpers_UnwrapThroughWrapping(t *testing.T) {
	inner := NewInsufficientStock("p1", 5, 3)
	wrapped := fmt.Errorf("apply movements: %w", inner)

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsInsufficientStock(wrapped))
	assert.False(t, IsNotFound(wrapped))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(5), appErr.Details["requested"])
	assert.Equal(t, int64(3), appErr.Details["available"])
}

func TestHelpers_PlainError(t *testing.T) {
	err := errors.New("boom")

	assert.False(t, IsAppError(err))
	assert.False(t, IsNotFound(err))

	_, ok := AsAppError(err)
	assert.False(t, ok)
}

func TestNotFound(t *testing.T) {
	err := NewNotFound("transaction", "abc")

	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "transaction", err.Details["entity"])
	assert.True(t, IsNotFound(err))
}
