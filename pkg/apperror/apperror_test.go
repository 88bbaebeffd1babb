package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromKeepsTypedErrors(t *testing.T) {
	orig := New(NotFound, "user not found")
	wrapped := fmt.Errorf("lookup: %w", orig)

	got := From(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, NotFound, got.Code)
	assert.True(t, Is(wrapped, NotFound))
}

func TestFromHidesUnknownErrors(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	got := From(cause)

	assert.Equal(t, Internal, got.Code)
	assert.Equal(t, InternalMessage, got.Message)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, From(nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(EmailInUse))
	assert.Equal(t, http.StatusConflict, HTTPStatus(AlreadyInactive))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal))
}
