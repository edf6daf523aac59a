package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	notFound := NewNotFound("drink")
	domainErr := ToDomainError(notFound)
	require.NotNil(t, domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Equal(t, "resource not found", domainErr.Message)

	wrapped := fmt.Errorf("handler: %w", NewUnprocessable("unprocessable", nil))
	assert.Equal(t, 422, ToDomainError(wrapped).HTTPStatus)

	generic := ToDomainError(errors.New("boom"))
	assert.Equal(t, 500, generic.HTTPStatus)
	assert.Equal(t, "INTERNAL_ERROR", generic.Code)

	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("pool closed")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}
