package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"recruitment-console/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	t.Run("AppError keeps its code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("load candidate: %w", apperror.NotFound("Candidate not found"))
		assert.Equal(t, http.StatusNotFound, apperror.StatusCode(err))
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, apperror.StatusCode(errors.New("boom")))
	})

	t.Run("request failed is a bad gateway", func(t *testing.T) {
		err := apperror.RequestFailed("Failed to fetch candidates", errors.New("dial tcp"))
		assert.Equal(t, http.StatusBadGateway, err.Code)
		assert.EqualError(t, errors.Unwrap(err), "dial tcp")
	})
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, apperror.IsUnauthorized(apperror.Unauthorized("Session expired")))
	assert.False(t, apperror.IsUnauthorized(apperror.Forbidden("nope")))
	assert.False(t, apperror.IsUnauthorized(nil))
}
