package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/bizli/geo-service/internal/pkg/errors"
)

func TestAppError_Is(t *testing.T) {
	t.Run("SentinelMatchesItself", func(t *testing.T) {
		assert.True(t, stderrors.Is(apperrors.ErrInvalidRequest, apperrors.ErrInvalidRequest))
	})

	t.Run("DetailedCloneMatchesSentinel", func(t *testing.T) {
		err := apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"field": "country",
		})

		assert.True(t, stderrors.Is(err, apperrors.ErrInvalidRequest))
	})

	t.Run("DifferentCodesDoNotMatch", func(t *testing.T) {
		assert.False(t, stderrors.Is(apperrors.ErrInvalidRadius, apperrors.ErrInvalidRequest))
		assert.False(t, stderrors.Is(apperrors.ErrInvalidRequest, stderrors.New("plain error")))
	})
}

func TestAppError_WithDetails(t *testing.T) {
	details := map[string]interface{}{"field": "country"}
	err := apperrors.ErrInvalidRequest.WithDetails(details)

	// Клон несет контекст, sentinel остается нетронутым
	assert.Equal(t, details, err.Details)
	assert.Empty(t, apperrors.ErrInvalidRequest.Details)
	assert.Equal(t, apperrors.ErrInvalidRequest.Code, err.Code)
	assert.Equal(t, apperrors.ErrInvalidRequest.StatusCode, err.StatusCode)
}
