package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizli/geo-service/internal/pkg/utils"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for same point", func(t *testing.T) {
		d := utils.HaversineDistance(18.5944, -72.3074, 18.5944, -72.3074)
		assert.Equal(t, 0.0, d)
	})

	t.Run("one degree of longitude at equator", func(t *testing.T) {
		d := utils.HaversineDistance(0, 0, 0, 1)
		assert.InDelta(t, 111.19, d, 0.1)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := utils.HaversineDistance(18.5944, -72.3074, 18.5392, -72.3364)
		d2 := utils.HaversineDistance(18.5392, -72.3364, 18.5944, -72.3074)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("known distance Port-au-Prince to Cap-Haitien", func(t *testing.T) {
		// ~122 km по прямой
		d := utils.HaversineDistance(18.5944, -72.3074, 19.7580, -72.2042)
		assert.InDelta(t, 129.8, d, 5.0)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(18.5944, -72.3074))
	assert.True(t, utils.ValidateCoordinates(90, 180))
	assert.True(t, utils.ValidateCoordinates(-90, -180))
	assert.False(t, utils.ValidateCoordinates(90.1, 0))
	assert.False(t, utils.ValidateCoordinates(0, -180.1))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, utils.ValidateRadius(1))
	assert.True(t, utils.ValidateRadius(25))
	assert.True(t, utils.ValidateRadius(100))
	assert.False(t, utils.ValidateRadius(0.5))
	assert.False(t, utils.ValidateRadius(101))
	assert.False(t, utils.ValidateRadius(-10))
}
