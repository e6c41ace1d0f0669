package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("normalizes to unit length", func(t *testing.T) {
		result := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, result[0], 1e-6)
		assert.InDelta(t, 0.8, result[1], 1e-6)
	})

	t.Run("leaves the input untouched", func(t *testing.T) {
		input := []float32{3, 4}
		NormalizeVector(input)
		assert.Equal(t, []float32{3, 4}, input)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		assert.Equal(t, []float32{0, 0}, NormalizeVector([]float32{0, 0}))
	})

	t.Run("empty vector passes through", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})
}
