package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearson(t *testing.T) {
	t.Run("perfect positive correlation", func(t *testing.T) {
		x := []float64{1, 0, 1, 0, 1, 0}
		assert.InDelta(t, 1.0, Pearson(x, x), 1e-12)
	})

	t.Run("perfect negative correlation", func(t *testing.T) {
		x := []float64{1, 0, 1, 0}
		y := []float64{0, 1, 0, 1}
		assert.InDelta(t, -1.0, Pearson(x, y), 1e-12)
	})

	t.Run("zero variance yields zero not NaN", func(t *testing.T) {
		constant := []float64{1, 1, 1, 1}
		varying := []float64{1, 0, 1, 0}
		assert.Zero(t, Pearson(constant, varying))
		assert.Zero(t, Pearson(varying, constant))
		assert.Zero(t, Pearson(constant, constant))
	})

	t.Run("length mismatch yields zero", func(t *testing.T) {
		assert.Zero(t, Pearson([]float64{1, 0}, []float64{1, 0, 1}))
		assert.Zero(t, Pearson(nil, nil))
	})

	t.Run("uncorrelated series stay below threshold", func(t *testing.T) {
		x := []float64{1, 1, 0, 0, 1, 1, 0, 0}
		y := []float64{1, 0, 1, 0, 1, 0, 1, 0}
		c := Pearson(x, y)
		assert.Less(t, c, 0.7)
		assert.Greater(t, c, -0.7)
	})
}
