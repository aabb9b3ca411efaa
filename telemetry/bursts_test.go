package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
)

func TestDetectBursts(t *testing.T) {
	cfg := config.Default()

	t.Run("constant traffic has no bursts", func(t *testing.T) {
		bits := make([]float64, 56)
		for i := range bits {
			bits[i] = 1000
		}

		bs := DetectBursts(7, makeSymbols(bits, cfg), cfg)
		assert.Equal(t, 7, bs.CellID)
		assert.Equal(t, 0, bs.BurstCount)
		assert.InDelta(t, 0.0, bs.BurstRatio, 1e-12)
		assert.InDelta(t, 1.0, bs.PAPR, 1e-9)
		assert.InDelta(t, bs.PeakGbps, bs.AvgGbps, 1e-12)
	})

	t.Run("spikes above twice the rolling mean count as bursts", func(t *testing.T) {
		bits := make([]float64, 40)
		for i := range bits {
			bits[i] = 100
		}
		bits[10] = 10000
		bits[25] = 10000

		bs := DetectBursts(1, makeSymbols(bits, cfg), cfg)
		assert.Equal(t, 2, bs.BurstCount)
		assert.InDelta(t, 2.0/40.0, bs.BurstRatio, 1e-12)
		assert.Greater(t, bs.PAPR, 1.0)
		assert.InDelta(t, 10000/cfg.SymbolDurationSec/1e9, bs.PeakGbps, 1e-12)
	})

	t.Run("empty series", func(t *testing.T) {
		bs := DetectBursts(3, nil, cfg)
		assert.Equal(t, 3, bs.CellID)
		assert.Zero(t, bs.PeakGbps)
		assert.Zero(t, bs.PAPR)
		assert.Zero(t, bs.BurstCount)
	})

	t.Run("all-zero traffic has zero PAPR", func(t *testing.T) {
		bits := make([]float64, 14)
		bs := DetectBursts(2, makeSymbols(bits, cfg), cfg)
		assert.Zero(t, bs.AvgGbps)
		assert.Zero(t, bs.PAPR)
	})
}
