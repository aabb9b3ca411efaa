package shaping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// burstyTraffic builds a series of mostly idle symbols with isolated peaks,
// the kind of profile where shaping pays off.
func burstyTraffic(n int, base, peak float64, spikeEvery int) []float64 {
	traffic := make([]float64, n)
	for i := range traffic {
		traffic[i] = base
		if spikeEvery > 0 && i%spikeEvery == spikeEvery/2 {
			traffic[i] = peak
		}
	}
	return traffic
}

func TestOptimize(t *testing.T) {
	cfg := config.Default()

	t.Run("bursty link shapes well below peak", func(t *testing.T) {
		traffic := burstyTraffic(100, 0.02, 0.6, 20)

		res := Optimize(traffic, 29, 1, cfg)
		require.Equal(t, 1, res.LinkID)
		assert.Equal(t, types.ShapingModerate, res.ShapingMode)
		assert.InDelta(t, cfg.DefaultBufferUs, res.BufferUs, 1e-12)
		assert.InDelta(t, 0.6, res.PeakCapacityGbps, 1e-12)

		assert.Less(t, res.OptimalCapacityGbps, res.PeakCapacityGbps)
		assert.Greater(t, res.CapacityReductionPct, 50.0)
		assert.LessOrEqual(t, res.Stats.LossRatio, cfg.PacketLossLimit)
	})

	t.Run("optimal capacity never drops below the mean", func(t *testing.T) {
		traffic := burstyTraffic(200, 0.05, 1.2, 10)

		res := Optimize(traffic, 15, 2, cfg)
		var mean float64
		for _, v := range traffic {
			mean += v
		}
		mean /= float64(len(traffic))
		assert.GreaterOrEqual(t, res.OptimalCapacityGbps, mean)
		assert.LessOrEqual(t, res.Stats.LossRatio, cfg.PacketLossLimit)
	})

	t.Run("flat traffic cannot be reduced", func(t *testing.T) {
		traffic := make([]float64, 50)
		for i := range traffic {
			traffic[i] = 0.3
		}

		res := Optimize(traffic, 1, 3, cfg)
		assert.InDelta(t, 0.3, res.PeakCapacityGbps, 1e-12)
		// Mean equals peak; the search window is a point.
		assert.InDelta(t, 0.3, res.OptimalCapacityGbps, 1e-9)
		assert.InDelta(t, 0.0, res.CapacityReductionPct, 1e-6)
		assert.Equal(t, types.ShapingMinimal, res.ShapingMode)
	})

	t.Run("empty traffic yields a trivial result", func(t *testing.T) {
		res := Optimize(nil, 0, 4, cfg)
		assert.Equal(t, 4, res.LinkID)
		assert.Zero(t, res.PeakCapacityGbps)
		assert.Zero(t, res.OptimalCapacityGbps)
		assert.Zero(t, res.CapacityReductionPct)
	})

	t.Run("reported stats come from the chosen capacity", func(t *testing.T) {
		traffic := burstyTraffic(100, 0.02, 0.6, 20)
		res := Optimize(traffic, 29, 5, cfg)
		assert.InDelta(t, res.OptimalCapacityGbps, res.Stats.CapacityGbps, 1e-12)
		assert.InDelta(t, res.BufferUs, res.Stats.BufferUs, 1e-12)
	})
}
