package shaping

import (
	"github.com/montanaflynn/stats"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// Optimize finds the smallest link capacity that keeps simulated packet
// loss within cfg.PacketLossLimit, using the buffer depth selected from the
// link's PAPR. The capacity is binary-searched over [mean, peak] for a
// fixed number of iterations; loss ratio is monotonic non-increasing in
// capacity, so halving toward the lowest passing midpoint converges on the
// optimum.
func Optimize(trafficGbps []float64, papr float64, linkID int, cfg *config.Config) types.OptimizationResult {
	mode, bufferUs := ModeForPAPR(papr, cfg)

	result := types.OptimizationResult{
		LinkID:      linkID,
		BufferUs:    bufferUs,
		ShapingMode: mode,
		PAPR:        papr,
	}
	if len(trafficGbps) == 0 {
		return result
	}

	peak, _ := stats.Max(trafficGbps)
	mean, _ := stats.Mean(trafficGbps)
	result.PeakCapacityGbps = peak

	low, high := mean, peak
	optimal := high
	var best *types.SimulationStats

	for i := 0; i < cfg.SearchIterations; i++ {
		mid := (low + high) / 2
		st := Simulate(trafficGbps, mid, bufferUs, cfg)
		if st.LossRatio <= cfg.PacketLossLimit {
			optimal = mid
			best = &st
			high = mid
		} else {
			low = mid
		}
	}

	// No midpoint met the loss bound: fall back to peak capacity, which by
	// construction loses nothing, and record its statistics.
	if best == nil {
		st := Simulate(trafficGbps, optimal, bufferUs, cfg)
		best = &st
	}

	result.OptimalCapacityGbps = optimal
	if peak > 0 {
		result.CapacityReductionPct = (1 - optimal/peak) * 100
	}
	result.Stats = *best
	return result
}
