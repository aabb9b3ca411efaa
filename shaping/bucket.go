package shaping

import (
	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// Simulate runs the leaky-bucket shaper over a traffic series. Each sample
// is one symbol-duration interval of arrivals in Gbps; the bucket drains at
// capacityGbps and holds at most capacityGbps × bufferUs worth of bits.
// Anything beyond that is lost. Loss ratio is lost bits over arriving bits;
// a series with no arriving bits short-circuits to a zero result.
func Simulate(trafficGbps []float64, capacityGbps, bufferUs float64, cfg *config.Config) types.SimulationStats {
	st := types.SimulationStats{
		BufferUs:     bufferUs,
		CapacityGbps: capacityGbps,
	}

	interval := cfg.SymbolDurationSec
	leakBits := capacityGbps * 1e9 * interval
	maxBufferBits := capacityGbps * 1e9 * (bufferUs * 1e-6)

	var totalInputBits float64
	for _, gbps := range trafficGbps {
		totalInputBits += gbps * 1e9 * interval
	}
	if totalInputBits == 0 {
		return st
	}

	var occupancy, lostBits, maxOccupancy float64
	for _, gbps := range trafficGbps {
		occupancy += gbps*1e9*interval - leakBits

		if occupancy < 0 {
			occupancy = 0
		} else if occupancy > maxBufferBits {
			lostBits += occupancy - maxBufferBits
			occupancy = maxBufferBits
			st.OverflowEvents++
		}

		if occupancy > maxOccupancy {
			maxOccupancy = occupancy
		}
	}

	st.LossRatio = lostBits / totalInputBits
	st.LossPct = st.LossRatio * 100
	st.MaxOccupancyBits = maxOccupancy
	if maxBufferBits > 0 {
		st.MaxOccupancyPct = maxOccupancy / maxBufferBits * 100
	}
	return st
}
