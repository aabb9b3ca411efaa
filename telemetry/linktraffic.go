package telemetry

import (
	"github.com/montanaflynn/stats"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// AggregateLinkTraffic sums the member cells' slot throughput, aligned by
// slot index. A cell without data at a slot index contributes zero. The
// result length is the longest member series.
func AggregateLinkTraffic(members []int, slotData map[int][]types.SlotSample) []float64 {
	maxLen := 0
	for _, cell := range members {
		if n := len(slotData[cell]); n > maxLen {
			maxLen = n
		}
	}
	if maxLen == 0 {
		return nil
	}

	total := make([]float64, maxLen)
	for _, cell := range members {
		for _, slot := range slotData[cell] {
			if slot.SlotIndex >= 0 && slot.SlotIndex < maxLen {
				total[slot.SlotIndex] += slot.ThroughputGbps
			}
		}
	}
	return total
}

// SummarizeLinkTraffic computes peak, average and PAPR of an aggregated
// link traffic series. PAPR is 0 when the average is 0.
func SummarizeLinkTraffic(linkID int, traffic []float64) types.LinkTrafficSummary {
	summary := types.LinkTrafficSummary{LinkID: linkID, Samples: len(traffic)}
	if len(traffic) == 0 {
		return summary
	}
	peak, _ := stats.Max(traffic)
	avg, _ := stats.Mean(traffic)
	summary.PeakGbps = peak
	summary.AvgGbps = avg
	if avg > 0 {
		summary.PAPR = peak / avg
	}
	return summary
}
