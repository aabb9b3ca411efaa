package telemetry

import (
	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// AggregateSlots groups consecutive symbols into fixed windows of
// cfg.SymbolsPerSlot and sums their bits. The slot's timestamp is the first
// symbol's timestamp; its rate is the summed bits over the slot duration.
// Total bits are conserved: the slot series sums to the symbol series.
func AggregateSlots(symbols []types.SymbolSample, cfg *config.Config) []types.SlotSample {
	if len(symbols) == 0 {
		return nil
	}

	perSlot := cfg.SymbolsPerSlot
	slotDur := cfg.SlotDurationSec()
	numSlots := (len(symbols) + perSlot - 1) / perSlot

	slots := make([]types.SlotSample, 0, numSlots)
	for i, s := range symbols {
		if i%perSlot == 0 {
			slots = append(slots, types.SlotSample{
				SlotIndex: i / perSlot,
				Timestamp: s.Timestamp,
			})
		}
		slots[len(slots)-1].Bits += s.Bits
	}

	for i := range slots {
		slots[i].ThroughputGbps = slots[i].Bits / slotDur / 1e9
	}
	return slots
}

// SlotThroughput extracts the Gbps series from a slot sequence.
func SlotThroughput(slots []types.SlotSample) []float64 {
	out := make([]float64, len(slots))
	for i, s := range slots {
		out[i] = s.ThroughputGbps
	}
	return out
}
