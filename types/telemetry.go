package types

// SymbolSample is one raw symbol-level throughput measurement.
type SymbolSample struct {
	Timestamp float64 // seconds since capture start
	Bits      float64 // bits transferred during the symbol
}

// SlotSample is one slot-level aggregate (14 consecutive symbols).
type SlotSample struct {
	SlotIndex      int     `json:"slotIndex" bson:"slotIndex"`
	Timestamp      float64 `json:"timestamp" bson:"timestamp"` // first symbol's timestamp
	Bits           float64 `json:"bits" bson:"bits"`
	ThroughputGbps float64 `json:"throughputGbps" bson:"throughputGbps"`
}

// PacketStat is one interval of the per-cell packet counters.
type PacketStat struct {
	Timestamp float64
	Tx        float64
	Rx        float64
	TooLate   float64
}

// Loss is the derived lost-packet count for the interval.
func (p PacketStat) Loss() float64 {
	return (p.Tx - p.Rx) + p.TooLate
}

// BurstStatistics quantifies sub-slot burstiness for a single cell.
type BurstStatistics struct {
	CellID        int     `json:"cellId" bson:"cellId"`
	PeakGbps      float64 `json:"peakGbps" bson:"peakGbps"`
	AvgGbps       float64 `json:"avgGbps" bson:"avgGbps"`
	PAPR          float64 `json:"papr" bson:"papr"` // peak-to-average ratio, 0 when avg is 0
	BurstCount    int     `json:"burstCount" bson:"burstCount"`
	BurstRatio    float64 `json:"burstRatio" bson:"burstRatio"`
	WindowSymbols int     `json:"windowSymbols" bson:"windowSymbols"`
}

// LinkTrafficSummary describes the aggregated slot-level traffic of a link.
type LinkTrafficSummary struct {
	LinkID   int     `json:"linkId" bson:"linkId"`
	PeakGbps float64 `json:"peakGbps" bson:"peakGbps"`
	AvgGbps  float64 `json:"avgGbps" bson:"avgGbps"`
	PAPR     float64 `json:"papr" bson:"papr"`
	Samples  int     `json:"samples" bson:"samples"`
}
