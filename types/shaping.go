package types

// ShapingMode classifies how aggressively a link's traffic is smoothed,
// selected from the link's peak-to-average ratio.
type ShapingMode string

const (
	ShapingMinimal    ShapingMode = "MINIMAL"
	ShapingModerate   ShapingMode = "MODERATE"
	ShapingAggressive ShapingMode = "AGGRESSIVE"
)

// Description returns the operator-facing explanation of the mode.
func (m ShapingMode) Description() string {
	switch m {
	case ShapingMinimal:
		return "Low burstiness - minimal shaping required"
	case ShapingModerate:
		return "Medium burstiness - standard shaping"
	case ShapingAggressive:
		return "High burstiness - aggressive shaping"
	default:
		return "Unknown shaping mode"
	}
}

// SimulationStats captures the leaky-bucket state observed during one
// simulation pass.
type SimulationStats struct {
	LossRatio        float64 `json:"lossRatio" bson:"lossRatio"`
	LossPct          float64 `json:"lossPct" bson:"lossPct"`
	MaxOccupancyBits float64 `json:"maxOccupancyBits" bson:"maxOccupancyBits"`
	MaxOccupancyPct  float64 `json:"maxOccupancyPct" bson:"maxOccupancyPct"`
	OverflowEvents   int     `json:"overflowEvents" bson:"overflowEvents"`
	BufferUs         float64 `json:"bufferUs" bson:"bufferUs"`
	CapacityGbps     float64 `json:"capacityGbps" bson:"capacityGbps"`
}

// OptimizationResult is the capacity recommendation for one link: the
// smallest simulated capacity that kept packet loss within the configured
// bound, with the simulation statistics recorded at that operating point.
type OptimizationResult struct {
	LinkID               int             `json:"linkId" bson:"linkId"`
	PeakCapacityGbps     float64         `json:"peakCapacityGbps" bson:"peakCapacityGbps"`
	OptimalCapacityGbps  float64         `json:"optimalCapacityGbps" bson:"optimalCapacityGbps"`
	CapacityReductionPct float64         `json:"capacityReductionPct" bson:"capacityReductionPct"`
	BufferUs             float64         `json:"bufferUs" bson:"bufferUs"`
	ShapingMode          ShapingMode     `json:"shapingMode" bson:"shapingMode"`
	PAPR                 float64         `json:"papr" bson:"papr"`
	Stats                SimulationStats `json:"simulationStats" bson:"simulationStats"`
}
