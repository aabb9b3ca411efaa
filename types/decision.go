package types

// Action is the operator-facing recommendation for a link.
type Action string

const (
	ActionUpgradeRequired    Action = "UPGRADE_REQUIRED"
	ActionConditionalShaping Action = "CONDITIONAL_SHAPING"
	ActionEnableShaping      Action = "ENABLE_SHAPING"
	ActionUpgradeRecommended Action = "UPGRADE_RECOMMENDED"
)

// Recommendation translates the technical analysis of one link into an
// actionable operator decision.
type Recommendation struct {
	LinkID               int         `json:"linkId" bson:"linkId"`
	CurrentPeakGbps      float64     `json:"currentPeakGbps" bson:"currentPeakGbps"`
	OptimalCapacityGbps  float64     `json:"optimalCapacityGbps" bson:"optimalCapacityGbps"`
	CapacityReductionPct float64     `json:"capacityReductionPct" bson:"capacityReductionPct"`
	BufferRequiredUs     float64     `json:"bufferRequiredUs" bson:"bufferRequiredUs"`
	CurrentLinkRate      string      `json:"currentLinkRate" bson:"currentLinkRate"`
	ShapingMode          ShapingMode `json:"shapingMode" bson:"shapingMode"`
	RiskLevel            Severity    `json:"riskLevel" bson:"riskLevel"`
	Action               Action      `json:"action" bson:"action"`
	Summary              string      `json:"summary" bson:"summary"`
	NextSteps            []string    `json:"nextSteps" bson:"nextSteps"`
}
