package types

// Severity is the risk level reported by a failure-mode detector.
type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordering value of the severity (NONE < LOW < MEDIUM <
// HIGH < CRITICAL). Unknown severities rank below NONE.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// MaxSeverity returns the highest severity among the given values, or
// SeverityNone when none are given.
func MaxSeverity(levels ...Severity) Severity {
	max := SeverityNone
	for _, l := range levels {
		if l.Rank() > max.Rank() {
			max = l
		}
	}
	return max
}

// BurstPair records a pair of cells whose burst timing is correlated.
type BurstPair struct {
	CellA       int     `json:"cellA" bson:"cellA"`
	CellB       int     `json:"cellB" bson:"cellB"`
	Correlation float64 `json:"correlation" bson:"correlation"`
}

// FailureDetection is the common result shape of a failure-mode detector.
type FailureDetection struct {
	Detected    bool     `json:"detected" bson:"detected"`
	Risk        Severity `json:"risk" bson:"risk"`
	Explanation string   `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Mitigation  []string `json:"mitigation,omitempty" bson:"mitigation,omitempty"`
}

// SyncBurstDetection extends FailureDetection with the correlated cell pairs.
type SyncBurstDetection struct {
	FailureDetection  `bson:",inline"`
	SynchronizedPairs []BurstPair `json:"synchronizedPairs,omitempty" bson:"synchronizedPairs,omitempty"`
}

// LatencyBudgetDetection extends FailureDetection with the compared values.
type LatencyBudgetDetection struct {
	FailureDetection `bson:",inline"`
	BufferLatencyUs  float64 `json:"bufferLatencyUs" bson:"bufferLatencyUs"`
	LatencyBudgetUs  float64 `json:"latencyBudgetUs" bson:"latencyBudgetUs"`
}

// BufferIssueType names a specific buffer-sizing problem.
type BufferIssueType string

const (
	BufferTooSmall   BufferIssueType = "BUFFER_TOO_SMALL"
	BufferOversized  BufferIssueType = "BUFFER_OVERSIZED"
	BufferOutOfRange BufferIssueType = "BUFFER_OUT_OF_RANGE"
)

// BufferIssue is one detected buffer-sizing problem.
type BufferIssue struct {
	Type        BufferIssueType `json:"type" bson:"type"`
	Risk        Severity        `json:"risk" bson:"risk"`
	Explanation string          `json:"explanation" bson:"explanation"`
	Mitigation  []string        `json:"mitigation" bson:"mitigation"`
}

// BufferSizingDetection extends FailureDetection with the individual issues;
// its severity is the maximum across them.
type BufferSizingDetection struct {
	FailureDetection `bson:",inline"`
	Issues           []BufferIssue `json:"issues,omitempty" bson:"issues,omitempty"`
}

// ResilienceAssessment aggregates the three failure-mode detectors for one
// link. OverallRisk is the maximum severity across detectors;
// FailureModesDetected counts detectors that reported detected = true.
type ResilienceAssessment struct {
	LinkID               int                    `json:"linkId" bson:"linkId"`
	SynchronizedBursts   SyncBurstDetection     `json:"synchronizedBursts" bson:"synchronizedBursts"`
	LatencyBudget        LatencyBudgetDetection `json:"latencyBudget" bson:"latencyBudget"`
	BufferSizing         BufferSizingDetection  `json:"bufferSizing" bson:"bufferSizing"`
	OverallRisk          Severity               `json:"overallRisk" bson:"overallRisk"`
	FailureModesDetected int                    `json:"failureModesDetected" bson:"failureModesDetected"`
}
