package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// LinkTopology is one entry of the discovered topology map: a link and its
// member cells, cell ids sorted ascending.
type LinkTopology struct {
	LinkID  int   `json:"linkId" bson:"linkId"`
	CellIDs []int `json:"cellIds" bson:"cellIds"`
}

// LinkReport bundles every per-link result of one analysis run.
type LinkReport struct {
	LinkID         int                  `json:"linkId" bson:"linkId"`
	Traffic        LinkTrafficSummary   `json:"traffic" bson:"traffic"`
	Optimization   OptimizationResult   `json:"optimization" bson:"optimization"`
	Resilience     ResilienceAssessment `json:"resilience" bson:"resilience"`
	Recommendation Recommendation       `json:"recommendation" bson:"recommendation"`
	Sustainability LinkSustainability   `json:"sustainability" bson:"sustainability"`
}

// AnalysisReport is the persisted output of processing one batch: the
// contract handed to external consumers.
type AnalysisReport struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BatchID    primitive.ObjectID `json:"batchId" bson:"batchId"`
	Topology   []LinkTopology     `json:"topology" bson:"topology"`
	BurstStats []BurstStatistics  `json:"burstStatistics" bson:"burstStatistics"`
	Links      []LinkReport       `json:"links" bson:"links"`
	Network    NetworkImpact      `json:"networkImpact" bson:"networkImpact"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// LinkReportByID returns the report entry for the given link id.
func (r *AnalysisReport) LinkReportByID(linkID int) (LinkReport, bool) {
	for _, l := range r.Links {
		if l.LinkID == linkID {
			return l, true
		}
	}
	return LinkReport{}, false
}
