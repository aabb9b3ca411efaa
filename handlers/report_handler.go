package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// GetTopologyHandler returns the discovered link topology for a batch
func GetTopologyHandler(batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := findReport(c, batches, reports)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"batchId":  report.BatchID.Hex(),
			"topology": report.Topology,
			"links":    len(report.Topology),
		})
	}
}

// GetBurstStatsHandler returns per-cell burst statistics for a batch
func GetBurstStatsHandler(batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := findReport(c, batches, reports)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"batchId": report.BatchID.Hex(),
			"cells":   report.BurstStats,
		})
	}
}

// GetLinkOptimizationsHandler returns traffic summaries and capacity
// optimization results for every link in a batch
func GetLinkOptimizationsHandler(batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := findReport(c, batches, reports)
		if !ok {
			return
		}

		type linkOptimization struct {
			LinkID          int                      `json:"linkId"`
			Traffic         types.LinkTrafficSummary `json:"traffic"`
			Optimization    types.OptimizationResult `json:"optimization"`
			ModeDescription string                   `json:"shapingModeDescription"`
		}
		links := make([]linkOptimization, 0, len(report.Links))
		for _, l := range report.Links {
			links = append(links, linkOptimization{
				LinkID:          l.LinkID,
				Traffic:         l.Traffic,
				Optimization:    l.Optimization,
				ModeDescription: l.Optimization.ShapingMode.Description(),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"batchId": report.BatchID.Hex(),
			"links":   links,
		})
	}
}

// GetLinkResilienceHandler returns the resilience assessment for one link
func GetLinkResilienceHandler(batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := findReport(c, batches, reports)
		if !ok {
			return
		}

		linkID, err := strconv.Atoi(c.Param("linkId"))
		if err != nil || linkID < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
			return
		}

		link, found := report.LinkReportByID(linkID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found in batch"})
			return
		}
		c.JSON(http.StatusOK, link.Resilience)
	}
}

// GetRecommendationsHandler returns per-link operator recommendations
func GetRecommendationsHandler(batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := findReport(c, batches, reports)
		if !ok {
			return
		}

		recs := make([]types.Recommendation, 0, len(report.Links))
		for _, l := range report.Links {
			recs = append(recs, l.Recommendation)
		}
		c.JSON(http.StatusOK, gin.H{
			"batchId":         report.BatchID.Hex(),
			"recommendations": recs,
		})
	}
}

// GetSustainabilityHandler returns per-link sustainability figures and the
// network-wide aggregate for a batch
func GetSustainabilityHandler(batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := findReport(c, batches, reports)
		if !ok {
			return
		}

		links := make([]types.LinkSustainability, 0, len(report.Links))
		for _, l := range report.Links {
			links = append(links, l.Sustainability)
		}
		c.JSON(http.StatusOK, gin.H{
			"batchId": report.BatchID.Hex(),
			"links":   links,
			"network": report.Network,
		})
	}
}

// findReport resolves the :id param to a processed batch and loads its
// analysis report, writing the error response itself when the lookup fails.
func findReport(c *gin.Context, batches, reports *mongo.Collection) (types.AnalysisReport, bool) {
	batch, ok := findBatch(c, batches)
	if !ok {
		return types.AnalysisReport{}, false
	}

	if batch.Status != types.BatchStatusProcessed {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Batch has not been processed yet",
			"status": batch.Status,
		})
		return types.AnalysisReport{}, false
	}

	var report types.AnalysisReport
	err := reports.FindOne(context.Background(), bson.M{"batchId": batch.ID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found for batch"})
		return types.AnalysisReport{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report"})
		return types.AnalysisReport{}, false
	}
	return report, true
}
