package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/pipeline"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/utils"
)

// ProcessBatchHandler runs the analysis pipeline over a batch's uploaded
// telemetry. Processing happens in the background; the handler returns
// immediately with the processing status.
func ProcessBatchHandler(p *pipeline.Pipeline, batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		batch, ok := findBatch(c, batches)
		if !ok {
			return
		}

		if !batch.HasTelemetryFiles() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Batch has no telemetry files"})
			return
		}
		if batch.ProcessingStatus == types.ProcessingStatusProcessing {
			c.JSON(http.StatusConflict, gin.H{"error": "Batch is already being processed"})
			return
		}

		ctx := context.Background()
		_, err := batches.UpdateOne(ctx, bson.M{"_id": batch.ID}, bson.M{"$set": bson.M{
			"status":           types.BatchStatusProcessing,
			"processingStatus": types.ProcessingStatusProcessing,
			"updatedAt":        time.Now(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch status"})
			return
		}

		go processBatch(p, batches, reports, batch.ID)

		c.JSON(http.StatusAccepted, gin.H{
			"message":          "Processing started",
			"batchId":          batch.ID.Hex(),
			"telemetryFiles":   batch.TelemetryFileCount(),
			"processingStatus": types.ProcessingStatusProcessing,
		})
	}
}

func processBatch(p *pipeline.Pipeline, batches, reports *mongo.Collection, batchID primitive.ObjectID) {
	ctx := context.Background()
	dir := utils.GetBatchDir(batchID)

	result, err := p.Run(ctx, dir)
	if err != nil {
		log.Printf("batch %s processing failed: %v", batchID.Hex(), err)
		status := types.BatchStatusFailed
		msg := "processing failed"
		if errors.Is(err, pipeline.ErrEmptyBatch) {
			msg = err.Error()
		}
		_, _ = batches.UpdateOne(ctx, bson.M{"_id": batchID}, bson.M{"$set": bson.M{
			"status":           status,
			"processingStatus": types.ProcessingStatusFailed,
			"processingResult": types.ProcessingResult{
				ErrorMessage: msg,
				ProcessedAt:  time.Now(),
			},
			"updatedAt": time.Now(),
		}})
		return
	}

	report := types.AnalysisReport{
		BatchID:    batchID,
		Topology:   result.TopologyEntries(),
		BurstStats: result.BurstStatEntries(),
		Links:      result.Links,
		Network:    result.Network,
		CreatedAt:  time.Now(),
	}

	// Replace any report from a previous run of the same batch.
	_, _ = reports.DeleteMany(ctx, bson.M{"batchId": batchID})
	if _, err := reports.InsertOne(ctx, report); err != nil {
		log.Printf("batch %s report insert failed: %v", batchID.Hex(), err)
		_, _ = batches.UpdateOne(ctx, bson.M{"_id": batchID}, bson.M{"$set": bson.M{
			"status":           types.BatchStatusFailed,
			"processingStatus": types.ProcessingStatusFailed,
			"updatedAt":        time.Now(),
		}})
		return
	}

	_, _ = batches.UpdateOne(ctx, bson.M{"_id": batchID}, bson.M{"$set": bson.M{
		"status":           types.BatchStatusProcessed,
		"processingStatus": types.ProcessingStatusCompleted,
		"processingResult": types.ProcessingResult{
			CellsLoaded:     result.CellsLoaded,
			CellsSkipped:    result.CellsSkipped,
			LinksDiscovered: len(result.Topology),
			ProcessingTime:  result.Elapsed.Milliseconds(),
			ProcessedAt:     time.Now(),
		},
		"updatedAt": time.Now(),
	}})
	log.Printf("batch %s processed: %d cells, %d links in %s",
		batchID.Hex(), result.CellsLoaded, len(result.Topology), result.Elapsed)
}
