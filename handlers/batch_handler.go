package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/utils"
)

// CreateBatchHandler creates a new analysis batch. Accepts JSON or
// multipart form data with optional telemetry file uploads.
func CreateBatchHandler(collection *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		var req types.CreateBatchRequest
		var files []types.TelemetryFileInfo
		var pendingDir string

		if strings.HasPrefix(contentType, "multipart/form-data") {
			req.Name = c.PostForm("name")
			req.Description = c.PostForm("description")
			req.Site = c.PostForm("site")

			if req.Name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
				return
			}

			form, err := c.MultipartForm()
			if err == nil && form.File["telemetry"] != nil {
				pendingDir, err = newPendingDir()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				saved, err := saveUploadedFiles(form.File["telemetry"], pendingDir)
				if err != nil {
					os.RemoveAll(pendingDir)
					c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
				files = saved
			}
		} else {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		status := types.BatchStatusTelemetryRequired
		var processingStatus types.ProcessingStatus
		if len(files) > 0 {
			status = types.BatchStatusProcessing
			processingStatus = types.ProcessingStatusPending
		}

		batch := types.Batch{
			Name:             req.Name,
			Description:      req.Description,
			Site:             req.Site,
			TelemetryFiles:   files,
			Status:           status,
			ProcessingStatus: processingStatus,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		result, err := collection.InsertOne(context.Background(), batch)
		if err != nil {
			if pendingDir != "" {
				os.RemoveAll(pendingDir)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create batch"})
			return
		}
		batch.ID = result.InsertedID.(primitive.ObjectID)

		// Move pending uploads into the batch's own directory.
		if len(files) > 0 {
			if moved, err := relocateFiles(batch.ID, files); err == nil {
				batch.TelemetryFiles = moved
				_, _ = collection.UpdateOne(context.Background(),
					bson.M{"_id": batch.ID},
					bson.M{"$set": bson.M{"telemetryFiles": moved}})
				_ = os.Remove(pendingDir)
			} else {
				log.Printf("batch %s: failed to relocate uploads: %v", batch.ID.Hex(), err)
			}
		}

		c.JSON(http.StatusCreated, batch)
	}
}

// GetBatchesHandler lists batches, newest first, with page/perPage params
func GetBatchesHandler(collection *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "20"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 || perPage > 100 {
			perPage = 20
		}

		ctx := context.Background()
		total, err := collection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count batches"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(int64((page - 1) * perPage)).
			SetLimit(int64(perPage))

		cursor, err := collection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch batches"})
			return
		}
		defer cursor.Close(ctx)

		batches := []types.Batch{}
		if err := cursor.All(ctx, &batches); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode batches"})
			return
		}

		totalPages := int(total) / perPage
		if int(total)%perPage != 0 {
			totalPages++
		}
		c.JSON(http.StatusOK, types.PaginatedBatchesResponse{
			Data: batches,
			Pagination: types.PaginationMeta{
				Page:       page,
				PerPage:    perPage,
				Total:      int(total),
				TotalPages: totalPages,
			},
		})
	}
}

// GetBatchHandler returns a single batch by id
func GetBatchHandler(collection *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		batch, ok := findBatch(c, collection)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, batch)
	}
}

// UpdateBatchHandler updates a batch's mutable metadata fields
func UpdateBatchHandler(collection *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		batch, ok := findBatch(c, collection)
		if !ok {
			return
		}

		var req types.UpdateBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := batchUpdateFields(req)
		if len(update) == 1 { // only updatedAt
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}

		ctx := context.Background()
		if _, err := collection.UpdateOne(ctx, bson.M{"_id": batch.ID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch"})
			return
		}

		var updated types.Batch
		if err := collection.FindOne(ctx, bson.M{"_id": batch.ID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch batch"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// batchUpdateFields maps the non-nil request fields onto a mongo update.
func batchUpdateFields(req types.UpdateBatchRequest) bson.M {
	fields := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Site != nil {
		fields["site"] = *req.Site
	}
	return fields
}

// DeleteBatchHandler removes a batch, its report and its uploaded files
func DeleteBatchHandler(batches, reports *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		batch, ok := findBatch(c, batches)
		if !ok {
			return
		}

		ctx := context.Background()
		if _, err := batches.DeleteOne(ctx, bson.M{"_id": batch.ID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete batch"})
			return
		}
		_, _ = reports.DeleteMany(ctx, bson.M{"batchId": batch.ID})
		_ = utils.RemoveBatchDir(batch.ID)

		c.JSON(http.StatusOK, gin.H{"message": "Batch deleted"})
	}
}

// UploadTelemetryHandler adds telemetry files to an existing batch
func UploadTelemetryHandler(collection *mongo.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		batch, ok := findBatch(c, collection)
		if !ok {
			return
		}

		form, err := c.MultipartForm()
		if err != nil || form.File["telemetry"] == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "telemetry files are required"})
			return
		}

		dir, err := utils.EnsureBatchDir(batch.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create batch directory"})
			return
		}

		files, err := saveUploadedFiles(form.File["telemetry"], dir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{
			"$push": bson.M{"telemetryFiles": bson.M{"$each": files}},
			"$set": bson.M{
				"status":           types.BatchStatusProcessing,
				"processingStatus": types.ProcessingStatusPending,
				"updatedAt":        time.Now(),
			},
		}
		if _, err := collection.UpdateOne(context.Background(), bson.M{"_id": batch.ID}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"uploaded": len(files)})
	}
}

// findBatch resolves the :id param and loads the batch, writing the error
// response itself when the lookup fails.
func findBatch(c *gin.Context, collection *mongo.Collection) (types.Batch, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch ID"})
		return types.Batch{}, false
	}

	var batch types.Batch
	err = collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&batch)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		return types.Batch{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch batch"})
		return types.Batch{}, false
	}
	return batch, true
}

// newPendingDir creates a private staging directory for uploads that arrive
// before their batch id exists.
func newPendingDir() (string, error) {
	if err := os.MkdirAll("uploads", 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory")
	}
	dir, err := os.MkdirTemp("uploads", "pending_")
	if err != nil {
		return "", fmt.Errorf("failed to create upload directory")
	}
	return dir, nil
}

// saveUploadedFiles writes each upload into dir under its original base name.
// The telemetry loader matches cells by file name, so the name must survive
// storage unchanged.
func saveUploadedFiles(headers []*multipart.FileHeader, dir string) ([]types.TelemetryFileInfo, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory")
	}

	var files []types.TelemetryFileInfo
	cleanup := func() {
		for _, f := range files {
			os.Remove(f.FilePath)
		}
	}

	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to read uploaded file")
		}

		name := filepath.Base(header.Filename)
		path := filepath.Join(dir, name)
		dst, err := os.Create(path)
		if err != nil {
			src.Close()
			cleanup()
			return nil, fmt.Errorf("failed to create file")
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			src.Close()
			os.Remove(path)
			cleanup()
			return nil, fmt.Errorf("failed to save file")
		}
		dst.Close()
		src.Close()

		files = append(files, types.TelemetryFileInfo{
			OriginalFilename: name,
			FilePath:         path,
			FileSize:         header.Size,
			UploadedAt:       time.Now(),
		})
	}
	return files, nil
}

// relocateFiles moves freshly uploaded pending files into the batch
// directory once the batch id is known.
func relocateFiles(batchID primitive.ObjectID, files []types.TelemetryFileInfo) ([]types.TelemetryFileInfo, error) {
	dir, err := utils.EnsureBatchDir(batchID)
	if err != nil {
		return nil, err
	}
	moved := make([]types.TelemetryFileInfo, len(files))
	for i, f := range files {
		dest := filepath.Join(dir, filepath.Base(f.OriginalFilename))
		if err := os.Rename(f.FilePath, dest); err != nil {
			return nil, err
		}
		f.FilePath = dest
		moved[i] = f
	}
	return moved, nil
}
