package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// BatchStatus represents the overall status of an analysis batch
type BatchStatus string

const (
	BatchStatusTelemetryRequired BatchStatus = "telemetry_required"
	BatchStatusProcessing        BatchStatus = "processing"
	BatchStatusProcessed         BatchStatus = "processed"
	BatchStatusFailed            BatchStatus = "failed"
)

// ProcessingStatus represents the status of batch processing
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// TelemetryFileInfo represents metadata for an uploaded telemetry file
type TelemetryFileInfo struct {
	OriginalFilename string    `json:"originalFilename" bson:"originalFilename"`
	FilePath         string    `json:"filePath" bson:"filePath"`
	FileSize         int64     `json:"fileSize" bson:"fileSize"`
	UploadedAt       time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// ProcessingResult represents the outcome of running the analysis pipeline
type ProcessingResult struct {
	CellsLoaded     int       `json:"cellsLoaded" bson:"cellsLoaded"`
	CellsSkipped    int       `json:"cellsSkipped" bson:"cellsSkipped"`
	LinksDiscovered int       `json:"linksDiscovered" bson:"linksDiscovered"`
	ProcessingTime  int64     `json:"processingTime" bson:"processingTime"` // in milliseconds
	ErrorMessage    string    `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	ProcessedAt     time.Time `json:"processedAt" bson:"processedAt"`
}

// Batch represents one captured fronthaul telemetry batch and its analysis
// lifecycle.
type Batch struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name             string              `json:"name" bson:"name"`
	Description      string              `json:"description" bson:"description"`
	Site             string              `json:"site" bson:"site"`
	TelemetryFiles   []TelemetryFileInfo `json:"telemetryFiles,omitempty" bson:"telemetryFiles,omitempty"`
	Status           BatchStatus         `json:"status" bson:"status"`
	ProcessingStatus ProcessingStatus    `json:"processingStatus,omitempty" bson:"processingStatus,omitempty"`
	ProcessingResult *ProcessingResult   `json:"processingResult,omitempty" bson:"processingResult,omitempty"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// CreateBatchRequest represents the request body for creating a batch
type CreateBatchRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Site        string `json:"site" binding:"omitempty,max=64"`
}

// UpdateBatchRequest represents the request body for updating a batch
type UpdateBatchRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Site        *string `json:"site,omitempty"`
}

// HasTelemetryFiles returns true if the batch has any uploaded files
func (b *Batch) HasTelemetryFiles() bool {
	return len(b.TelemetryFiles) > 0
}

// TelemetryFileCount returns the number of uploaded telemetry files
func (b *Batch) TelemetryFileCount() int {
	return len(b.TelemetryFiles)
}
