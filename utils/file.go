package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetBatchDir returns the directory holding a batch's telemetry files
func GetBatchDir(batchID primitive.ObjectID) string {
	return filepath.Join("uploads", fmt.Sprintf("batch_%s", batchID.Hex()))
}

// EnsureBatchDir creates the batch directory if it doesn't exist
func EnsureBatchDir(batchID primitive.ObjectID) (string, error) {
	dir := GetBatchDir(batchID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create batch directory: %w", err)
	}
	return dir, nil
}

// RemoveBatchDir deletes a batch's telemetry directory and its contents
func RemoveBatchDir(batchID primitive.ObjectID) error {
	return os.RemoveAll(GetBatchDir(batchID))
}
