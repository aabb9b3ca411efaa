package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBatchDirLifecycle(t *testing.T) {
	// Run inside a temp dir so the relative uploads/ tree is isolated.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	id := primitive.NewObjectID()

	dir := GetBatchDir(id)
	assert.Equal(t, filepath.Join("uploads", "batch_"+id.Hex()), dir)

	created, err := EnsureBatchDir(id)
	require.NoError(t, err)
	assert.Equal(t, dir, created)
	assert.DirExists(t, dir)

	// Idempotent.
	_, err = EnsureBatchDir(id)
	require.NoError(t, err)

	require.NoError(t, RemoveBatchDir(id))
	assert.NoDirExists(t, dir)
}
