package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/telemetry"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// telemetryHeaders builds multipart file headers the way gin hands them to
// the upload handlers.
func telemetryHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		fw, err := w.CreateFormFile("telemetry", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/v1/batches/x/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["telemetry"]
}

func TestSaveUploadedFiles(t *testing.T) {
	t.Run("stored names stay visible to the telemetry loader", func(t *testing.T) {
		dir := t.TempDir()
		headers := telemetryHeaders(t, map[string]string{
			"throughput-cell-1.dat": "0.0 1000\n0.0000357 2000\n",
			"pkt-stats-cell-1.dat":  "time tx rx too_late\n0.0 100 99 0\n",
		})

		files, err := saveUploadedFiles(headers, dir)
		require.NoError(t, err)
		require.Len(t, files, 2)
		for _, f := range files {
			assert.Equal(t, f.OriginalFilename, filepath.Base(f.FilePath))
		}

		// The loader matches cells purely on base names; an upload must be
		// loadable from the directory it was stored into.
		ds, err := telemetry.LoadDirectory(dir)
		require.NoError(t, err)
		assert.Equal(t, 1, ds.CellCount())
		assert.Contains(t, ds.Symbols, 1)
		assert.Contains(t, ds.Loss, 1)
	})

	t.Run("directory components in the filename are stripped", func(t *testing.T) {
		dir := t.TempDir()
		headers := telemetryHeaders(t, map[string]string{
			"../sneaky/throughput-cell-2.dat": "0.0 10\n",
		})

		files, err := saveUploadedFiles(headers, dir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "throughput-cell-2.dat", files[0].OriginalFilename)
		assert.Equal(t, filepath.Join(dir, "throughput-cell-2.dat"), files[0].FilePath)
	})
}

func TestBatchUpdateFields(t *testing.T) {
	t.Run("maps only the provided fields", func(t *testing.T) {
		name := "renamed"
		site := "site-b"
		fields := batchUpdateFields(types.UpdateBatchRequest{Name: &name, Site: &site})

		assert.Equal(t, "renamed", fields["name"])
		assert.Equal(t, "site-b", fields["site"])
		assert.NotContains(t, fields, "description")
		assert.Contains(t, fields, "updatedAt")
	})

	t.Run("empty request touches only updatedAt", func(t *testing.T) {
		fields := batchUpdateFields(types.UpdateBatchRequest{})
		assert.Len(t, fields, 1)
		assert.Contains(t, fields, "updatedAt")
	})
}
