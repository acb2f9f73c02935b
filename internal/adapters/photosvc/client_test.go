package photosvc

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTempPhoto(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0644); err != nil {
		t.Fatalf("failed to write temp photo: %v", err)
	}
	return path
}

func TestUploadBatch(t *testing.T) {
	var gotFiles []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/connections/CONN-001/photos", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, header := range r.MultipartForm.File["photos"] {
			gotFiles = append(gotFiles, header.Filename)
		}
		json.NewEncoder(w).Encode(map[string][]string{
			"photo_ids": {"PHOTO-001", "PHOTO-002"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	ids, err := client.UploadBatch(context.Background(), "CONN-001", []string{
		writeTempPhoto(t, "santa-1.jpg"),
		writeTempPhoto(t, "santa-2.jpg"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"PHOTO-001", "PHOTO-002"}, ids)
	assert.Equal(t, []string{"santa-1.jpg", "santa-2.jpg"}, gotFiles)
}

func TestUploadBatch_EmptyPathsSkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request for empty batch")
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	ids, err := client.UploadBatch(context.Background(), "CONN-001", nil)

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUploadBatch_MissingFile(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", time.Second, testLogger())

	_, err := client.UploadBatch(context.Background(), "CONN-001", []string{"/nonexistent/photo.jpg"})

	assert.Error(t, err)
}

func TestUploadBatch_CountMismatchRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{"photo_ids": {"PHOTO-001"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	_, err := client.UploadBatch(context.Background(), "CONN-001", []string{
		writeTempPhoto(t, "a.jpg"),
		writeTempPhoto(t, "b.jpg"),
	})

	assert.Error(t, err)
}
