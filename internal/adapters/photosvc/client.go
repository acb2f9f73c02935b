// Package photosvc is the HTTP client for the external photo storage
// service. The engine uploads connection-scoped batches and keeps only the
// returned photo ids.
package photosvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/example/garland/internal/ports/secondary"
)

// Client implements secondary.PhotoService over HTTP multipart uploads.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a photo service client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// UploadBatch uploads the images at the given paths, scoped to the
// connection, and returns the stored photo ids in upload order.
func (c *Client) UploadBatch(ctx context.Context, connectionID string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, path := range paths {
		if err := addFile(writer, path); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload body: %w", err)
	}

	endpoint := c.baseURL + "/v1/connections/" + url.PathEscape(connectionID) + "/photos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("photo service returned %d uploading to %s", resp.StatusCode, connectionID)
	}

	var result struct {
		PhotoIDs []string `json:"photo_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if len(result.PhotoIDs) != len(paths) {
		return nil, fmt.Errorf("photo service returned %d ids for %d uploads", len(result.PhotoIDs), len(paths))
	}

	c.log.Debug("uploaded photos", "connection", connectionID, "count", len(result.PhotoIDs))
	return result.PhotoIDs, nil
}

func addFile(writer *multipart.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open photo %s: %w", path, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("photos", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to add photo %s: %w", path, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read photo %s: %w", path, err)
	}
	return nil
}

var _ secondary.PhotoService = (*Client)(nil)
