// Package itemsvc is the HTTP client for the external items service, the
// catalog that owns item records. The engine looks up class, socket type,
// and ports, and pushes status transitions back.
package itemsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/example/garland/internal/core/fault"
	"github.com/example/garland/internal/ports/secondary"
)

// Client implements secondary.ItemsService over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates an items service client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type itemPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Class      string   `json:"class"`
	SocketType string   `json:"socket_type"`
	Status     string   `json:"status"`
	Ports      []string `json:"ports"`
}

func (p *itemPayload) toInfo() *secondary.ItemInfo {
	return &secondary.ItemInfo{
		ID:         p.ID,
		Name:       p.Name,
		Class:      p.Class,
		SocketType: p.SocketType,
		Status:     p.Status,
		Ports:      p.Ports,
	}
}

// GetItem looks up a single item.
func (c *Client) GetItem(ctx context.Context, id string) (*secondary.ItemInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/items/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build item request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("items service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fault.New(fault.KindNotFound, id, "item %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("items service returned %d for item %s", resp.StatusCode, id)
	}

	var payload itemPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	return payload.toInfo(), nil
}

// SearchItems lists items matching the filters.
func (c *Client) SearchItems(ctx context.Context, filters secondary.ItemFilters) ([]*secondary.ItemInfo, error) {
	query := url.Values{}
	if filters.Class != "" {
		query.Set("class", filters.Class)
	}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}

	endpoint := c.baseURL + "/v1/items"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("items service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("items service returned %d for search", resp.StatusCode)
	}

	var payloads []itemPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	items := make([]*secondary.ItemInfo, 0, len(payloads))
	for i := range payloads {
		items = append(items, payloads[i].toInfo())
	}
	return items, nil
}

// SetItemStatus pushes a status transition for the item.
func (c *Client) SetItemStatus(ctx context.Context, id, status string) error {
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/v1/items/"+url.PathEscape(id)+"/status", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("items service unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return fault.New(fault.KindNotFound, id, "item %s not found", id)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("items service returned %d pushing status for %s", resp.StatusCode, id)
	}

	c.log.Debug("pushed item status", "item", id, "status", status)
	return nil
}

var _ secondary.ItemsService = (*Client)(nil)
