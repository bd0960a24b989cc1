package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/healthdays/internal/models"
)

// HTTPClient implements DataSource by calling the HealthDays REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// snapshot lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches the full snapshot from the remote server.
func (c *HTTPClient) Load(ctx context.Context) (map[string]models.DayRecord, error) {
	body, err := c.get(ctx, "/api/v1/days")
	if err != nil {
		return nil, err
	}

	var days map[string]models.DayRecord
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("httpclient: decode days: %w", err)
	}
	if days == nil {
		days = make(map[string]models.DayRecord)
	}
	return days, nil
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}
