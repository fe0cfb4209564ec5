package remotesave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kirana_stock/internal/models"
)

// Path is where the inventory receiver accepts saves.
const Path = "/api/save-inventory"

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// SaveResponse is the body returned by the receiver on success.
type SaveResponse struct {
	Success bool   `json:"success"`
	Saved   int    `json:"saved"`
	Message string `json:"message"`
}

// StatusError is returned when the receiver answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("save-inventory returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("save-inventory returned status %d: %s", e.StatusCode, e.Body)
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SaveInventory posts the full catalog once. It never retries.
func (c *Client) SaveInventory(ctx context.Context, items []models.Item) (*SaveResponse, error) {
	if items == nil {
		items = []models.Item{}
	}

	jsonData, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inventory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+Path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	// Any 2xx counts as saved. A reply that is not our JSON shape is passed
	// back verbatim in Message.
	response := SaveResponse{Success: true, Saved: len(items)}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &response); err != nil {
			response = SaveResponse{Success: true, Saved: len(items), Message: strings.TrimSpace(string(body))}
		}
	}
	return &response, nil
}
