package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"search-orchestrator/internal/domain"
)

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
}

type serperOrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperResponse struct {
	Organic []serperOrganicResult `json:"organic"`
}

// SerperClient implements domain.SearchProvider against serper.dev
// (Google SERP proxy).
type SerperClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	logger  *slog.Logger
}

// NewSerperClient constructs a SerperClient. baseURL is normally
// https://google.serper.dev.
func NewSerperClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger, client ...*http.Client) *SerperClient {
	var c *http.Client
	if len(client) > 0 && client[0] != nil {
		c = client[0]
	} else {
		c = &http.Client{Timeout: timeout}
	}
	return &SerperClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  c,
		logger:  logger,
	}
}

func (c *SerperClient) Name() string { return "serper" }

func (c *SerperClient) SearchWeb(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchRow, error) {
	startTime := time.Now()

	payload, err := json.Marshal(serperRequest{Q: query, Num: opts.Count})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal serper request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create serper request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: c.Name(), StatusCode: 0, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("serper_search_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", truncateString(string(body), 500)),
			slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
		return nil, &domain.ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    truncateString(string(body), 200),
		}
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode serper response: %w", err)
	}

	rows := make([]domain.SearchRow, 0, len(parsed.Organic))
	for _, r := range parsed.Organic {
		rows = append(rows, domain.SearchRow{
			Title:   r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
		})
	}

	c.logger.Debug("serper_search_completed",
		slog.Int("rows", len(rows)),
		slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
	return rows, nil
}
