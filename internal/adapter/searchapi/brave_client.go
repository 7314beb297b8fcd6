package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"search-orchestrator/internal/domain"
)

// braveWebResult is a single row in Brave's web search response.
type braveWebResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// braveResponse is the subset of Brave's response the pipeline needs.
type braveResponse struct {
	Web struct {
		Results []braveWebResult `json:"results"`
	} `json:"web"`
}

// BraveClient implements domain.SearchProvider against the Brave
// Search API.
type BraveClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	logger  *slog.Logger
}

// NewBraveClient constructs a BraveClient. baseURL is normally
// https://api.search.brave.com; tests point it at a local server.
// If client is nil, a default http.Client is created with the timeout.
func NewBraveClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger, client ...*http.Client) *BraveClient {
	var c *http.Client
	if len(client) > 0 && client[0] != nil {
		c = client[0]
	} else {
		c = &http.Client{Timeout: timeout}
	}
	return &BraveClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  c,
		logger:  logger,
	}
}

func (c *BraveClient) Name() string { return "brave" }

// SearchWeb issues one web search call and normalizes the rows.
func (c *BraveClient) SearchWeb(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchRow, error) {
	startTime := time.Now()

	params := url.Values{}
	params.Set("q", query)
	if opts.Count > 0 {
		params.Set("count", strconv.Itoa(opts.Count))
	}

	endpoint := fmt.Sprintf("%s/res/v1/web/search?%s", c.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create brave request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: c.Name(), StatusCode: 0, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("brave_search_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", truncateString(string(body), 500)),
			slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
		return nil, &domain.ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    truncateString(string(body), 200),
		}
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode brave response: %w", err)
	}

	rows := make([]domain.SearchRow, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		rows = append(rows, domain.SearchRow{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
		})
	}

	c.logger.Debug("brave_search_completed",
		slog.Int("rows", len(rows)),
		slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
	return rows, nil
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
