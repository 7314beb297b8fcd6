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

type tavilyRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type tavilyResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

// TavilyClient implements domain.SearchProvider against the Tavily
// search API.
type TavilyClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	logger  *slog.Logger
}

// NewTavilyClient constructs a TavilyClient. baseURL is normally
// https://api.tavily.com.
func NewTavilyClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger, client ...*http.Client) *TavilyClient {
	var c *http.Client
	if len(client) > 0 && client[0] != nil {
		c = client[0]
	} else {
		c = &http.Client{Timeout: timeout}
	}
	return &TavilyClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  c,
		logger:  logger,
	}
}

func (c *TavilyClient) Name() string { return "tavily" }

func (c *TavilyClient) SearchWeb(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchRow, error) {
	startTime := time.Now()

	payload, err := json.Marshal(tavilyRequest{Query: query, MaxResults: opts.Count})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: c.Name(), StatusCode: 0, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("tavily_search_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", truncateString(string(body), 500)),
			slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
		return nil, &domain.ProviderError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    truncateString(string(body), 200),
		}
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode tavily response: %w", err)
	}

	rows := make([]domain.SearchRow, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		rows = append(rows, domain.SearchRow{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}

	c.logger.Debug("tavily_search_completed",
		slog.Int("rows", len(rows)),
		slog.Int64("elapsed_ms", time.Since(startTime).Milliseconds()))
	return rows, nil
}
