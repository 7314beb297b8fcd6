package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"search-orchestrator/internal/di"
	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/infra/config"
	"search-orchestrator/internal/infra/logger"
	"search-orchestrator/internal/usecase"
)

// search-cli runs the ranking pipeline for queries given as arguments,
// or one per stdin line when no arguments are given. Each query gets
// its own isolated budget and context; runs execute concurrently up to
// a fixed limit.
func main() {
	cfg := config.Load()
	log := logger.New()
	slog.SetDefault(log)

	components, err := di.NewApplicationComponents(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to wire application: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	queries := os.Args[1:]
	if len(queries) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				queries = append(queries, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read stdin: %v\n", err)
			os.Exit(1)
		}
	}
	if len(queries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: search-cli <query> [query ...]")
		os.Exit(1)
	}

	type cliResult struct {
		Query  string               `json:"query"`
		Report *domain.SearchReport `json:"report,omitempty"`
		Error  string               `json:"error,omitempty"`
	}

	results := make([]cliResult, len(queries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(4)
	for i, query := range queries {
		g.Go(func() error {
			report, err := components.SearchUsecase.Execute(ctx, usecase.EscalatingSearchInput{
				Query:            query,
				CostMode:         cfg.DefaultCostMode,
				MaxProviderCalls: cfg.MaxProviderCalls,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[i] = cliResult{Query: query, Error: err.Error()}
				return nil
			}
			results[i] = cliResult{Query: query, Report: report}
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
			os.Exit(1)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
