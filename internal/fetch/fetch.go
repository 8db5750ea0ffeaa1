// Package fetch retrieves article stats from a rendered stats page. The
// page is loaded in headless Chrome, the stats table extracted into a
// dataset, and per-article detail pages fetched with a bounded worker
// pool.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"pulsecli/internal/dataset"
)

// DefaultConcurrency bounds detail-page fetches.
const DefaultConcurrency = 4

// Fetcher downloads stats pages with headless Chrome.
type Fetcher struct {
	logger   *slog.Logger
	timeout  time.Duration
	headless bool
}

// NewFetcher creates a fetcher. Timeout applies per page load.
func NewFetcher(logger *slog.Logger, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{
		logger:   logger.With(slog.String("component", "fetcher")),
		timeout:  timeout,
		headless: true,
	}
}

// StatsPage fetches the stats page at url after JavaScript has rendered it
// and parses its table into a dataset.
func (f *Fetcher) StatsPage(ctx context.Context, url string) (*dataset.Table, error) {
	html, err := f.renderedHTML(ctx, url, "table")
	if err != nil {
		return nil, fmt.Errorf("fetch stats page: %w", err)
	}
	table, err := dataset.ParseStatsHTML(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("fetch stats page: %w", err)
	}
	f.logger.InfoContext(ctx, "stats page fetched",
		slog.String("url", url),
		slog.Int("rows", table.Len()),
	)
	return table, nil
}

// renderedHTML navigates to url, waits for the selector, and returns the
// document HTML.
func (f *Fetcher) renderedHTML(ctx context.Context, url, waitFor string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, f.timeout)
	defer cancelRun()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(waitFor, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}

// DetailFunc fetches extra columns for one entry, keyed by its title, and
// returns the values to merge into the row.
type DetailFunc func(ctx context.Context, entry dataset.Entry) (map[string]float64, error)

// Details enriches every row of the table concurrently with the values
// detail returns, bounded to concurrency workers. The first failure
// cancels the remaining fetches.
func (f *Fetcher) Details(ctx context.Context, t *dataset.Table, detail DetailFunc, concurrency int) (*dataset.Table, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	enriched := t.Copy()
	entries := enriched.Entries()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range entries {
		g.Go(func() error {
			values, err := detail(gctx, entries[i])
			if err != nil {
				return fmt.Errorf("detail for %q: %w", entries[i].Title, err)
			}
			for k, v := range values {
				if entries[i].Values == nil {
					entries[i].Values = make(map[string]float64)
				}
				entries[i].Values[k] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch details: %w", err)
	}

	f.logger.InfoContext(ctx, "detail fetch complete",
		slog.Int("rows", len(entries)),
		slog.Int("concurrency", concurrency),
	)
	return enriched, nil
}
