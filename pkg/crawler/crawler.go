package crawler

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/mhb8436/aria/pkg/browser"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/logger"
	"github.com/mhb8436/aria/pkg/scanner"
)

// Config bounds a crawl. Navigation and browser settings come from the scanner.
type Config struct {
	Depth           int
	MaxPages        int
	Concurrency     int
	SameDomain      bool
	ExcludePatterns []string
}

func DefaultConfig() Config {
	return Config{Depth: 3, MaxPages: 50, Concurrency: 3, SameDomain: true}
}

// Validate checks the crawl bounds
func (c Config) Validate() error {
	switch {
	case c.Depth < 0:
		return &engine.ConfigurationError{Field: "crawl.depth", Err: fmt.Errorf("must be >= 0, got %d", c.Depth)}
	case c.MaxPages < 1:
		return &engine.ConfigurationError{Field: "crawl.max_pages", Err: fmt.Errorf("must be >= 1, got %d", c.MaxPages)}
	case c.Concurrency < 1:
		return &engine.ConfigurationError{Field: "crawl.concurrency", Err: fmt.Errorf("must be >= 1, got %d", c.Concurrency)}
	}
	return nil
}

// ProgressStatus is the phase reported for a page
type ProgressStatus string

const (
	ProgressScanning ProgressStatus = "scanning"
	ProgressDone     ProgressStatus = "done"
	ProgressError    ProgressStatus = "error"
)

// Progress is reported as each page starts and finishes
type Progress struct {
	URL     string
	Current int
	Total   int
	Status  ProgressStatus
}

// ProgressFunc receives crawl progress. Calls are serialized.
type ProgressFunc func(Progress)

type crawl struct {
	cfg      Config
	scanner  *scanner.Scanner
	browser  browser.Browser
	frontier *frontier
	filter   linkFilter
	onProg   ProgressFunc

	mu      sync.Mutex
	started int
	results []engine.PageEntry
}

// Crawl scans startURL and the pages reachable from it breadth first, at
// most cfg.Concurrency pages at a time. A page that fails is recorded as an
// error entry; only a browser launch failure aborts the crawl.
func Crawl(ctx context.Context, s *scanner.Scanner, startURL string, cfg Config, onProgress ProgressFunc) (*engine.CrawlResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := Normalize(startURL)
	u, err := url.Parse(start)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &engine.ConfigurationError{Field: "url", Err: fmt.Errorf("not an http(s) URL: %q", startURL)}
	}

	began := time.Now()
	scfg := s.Config()
	launch := scfg.Launcher
	if launch == nil {
		launch = browser.Launch
	}
	b, err := launch(ctx, scfg.BrowserOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer b.Close()

	c := &crawl{
		cfg:      cfg,
		scanner:  s,
		browser:  b,
		frontier: newFrontier(start),
		filter:   linkFilter{host: u.Host, sameDomain: cfg.SameDomain, exclude: cfg.ExcludePatterns},
		onProg:   onProgress,
		results:  []engine.PageEntry{},
	}
	c.run(ctx)

	logger.Debugf("crawl of %s finished: %d pages", start, len(c.results))
	return &engine.CrawlResult{
		StartURL:     startURL,
		PagesScanned: len(c.results),
		PageResults:  c.results,
		Duration:     time.Since(began).Milliseconds(),
		Summary:      engine.BuildCrawlSummary(c.results),
	}, nil
}

func (c *crawl) run(ctx context.Context) {
	for ctx.Err() == nil {
		visited, _ := c.frontier.counts()
		batch := c.frontier.next(min(c.cfg.Concurrency, c.cfg.MaxPages-visited))
		if len(batch) == 0 {
			return
		}

		var wg sync.WaitGroup
		for _, t := range batch {
			wg.Add(1)
			go func(t target) {
				defer wg.Done()
				c.visit(ctx, t)
			}(t)
		}
		wg.Wait()
	}
	logger.Warnf("crawl cancelled: %v", ctx.Err())
}

func (c *crawl) visit(ctx context.Context, t target) {
	c.progress(t.url, ProgressScanning, true)

	entry, links := c.scanOne(ctx, t)
	if len(links) > 0 {
		c.frontier.push(links, t.depth+1)
	}

	c.mu.Lock()
	c.results = append(c.results, entry)
	c.mu.Unlock()

	if entry.Status == engine.PageSuccess {
		c.progress(t.url, ProgressDone, false)
	} else {
		logger.Debugf("page %s failed: %s", t.url, entry.ErrorMessage)
		c.progress(t.url, ProgressError, false)
	}
}

func (c *crawl) scanOne(ctx context.Context, t target) (engine.PageEntry, []string) {
	entry := engine.PageEntry{URL: t.url, Depth: t.depth}
	fail := func(err error) (engine.PageEntry, []string) {
		entry.Status = engine.PageError
		entry.ErrorMessage = err.Error()
		return entry, nil
	}

	page, err := c.browser.NewPage(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to open page: %w", err))
	}
	defer page.Close()

	if err := scanner.Navigate(ctx, page, t.url, c.scanner.Config().NavigateOptions()); err != nil {
		return fail(err)
	}
	res, err := c.scanner.ScanPage(ctx, page)
	if err != nil {
		return fail(err)
	}
	entry.Status = engine.PageSuccess
	entry.ScanResult = res

	if t.depth >= c.cfg.Depth {
		return entry, nil
	}
	markup, err := page.Content(ctx)
	if err != nil {
		logger.Debugf("no links from %s: %v", t.url, err)
		return entry, nil
	}
	current, err := page.URL(ctx)
	if err != nil || current == "" {
		current = t.url
	}
	links, err := extractLinks(current, markup, c.filter)
	if err != nil {
		logger.Debugf("no links from %s: %v", t.url, err)
	}
	return entry, links
}

// progress reports a page event. Total is bounded by MaxPages.
func (c *crawl) progress(url string, status ProgressStatus, starting bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if starting {
		c.started++
	}
	if c.onProg == nil {
		return
	}
	visited, queued := c.frontier.counts()
	c.onProg(Progress{
		URL:     url,
		Current: c.started,
		Total:   min(visited+queued, c.cfg.MaxPages),
		Status:  status,
	})
}
