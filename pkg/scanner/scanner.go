package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhb8436/aria/pkg/axe"
	"github.com/mhb8436/aria/pkg/browser"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/logger"
	"github.com/mhb8436/aria/pkg/rules"
)

// Config holds the navigation and browser settings of a scan
type Config struct {
	Timeout   time.Duration
	WaitUntil browser.WaitCondition
	Viewport  browser.Viewport
	Locale    string
	Headless  bool
	ExecPath  string

	AuthURL    string
	AuthScript string

	// ExcludeRules lists custom or engine rule ids to ignore
	ExcludeRules []string

	// Launcher starts the browser for ScanURL; browser.Launch when nil
	Launcher browser.Launcher
}

func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		WaitUntil: browser.WaitLoad,
		Viewport:  browser.Viewport{Width: 1280, Height: 720},
		Locale:    "ko-KR",
		Headless:  true,
	}
}

// BrowserOptions projects the config onto browser launch options
func (c Config) BrowserOptions() browser.Options {
	return browser.Options{
		Headless:   c.Headless,
		Locale:     c.Locale,
		Viewport:   c.Viewport,
		ExecPath:   c.ExecPath,
		AuthURL:    c.AuthURL,
		AuthScript: c.AuthScript,
		Timeout:    c.Timeout,
	}
}

func (c Config) NavigateOptions() browser.NavigateOptions {
	return browser.NavigateOptions{Timeout: c.Timeout, WaitUntil: c.WaitUntil}
}

func (c Config) launcher() browser.Launcher {
	if c.Launcher != nil {
		return c.Launcher
	}
	return browser.Launch
}

// Scanner evaluates single pages against the catalog
type Scanner struct {
	engine axe.Engine
	rules  []rules.Rule
	cfg    Config
}

// New creates a scanner. Rules listed in cfg.ExcludeRules are dropped.
func New(eng axe.Engine, rs []rules.Rule, cfg Config) *Scanner {
	return &Scanner{
		engine: eng,
		rules:  rules.Filter(rs, cfg.ExcludeRules),
		cfg:    cfg,
	}
}

func (s *Scanner) Config() Config {
	return s.cfg
}

// ScanPage scans a page that is already positioned at its URL
func (s *Scanner) ScanPage(ctx context.Context, page browser.Page) (*engine.ScanResult, error) {
	return s.scan(ctx, page, "", time.Now())
}

// ScanURL launches a browser, opens one isolated page, navigates to url and
// scans it. The browser is closed before returning.
func (s *Scanner) ScanURL(ctx context.Context, url string) (*engine.ScanResult, error) {
	start := time.Now()

	b, err := s.cfg.launcher()(ctx, s.cfg.BrowserOptions())
	if err != nil {
		return nil, err
	}
	defer b.Close()

	page, err := b.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := Navigate(ctx, page, url, s.cfg.NavigateOptions()); err != nil {
		return nil, err
	}
	return s.scan(ctx, page, url, start)
}

// Navigate loads url in page. Failures are returned as *engine.NavigationError,
// with Timeout set when the deadline was exceeded.
func Navigate(ctx context.Context, page browser.Page, url string, opts browser.NavigateOptions) error {
	logger.Debugf("navigating to %s (wait=%s, timeout=%s)", url, opts.WaitUntil, opts.Timeout)
	err := page.Navigate(ctx, url, opts)
	if err == nil {
		return nil
	}
	return &engine.NavigationError{
		URL:     url,
		Timeout: errors.Is(err, context.DeadlineExceeded),
		Err:     err,
	}
}

// scan evaluates the page. requested is the URL the page was sent to, if
// known; it names the page when its current URL cannot be read.
func (s *Scanner) scan(ctx context.Context, page browser.Page, requested string, start time.Time) (*engine.ScanResult, error) {
	url, err := page.URL(ctx)
	if err != nil {
		if requested == "" {
			requested = "current page"
		}
		return nil, &engine.NavigationError{
			URL:     requested,
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     fmt.Errorf("failed to read page url: %w", err),
		}
	}

	results, err := s.engine.Run(ctx, page)
	if err != nil {
		return nil, err
	}

	assessment := engine.NewAssessment(s.cfg.ExcludeRules...)
	assessment.AddEngineResults(results)

	for _, o := range s.runRules(ctx, page) {
		assessment.AddCustomResult(o.Result())
	}

	result := assessment.Build(url, time.Now(), time.Since(start))
	logger.Debugf("scanned %s in %dms: %d violations, %.1f%% compliant",
		url, result.Duration, len(result.Violations), result.Summary.ComplianceRate)
	return result, nil
}

// runRules captures the page once and runs every custom rule on it. When
// the capture fails each rule is reported as failed.
func (s *Scanner) runRules(ctx context.Context, page browser.Page) []rules.Outcome {
	snap, err := rules.Capture(ctx, page)
	if err != nil {
		outcomes := make([]rules.Outcome, len(s.rules))
		for i, r := range s.rules {
			outcomes[i] = rules.Outcome{
				Rule: r,
				Err:  &engine.RuleExecutionError{RuleID: r.ID(), ItemID: r.ItemID(), Err: err},
			}
		}
		return outcomes
	}
	return rules.Run(ctx, s.rules, snap)
}
