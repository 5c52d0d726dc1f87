package browser

import (
	"context"
	"time"
)

// WaitCondition is the page lifecycle point navigation waits for
type WaitCondition string

const (
	WaitLoad             WaitCondition = "load"
	WaitDOMContentLoaded WaitCondition = "domcontentloaded"
	WaitNetworkIdle      WaitCondition = "networkidle"
)

// Valid reports whether w is a known wait condition
func (w WaitCondition) Valid() bool {
	switch w {
	case WaitLoad, WaitDOMContentLoaded, WaitNetworkIdle:
		return true
	}
	return false
}

// Viewport is the emulated window size
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Options control how the browser process is launched
type Options struct {
	Headless bool
	Locale   string
	Viewport Viewport
	ExecPath string

	// AuthURL, when set, is visited once after launch and AuthScript is
	// evaluated there. Pages then share the default browser context so the
	// session cookies apply to every scan.
	AuthURL    string
	AuthScript string
	Timeout    time.Duration
}

// NavigateOptions control a single navigation
type NavigateOptions struct {
	Timeout   time.Duration
	WaitUntil WaitCondition
}

// Page is one browsing context positioned at (at most) one URL
type Page interface {
	Navigate(ctx context.Context, url string, opts NavigateOptions) error
	URL(ctx context.Context) (string, error)
	Content(ctx context.Context) (string, error)
	// Evaluate runs script in the page, awaiting a returned promise, and
	// decodes the JSON result into out. out may be nil.
	Evaluate(ctx context.Context, script string, out interface{}) error
	Close() error
}

// Browser owns the browser process shared by all pages of one scan or crawl
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Launcher starts a browser. Launch is the production implementation.
type Launcher func(ctx context.Context, opts Options) (Browser, error)
