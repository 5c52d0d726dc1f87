// Package browsertest provides an in-memory Browser for tests that drive
// pages without a real Chrome process.
package browsertest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mhb8436/aria/pkg/browser"
)

// Page is the fake document served at one URL
type Page struct {
	HTML        string
	NavigateErr error
	Delay       time.Duration // navigation latency
	Hang        bool          // navigation never finishes on its own
	RedirectTo  string        // URL reported after navigation
	URLErr      error         // returned by URL after navigation
}

// EvalFunc answers a page.Evaluate call. The returned value is converted to
// out through JSON.
type EvalFunc func(url, script string) (interface{}, error)

// Browser serves Pages keyed by URL and records how it was used
type Browser struct {
	Pages map[string]Page
	Eval  EvalFunc

	mu        sync.Mutex
	open      int
	maxOpen   int
	opened    int
	closes    int
	navigated []string
}

func New(pages map[string]Page) *Browser {
	return &Browser{Pages: pages}
}

// Launcher returns a browser.Launcher that always yields b
func (b *Browser) Launcher() browser.Launcher {
	return func(context.Context, browser.Options) (browser.Browser, error) {
		return b, nil
	}
}

func (b *Browser) NewPage(ctx context.Context) (browser.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open++
	b.opened++
	if b.open > b.maxOpen {
		b.maxOpen = b.open
	}
	return &page{b: b, url: "about:blank"}, nil
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closes++
	return nil
}

// MaxOpen is the peak number of simultaneously open pages
func (b *Browser) MaxOpen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxOpen
}

// OpenPages is the number of pages not yet closed
func (b *Browser) OpenPages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Opened is the total number of pages created
func (b *Browser) Opened() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened
}

// Closes is how many times Close was called on the browser
func (b *Browser) Closes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closes
}

// Navigated lists every navigation target in call order
func (b *Browser) Navigated() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.navigated...)
}

type page struct {
	b       *Browser
	url     string
	urlErr  error
	content string
	once    sync.Once
}

func (p *page) Navigate(ctx context.Context, url string, opts browser.NavigateOptions) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	p.b.mu.Lock()
	p.b.navigated = append(p.b.navigated, url)
	fixture, ok := p.b.Pages[url]
	p.b.mu.Unlock()

	if !ok {
		return fmt.Errorf("net::ERR_NAME_NOT_RESOLVED at %s", url)
	}
	if fixture.Hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if fixture.Delay > 0 {
		select {
		case <-time.After(fixture.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fixture.NavigateErr != nil {
		return fixture.NavigateErr
	}

	p.url = url
	if fixture.RedirectTo != "" {
		p.url = fixture.RedirectTo
	}
	p.content = fixture.HTML
	p.urlErr = fixture.URLErr
	return nil
}

func (p *page) URL(context.Context) (string, error) {
	if p.urlErr != nil {
		return "", p.urlErr
	}
	return p.url, nil
}

func (p *page) Content(context.Context) (string, error) {
	return p.content, nil
}

func (p *page) Evaluate(ctx context.Context, script string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.b.Eval == nil {
		return nil
	}
	v, err := p.b.Eval(p.url, script)
	if err != nil {
		return err
	}
	if out == nil || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (p *page) Close() error {
	p.once.Do(func() {
		p.b.mu.Lock()
		p.b.open--
		p.b.mu.Unlock()
	})
	return nil
}
