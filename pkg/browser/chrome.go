package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/mhb8436/aria/pkg/logger"
)

type chromeBrowser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	opts        Options
	shared      bool
	closeOnce   sync.Once
	closeErr    error
}

// Launch starts a Chrome/Chromium process through chromedp
func Launch(ctx context.Context, opts Options) (Browser, error) {
	execPath := opts.ExecPath
	if execPath == "" {
		p, err := DetectChromePath()
		if err != nil {
			return nil, err
		}
		execPath = p
	}
	logger.Debugf("launching browser %s (headless=%v)", execPath, opts.Headless)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.Viewport.Width > 0 && opts.Viewport.Height > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(opts.Viewport.Width, opts.Viewport.Height))
	}
	if opts.Locale != "" {
		allocOpts = append(allocOpts, chromedp.Flag("lang", opts.Locale))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	bctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Debugf))

	// The first Run starts the process
	if err := chromedp.Run(bctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := &chromeBrowser{ctx: bctx, cancel: cancel, allocCancel: allocCancel, opts: opts}

	if opts.AuthURL != "" {
		if err := b.login(ctx); err != nil {
			b.Close()
			return nil, err
		}
		b.shared = true
	}
	return b, nil
}

func (b *chromeBrowser) login(ctx context.Context) error {
	timeout := b.opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debugf("authenticating via %s", b.opts.AuthURL)
	actions := []chromedp.Action{chromedp.Navigate(b.opts.AuthURL)}
	if b.opts.AuthScript != "" {
		var discard []byte
		actions = append(actions, chromedp.Evaluate(b.opts.AuthScript, &discard, awaitPromise))
	}
	if err := runWithin(ctx, b.ctx, actions...); err != nil {
		return fmt.Errorf("authentication step failed: %w", err)
	}
	return nil
}

// NewPage opens a new tab. Without an auth session every tab gets its own
// browser context, so no cookies or storage leak between URLs.
func (b *chromeBrowser) NewPage(ctx context.Context) (Page, error) {
	var copts []chromedp.ContextOption
	if !b.shared {
		copts = append(copts, chromedp.WithNewBrowserContext())
	}
	tctx, cancel := chromedp.NewContext(b.ctx, copts...)

	var actions []chromedp.Action
	if b.opts.Viewport.Width > 0 && b.opts.Viewport.Height > 0 {
		actions = append(actions, chromedp.EmulateViewport(int64(b.opts.Viewport.Width), int64(b.opts.Viewport.Height)))
	}
	// The first Run on a tab must use the tab context itself; a derived
	// context would tie the tab's lifetime to it.
	if err := chromedp.Run(tctx, actions...); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &chromePage{ctx: tctx, cancel: cancel}, nil
}

func (b *chromeBrowser) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = chromedp.Cancel(b.ctx)
		b.cancel()
		b.allocCancel()
	})
	return b.closeErr
}

type chromePage struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (p *chromePage) Navigate(ctx context.Context, url string, opts NavigateOptions) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	return runWithin(ctx, p.ctx, navigateActions(url, opts.WaitUntil)...)
}

// navigateActions picks how navigation waits. chromedp.Navigate returns once
// the load event fired; domcontentloaded returns on the earlier event.
func navigateActions(url string, wait WaitCondition) []chromedp.Action {
	switch wait {
	case WaitDOMContentLoaded:
		return []chromedp.Action{navigateDOMContentLoaded(url)}
	case WaitNetworkIdle:
		return []chromedp.Action{chromedp.Navigate(url), waitNetworkIdle(500 * time.Millisecond)}
	default:
		return []chromedp.Action{chromedp.Navigate(url)}
	}
}

// navigateDOMContentLoaded starts navigation and returns when the new
// document fired DOMContentLoaded, without waiting for subresources.
func navigateDOMContentLoaded(url string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		lctx, cancel := context.WithCancel(ctx)
		defer cancel()

		fired := make(chan struct{}, 1)
		chromedp.ListenTarget(lctx, func(ev interface{}) {
			if _, ok := ev.(*page.EventDomContentEventFired); ok {
				select {
				case fired <- struct{}{}:
				default:
				}
			}
		})

		_, _, errText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		if errText != "" {
			return fmt.Errorf("page load error %s", errText)
		}
		select {
		case <-fired:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

func (p *chromePage) URL(ctx context.Context) (string, error) {
	var loc string
	if err := runWithin(ctx, p.ctx, chromedp.Location(&loc)); err != nil {
		return "", err
	}
	return loc, nil
}

func (p *chromePage) Content(ctx context.Context) (string, error) {
	var html string
	if err := runWithin(ctx, p.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *chromePage) Evaluate(ctx context.Context, script string, out interface{}) error {
	if out == nil {
		var discard []byte
		out = &discard
	}
	return runWithin(ctx, p.ctx, chromedp.Evaluate(script, out, awaitPromise))
}

func (p *chromePage) Close() error {
	p.closeOnce.Do(p.cancel)
	return nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// runWithin runs actions on the tab bound to target while honouring the
// deadline and cancellation of ctx. Cancelling a derived context only aborts
// the actions; the tab stays open until its own cancel func runs.
func runWithin(ctx context.Context, target context.Context, actions ...chromedp.Action) error {
	rctx, cancel := context.WithCancel(target)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(rctx, actions...)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return err
}

// waitNetworkIdle polls resource timing until no new requests were issued for quiet
func waitNetworkIdle(quiet time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		last := -1
		stableSince := time.Now()
		for {
			var count int
			if err := chromedp.Evaluate(`performance.getEntriesByType("resource").length`, &count).Do(ctx); err != nil {
				return err
			}
			if count != last {
				last = count
				stableSince = time.Now()
			} else if time.Since(stableSince) >= quiet {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	})
}
