package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// slowAssetServer serves a page whose image takes longer than any test
// timeout, so the load event fires late while DOMContentLoaded does not
func slowAssetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html lang="ko"><head><title>홈</title></head><body><img src="/slow.png" alt=""></body></html>`)
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func launchForTest(t *testing.T) Browser {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if _, err := DetectChromePath(); err != nil {
		t.Skipf("no Chrome available: %v", err)
	}
	b, err := Launch(context.Background(), Options{Headless: true, Viewport: Viewport{Width: 1280, Height: 720}})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestNavigateWaitConditions(t *testing.T) {
	b := launchForTest(t)
	srv := slowAssetServer(t)
	ctx := context.Background()

	p, err := b.NewPage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	opts := NavigateOptions{Timeout: 2 * time.Second, WaitUntil: WaitDOMContentLoaded}
	if err := p.Navigate(ctx, srv.URL+"/", opts); err != nil {
		t.Fatalf("domcontentloaded should not wait for the slow image: %v", err)
	}
	content, err := p.Content(ctx)
	if err != nil || content == "" {
		t.Errorf("Expected page content, got %q (%v)", content, err)
	}

	slow, err := b.NewPage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer slow.Close()

	opts.WaitUntil = WaitLoad
	if err := slow.Navigate(ctx, srv.URL+"/", opts); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected load to time out on the slow image, got %v", err)
	}
}
