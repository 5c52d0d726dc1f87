package axe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mhb8436/aria/pkg/browser"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/logger"
)

const (
	Version    = "4.10.2"
	DefaultURL = "https://cdn.jsdelivr.net/npm/axe-core@" + Version + "/axe.min.js"
)

// DefaultTags selects the WCAG 2.x A/AA rule sets plus best practices
var DefaultTags = []string{"wcag2a", "wcag2aa", "wcag21a", "wcag21aa", "wcag22aa", "best-practice"}

// Injection stages reported in EngineInjectionError
const (
	StageLoad   = "load"
	StageInject = "inject"
	StageRun    = "run"
)

// Engine produces the four classified rule-result lists for the page it is given
type Engine interface {
	Run(ctx context.Context, page browser.Page) (*engine.EngineResults, error)
}

// Options controls where the axe-core source comes from
type Options struct {
	Path     string // local axe.min.js, used as-is when set
	URL      string // download location, DefaultURL when empty
	CacheDir string // download cache, os.UserCacheDir()/aria when empty
	Tags     []string
	Client   *http.Client
}

// Runner injects axe-core into pages and runs it. The source is loaded once
// and shared by every page.
type Runner struct {
	opts Options

	mu     sync.Mutex
	source string
}

func New(opts Options) *Runner {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if len(opts.Tags) == 0 {
		opts.Tags = DefaultTags
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Runner{opts: opts}
}

// NewWithSource builds a runner around an already loaded axe-core script
func NewWithSource(source string, tags ...string) *Runner {
	r := New(Options{Tags: tags})
	r.source = source
	return r
}

func (r *Runner) Run(ctx context.Context, page browser.Page) (*engine.EngineResults, error) {
	url, _ := page.URL(ctx)

	src, err := r.Source(ctx)
	if err != nil {
		return nil, &engine.EngineInjectionError{URL: url, Stage: StageLoad, Err: err}
	}
	if err := page.Evaluate(ctx, src, nil); err != nil {
		return nil, &engine.EngineInjectionError{URL: url, Stage: StageInject, Err: err}
	}

	script, err := runScript(r.opts.Tags)
	if err != nil {
		return nil, &engine.EngineInjectionError{URL: url, Stage: StageRun, Err: err}
	}
	var res engine.EngineResults
	if err := page.Evaluate(ctx, script, &res); err != nil {
		return nil, &engine.EngineInjectionError{URL: url, Stage: StageRun, Err: err}
	}
	if res.URL == "" {
		res.URL = url
	}
	logger.Debugf("axe on %s: %d violations, %d passes, %d incomplete, %d inapplicable",
		url, len(res.Violations), len(res.Passes), len(res.Incomplete), len(res.Inapplicable))
	return &res, nil
}

type runOptions struct {
	RunOnly struct {
		Type   string   `json:"type"`
		Values []string `json:"values"`
	} `json:"runOnly"`
	ResultTypes []string `json:"resultTypes"`
}

func runScript(tags []string) (string, error) {
	var opts runOptions
	opts.RunOnly.Type = "tag"
	opts.RunOnly.Values = tags
	opts.ResultTypes = []string{"violations", "passes", "incomplete", "inapplicable"}

	b, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`(async () => {
  if (typeof window.axe === "undefined") { throw new Error("axe-core is not loaded"); }
  return await window.axe.run(document, %s);
})()`, b), nil
}

// Source returns the axe-core script, reading the local file, the download
// cache or the network in that order.
func (r *Runner) Source(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.source != "" {
		return r.source, nil
	}

	src, err := r.load(ctx)
	if err != nil {
		return "", err
	}
	r.source = src
	return src, nil
}

func (r *Runner) load(ctx context.Context) (string, error) {
	if r.opts.Path != "" {
		b, err := os.ReadFile(r.opts.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read axe-core from %s: %w", r.opts.Path, err)
		}
		return string(b), nil
	}

	cached := r.cachePath()
	if cached != "" {
		if b, err := os.ReadFile(cached); err == nil && len(b) > 0 {
			logger.Debugf("using cached axe-core %s", cached)
			return string(b), nil
		}
	}

	src, err := r.download(ctx)
	if err != nil {
		return "", err
	}
	if cached != "" {
		if err := os.MkdirAll(filepath.Dir(cached), 0755); err == nil {
			if err := os.WriteFile(cached, []byte(src), 0644); err != nil {
				logger.Debugf("failed to cache axe-core: %v", err)
			}
		}
	}
	return src, nil
}

func (r *Runner) download(ctx context.Context) (string, error) {
	logger.Infof("downloading axe-core from %s", r.opts.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.opts.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.opts.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download axe-core: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download axe-core: %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read axe-core: %w", err)
	}
	if !strings.Contains(string(b), "axe") {
		return "", fmt.Errorf("unexpected axe-core payload from %s", r.opts.URL)
	}
	return string(b), nil
}

func (r *Runner) cachePath() string {
	dir := r.opts.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(base, "aria")
	}
	sum := sha256.Sum256([]byte(r.opts.URL))
	return filepath.Join(dir, "axe-"+hex.EncodeToString(sum[:6])+".min.js")
}
