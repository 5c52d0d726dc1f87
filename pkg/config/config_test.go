package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mhb8436/aria/pkg/browser"
	"github.com/mhb8436/aria/pkg/engine"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Scan.Timeout != 30000 || !cfg.Scan.Headless || cfg.Scan.Locale != "ko-KR" || cfg.Scan.Viewport.Width != 1280 {
		t.Errorf("Unexpected scan defaults %+v", cfg.Scan)
	}
	if cfg.Crawl.Depth != 3 || cfg.Crawl.MaxPages != 50 || cfg.Crawl.Concurrency != 3 || !cfg.Crawl.SameDomain {
		t.Errorf("Unexpected crawl defaults %+v", cfg.Crawl)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".ariarc.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Defaults()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ariarc.yaml")
	content := `
exclude:
  rules: [color-contrast, skip-nav]
  urls: ["/admin"]
scan:
  timeout: 60000
  headless: false
crawl:
  depth: 5
  max_pages: 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scan.Timeout != 60000 || cfg.Scan.Headless {
		t.Errorf("scan overrides not applied: %+v", cfg.Scan)
	}
	if cfg.Scan.Locale != "ko-KR" || cfg.Crawl.Concurrency != 3 {
		t.Errorf("defaults lost: %+v %+v", cfg.Scan, cfg.Crawl)
	}

	sc := cfg.ScanOptions()
	if sc.Timeout != time.Minute || sc.Headless || sc.WaitUntil != browser.WaitLoad {
		t.Errorf("Unexpected scan options %+v", sc)
	}
	if !reflect.DeepEqual(sc.ExcludeRules, []string{"color-contrast", "skip-nav"}) {
		t.Errorf("Unexpected exclude rules %v", sc.ExcludeRules)
	}

	cc := cfg.CrawlOptions()
	if cc.Depth != 5 || cc.MaxPages != 100 || !reflect.DeepEqual(cc.ExcludePatterns, []string{"/admin"}) {
		t.Errorf("Unexpected crawl options %+v", cc)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ariarc.json")
	content := `{"scan": {"wait_until": "networkidle"}, "ci": {"threshold": 5}, "auth": {"url": "http://localhost/login"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if got := Find(dir); got != path {
		t.Fatalf("Find returned %q", got)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scan.WaitUntil != "networkidle" || cfg.CI.Threshold != 5 || cfg.ScanOptions().AuthURL != "http://localhost/login" {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestFindPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".ariarc.json", ".ariarc.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if got := Find(dir); filepath.Base(got) != ".ariarc.yml" {
		t.Errorf("Expected .ariarc.yml, got %q", got)
	}
	if got := Find(t.TempDir()); got != "" {
		t.Errorf("Expected no file, got %q", got)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ariarc.yaml")
	if err := os.WriteFile(path, []byte("scan: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	var cfgErr *engine.ConfigurationError
	if _, err := Load(path); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigurationError, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ariarc.yaml")
	cfg := Defaults()
	cfg.Exclude.Rules = []string{"region"}
	cfg.Engine.AxePath = "/opt/axe.min.js"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"timeout", func(c *Config) { c.Scan.Timeout = 0 }, "scan.timeout"},
		{"wait", func(c *Config) { c.Scan.WaitUntil = "networkidle0" }, "scan.wait_until"},
		{"viewport", func(c *Config) { c.Scan.Viewport.Height = 0 }, "scan.viewport"},
		{"depth", func(c *Config) { c.Crawl.Depth = -1 }, "crawl.depth"},
		{"pages", func(c *Config) { c.Crawl.MaxPages = 0 }, "crawl.max_pages"},
		{"concurrency", func(c *Config) { c.Crawl.Concurrency = 100 }, "crawl.concurrency"},
		{"threshold", func(c *Config) { c.CI.Threshold = -1 }, "ci.threshold"},
		{"format", func(c *Config) { c.Report.Format = "pdf" }, "report.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			var cfgErr *engine.ConfigurationError
			if err := cfg.Validate(); !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("Expected error on %s, got %v", tt.field, err)
			}
		})
	}
}
