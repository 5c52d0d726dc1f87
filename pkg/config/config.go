// Package config loads and saves the .ariarc project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mhb8436/aria/pkg/browser"
	"github.com/mhb8436/aria/pkg/crawler"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/scanner"
)

// FileNames are the config files Find looks for, in order
var FileNames = []string{".ariarc.yaml", ".ariarc.yml", ".ariarc.json"}

const (
	maxConcurrency = 16
	maxDepth       = 10
	maxPages       = 10000
)

type ExcludeConfig struct {
	Rules []string `yaml:"rules,omitempty"`
	URLs  []string `yaml:"urls,omitempty"`
}

type AuthConfig struct {
	URL    string `yaml:"url,omitempty"`
	Script string `yaml:"script,omitempty"`
}

type ScanConfig struct {
	// Timeout is in milliseconds
	Timeout   int              `yaml:"timeout"`
	Headless  bool             `yaml:"headless"`
	Viewport  browser.Viewport `yaml:"viewport"`
	WaitUntil string           `yaml:"wait_until"`
	Locale    string           `yaml:"locale"`
}

type CrawlConfig struct {
	Depth       int  `yaml:"depth"`
	MaxPages    int  `yaml:"max_pages"`
	Concurrency int  `yaml:"concurrency"`
	SameDomain  bool `yaml:"same_domain"`
}

type ReportConfig struct {
	Format string `yaml:"format"`
	Output string `yaml:"output,omitempty"`
	DB     string `yaml:"db"`
	// GuidesDir holds extra remediation guide files
	GuidesDir string `yaml:"guides_dir,omitempty"`
}

type CIConfig struct {
	Threshold int `yaml:"threshold"`
}

type EngineConfig struct {
	AxePath string `yaml:"axe_path,omitempty"`
	AxeURL  string `yaml:"axe_url,omitempty"`
}

// Config mirrors the .ariarc file
type Config struct {
	Exclude ExcludeConfig `yaml:"exclude"`
	Auth    AuthConfig    `yaml:"auth,omitempty"`
	Scan    ScanConfig    `yaml:"scan"`
	Crawl   CrawlConfig   `yaml:"crawl"`
	Report  ReportConfig  `yaml:"report"`
	CI      CIConfig      `yaml:"ci"`
	Engine  EngineConfig  `yaml:"engine,omitempty"`
}

func Defaults() *Config {
	return &Config{
		Scan: ScanConfig{
			Timeout:   30000,
			Headless:  true,
			Viewport:  browser.Viewport{Width: 1280, Height: 720},
			WaitUntil: string(browser.WaitLoad),
			Locale:    "ko-KR",
		},
		Crawl: CrawlConfig{
			Depth:       3,
			MaxPages:    50,
			Concurrency: 3,
			SameDomain:  true,
		},
		Report: ReportConfig{
			Format: "html",
			DB:     "aria-scan.db",
		},
	}
}

// Find returns the first config file present in dir, or "" when none is
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads a config file over the defaults. A missing file (or an empty
// path) yields the defaults. JSON files decode through the same keys.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, &engine.ConfigurationError{Field: path, Err: err}
	}

	// YAML is a superset of JSON, so one decoder serves both
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &engine.ConfigurationError{Field: path, Err: fmt.Errorf("failed to parse: %w", err)}
	}
	return cfg, nil
}

// Save writes cfg as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	bad := func(field string, format string, args ...interface{}) error {
		return &engine.ConfigurationError{Field: field, Err: fmt.Errorf(format, args...)}
	}

	switch {
	case c.Scan.Timeout <= 0:
		return bad("scan.timeout", "must be positive, got %d", c.Scan.Timeout)
	case !browser.WaitCondition(c.Scan.WaitUntil).Valid():
		return bad("scan.wait_until", "unknown wait condition %q (load, domcontentloaded, networkidle)", c.Scan.WaitUntil)
	case c.Scan.Viewport.Width <= 0 || c.Scan.Viewport.Height <= 0:
		return bad("scan.viewport", "must be positive, got %dx%d", c.Scan.Viewport.Width, c.Scan.Viewport.Height)
	case c.Crawl.Depth < 0 || c.Crawl.Depth > maxDepth:
		return bad("crawl.depth", "must be between 0 and %d, got %d", maxDepth, c.Crawl.Depth)
	case c.Crawl.MaxPages < 1 || c.Crawl.MaxPages > maxPages:
		return bad("crawl.max_pages", "must be between 1 and %d, got %d", maxPages, c.Crawl.MaxPages)
	case c.Crawl.Concurrency < 1 || c.Crawl.Concurrency > maxConcurrency:
		return bad("crawl.concurrency", "must be between 1 and %d, got %d", maxConcurrency, c.Crawl.Concurrency)
	case c.CI.Threshold < 0:
		return bad("ci.threshold", "must not be negative, got %d", c.CI.Threshold)
	}

	switch c.Report.Format {
	case "json", "html", "excel", "xlsx":
	default:
		return bad("report.format", "unknown format %q (json, html, excel)", c.Report.Format)
	}
	return nil
}

// ScanOptions projects the config onto scanner settings
func (c *Config) ScanOptions() scanner.Config {
	sc := scanner.DefaultConfig()
	sc.Timeout = time.Duration(c.Scan.Timeout) * time.Millisecond
	sc.WaitUntil = browser.WaitCondition(c.Scan.WaitUntil)
	sc.Viewport = c.Scan.Viewport
	sc.Locale = c.Scan.Locale
	sc.Headless = c.Scan.Headless
	sc.AuthURL = c.Auth.URL
	sc.AuthScript = c.Auth.Script
	sc.ExcludeRules = append([]string(nil), c.Exclude.Rules...)
	return sc
}

// CrawlOptions projects the config onto crawl bounds
func (c *Config) CrawlOptions() crawler.Config {
	return crawler.Config{
		Depth:           c.Crawl.Depth,
		MaxPages:        c.Crawl.MaxPages,
		Concurrency:     c.Crawl.Concurrency,
		SameDomain:      c.Crawl.SameDomain,
		ExcludePatterns: append([]string(nil), c.Exclude.URLs...),
	}
}
