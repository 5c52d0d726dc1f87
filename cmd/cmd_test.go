package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mhb8436/aria/pkg/catalog"
	"github.com/mhb8436/aria/pkg/config"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/report"
)

func sampleScan(url string, withAlt bool) *engine.ScanResult {
	r := &engine.ScanResult{
		URL:       url,
		Timestamp: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC),
		Duration:  2300,
		Passes:    []string{"7.1.1"},
	}
	statuses := map[string]engine.ItemStatus{"7.1.1": engine.StatusPass}
	if !withAlt {
		r.Violations = []engine.Violation{{
			KwcagID: "5.1.1", KwcagName: "적절한 대체 텍스트 제공", Severity: engine.SeverityError,
			RuleID: "image-alt", Description: "Images must have alternative text",
			Nodes: []engine.Node{{HTML: "<img   src=\"a.png\">", Target: []string{"img"}, FailureSummary: "no alt\nsecond line"}},
		}}
		statuses["5.1.1"] = engine.StatusFail
	}
	r.Summary = engine.BuildSummary(statuses)
	return r
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	if got := truncate("<img   src=\"a\">\n", 120); got != `<img src="a">` {
		t.Errorf("Expected collapsed whitespace, got %q", got)
	}
	if got := truncate(strings.Repeat("가", 10), 6); got != "가가가..." {
		t.Errorf("Expected rune-aware cut, got %q", got)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]report.Format{
		"out.json":    report.FormatJSON,
		"out.HTML":    report.FormatHTML,
		"report.xlsx": report.FormatExcel,
		"results":     report.FormatJSON,
	}
	for path, want := range tests {
		if got := formatForPath(path); got != want {
			t.Errorf("formatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestPrintScanResult(t *testing.T) {
	var buf bytes.Buffer
	r := sampleScan("http://example.com", false)
	printScanResult(&buf, r)
	printViolationDetail(&buf, r.Violations[0])
	out := buf.String()

	for _, want := range []string{"Target: http://example.com", "Time: 2.3s", "(1/33 항목 통과)", "위반 항목 (1건)", "5.1.1", `> <img src="a.png">`, "no alt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "second line") {
		t.Error("only the first failure summary line should be printed")
	}
}

func TestRulesList(t *testing.T) {
	out, err := execute(t, "rules", "list", "-p", "4")
	if err != nil {
		t.Fatalf("rules list failed: %v", err)
	}
	if !strings.Contains(out, "원칙 4") || !strings.Contains(out, "8.2.1") || strings.Contains(out, "5.1.1") {
		t.Errorf("Unexpected principle 4 listing:\n%s", out)
	}

	if _, err := execute(t, "rules", "list", "-p", "9"); err == nil {
		t.Error("Expected error for an invalid principle")
	}
}

func TestRulesShow(t *testing.T) {
	out, err := execute(t, "rules", "show", "7.1.1")
	if err != nil {
		t.Fatalf("rules show failed: %v", err)
	}
	for _, want := range []string{"기본 언어 표시", "lang-attr", "[수정 가이드] 7.1.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.json")
	cur := filepath.Join(dir, "cur.json")
	if err := report.Write(base, report.FormatJSON, &engine.Document{Scan: sampleScan("http://example.com", true)}, report.Options{}); err != nil {
		t.Fatal(err)
	}
	if err := report.Write(cur, report.FormatJSON, &engine.Document{Scan: sampleScan("http://example.com", false)}, report.Options{}); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "diff", base, cur)
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if !strings.Contains(out, "New: 1") || !strings.Contains(out, "Fixed: 0") {
		t.Errorf("Unexpected diff output:\n%s", out)
	}

	if _, err := execute(t, "diff", "--fail-on-new", base, cur); err == nil {
		t.Error("Expected failure with --fail-on-new")
	}
	diffCmd.Flags().Set("fail-on-new", "false")
}

func TestCountViolations(t *testing.T) {
	entries := []engine.DiffEntry{
		{URL: "u", KwcagID: "5.1.1", RuleID: "image-alt", Target: "img:nth-of-type(1)"},
		{URL: "u", KwcagID: "5.1.1", RuleID: "image-alt", Target: "img:nth-of-type(2)"},
		{URL: "u", KwcagID: "7.1.1", RuleID: "lang-attr", Target: "html"},
	}
	if got := countViolations(entries); got != 2 {
		t.Errorf("Expected 2 violations, got %d", got)
	}
}

func TestApplyCrawlFlags(t *testing.T) {
	cfg := config.Defaults()
	cfg.Exclude.URLs = []string{"/admin"}

	if err := crawlCmd.ParseFlags([]string{"-d", "1", "--max-pages", "5", "--same-domain=false", "--exclude", "/logout", "--no-headless"}); err != nil {
		t.Fatal(err)
	}
	applyCrawlFlags(crawlCmd, cfg)

	if cfg.Crawl.Depth != 1 || cfg.Crawl.MaxPages != 5 || cfg.Crawl.SameDomain || cfg.Scan.Headless {
		t.Errorf("flags not applied: %+v %+v", cfg.Crawl, cfg.Scan)
	}
	if cfg.Crawl.Concurrency != 3 {
		t.Errorf("unset flag overrode config: %d", cfg.Crawl.Concurrency)
	}
	if got := cfg.CrawlOptions().ExcludePatterns; len(got) != 2 || got[1] != "/logout" {
		t.Errorf("Unexpected exclude patterns %v", got)
	}
}

func TestWizard(t *testing.T) {
	cfg := config.Defaults()
	input := strings.Join([]string{"2", "abc", "20", "", "n", "60000", "3", "excel", "", "5"}, "\n")
	var out bytes.Buffer
	if err := runWizard(strings.NewReader(input), &out, cfg); err != nil {
		t.Fatalf("wizard failed: %v", err)
	}

	if cfg.Crawl.Depth != 2 || cfg.Crawl.MaxPages != 20 || cfg.Crawl.Concurrency != 3 || cfg.Crawl.SameDomain {
		t.Errorf("Unexpected crawl config %+v", cfg.Crawl)
	}
	if cfg.Scan.Timeout != 60000 || cfg.Scan.WaitUntil != "networkidle" {
		t.Errorf("Unexpected scan config %+v", cfg.Scan)
	}
	if cfg.Report.Format != "excel" || cfg.Report.DB != "aria-scan.db" || cfg.CI.Threshold != 5 {
		t.Errorf("Unexpected report config %+v %+v", cfg.Report, cfg.CI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("wizard produced invalid config: %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ariarc.yaml")
	configPath = path
	defer func() { configPath = "" }()

	if _, err := execute(t, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := execute(t, "config", "init"); err == nil {
		t.Error("Expected error when the file exists")
	}

	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "max_pages: 50") || !strings.Contains(out, "locale: ko-KR") {
		t.Errorf("Unexpected config output:\n%s", out)
	}
}

func TestCatalogTotalInListing(t *testing.T) {
	var buf bytes.Buffer
	printRulesList(&buf, catalog.Items())
	if !strings.Contains(buf.String(), "8.2.1") || !strings.Contains(buf.String(), "image-alt") {
		t.Error("listing should include every item and its rules")
	}
}
