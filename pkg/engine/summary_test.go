package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mhb8436/aria/pkg/catalog"
)

func TestComplianceRateBounds(t *testing.T) {
	cases := []struct {
		pass, total int
		want        float64
	}{
		{0, 33, 0},
		{33, 33, 100},
		{-4, 33, 0},
		{40, 33, 100},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := ComplianceRate(c.pass, c.total); got != c.want {
			t.Errorf("ComplianceRate(%d, %d) = %v, want %v", c.pass, c.total, got, c.want)
		}
	}
}

func TestBuildSummaryAllPass(t *testing.T) {
	statuses := make(map[string]ItemStatus)
	for _, item := range catalog.Items() {
		statuses[item.ID] = StatusPass
	}
	s := BuildSummary(statuses)
	if s.PassCount != 33 || s.ComplianceRate != 100 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if s.ByPrinciple[2].Total != 15 || s.ByPrinciple[2].Pass != 15 {
		t.Errorf("Unexpected principle 2 summary %+v", s.ByPrinciple[2])
	}
	if s.ByPrinciple[4].Rate() != 100 {
		t.Errorf("Expected principle 4 rate 100, got %v", s.ByPrinciple[4].Rate())
	}
}

func TestBuildCrawlSummary(t *testing.T) {
	page := func(ids ...string) *ScanResult {
		r := &ScanResult{}
		for _, id := range ids {
			r.Violations = append(r.Violations, Violation{KwcagID: id})
		}
		return r
	}
	entries := []PageEntry{
		{URL: "a", Status: PageSuccess, ScanResult: page("5.1.1", "5.1.1", "7.1.1")},
		{URL: "b", Status: PageError, ErrorMessage: "timeout"},
		{URL: "c", Status: PageSuccess, ScanResult: page("6.4.2")},
	}
	s := BuildCrawlSummary(entries)
	want := CrawlSummary{TotalPages: 3, SuccessPages: 2, ErrorPages: 1, TotalViolations: 4, UniqueKwcagViolations: 3}
	if s != want {
		t.Errorf("Got %+v, want %+v", s, want)
	}
}

func sampleScan() *ScanResult {
	a := NewAssessment()
	a.AddEngineResults(&EngineResults{
		Violations: []RuleResult{{
			ID: "image-alt", Impact: "critical", Description: "alt",
			Nodes: []RuleNode{{HTML: `<img src="x">`, Target: Selectors{"body > img"}, FailureSummary: "fix"}},
		}},
		Passes:       []RuleResult{{ID: "document-title"}},
		Incomplete:   []RuleResult{{ID: "color-contrast"}},
		Inapplicable: []RuleResult{{ID: "video-caption"}},
	})
	a.AddCustomResult(CustomResult{RuleID: "skip-nav", ItemID: "6.4.1", Err: os.ErrClosed})
	return a.Build("https://example.com/", time.Date(2025, 3, 1, 9, 30, 0, 123000000, time.UTC), 1500*time.Millisecond)
}

func TestScanResultRoundTrip(t *testing.T) {
	orig := sampleScan()
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back ScanResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(*orig, back) {
		t.Errorf("Round trip mismatch:\n%+v\n%+v", *orig, back)
	}
}

func TestCrawlResultRoundTrip(t *testing.T) {
	entries := []PageEntry{
		{URL: "https://example.com", Status: PageSuccess, ScanResult: sampleScan()},
		{URL: "https://example.com/slow", Depth: 1, Status: PageError, ErrorMessage: "navigation timed out"},
	}
	orig := CrawlResult{
		StartURL:     "https://example.com",
		PagesScanned: 2,
		PageResults:  entries,
		Duration:     4200,
		Summary:      BuildCrawlSummary(entries),
	}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back CrawlResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Errorf("Round trip mismatch:\n%+v\n%+v", orig, back)
	}

	// Documents on disk are detected by shape
	path := filepath.Join(t.TempDir(), "crawl.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if doc.Crawl == nil || doc.Scan != nil {
		t.Fatal("Expected a crawl document")
	}
	if len(doc.Entries()) != 1 {
		t.Errorf("Expected 1 diff entry, got %d", len(doc.Entries()))
	}
}

func TestSelectorsUnmarshal(t *testing.T) {
	var n RuleNode
	if err := json.Unmarshal([]byte(`{"html":"<b>","target":["#a", ["my-el", "button"]]}`), &n); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	want := Selectors{"#a", "my-el >>> button"}
	if !reflect.DeepEqual(n.Target, want) {
		t.Errorf("Got %v, want %v", n.Target, want)
	}
}
