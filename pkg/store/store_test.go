package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mhb8436/aria/pkg/engine"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "aria-scan.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func scanOf(url string, engineViolations ...string) *engine.ScanResult {
	a := engine.NewAssessment()
	res := &engine.EngineResults{Passes: []engine.RuleResult{{ID: "document-title"}}}
	for _, id := range engineViolations {
		res.Violations = append(res.Violations, engine.RuleResult{
			ID: id, Impact: "serious", Description: id,
			Nodes: []engine.RuleNode{{HTML: "<x>", Target: engine.Selectors{"x"}}, {HTML: "<y>", Target: engine.Selectors{"y"}}},
		})
	}
	a.AddEngineResults(res)
	return a.Build(url, time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC), 800*time.Millisecond)
}

func TestSaveAndLoadScan(t *testing.T) {
	s := openStore(t)
	orig := scanOf("https://example.com", "image-alt", "label")

	id, err := s.SaveScanResult(orig)
	if err != nil {
		t.Fatalf("SaveScanResult failed: %v", err)
	}
	back, err := s.ScanByID(id)
	if err != nil {
		t.Fatalf("ScanByID failed: %v", err)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Errorf("Stored scan differs:\n%+v\n%+v", orig, back)
	}

	vs, err := s.ViolationsByScan(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 2 || vs[0].KwcagID > vs[1].KwcagID {
		t.Fatalf("Expected 2 violations ordered by item, got %+v", vs)
	}
	if vs[0].NodeCount != 2 || vs[0].Impact != "serious" || vs[0].Severity != "error" {
		t.Errorf("Unexpected violation row %+v", vs[0])
	}
	nodes, err := vs[0].Nodes()
	if err != nil || len(nodes) != 2 || nodes[1].Target[0] != "y" {
		t.Errorf("Unexpected nodes %+v (%v)", nodes, err)
	}
}

func TestScansAndLatest(t *testing.T) {
	s := openStore(t)
	if _, err := s.LatestScanID(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on empty store, got %v", err)
	}

	first, _ := s.SaveScanResult(scanOf("https://example.com/a", "image-alt"))
	second, _ := s.SaveScanResult(scanOf("https://example.com/b"))

	latest, err := s.LatestScanID()
	if err != nil || latest != second {
		t.Errorf("Expected latest %d, got %d (%v)", second, latest, err)
	}

	scans, err := s.Scans(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 2 || scans[0].ID != second || scans[1].ID != first {
		t.Fatalf("Expected newest first, got %+v", scans)
	}
	if scans[1].ViolationCount != 1 || scans[1].URL != "https://example.com/a" {
		t.Errorf("Unexpected listing row %+v", scans[1])
	}

	byItem, err := s.ViolationsByKwcag("5.1.1")
	if err != nil || len(byItem) != 1 || byItem[0].ScanID != first {
		t.Errorf("Unexpected violations by item %+v (%v)", byItem, err)
	}
}

func TestSaveAndLoadCrawl(t *testing.T) {
	s := openStore(t)
	entries := []engine.PageEntry{
		{URL: "https://example.com", Status: engine.PageSuccess, ScanResult: scanOf("https://example.com", "image-alt")},
		{URL: "https://example.com/down", Depth: 1, Status: engine.PageError, ErrorMessage: "net::ERR_CONNECTION_REFUSED"},
	}
	orig := &engine.CrawlResult{
		StartURL:     "https://example.com",
		PagesScanned: 2,
		PageResults:  entries,
		Duration:     3100,
		Summary:      engine.BuildCrawlSummary(entries),
	}

	id, err := s.SaveCrawlResult(orig)
	if err != nil {
		t.Fatalf("SaveCrawlResult failed: %v", err)
	}
	back, err := s.CrawlByID(id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Errorf("Stored crawl differs:\n%+v\n%+v", orig, back)
	}
}

func TestMissingIDs(t *testing.T) {
	s := openStore(t)
	_, err := s.ScanByID(42)
	var perr *engine.PersistenceError
	if !errors.As(err, &perr) || !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected PersistenceError wrapping ErrNotFound, got %v", err)
	}
	if _, err := s.CrawlByID(7); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer s.Close()
	if _, err := s.SaveScanResult(scanOf("https://example.com")); err != nil {
		t.Errorf("Save into memory db failed: %v", err)
	}
}
