package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func violation(id, rule string, targets ...string) Violation {
	v := Violation{KwcagID: id, RuleID: rule, Severity: SeverityError}
	for _, t := range targets {
		v.Nodes = append(v.Nodes, Node{Target: []string{t}})
	}
	return v
}

func TestBaselineCompare(t *testing.T) {
	// 1. Baseline run
	baseline := &ScanResult{
		URL: "https://example.com",
		Violations: []Violation{
			violation("5.1.1", "image-alt", "#logo"), // unchanged
			violation("7.1.1", "lang-attr", "html"),  // fixed
		},
	}

	path := filepath.Join(t.TempDir(), "baseline.json")
	data, err := json.Marshal(baseline)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to save baseline: %v", err)
	}

	// 2. Current run
	current := &ScanResult{
		URL: "https://example.com",
		Violations: []Violation{
			violation("5.1.1", "image-alt", "#logo"),
			violation("6.4.3", "link-text", `a[href="/more"]`), // new
		},
	}

	// 3. Load baseline from disk
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("Failed to load baseline: %v", err)
	}
	if doc.Scan == nil || len(doc.Entries()) != 2 {
		t.Fatalf("Expected 2 entries in loaded baseline, got %d", len(doc.Entries()))
	}

	// 4. Compare
	diff := Compare(ScanEntries(current), doc.Entries())

	if len(diff.Unchanged) != 1 || diff.Unchanged[0].KwcagID != "5.1.1" {
		t.Errorf("Expected 5.1.1 unchanged, got %+v", diff.Unchanged)
	}
	if len(diff.New) != 1 || diff.New[0].KwcagID != "6.4.3" {
		t.Errorf("Expected 6.4.3 new, got %+v", diff.New)
	}
	if len(diff.Fixed) != 1 || diff.Fixed[0].KwcagID != "7.1.1" {
		t.Errorf("Expected 7.1.1 fixed, got %+v", diff.Fixed)
	}
}

func TestLoadDocumentRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(path); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}
