package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mhb8436/aria/pkg/engine"
)

func mockScan(url string) *engine.ScanResult {
	statuses := map[string]engine.ItemStatus{
		"5.1.1": engine.StatusFail,
		"5.4.3": engine.StatusFail,
		"7.1.1": engine.StatusPass,
		"6.4.2": engine.StatusPass,
		"8.1.1": engine.StatusPass,
	}
	return &engine.ScanResult{
		URL:       url,
		Timestamp: time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC),
		Duration:  1500,
		Violations: []engine.Violation{
			{
				KwcagID: "5.1.1", KwcagName: "적절한 대체 텍스트 제공", Principle: 1, PrincipleName: "인식의 용이성",
				Severity: engine.SeverityError, RuleID: "image-alt", Description: "Images must have alternative text", Impact: "serious",
				Nodes: []engine.Node{{HTML: `<img src="test.jpg">`, Target: []string{"img"}, FailureSummary: "Fix any of the following:\n  no alt"}},
			},
			{
				KwcagID: "5.4.3", KwcagName: "텍스트 콘텐츠의 명도 대비", Principle: 1, PrincipleName: "인식의 용이성",
				Severity: engine.SeverityWarning, RuleID: "color-contrast", Description: "Ensures contrast", Impact: "moderate",
				Nodes: []engine.Node{{HTML: `<p style="color: #aaa">Low contrast</p>`, Target: []string{"p"}, FailureSummary: "insufficient contrast"}},
			},
		},
		Passes:       []string{"6.4.2", "7.1.1", "8.1.1"},
		Incomplete:   []string{},
		Inapplicable: []string{},
		Summary:      engine.BuildSummary(statuses),
	}
}

func mockCrawl() *engine.CrawlResult {
	entries := []engine.PageEntry{
		{URL: "http://example.com", Depth: 0, Status: engine.PageSuccess, ScanResult: mockScan("http://example.com")},
		{URL: "http://example.com/slow", Depth: 1, Status: engine.PageError, ErrorMessage: "navigation to http://example.com/slow timed out"},
		{URL: "http://example.com/about", Depth: 1, Status: engine.PageSuccess, ScanResult: mockScan("http://example.com/about")},
	}
	return &engine.CrawlResult{
		StartURL:     "http://example.com",
		PagesScanned: 3,
		PageResults:  entries,
		Duration:     4200,
		Summary:      engine.BuildCrawlSummary(entries),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ext  string
	}{
		{"json", FormatJSON, ".json"},
		{"HTML", FormatHTML, ".html"},
		{"excel", FormatExcel, ".xlsx"},
		{"xlsx", FormatExcel, ".xlsx"},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want || got.Ext() != tt.ext {
			t.Errorf("ParseFormat(%q) = %q %q (%v)", tt.in, got, got.Ext(), err)
		}
	}

	var cfgErr *engine.ConfigurationError
	if _, err := ParseFormat("pdf"); !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigurationError, got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()

	scanPath := filepath.Join(dir, "scan.json")
	scan := mockScan("http://example.com")
	if err := Write(scanPath, FormatJSON, &engine.Document{Scan: scan}, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	doc, err := engine.LoadDocument(scanPath)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if !reflect.DeepEqual(doc.Scan, scan) {
		t.Errorf("scan round trip mismatch:\n got %+v\nwant %+v", doc.Scan, scan)
	}

	crawlPath := filepath.Join(dir, "crawl.json")
	crawl := mockCrawl()
	if err := Write(crawlPath, FormatJSON, &engine.Document{Crawl: crawl}, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	doc, err = engine.LoadDocument(crawlPath)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if !reflect.DeepEqual(doc.Crawl, crawl) {
		t.Errorf("crawl round trip mismatch")
	}
}

func TestHTMLScanReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, &engine.Document{Scan: mockScan("http://example.com")}, Options{}); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"KWCAG 2.2",
		"http://example.com",
		"2026-02-15",
		"1.5s",
		"[5.1.1] 적절한 대체 텍스트 제공",
		"8.2.1",
		"웹 애플리케이션 접근성 준수",
		"Fix any of the following:",
		"&lt;img src=&#34;test.jpg&#34;&gt;",
		"위반 상세 (2건)",
		"수정 방법",
		"background: #dc2626; color: #ffffff",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(out, "no alt") {
		t.Error("failure summary should be cut to its first line")
	}
	if strings.Count(out, `<span class="status-pass">O</span>`) != 3 {
		t.Error("Expected 3 passed checklist rows")
	}
	if strings.Count(out, `<span class="status-fail">X</span>`) != 2 {
		t.Error("Expected 2 failed checklist rows")
	}
}

func TestHTMLCrawlRendersEverySuccessfulPage(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, &engine.Document{Crawl: mockCrawl()}, Options{}); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, `<section class="page">`); got != 2 {
		t.Errorf("Expected 2 page sections, got %d", got)
	}
	for _, want := range []string{"http://example.com/about", "점검 실패 페이지", "timed out"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestHTMLNoViolations(t *testing.T) {
	scan := mockScan("http://example.com")
	scan.Violations = nil
	var buf bytes.Buffer
	if err := WriteHTML(&buf, &engine.Document{Scan: scan}, Options{}); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	if !strings.Contains(buf.String(), "위반 항목이 없습니다.") {
		t.Error("Expected empty violations notice")
	}
}

func TestExcelScanWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Write(path, FormatExcel, &engine.Document{Scan: mockScan("http://example.com")}, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{sheetSummary, sheetDetails, sheetChecklist}) {
		t.Errorf("Unexpected sheets %v", got)
	}

	rows, err := f.GetRows(sheetDetails)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 detail rows, got %d", len(rows))
	}
	if rows[1][1] != "5.1.1" || rows[1][3] != "오류" || rows[1][4] != "image-alt" {
		t.Errorf("Unexpected detail row %v", rows[1])
	}

	checklist, _ := f.GetRows(sheetChecklist)
	if len(checklist) != 34 {
		t.Errorf("Expected header + 33 checklist rows, got %d", len(checklist))
	}
	if checklist[1][0] != "5.1.1" || checklist[1][4] != "X (위반)" {
		t.Errorf("Unexpected first checklist row %v", checklist[1])
	}

	rate, _ := f.GetCellValue(sheetSummary, "B6")
	if !strings.HasSuffix(rate, "%") {
		t.Errorf("Expected compliance rate in B6, got %q", rate)
	}
}

func TestExcelCrawlWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, &engine.Document{Crawl: mockCrawl()}); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	pages, _ := f.GetRows(sheetPages)
	if len(pages) != 4 {
		t.Fatalf("Expected header + 3 pages, got %d", len(pages))
	}
	if pages[2][2] != "실패" {
		t.Errorf("Expected failed page row, got %v", pages[2])
	}

	details, _ := f.GetRows(sheetDetails)
	if len(details) != 5 {
		t.Errorf("Expected violations of both successful pages, got %d rows", len(details))
	}

	checklist, _ := f.GetRows(sheetChecklist)
	if checklist[1][6] != "2/2 페이지 위반" {
		t.Errorf("Unexpected note %v", checklist[1])
	}
}

func TestWriteRenderError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.html")
	err := Write(path, FormatHTML, &engine.Document{Scan: mockScan("http://example.com")}, Options{})

	var renderErr *engine.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Expected RenderError, got %v", err)
	}
	if renderErr.Path != path || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Unexpected error %+v", renderErr)
	}

	empty := filepath.Join(t.TempDir(), "x.json")
	if err := Write(empty, FormatJSON, &engine.Document{}, Options{}); !errors.As(err, &renderErr) {
		t.Errorf("Expected RenderError for an empty document, got %v", err)
	}
	if _, err := os.Stat(empty); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no file left after a failed render, got %v", err)
	}
}

func TestWriteRemovesPartialReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	err := Write(path, Format("pdf"), &engine.Document{Scan: mockScan("http://example.com")}, Options{})

	var renderErr *engine.RenderError
	if !errors.As(err, &renderErr) || renderErr.Format != "pdf" {
		t.Fatalf("Expected RenderError for pdf, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected %s to be removed, got %v", path, err)
	}
}

func TestGroupViolations(t *testing.T) {
	vs := []engine.Violation{
		{KwcagID: "6.4.2", Severity: engine.SeverityWarning, Nodes: make([]engine.Node, 1)},
		{KwcagID: "5.1.1", Severity: engine.SeverityWarning, Nodes: make([]engine.Node, 2)},
		{KwcagID: "6.4.2", Severity: engine.SeverityError, Nodes: make([]engine.Node, 3)},
	}
	groups := GroupViolations(vs)
	if len(groups) != 2 || groups[0].ID != "5.1.1" || groups[1].ID != "6.4.2" {
		t.Fatalf("Unexpected groups %+v", groups)
	}
	if groups[1].Severity != engine.SeverityError || groups[1].NodeCount != 4 {
		t.Errorf("Expected worst severity and summed nodes, got %+v", groups[1])
	}
	if !lessItemID("6.4.9", "6.4.10") {
		t.Error("6.4.9 should sort before 6.4.10")
	}
}
