// Package report renders scan and crawl results as JSON, HTML or Excel files.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mhb8436/aria/pkg/catalog"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/logger"
	"github.com/mhb8436/aria/pkg/remediation"
)

// Format selects a renderer
type Format string

const (
	FormatJSON  Format = "json"
	FormatHTML  Format = "html"
	FormatExcel Format = "excel"
)

// ParseFormat accepts json, html, excel and the xlsx alias
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "html", "":
		return FormatHTML, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	}
	return "", &engine.ConfigurationError{Field: "report.format", Err: fmt.Errorf("unknown format %q (json, html, excel)", s)}
}

// Ext is the file extension written for the format
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatExcel:
		return ".xlsx"
	default:
		return ".html"
	}
}

// Options tune rendering. A nil Guides uses the built-in remediation guides.
type Options struct {
	Guides *remediation.Library
}

func (o Options) guides() *remediation.Library {
	if o.Guides != nil {
		return o.Guides
	}
	return remediation.Default()
}

// Render writes doc to w in the given format
func Render(w io.Writer, format Format, doc *engine.Document, opts Options) error {
	if doc == nil || (doc.Scan == nil && doc.Crawl == nil) {
		return fmt.Errorf("nothing to render")
	}
	switch format {
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatHTML:
		return WriteHTML(w, doc, opts)
	case FormatExcel:
		return WriteExcel(w, doc)
	}
	return fmt.Errorf("unknown format %q", format)
}

// Write renders doc into the file at path. Any failure is a *engine.RenderError
// and leaves no partial file behind.
func Write(path string, format Format, doc *engine.Document, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return &engine.RenderError{Format: string(format), Path: path, Err: err}
	}

	bw := bufio.NewWriter(f)
	err = Render(bw, format, doc, opts)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			logger.Warnf("failed to remove partial report %s: %v", path, rerr)
		}
		return &engine.RenderError{Format: string(format), Path: path, Err: err}
	}
	return nil
}

// ViolationGroup collects the violations of one catalog item
type ViolationGroup struct {
	ID         string
	Name       string
	Severity   engine.Severity
	NodeCount  int
	Violations []engine.Violation
}

// Nodes returns the nodes of every violation in the group, in order
func (g ViolationGroup) Nodes() []engine.Node {
	var out []engine.Node
	for _, v := range g.Violations {
		out = append(out, v.Nodes...)
	}
	return out
}

// GroupViolations groups violations by item id, sorted by id. The group
// severity is the worst of its violations.
func GroupViolations(violations []engine.Violation) []ViolationGroup {
	index := make(map[string]int)
	var groups []ViolationGroup
	for _, v := range violations {
		i, ok := index[v.KwcagID]
		if !ok {
			index[v.KwcagID] = len(groups)
			groups = append(groups, ViolationGroup{ID: v.KwcagID, Name: v.KwcagName, Severity: v.Severity})
			i = len(groups) - 1
		}
		g := &groups[i]
		g.NodeCount += len(v.Nodes)
		g.Violations = append(g.Violations, v)
		if v.Severity.Rank() > g.Severity.Rank() {
			g.Severity = v.Severity
		}
	}
	sort.SliceStable(groups, func(a, b int) bool { return lessItemID(groups[a].ID, groups[b].ID) })
	return groups
}

// lessItemID compares dotted ids numerically so 6.4.10 sorts after 6.4.9
func lessItemID(a, b string) bool {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] == pb[i] {
			continue
		}
		if len(pa[i]) != len(pb[i]) {
			return len(pa[i]) < len(pb[i])
		}
		return pa[i] < pb[i]
	}
	return len(pa) < len(pb)
}

// checkStatus is the checklist state of one item: fail, pass or unverified
func checkStatus(r *engine.ScanResult, item catalog.Item) engine.ItemStatus {
	switch st := r.Status(item.ID); st {
	case engine.StatusFail, engine.StatusPass:
		return st
	}
	return engine.StatusUnknown
}

func autoLabel(a catalog.Automation) string {
	switch a {
	case catalog.AutoFull:
		return "자동"
	case catalog.AutoPartial:
		return "부분자동"
	default:
		return "수동"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func cut(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func seconds(ms int64) string {
	return fmt.Sprintf("%.1f", float64(ms)/1000)
}
