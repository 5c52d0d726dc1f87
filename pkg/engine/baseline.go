package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DiffEntry is one violating node, the unit compared between two runs
type DiffEntry struct {
	URL       string   `json:"url"`
	KwcagID   string   `json:"kwcagId"`
	KwcagName string   `json:"kwcagName"`
	RuleID    string   `json:"ruleId"`
	Severity  Severity `json:"severity"`
	Target    string   `json:"target"`
	HTML      string   `json:"html"`
}

func (e DiffEntry) key() string {
	return e.URL + "|" + e.KwcagID + "|" + e.RuleID + "|" + e.Target
}

// BaselineDiff splits the current run against a baseline
type BaselineDiff struct {
	New       []DiffEntry `json:"new"`
	Fixed     []DiffEntry `json:"fixed"`
	Unchanged []DiffEntry `json:"unchanged"`
}

// Document is a stored result of either kind
type Document struct {
	Scan  *ScanResult
	Crawl *CrawlResult
}

// LoadDocument reads a JSON result written by a scan or crawl
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if _, ok := probe["pageResults"]; ok {
		var c CrawlResult
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse crawl result %s: %w", path, err)
		}
		return &Document{Crawl: &c}, nil
	}

	var s ScanResult
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scan result %s: %w", path, err)
	}
	return &Document{Scan: &s}, nil
}

// Entries flattens the document into comparable violation nodes
func (d *Document) Entries() []DiffEntry {
	switch {
	case d.Scan != nil:
		return ScanEntries(d.Scan)
	case d.Crawl != nil:
		var out []DiffEntry
		for _, s := range d.Crawl.SuccessfulScans() {
			out = append(out, ScanEntries(s)...)
		}
		return out
	}
	return nil
}

// ScanEntries flattens one scan result
func ScanEntries(r *ScanResult) []DiffEntry {
	var out []DiffEntry
	for _, v := range r.Violations {
		for _, n := range v.Nodes {
			out = append(out, DiffEntry{
				URL:       r.URL,
				KwcagID:   v.KwcagID,
				KwcagName: v.KwcagName,
				RuleID:    v.RuleID,
				Severity:  v.Severity,
				Target:    strings.Join(n.Target, ", "),
				HTML:      n.HTML,
			})
		}
	}
	return out
}

// Compare identifies New, Fixed and Unchanged violation nodes
func Compare(current, baseline []DiffEntry) BaselineDiff {
	var diff BaselineDiff

	baseKeys := make(map[string]bool, len(baseline))
	for _, e := range baseline {
		baseKeys[e.key()] = true
	}
	curKeys := make(map[string]bool, len(current))
	for _, e := range current {
		k := e.key()
		if curKeys[k] {
			continue
		}
		curKeys[k] = true
		if baseKeys[k] {
			diff.Unchanged = append(diff.Unchanged, e)
		} else {
			diff.New = append(diff.New, e)
		}
	}

	seenFixed := make(map[string]bool)
	for _, e := range baseline {
		k := e.key()
		if !curKeys[k] && !seenFixed[k] {
			seenFixed[k] = true
			diff.Fixed = append(diff.Fixed, e)
		}
	}

	for _, list := range [][]DiffEntry{diff.New, diff.Fixed, diff.Unchanged} {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].KwcagID != list[j].KwcagID {
				return list[i].KwcagID < list[j].KwcagID
			}
			return list[i].URL < list[j].URL
		})
	}
	return diff
}
