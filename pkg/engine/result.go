package engine

import (
	"time"
)

// Node is one offending element of a violation
type Node struct {
	HTML           string   `json:"html"`
	Target         []string `json:"target"`
	FailureSummary string   `json:"failureSummary"`
}

// Violation is a failed catalog item plus its supporting evidence
type Violation struct {
	KwcagID       string   `json:"kwcagId"`
	KwcagName     string   `json:"kwcagName"`
	Principle     int      `json:"principle"`
	PrincipleName string   `json:"principleName"`
	Severity      Severity `json:"severity"`
	RuleID        string   `json:"ruleId"`
	Description   string   `json:"description"`
	Impact        string   `json:"impact"`
	Nodes         []Node   `json:"nodes"`
}

// RuleError records a custom rule that failed while the rest of the scan went on
type RuleError struct {
	RuleID  string `json:"ruleId"`
	KwcagID string `json:"kwcagId"`
	Message string `json:"message"`
}

// PrincipleSummary counts items per principle
type PrincipleSummary struct {
	Total int `json:"total"`
	Pass  int `json:"pass"`
	Fail  int `json:"fail"`
}

// Summary is the compliance summary of one page
type Summary struct {
	TotalItems      int                      `json:"totalItems"`
	PassCount       int                      `json:"passCount"`
	FailCount       int                      `json:"failCount"`
	IncompleteCount int                      `json:"incompleteCount"`
	ComplianceRate  float64                  `json:"complianceRate"`
	ByPrinciple     map[int]PrincipleSummary `json:"byPrinciple"`
}

// ScanResult is the outcome of scanning a single page. Duration is in milliseconds.
type ScanResult struct {
	URL          string      `json:"url"`
	Timestamp    time.Time   `json:"timestamp"`
	Duration     int64       `json:"duration"`
	Violations   []Violation `json:"violations"`
	Passes       []string    `json:"passes"`
	Incomplete   []string    `json:"incomplete"`
	Inapplicable []string    `json:"inapplicable"`
	RuleErrors   []RuleError `json:"ruleErrors,omitempty"`
	Summary      Summary     `json:"summary"`
}

// ItemStatus is the resolved state of a catalog item on one page
type ItemStatus string

const (
	StatusFail         ItemStatus = "fail"
	StatusIncomplete   ItemStatus = "incomplete"
	StatusPass         ItemStatus = "pass"
	StatusInapplicable ItemStatus = "inapplicable"
	StatusUnknown      ItemStatus = "unknown"
)

// Status resolves a catalog item from the stored sets
func (r *ScanResult) Status(itemID string) ItemStatus {
	for _, v := range r.Violations {
		if v.KwcagID == itemID {
			return StatusFail
		}
	}
	switch {
	case contains(r.Incomplete, itemID):
		return StatusIncomplete
	case contains(r.Passes, itemID):
		return StatusPass
	case contains(r.Inapplicable, itemID):
		return StatusInapplicable
	}
	return StatusUnknown
}

// FailedItems returns the distinct violated item ids in first-seen order
func (r *ScanResult) FailedItems() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, v := range r.Violations {
		if !seen[v.KwcagID] {
			seen[v.KwcagID] = true
			ids = append(ids, v.KwcagID)
		}
	}
	return ids
}

// PageStatus is the outcome of one crawled page
type PageStatus string

const (
	PageSuccess PageStatus = "success"
	PageError   PageStatus = "error"
)

// PageEntry is one page of a crawl
type PageEntry struct {
	URL          string      `json:"url"`
	Depth        int         `json:"depth"`
	Status       PageStatus  `json:"status"`
	ScanResult   *ScanResult `json:"scanResult,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}

// CrawlSummary aggregates violations across the successfully scanned pages
type CrawlSummary struct {
	TotalPages            int `json:"totalPages"`
	SuccessPages          int `json:"successPages"`
	ErrorPages            int `json:"errorPages"`
	TotalViolations       int `json:"totalViolations"`
	UniqueKwcagViolations int `json:"uniqueKwcagViolations"`
}

// CrawlResult is the outcome of a crawl. Duration is in milliseconds.
type CrawlResult struct {
	StartURL     string       `json:"startUrl"`
	PagesScanned int          `json:"pagesScanned"`
	PageResults  []PageEntry  `json:"pageResults"`
	Duration     int64        `json:"duration"`
	Summary      CrawlSummary `json:"summary"`
}

// SuccessfulScans returns the scan results of pages that completed
func (c *CrawlResult) SuccessfulScans() []*ScanResult {
	var out []*ScanResult
	for _, p := range c.PageResults {
		if p.Status == PageSuccess && p.ScanResult != nil {
			out = append(out, p.ScanResult)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
