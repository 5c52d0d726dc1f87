package engine

import (
	"github.com/mhb8436/aria/pkg/catalog"
)

// BuildSummary computes the compliance summary from resolved item statuses.
// Items missing from statuses count as unknown.
func BuildSummary(statuses map[string]ItemStatus) Summary {
	s := Summary{
		TotalItems:  catalog.TotalItems,
		ByPrinciple: make(map[int]PrincipleSummary, 4),
	}
	for _, p := range catalog.Principles() {
		s.ByPrinciple[p] = PrincipleSummary{}
	}

	for _, item := range catalog.Items() {
		ps := s.ByPrinciple[item.Principle]
		ps.Total++
		switch statuses[item.ID] {
		case StatusFail:
			s.FailCount++
			ps.Fail++
		case StatusPass:
			s.PassCount++
			ps.Pass++
		case StatusIncomplete:
			s.IncompleteCount++
		}
		s.ByPrinciple[item.Principle] = ps
	}

	s.ComplianceRate = ComplianceRate(s.PassCount, s.TotalItems)
	return s
}

// ComplianceRate returns pass/total as a percentage clamped to [0, 100]
func ComplianceRate(pass, total int) float64 {
	if total <= 0 {
		return 0
	}
	if pass < 0 {
		pass = 0
	}
	rate := float64(pass) / float64(total) * 100
	if rate > 100 {
		rate = 100
	}
	return rate
}

// Rate returns the pass percentage of one principle
func (p PrincipleSummary) Rate() float64 {
	return ComplianceRate(p.Pass, p.Total)
}

// BuildCrawlSummary aggregates violations over the successful pages of a crawl
func BuildCrawlSummary(entries []PageEntry) CrawlSummary {
	s := CrawlSummary{TotalPages: len(entries)}
	unique := make(map[string]bool)

	for _, e := range entries {
		switch e.Status {
		case PageSuccess:
			s.SuccessPages++
		case PageError:
			s.ErrorPages++
		}
		if e.Status != PageSuccess || e.ScanResult == nil {
			continue
		}
		s.TotalViolations += len(e.ScanResult.Violations)
		for _, v := range e.ScanResult.Violations {
			unique[v.KwcagID] = true
		}
	}
	s.UniqueKwcagViolations = len(unique)
	return s
}
