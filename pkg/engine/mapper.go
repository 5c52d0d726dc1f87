package engine

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mhb8436/aria/pkg/catalog"
)

// CustomResult is the outcome of one custom rule on one page
type CustomResult struct {
	RuleID   string
	ItemID   string
	Severity Severity
	Nodes    []Node
	Err      error
}

// Assessment collects engine and custom rule signals for one page and resolves
// every catalog item by the precedence fail > incomplete > pass > unknown.
type Assessment struct {
	mu sync.Mutex

	violations   []Violation
	failed       map[string]bool
	incomplete   map[string]bool
	passed       map[string]bool
	inapplicable map[string]bool
	ruleErrors   []RuleError
	excluded     map[string]bool
}

// NewAssessment creates an empty assessment. Signals from excluded rule ids are ignored.
func NewAssessment(excludeRules ...string) *Assessment {
	a := &Assessment{
		failed:       make(map[string]bool),
		incomplete:   make(map[string]bool),
		passed:       make(map[string]bool),
		inapplicable: make(map[string]bool),
		excluded:     make(map[string]bool),
	}
	for _, id := range excludeRules {
		a.excluded[id] = true
	}
	return a
}

// AddEngineResults maps the four engine lists onto catalog items.
// Engine rules with no catalog mapping are dropped.
func (a *Assessment) AddEngineResults(res *EngineResults) {
	if res == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, r := range res.Violations {
		item, ok := a.lookup(r.ID)
		if !ok {
			continue
		}
		v := Violation{
			KwcagID:       item.ID,
			KwcagName:     item.Name,
			Principle:     item.Principle,
			PrincipleName: item.PrincipleName(),
			Severity:      SeverityFromImpact(r.Impact),
			RuleID:        r.ID,
			Description:   r.Description,
			Impact:        r.Impact,
			Nodes:         make([]Node, 0, len(r.Nodes)),
		}
		if v.Impact == "" {
			v.Impact = "unknown"
		}
		for _, n := range r.Nodes {
			v.Nodes = append(v.Nodes, Node{
				HTML:           n.HTML,
				Target:         append([]string(nil), n.Target...),
				FailureSummary: n.FailureSummary,
			})
		}
		a.violations = append(a.violations, v)
		a.failed[item.ID] = true
	}

	for _, r := range res.Incomplete {
		if item, ok := a.lookup(r.ID); ok {
			a.incomplete[item.ID] = true
		}
	}
	for _, r := range res.Passes {
		if item, ok := a.lookup(r.ID); ok {
			a.passed[item.ID] = true
		}
	}
	for _, r := range res.Inapplicable {
		if item, ok := a.lookup(r.ID); ok {
			a.inapplicable[item.ID] = true
		}
	}
}

func (a *Assessment) lookup(ruleID string) (catalog.Item, bool) {
	if a.excluded[ruleID] {
		return catalog.Item{}, false
	}
	return catalog.ByEngineRule(ruleID)
}

// AddCustomResult merges one custom rule outcome. A failed rule contributes no
// signal and is recorded as a RuleError.
func (a *Assessment) AddCustomResult(res CustomResult) {
	if a.excluded[res.RuleID] {
		return
	}
	item, ok := catalog.ByID(res.ItemID)
	if !ok {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if res.Err != nil {
		msg := res.Err.Error()
		var rerr *RuleExecutionError
		if errors.As(res.Err, &rerr) && rerr.Err != nil {
			msg = rerr.Err.Error()
		}
		a.ruleErrors = append(a.ruleErrors, RuleError{RuleID: res.RuleID, KwcagID: item.ID, Message: msg})
		return
	}

	if len(res.Nodes) == 0 || res.Severity == SeverityPass {
		a.passed[item.ID] = true
		return
	}

	a.violations = append(a.violations, Violation{
		KwcagID:       item.ID,
		KwcagName:     item.Name,
		Principle:     item.Principle,
		PrincipleName: item.PrincipleName(),
		Severity:      res.Severity,
		RuleID:        res.RuleID,
		Description:   item.Description,
		Impact:        ImpactForSeverity(res.Severity),
		Nodes:         append([]Node(nil), res.Nodes...),
	})
	a.failed[item.ID] = true
}

// Status resolves one catalog item
func (a *Assessment) Status(itemID string) ItemStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status(itemID)
}

func (a *Assessment) status(itemID string) ItemStatus {
	switch {
	case a.failed[itemID]:
		return StatusFail
	case a.incomplete[itemID]:
		return StatusIncomplete
	case a.passed[itemID]:
		return StatusPass
	case a.inapplicable[itemID]:
		return StatusInapplicable
	}
	return StatusUnknown
}

// Statuses resolves every catalog item
func (a *Assessment) Statuses() map[string]ItemStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]ItemStatus, catalog.TotalItems)
	for _, item := range catalog.Items() {
		out[item.ID] = a.status(item.ID)
	}
	return out
}

// Build assembles the immutable per-page result
func (a *Assessment) Build(url string, timestamp time.Time, duration time.Duration) *ScanResult {
	statuses := a.Statuses()

	a.mu.Lock()
	defer a.mu.Unlock()

	result := &ScanResult{
		URL:          url,
		Timestamp:    timestamp.UTC(),
		Duration:     duration.Milliseconds(),
		Violations:   append([]Violation{}, a.violations...),
		Passes:       idsWith(statuses, StatusPass),
		Incomplete:   idsWith(statuses, StatusIncomplete),
		Inapplicable: idsWith(statuses, StatusInapplicable),
		Summary:      BuildSummary(statuses),
	}
	if len(a.ruleErrors) > 0 {
		result.RuleErrors = append([]RuleError(nil), a.ruleErrors...)
	}
	return result
}

func idsWith(statuses map[string]ItemStatus, want ItemStatus) []string {
	ids := []string{}
	for id, s := range statuses {
		if s == want {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
