package rules

import (
	"context"
	"fmt"
	"sync"

	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/logger"
)

// Finding is one offending element reported by a rule
type Finding struct {
	HTML     string `json:"html"`
	Selector string `json:"selector"`
	Message  string `json:"message"`
}

// Rule is a page inspection check backing exactly one catalog item.
// Check must not modify the snapshot.
type Rule interface {
	ID() string
	ItemID() string
	Name() string
	Description() string
	Severity() engine.Severity
	Check(ctx context.Context, snap *Snapshot) ([]Finding, error)
}

type baseRule struct {
	id          string
	itemID      string
	name        string
	description string
	severity    engine.Severity
}

func (b baseRule) ID() string                { return b.id }
func (b baseRule) ItemID() string            { return b.itemID }
func (b baseRule) Name() string              { return b.name }
func (b baseRule) Description() string       { return b.description }
func (b baseRule) Severity() engine.Severity { return b.severity }

var registry = []Rule{
	skipNavRule{baseRule{"skip-nav", "6.4.1", "반복 영역 건너뛰기", "페이지 시작 부분에 본문 영역으로 건너뛸 수 있는 링크를 제공해야 한다.", engine.SeverityError}},
	autoPlayRule{baseRule{"auto-play", "5.4.2", "자동 재생 금지", "자동으로 소리가 재생되는 미디어 요소가 없어야 한다.", engine.SeverityError}},
	blinkFlashRule{baseRule{"blink-flash", "6.3.1", "깜빡임과 번쩍임 사용 제한", "초당 3~50회 주기로 깜빡이거나 번쩍이는 콘텐츠를 제공하지 않아야 한다.", engine.SeverityError}},
	pageTitleRule{baseRule{"page-title", "6.4.2", "제목 제공", "페이지와 프레임에는 적절한 제목을 제공해야 한다.", engine.SeverityError}},
	tableStructureRule{baseRule{"table-structure", "5.3.1", "표의 구성", "데이터 테이블에는 caption, th, scope 등을 제공하여 이해하기 쉽게 구성해야 한다.", engine.SeverityWarning}},
	langAttrRule{baseRule{"lang-attr", "7.1.1", "기본 언어 표시", "HTML 문서의 기본 언어를 lang 속성으로 명시해야 한다.", engine.SeverityError}},
	linkTextRule{baseRule{"link-text", "6.4.3", "적절한 링크 텍스트", "링크 텍스트는 용도나 목적을 이해할 수 있도록 제공해야 한다.", engine.SeverityWarning}},
	onInputRule{baseRule{"on-input", "7.2.1", "사용자 요구에 따른 실행", "select 등의 onchange 이벤트에서 자동 submit/navigation이 실행되지 않아야 한다.", engine.SeverityError}},
	focusVisibleRule{baseRule{"focus-visible", "6.1.2", "초점 이동과 표시", "키보드 초점이 시각적으로 구별될 수 있어야 한다.", engine.SeverityWarning}},
}

// All returns the built-in rules in registry order
func All() []Rule {
	return append([]Rule(nil), registry...)
}

// ByID looks up a built-in rule
func ByID(id string) (Rule, bool) {
	for _, r := range registry {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Filter drops rules whose id is listed in exclude
func Filter(rules []Rule, exclude []string) []Rule {
	if len(exclude) == 0 {
		return rules
	}
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	var out []Rule
	for _, r := range rules {
		if !skip[r.ID()] {
			out = append(out, r)
		}
	}
	return out
}

// Outcome is the tagged result of one rule: findings on success, Err on failure
type Outcome struct {
	Rule     Rule
	Findings []Finding
	Err      error
}

// Passed reports whether the rule ran cleanly with no findings
func (o Outcome) Passed() bool {
	return o.Err == nil && len(o.Findings) == 0
}

// Result converts the outcome for the violation mapper
func (o Outcome) Result() engine.CustomResult {
	res := engine.CustomResult{
		RuleID:   o.Rule.ID(),
		ItemID:   o.Rule.ItemID(),
		Severity: o.Rule.Severity(),
		Err:      o.Err,
	}
	if o.Passed() {
		res.Severity = engine.SeverityPass
	}
	for _, f := range o.Findings {
		res.Nodes = append(res.Nodes, engine.Node{
			HTML:           f.HTML,
			Target:         []string{f.Selector},
			FailureSummary: f.Message,
		})
	}
	return res
}

// Run executes every rule concurrently against the snapshot. A rule that
// returns an error or panics yields an Outcome with Err set; the others are
// unaffected. Outcomes are returned in the order of rules.
func Run(ctx context.Context, rules []Rule, snap *Snapshot) []Outcome {
	outcomes := make([]Outcome, len(rules))

	var wg sync.WaitGroup
	for i, r := range rules {
		wg.Add(1)
		go func(i int, r Rule) {
			defer wg.Done()
			outcomes[i] = runOne(ctx, r, snap)
		}(i, r)
	}
	wg.Wait()
	return outcomes
}

func runOne(ctx context.Context, r Rule, snap *Snapshot) (out Outcome) {
	out.Rule = r
	defer func() {
		if p := recover(); p != nil {
			out.Findings = nil
			out.Err = &engine.RuleExecutionError{RuleID: r.ID(), ItemID: r.ItemID(), Err: fmt.Errorf("panic: %v", p)}
		}
		if out.Err != nil {
			logger.Warnf("rule %s failed: %v", r.ID(), out.Err)
		}
	}()

	if err := ctx.Err(); err != nil {
		out.Err = &engine.RuleExecutionError{RuleID: r.ID(), ItemID: r.ItemID(), Err: err}
		return out
	}
	findings, err := r.Check(ctx, snap)
	if err != nil {
		out.Err = &engine.RuleExecutionError{RuleID: r.ID(), ItemID: r.ItemID(), Err: err}
		return out
	}
	out.Findings = findings
	return out
}
