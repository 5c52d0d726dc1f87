package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mhb8436/aria/pkg/catalog"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/report"
)

var (
	boldStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

const (
	maxDetailNodes = 5
	detailWidth    = 120
)

func severityStyle(s engine.Severity) lipgloss.Style {
	switch s {
	case engine.SeverityError:
		return redStyle
	case engine.SeverityWarning:
		return yellowStyle
	case engine.SeverityInfo:
		return blueStyle
	default:
		return greenStyle
	}
}

func rateStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 80:
		return greenStyle
	case rate >= 60:
		return yellowStyle
	default:
		return redStyle
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func printScanResult(w io.Writer, r *engine.ScanResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, boldStyle.Render("ARIA - KWCAG 2.2 웹 접근성 점검 결과"))
	fmt.Fprintln(w, dimStyle.Render("Target: "+r.URL))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("Time: %.1fs", float64(r.Duration)/1000)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, boldStyle.Render("=== 요약 ==="))
	rate := rateStyle(r.Summary.ComplianceRate).Render(fmt.Sprintf("%.1f%%", r.Summary.ComplianceRate))
	fmt.Fprintf(w, "전체 준수율: %s (%d/%d 항목 통과)\n\n", rate, r.Summary.PassCount, r.Summary.TotalItems)

	for _, p := range catalog.Principles() {
		ps, ok := r.Summary.ByPrinciple[p]
		if !ok {
			continue
		}
		pRate := "N/A"
		if ps.Total > 0 {
			pRate = fmt.Sprintf("%.1f", ps.Rate())
		}
		fmt.Fprintf(w, "  %s: %s (%s%%)\n", catalog.PrincipleName(p), boldStyle.Render(fmt.Sprintf("%d/%d", ps.Pass, ps.Total)), pRate)
	}
	fmt.Fprintln(w)

	if len(r.Violations) == 0 {
		fmt.Fprintln(w, greenStyle.Render("위반 항목 없음"))
	} else {
		groups := report.GroupViolations(r.Violations)
		fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("=== 위반 항목 (%d건) ===", len(groups))))

		t := newTable("KWCAG", "항목명", "심각도", "위반 수")
		for _, g := range groups {
			t.Row(g.ID, g.Name, severityStyle(g.Severity).Render(g.Severity.Label()), fmt.Sprint(g.NodeCount))
		}
		fmt.Fprintln(w, t.Render())
	}

	for _, re := range r.RuleErrors {
		fmt.Fprintln(w, yellowStyle.Render(fmt.Sprintf("규칙 실행 오류 [%s] %s: %s", re.KwcagID, re.RuleID, re.Message)))
	}
}

func printViolationDetail(w io.Writer, v engine.Violation) {
	style := severityStyle(v.Severity)
	fmt.Fprintln(w, style.Render(fmt.Sprintf("[%s] %s - %s", v.KwcagID, v.KwcagName, v.RuleID)))
	fmt.Fprintln(w, dimStyle.Render("  "+v.Description))

	for i, n := range v.Nodes {
		if i == maxDetailNodes {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  ... and %d more", len(v.Nodes)-maxDetailNodes)))
			break
		}
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(">"), truncate(n.HTML, detailWidth))
		if n.FailureSummary != "" {
			fmt.Fprintln(w, dimStyle.Render("    "+strings.SplitN(n.FailureSummary, "\n", 2)[0]))
		}
	}
}

// truncate collapses whitespace and cuts s to max runes with an ellipsis
func truncate(s string, max int) string {
	cleaned := []rune(strings.Join(strings.Fields(s), " "))
	if len(cleaned) <= max {
		return string(cleaned)
	}
	return string(cleaned[:max-3]) + "..."
}

func printCrawlResult(w io.Writer, c *engine.CrawlResult) {
	fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("\nCrawl complete: %d pages in %.1fs", c.PagesScanned, float64(c.Duration)/1000)))
	fmt.Fprintf(w, "Violations: %d total, %d unique KWCAG items\n", c.Summary.TotalViolations, c.Summary.UniqueKwcagViolations)

	for _, entry := range c.PageResults {
		switch {
		case entry.Status == engine.PageSuccess && entry.ScanResult != nil:
			printScanResult(w, entry.ScanResult)
		case entry.Status == engine.PageError:
			fmt.Fprintln(w, redStyle.Render(fmt.Sprintf("Error: %s - %s", entry.URL, entry.ErrorMessage)))
		}
	}
}

func automationLabel(a catalog.Automation) string {
	switch a {
	case catalog.AutoFull:
		return greenStyle.Render("O")
	case catalog.AutoPartial:
		return yellowStyle.Render("부분")
	default:
		return dimStyle.Render("수동")
	}
}

func printRulesList(w io.Writer, items []catalog.Item) {
	t := newTable("번호", "검사항목", "수준", "자동점검", "규칙")
	for _, item := range items {
		ruleIDs := append([]string(nil), item.EngineRules...)
		if item.CustomRule != "" {
			ruleIDs = append(ruleIDs, item.CustomRule)
		}
		t.Row(item.ID, item.Name, string(item.Level), automationLabel(item.Auto), truncate(strings.Join(ruleIDs, ", "), 40))
	}
	fmt.Fprintln(w, t.Render())
}

func printDiff(w io.Writer, d engine.BaselineDiff) {
	fmt.Fprintf(w, "%s %d  %s %d  %s %d\n",
		redStyle.Render("New:"), len(d.New),
		greenStyle.Render("Fixed:"), len(d.Fixed),
		dimStyle.Render("Unchanged:"), len(d.Unchanged))

	section := func(title string, style lipgloss.Style, entries []engine.DiffEntry) {
		if len(entries) == 0 {
			return
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, style.Bold(true).Render(title))
		t := newTable("KWCAG", "규칙", "심각도", "대상", "URL")
		for _, e := range entries {
			t.Row(e.KwcagID, e.RuleID, e.Severity.Label(), truncate(e.Target, 40), e.URL)
		}
		fmt.Fprintln(w, t.Render())
	}
	section("=== 신규 위반 ===", redStyle, d.New)
	section("=== 해결된 위반 ===", greenStyle, d.Fixed)
}
