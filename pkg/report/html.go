package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/mhb8436/aria/pkg/catalog"
	"github.com/mhb8436/aria/pkg/contrast"
	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/remediation"
)

const maxHTMLNodes = 10

var severityColors = map[engine.Severity]string{
	engine.SeverityError:   "#dc2626",
	engine.SeverityWarning: "#ca8a04",
	engine.SeverityInfo:    "#2563eb",
}

type htmlReport struct {
	Title string
	Crawl *crawlView
	Pages []pageView
}

type crawlView struct {
	StartURL string
	Seconds  string
	Summary  engine.CrawlSummary
	Errors   []engine.PageEntry
}

type pageView struct {
	URL        string
	Date       string
	Seconds    string
	Rate       string
	RateClass  string
	Summary    engine.Summary
	Principles []principleRow
	Groups     []groupView
	Checklist  []checkRow
	RuleErrors []engine.RuleError
}

type principleRow struct {
	Name  string
	Pass  int
	Total int
	Rate  string
}

type groupView struct {
	ID            string
	Name          string
	SeverityClass string
	SeverityLabel string
	BadgeStyle    template.CSS
	Count         int
	Nodes         []nodeView
	Guide         *guideView
}

type nodeView struct {
	HTML    string
	Message string
}

type guideView struct {
	Issue   string
	Fix     string
	Example string
	Verify  string
}

type checkRow struct {
	ID     string
	Name   string
	Level  catalog.Level
	Status string
	Mark   string
}

// WriteHTML renders a standalone HTML report. A crawl renders every
// successfully scanned page in turn.
func WriteHTML(w io.Writer, doc *engine.Document, opts Options) error {
	guides := opts.guides()
	rep := htmlReport{Title: "ARIA - KWCAG 2.2 웹 접근성 점검 리포트"}

	if doc.Crawl != nil {
		c := doc.Crawl
		cv := &crawlView{StartURL: c.StartURL, Seconds: seconds(c.Duration), Summary: c.Summary}
		for _, p := range c.PageResults {
			if p.Status == engine.PageError {
				cv.Errors = append(cv.Errors, p)
			}
		}
		rep.Crawl = cv
		for _, s := range c.SuccessfulScans() {
			rep.Pages = append(rep.Pages, buildPageView(s, guides))
		}
	} else {
		rep.Pages = append(rep.Pages, buildPageView(doc.Scan, guides))
	}

	return htmlTemplate.Execute(w, rep)
}

func buildPageView(r *engine.ScanResult, guides *remediation.Library) pageView {
	pv := pageView{
		URL:        r.URL,
		Date:       r.Timestamp.Format("2006-01-02"),
		Seconds:    seconds(r.Duration),
		Rate:       fmt.Sprintf("%.1f", r.Summary.ComplianceRate),
		RateClass:  rateClass(r.Summary.ComplianceRate),
		Summary:    r.Summary,
		RuleErrors: r.RuleErrors,
	}

	for _, p := range catalog.Principles() {
		ps, ok := r.Summary.ByPrinciple[p]
		if !ok {
			continue
		}
		row := principleRow{Name: catalog.PrincipleName(p), Pass: ps.Pass, Total: ps.Total, Rate: "N/A"}
		if ps.Total > 0 {
			row.Rate = fmt.Sprintf("%.1f", ps.Rate())
		}
		pv.Principles = append(pv.Principles, row)
	}

	for _, g := range GroupViolations(r.Violations) {
		gv := groupView{
			ID:            g.ID,
			Name:          g.Name,
			SeverityClass: "severity-" + string(g.Severity),
			SeverityLabel: g.Severity.Label(),
			BadgeStyle:    badgeStyle(g.Severity),
			Count:         g.NodeCount,
		}
		for i, n := range g.Nodes() {
			if i == maxHTMLNodes {
				break
			}
			gv.Nodes = append(gv.Nodes, nodeView{HTML: cut(n.HTML, 200), Message: firstLine(n.FailureSummary)})
		}
		gv.Guide = buildGuide(guides, r.URL, g)
		pv.Groups = append(pv.Groups, gv)
	}

	for _, item := range catalog.Items() {
		row := checkRow{ID: item.ID, Name: item.Name, Level: item.Level}
		switch checkStatus(r, item) {
		case engine.StatusFail:
			row.Status, row.Mark = "fail", "X"
		case engine.StatusPass:
			row.Status, row.Mark = "pass", "O"
		default:
			row.Status, row.Mark = "na", "-"
		}
		pv.Checklist = append(pv.Checklist, row)
	}
	return pv
}

func buildGuide(guides *remediation.Library, url string, g ViolationGroup) *guideView {
	guide, ok := guides.Get(g.ID)
	if !ok {
		return nil
	}
	vars := remediation.Vars{URL: url, RuleID: g.Violations[0].RuleID}
	if nodes := g.Nodes(); len(nodes) > 0 && len(nodes[0].Target) > 0 {
		vars.Target = nodes[0].Target[0]
	}
	fix, err := guides.Fix(g.ID, vars)
	if err != nil {
		fix = guide.Fix
	}
	return &guideView{Issue: guide.Issue, Fix: fix, Example: guide.Example, Verify: guide.Verify}
}

func rateClass(rate float64) string {
	switch {
	case rate >= 80:
		return "rate-good"
	case rate >= 60:
		return "rate-warn"
	default:
		return "rate-bad"
	}
}

// badgeStyle colours the node count badge by severity with readable text
func badgeStyle(s engine.Severity) template.CSS {
	hex, ok := severityColors[s]
	if !ok {
		return template.CSS("background: #eeeeee; color: #000000")
	}
	bg, err := contrast.ParseHex(hex)
	if err != nil {
		return ""
	}
	return template.CSS(fmt.Sprintf("background: %s; color: %s", bg.Hex(), contrast.ReadableOn(bg).Hex()))
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: 'Pretendard', -apple-system, sans-serif; color: #333; background: #f5f5f5; line-height: 1.6; }
  .container { max-width: 1000px; margin: 0 auto; padding: 20px; }
  header { background: #1a1a2e; color: #fff; padding: 30px 0; margin-bottom: 30px; }
  header .container { display: flex; justify-content: space-between; align-items: center; }
  h1 { font-size: 24px; }
  .meta { color: #aaa; font-size: 14px; }
  .card { background: #fff; border-radius: 8px; padding: 24px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
  .card h2 { font-size: 18px; margin-bottom: 16px; border-bottom: 2px solid #eee; padding-bottom: 8px; }
  .summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 16px; }
  .summary-item { text-align: center; padding: 16px; background: #f9f9f9; border-radius: 8px; }
  .summary-item .value { font-size: 32px; font-weight: bold; }
  .summary-item .label { font-size: 14px; color: #666; }
  .rate-good { color: #16a34a; }
  .rate-warn { color: #ca8a04; }
  .rate-bad { color: #dc2626; }
  table { width: 100%; border-collapse: collapse; }
  th, td { padding: 10px 12px; text-align: left; border-bottom: 1px solid #eee; }
  th { background: #f5f5f5; font-weight: 600; }
  .text-center { text-align: center; }
  .status-pass { color: #16a34a; font-weight: bold; }
  .status-fail { color: #dc2626; font-weight: bold; }
  .status-na { color: #999; }
  .severity-error { color: #dc2626; }
  .severity-warning { color: #ca8a04; }
  .severity-info { color: #2563eb; }
  .badge { padding: 2px 8px; border-radius: 12px; font-size: 12px; margin-left: 8px; }
  .violation-group { margin-bottom: 20px; }
  .violation-group h3 { font-size: 16px; margin-bottom: 8px; }
  .node-detail { background: #f9f9f9; padding: 12px; margin: 8px 0; border-radius: 4px; border-left: 3px solid #ddd; }
  .node-detail code { display: block; font-size: 13px; overflow-x: auto; white-space: pre-wrap; word-break: break-all; }
  .node-message { font-size: 13px; color: #666; margin-top: 4px; }
  .guide { background: #eff6ff; padding: 12px; margin: 8px 0; border-radius: 4px; font-size: 13px; }
  .guide code { display: block; white-space: pre-wrap; word-break: break-all; margin: 4px 0; }
  .page { margin-top: 40px; }
  footer { text-align: center; padding: 20px; color: #999; font-size: 12px; }
</style>
</head>
<body>
{{with .Crawl}}
<header>
  <div class="container">
    <div>
      <h1>{{$.Title}}</h1>
      <div class="meta">{{.StartURL}}</div>
    </div>
    <div class="meta">{{.Summary.TotalPages}} 페이지 | {{.Seconds}}s</div>
  </div>
</header>
<div class="container">
  <div class="card">
    <h2>크롤링 요약</h2>
    <div class="summary-grid">
      <div class="summary-item"><div class="value">{{.Summary.SuccessPages}}</div><div class="label">점검 성공</div></div>
      <div class="summary-item"><div class="value severity-error">{{.Summary.ErrorPages}}</div><div class="label">점검 실패</div></div>
      <div class="summary-item"><div class="value">{{.Summary.TotalViolations}}</div><div class="label">전체 위반</div></div>
      <div class="summary-item"><div class="value">{{.Summary.UniqueKwcagViolations}}</div><div class="label">위반 검사항목</div></div>
    </div>
  </div>
  {{if .Errors}}
  <div class="card">
    <h2>점검 실패 페이지</h2>
    <table>
      <thead><tr><th>URL</th><th>깊이</th><th>오류</th></tr></thead>
      <tbody>
      {{range .Errors}}<tr><td>{{.URL}}</td><td>{{.Depth}}</td><td>{{.ErrorMessage}}</td></tr>
      {{end}}
      </tbody>
    </table>
  </div>
  {{end}}
</div>
{{end}}
{{range .Pages}}
<section class="page">
<header>
  <div class="container">
    <div>
      <h1>{{$.Title}}</h1>
      <div class="meta">{{.URL}}</div>
    </div>
    <div class="meta">{{.Date}} | {{.Seconds}}s</div>
  </div>
</header>

<div class="container">
  <div class="card">
    <h2>요약</h2>
    <div class="summary-grid">
      <div class="summary-item">
        <div class="value {{.RateClass}}">{{.Rate}}%</div>
        <div class="label">전체 준수율</div>
      </div>
      <div class="summary-item"><div class="value">{{.Summary.PassCount}}</div><div class="label">통과 항목</div></div>
      <div class="summary-item"><div class="value severity-error">{{.Summary.FailCount}}</div><div class="label">위반 항목</div></div>
      <div class="summary-item"><div class="value">{{.Summary.TotalItems}}</div><div class="label">전체 검사항목</div></div>
    </div>
  </div>

  <div class="card">
    <h2>원칙별 준수율</h2>
    <table>
      <thead><tr><th>원칙</th><th>통과/전체</th><th>준수율</th></tr></thead>
      <tbody>
      {{range .Principles}}<tr><td>{{.Name}}</td><td>{{.Pass}}/{{.Total}}</td><td>{{.Rate}}%</td></tr>
      {{end}}
      </tbody>
    </table>
  </div>

  <div class="card">
    <h2>위반 상세 ({{len .Groups}}건)</h2>
    {{range .Groups}}
    <div class="violation-group">
      <h3 class="{{.SeverityClass}}">[{{.ID}}] {{.Name}} <span class="badge" style="{{.BadgeStyle}}">{{.SeverityLabel}} {{.Count}}건</span></h3>
      {{range .Nodes}}
      <div class="node-detail">
        <code>{{.HTML}}</code>
        <p class="node-message">{{.Message}}</p>
      </div>
      {{end}}
      {{with .Guide}}
      <div class="guide">
        <p><strong>문제</strong> {{.Issue}}</p>
        <p><strong>수정 방법</strong> {{.Fix}}</p>
        {{if .Example}}<code>{{.Example}}</code>{{end}}
        {{if .Verify}}<p><strong>확인</strong> {{.Verify}}</p>{{end}}
      </div>
      {{end}}
    </div>
    {{else}}
    <p style="color: #16a34a;">위반 항목이 없습니다.</p>
    {{end}}
  </div>

  {{if .RuleErrors}}
  <div class="card">
    <h2>실행 오류</h2>
    <table>
      <thead><tr><th>규칙</th><th>검사항목</th><th>메시지</th></tr></thead>
      <tbody>
      {{range .RuleErrors}}<tr><td>{{.RuleID}}</td><td>{{.KwcagID}}</td><td>{{.Message}}</td></tr>
      {{end}}
      </tbody>
    </table>
  </div>
  {{end}}

  <div class="card">
    <h2>KWCAG 2.2 전체 체크리스트 ({{len .Checklist}}항목)</h2>
    <table>
      <thead><tr><th>번호</th><th>검사항목</th><th>수준</th><th class="text-center">결과</th></tr></thead>
      <tbody>
      {{range .Checklist}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Level}}</td><td class="text-center"><span class="status-{{.Status}}">{{.Mark}}</span></td></tr>
      {{end}}
      </tbody>
    </table>
  </div>
</div>
</section>
{{end}}
<footer>Generated by ARIA - KWCAG 2.2 Web Accessibility Checker</footer>
</body>
</html>
`))
