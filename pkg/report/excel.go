package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mhb8436/aria/pkg/catalog"
	"github.com/mhb8436/aria/pkg/engine"
)

const (
	sheetSummary   = "요약"
	sheetPages     = "페이지 목록"
	sheetDetails   = "상세 결과"
	sheetChecklist = "체크리스트"

	headerFill = "4472C4"
	failColor  = "DC2626"
	passColor  = "16A34A"
)

type column struct {
	title string
	width float64
}

type workbook struct {
	f      *excelize.File
	header int
	fail   int
	pass   int
}

type sheet struct {
	wb   *workbook
	name string
	row  int
}

// WriteExcel writes an .xlsx workbook with summary, detail and checklist
// sheets. A crawl adds a page list and aggregates every successful page.
func WriteExcel(w io.Writer, doc *engine.Document) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	defer wb.f.Close()

	if doc.Crawl != nil {
		err = wb.crawl(doc.Crawl)
	} else {
		err = wb.scan(doc.Scan)
	}
	if err != nil {
		return err
	}
	return wb.f.Write(w)
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	wb := &workbook{f: f}

	var err error
	wb.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	wb.fail, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: failColor}})
	if err != nil {
		f.Close()
		return nil, err
	}
	wb.pass, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: passColor}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: "ARIA KWCAG 2.2 Checker",
		Created: time.Now().Format(time.RFC3339),
	}); err != nil {
		f.Close()
		return nil, err
	}
	return wb, nil
}

// addSheet creates a sheet, reusing the default one for the first call
func (wb *workbook) addSheet(name string, cols []column) (*sheet, error) {
	if wb.f.SheetCount == 1 && wb.f.GetSheetName(0) == "Sheet1" {
		if err := wb.f.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := wb.f.NewSheet(name); err != nil {
		return nil, err
	}

	s := &sheet{wb: wb, name: name}
	titles := make([]interface{}, len(cols))
	for i, c := range cols {
		titles[i] = c.title
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := wb.f.SetColWidth(name, col, col, c.width); err != nil {
			return nil, err
		}
	}
	if err := s.add(titles...); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := wb.f.SetCellStyle(name, "A1", last, wb.header); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sheet) add(values ...interface{}) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	return s.wb.f.SetSheetRow(s.name, cell, &values)
}

// styleCell styles column col of the last added row
func (s *sheet) styleCell(col, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, s.row)
	if err != nil {
		return err
	}
	return s.wb.f.SetCellStyle(s.name, cell, cell, style)
}

func (s *sheet) autoFilter(cols int) error {
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return s.wb.f.AutoFilter(s.name, "A1:"+last, nil)
}

var detailColumns = []column{
	{"URL", 40}, {"KWCAG", 10}, {"검사항목", 25}, {"심각도", 10},
	{"규칙 ID", 20}, {"설명", 40}, {"HTML", 50}, {"대상", 30},
}

func (wb *workbook) scan(r *engine.ScanResult) error {
	sum, err := wb.addSheet(sheetSummary, []column{{"항목", 30}, {"값", 40}})
	if err != nil {
		return err
	}
	rows := [][]interface{}{
		{"점검 URL", r.URL},
		{"점검 일시", r.Timestamp.Format(time.RFC3339)},
		{"소요 시간", seconds(r.Duration) + "초"},
		{},
		{"전체 준수율", fmt.Sprintf("%.1f%%", r.Summary.ComplianceRate)},
		{"통과 항목", r.Summary.PassCount},
		{"위반 항목", r.Summary.FailCount},
		{"검토 필요 항목", r.Summary.IncompleteCount},
		{"전체 검사항목", r.Summary.TotalItems},
		{},
		{"원칙별 준수율", ""},
	}
	for _, row := range rows {
		if err := sum.add(row...); err != nil {
			return err
		}
	}
	if err := wb.principleRows(sum, r.Summary); err != nil {
		return err
	}

	if err := wb.details([]*engine.ScanResult{r}); err != nil {
		return err
	}
	return wb.checklist([]*engine.ScanResult{r})
}

func (wb *workbook) principleRows(s *sheet, summary engine.Summary) error {
	for _, p := range catalog.Principles() {
		ps, ok := summary.ByPrinciple[p]
		if !ok {
			continue
		}
		rate := "N/A"
		if ps.Total > 0 {
			rate = fmt.Sprintf("%.1f%%", ps.Rate())
		}
		if err := s.add("  "+catalog.PrincipleName(p), fmt.Sprintf("%d/%d (%s)", ps.Pass, ps.Total, rate)); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) crawl(c *engine.CrawlResult) error {
	sum, err := wb.addSheet(sheetSummary, []column{{"항목", 30}, {"값", 40}})
	if err != nil {
		return err
	}
	rows := [][]interface{}{
		{"시작 URL", c.StartURL},
		{"소요 시간", seconds(c.Duration) + "초"},
		{},
		{"전체 페이지", c.Summary.TotalPages},
		{"점검 성공", c.Summary.SuccessPages},
		{"점검 실패", c.Summary.ErrorPages},
		{"전체 위반", c.Summary.TotalViolations},
		{"위반 검사항목", c.Summary.UniqueKwcagViolations},
	}
	for _, row := range rows {
		if err := sum.add(row...); err != nil {
			return err
		}
	}

	pages, err := wb.addSheet(sheetPages, []column{
		{"URL", 50}, {"깊이", 8}, {"상태", 10}, {"준수율", 10}, {"위반", 8}, {"오류", 40},
	})
	if err != nil {
		return err
	}
	for _, p := range c.PageResults {
		if p.Status == engine.PageSuccess && p.ScanResult != nil {
			s := p.ScanResult
			err = pages.add(p.URL, p.Depth, "성공", fmt.Sprintf("%.1f%%", s.Summary.ComplianceRate), len(s.Violations), "")
		} else {
			err = pages.add(p.URL, p.Depth, "실패", "", "", p.ErrorMessage)
			if err == nil {
				err = pages.styleCell(3, wb.fail)
			}
		}
		if err != nil {
			return err
		}
	}
	if err := pages.autoFilter(6); err != nil {
		return err
	}

	scans := c.SuccessfulScans()
	if err := wb.details(scans); err != nil {
		return err
	}
	return wb.checklist(scans)
}

func (wb *workbook) details(scans []*engine.ScanResult) error {
	s, err := wb.addSheet(sheetDetails, detailColumns)
	if err != nil {
		return err
	}
	for _, r := range scans {
		for _, v := range r.Violations {
			for _, n := range v.Nodes {
				if err := s.add(r.URL, v.KwcagID, v.KwcagName, v.Severity.Label(), v.RuleID,
					v.Description, cut(n.HTML, 500), strings.Join(n.Target, ", ")); err != nil {
					return err
				}
			}
		}
	}
	return s.autoFilter(len(detailColumns))
}

// checklist marks an item failed when any page fails it, passed when some
// page passes it and none fails, and unverified otherwise.
func (wb *workbook) checklist(scans []*engine.ScanResult) error {
	s, err := wb.addSheet(sheetChecklist, []column{
		{"번호", 10}, {"원칙", 16}, {"검사항목", 30}, {"수준", 8}, {"결과", 14}, {"자동점검", 10}, {"비고", 30},
	})
	if err != nil {
		return err
	}

	for _, item := range catalog.Items() {
		failed, passed := 0, 0
		for _, r := range scans {
			switch checkStatus(r, item) {
			case engine.StatusFail:
				failed++
			case engine.StatusPass:
				passed++
			}
		}

		result, note, style := "- (미확인)", "", 0
		switch {
		case failed > 0:
			result, style = "X (위반)", wb.fail
			if len(scans) > 1 {
				note = fmt.Sprintf("%d/%d 페이지 위반", failed, len(scans))
			}
		case passed > 0:
			result, style = "O (통과)", wb.pass
		}

		if err := s.add(item.ID, item.PrincipleName(), item.Name, string(item.Level), result, autoLabel(item.Auto), note); err != nil {
			return err
		}
		if style != 0 {
			if err := s.styleCell(5, style); err != nil {
				return err
			}
		}
	}
	return nil
}
