package rules

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type tableStructureRule struct{ baseRule }

func (r tableStructureRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	var findings []Finding

	snap.Doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		switch table.AttrOr("role", "") {
		case "presentation", "none":
			return
		}
		headers := table.Find("th")
		// Tables without header cells are treated as layout tables
		if headers.Length() == 0 {
			return
		}

		caption := table.Find("caption").First()
		if caption.Length() == 0 || strings.TrimSpace(caption.Text()) == "" {
			findings = append(findings, Finding{
				HTML:     excerpt(table, mediaExcerptLen),
				Selector: "table",
				Message:  "데이터 테이블에 caption 요소가 없습니다.",
			})
		}

		headers.Each(func(_ int, th *goquery.Selection) {
			if th.AttrOr("scope", "") != "" {
				return
			}
			findings = append(findings, Finding{
				HTML:     excerpt(th, excerptLen),
				Selector: "th",
				Message:  "th 요소에 scope 속성이 없습니다.",
			})
		})
	})
	return findings, nil
}
