package rules

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type skipNavRule struct{ baseRule }

// mainTargetIDs are fragment targets accepted as the main content area
// even when the target element is not a main landmark.
var mainTargetIDs = map[string]bool{"main": true, "content": true, "main-content": true}

func (r skipNavRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	doc := snap.Doc
	hasSkipLink := false

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if !strings.HasPrefix(href, "#") || len(href) < 2 {
			return true
		}
		id := href[1:]
		target := elementByID(doc, id)
		if target.Length() == 0 {
			return true
		}
		if goquery.NodeName(target) == "main" || target.AttrOr("role", "") == "main" || mainTargetIDs[id] {
			hasSkipLink = true
			return false
		}
		return true
	})
	if hasSkipLink {
		return nil, nil
	}

	// Pages without a main landmark have nothing to skip to
	if doc.Find("main, [role='main']").Length() == 0 {
		return nil, nil
	}
	return []Finding{{
		HTML:     excerpt(doc.Find("html").First(), excerptLen),
		Selector: "html",
		Message:  "본문으로 건너뛰는 링크가 페이지 시작 부분에 없습니다.",
	}}, nil
}

// elementByID returns the first element whose id matches exactly
func elementByID(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
}
