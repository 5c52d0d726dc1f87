package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type pageTitleRule struct{ baseRule }

func (r pageTitleRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	var findings []Finding
	doc := snap.Doc

	if strings.TrimSpace(documentTitle(doc).Text()) == "" {
		findings = append(findings, Finding{
			HTML:     "<title></title>",
			Selector: "head > title",
			Message:  "페이지에 제목(title)이 없거나 비어 있습니다.",
		})
	}

	doc.Find("iframe").Each(func(_ int, el *goquery.Selection) {
		if strings.TrimSpace(el.AttrOr("title", "")) != "" {
			return
		}
		findings = append(findings, Finding{
			HTML:     excerpt(el, mediaExcerptLen),
			Selector: "iframe",
			Message:  "iframe에 title 속성이 없습니다.",
		})
	})

	prev := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		tag := goquery.NodeName(h)
		level := int(tag[1] - '0')
		if prev > 0 && level > prev+1 {
			findings = append(findings, Finding{
				HTML:     excerpt(h, mediaExcerptLen),
				Selector: tag,
				Message:  fmt.Sprintf("제목 수준이 h%d에서 h%d로 건너뛰었습니다.", prev, level),
			})
		}
		prev = level
	})
	return findings, nil
}

// documentTitle returns the first HTML title element. Titles inside inline
// svg or math content belong to those elements, not to the document.
func documentTitle(doc *goquery.Document) *goquery.Selection {
	return doc.Find("title").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Get(0).Namespace == ""
	}).First()
}
