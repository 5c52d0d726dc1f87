package rules

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type onInputRule struct{ baseRule }

var (
	selectChangeMarkers = []string{"submit", "location", "href", "navigate"}
	inputEventMarkers   = []string{"submit", "location", "window.open"}
	inputEventAttrs     = []string{"onchange", "onfocus", "onblur"}
)

func (r onInputRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	var findings []Finding

	snap.Doc.Find("select[onchange]").Each(func(_ int, el *goquery.Selection) {
		if !containsAny(el.AttrOr("onchange", ""), selectChangeMarkers) {
			return
		}
		findings = append(findings, Finding{
			HTML:     excerpt(el, mediaExcerptLen),
			Selector: "select[onchange]",
			Message:  "select의 onchange에서 자동 submit 또는 페이지 이동이 발생합니다.",
		})
	})

	snap.Doc.Find("input[onchange], input[onfocus], input[onblur]").Each(func(_ int, el *goquery.Selection) {
		for _, attr := range inputEventAttrs {
			if !containsAny(el.AttrOr(attr, ""), inputEventMarkers) {
				continue
			}
			findings = append(findings, Finding{
				HTML:     excerpt(el, mediaExcerptLen),
				Selector: "input[" + attr + "]",
				Message:  "input의 " + attr + "에서 자동 submit 또는 새 창이 열립니다.",
			})
		}
	})
	return findings, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
