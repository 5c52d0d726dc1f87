package rules

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type autoPlayRule struct{ baseRule }

func (r autoPlayRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	var findings []Finding

	snap.Doc.Find("video[autoplay], audio[autoplay]").Each(func(_ int, el *goquery.Selection) {
		if _, muted := el.Attr("muted"); muted {
			return
		}
		findings = append(findings, Finding{
			HTML:     excerpt(el, mediaExcerptLen),
			Selector: buildSelector(el),
			Message:  goquery.NodeName(el) + " 요소에 autoplay 속성이 있으며 muted가 아닙니다.",
		})
	})

	snap.Doc.Find("iframe").Each(func(_ int, el *goquery.Selection) {
		src := el.AttrOr("src", "")
		if !strings.Contains(src, "autoplay=1") && !strings.Contains(src, "autoplay=true") {
			return
		}
		findings = append(findings, Finding{
			HTML:     excerpt(el, mediaExcerptLen),
			Selector: buildSelector(el),
			Message:  "iframe에 자동 재생이 설정된 미디어가 포함되어 있습니다.",
		})
	})
	return findings, nil
}
