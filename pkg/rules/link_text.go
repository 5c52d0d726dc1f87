package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type linkTextRule struct{ baseRule }

var vagueLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^여기$`),
	regexp.MustCompile(`^클릭$`),
	regexp.MustCompile(`^여기를?\s*클릭`),
	regexp.MustCompile(`(?i)^click\s*here$`),
	regexp.MustCompile(`(?i)^here$`),
	regexp.MustCompile(`(?i)^more$`),
	regexp.MustCompile(`^더\s*보기$`),
	regexp.MustCompile(`^자세히$`),
	regexp.MustCompile(`(?i)^read\s*more$`),
	regexp.MustCompile(`^링크$`),
	regexp.MustCompile(`(?i)^link$`),
	regexp.MustCompile(`^바로\s*가기$`),
	regexp.MustCompile(`^>+$`),
	regexp.MustCompile(`^\.+$`),
}

func (r linkTextRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	var findings []Finding

	snap.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if text == "" {
			text = strings.TrimSpace(a.AttrOr("aria-label", ""))
		}
		// Links with no text at all are reported by the engine's link-name check
		if text == "" {
			return
		}
		for _, re := range vagueLinkPatterns {
			if !re.MatchString(text) {
				continue
			}
			findings = append(findings, Finding{
				HTML:     excerpt(a, excerptLen),
				Selector: fmt.Sprintf(`a[href="%s"]`, a.AttrOr("href", "")),
				Message:  fmt.Sprintf(`링크 텍스트 "%s"이(가) 목적을 설명하지 않습니다.`, text),
			})
			break
		}
	})
	return findings, nil
}
