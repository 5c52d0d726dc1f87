package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type focusVisibleRule struct{ baseRule }

const interactiveSelector = "a[href], button, input, select, textarea, [tabindex], " +
	"[role='button'], [role='link'], [role='checkbox'], [role='radio']"

func (r focusVisibleRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	var findings []Finding

	if removesFocusOutline(snap) {
		findings = append(findings, Finding{
			HTML:     "<style>*:focus { outline: none; }</style>",
			Selector: "style",
			Message:  ":focus에서 outline: none이 설정되어 있으며, 대체 포커스 표시가 없습니다.",
		})
	}

	snap.Doc.Find(interactiveSelector).Each(func(_ int, el *goquery.Selection) {
		tabindex := strings.TrimSpace(el.AttrOr("tabindex", ""))
		if n, err := strconv.Atoi(tabindex); err != nil || n <= 0 {
			return
		}
		findings = append(findings, Finding{
			HTML:     excerpt(el, excerptLen),
			Selector: goquery.NodeName(el),
			Message:  fmt.Sprintf(`tabindex="%s" (양수)는 논리적 초점 순서를 방해할 수 있습니다.`, tabindex),
		})
	})
	return findings, nil
}

// borderIndicators are the border properties that draw a visible edge.
// Properties like border-radius or border-collapse do not.
var borderIndicators = map[string]bool{
	"border":        true,
	"border-color":  true,
	"border-style":  true,
	"border-width":  true,
	"border-top":    true,
	"border-right":  true,
	"border-bottom": true,
	"border-left":   true,
}

// removesFocusOutline reports whether any :focus rule sets outline to none
// without a box-shadow or border to replace it. Reported once per page.
func removesFocusOutline(snap *Snapshot) bool {
	for _, rule := range snap.StyleRules() {
		if !strings.Contains(rule.Prelude, ":focus") {
			continue
		}
		outline, substitute := "", false
		for _, d := range rule.Declarations {
			prop := strings.ToLower(d.Property)
			switch {
			case prop == "outline" || prop == "outline-style":
				outline = strings.ToLower(strings.TrimSpace(d.Value))
			case prop == "box-shadow" || borderIndicators[prop]:
				substitute = true
			}
		}
		if outline == "none" && !substitute {
			return true
		}
	}
	return false
}
