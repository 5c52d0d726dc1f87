package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type blinkFlashRule struct{ baseRule }

// Animations cycling inside this band (in Hz) are treated as flashing
const (
	minFlashHz = 3.0
	maxFlashHz = 50.0
)

func (r blinkFlashRule) Check(ctx context.Context, snap *Snapshot) ([]Finding, error) {
	var findings []Finding

	for _, tag := range []string{"blink", "marquee"} {
		snap.Doc.Find(tag).Each(func(_ int, el *goquery.Selection) {
			findings = append(findings, Finding{
				HTML:     excerpt(el, mediaExcerptLen),
				Selector: tag,
				Message:  fmt.Sprintf("사용 중단된 <%s> 요소가 사용되었습니다.", tag),
			})
		})
	}

	var err error
	snap.Doc.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		tag := goquery.NodeName(el)

		if name, seconds := animationOf(snap, el); name != "" && seconds > 0 {
			if hz := 1 / seconds; hz >= minFlashHz && hz <= maxFlashHz {
				findings = append(findings, Finding{
					HTML:     excerpt(el, mediaExcerptLen),
					Selector: tag,
					Message: fmt.Sprintf("CSS 애니메이션 \"%s\"의 주기(%ss)가 초당 3~50회 범위에 해당합니다.",
						name, strconv.FormatFloat(seconds, 'f', -1, 64)),
				})
			}
		}

		decoration := snap.Style(el, "text-decoration-line")
		if decoration == "" {
			decoration = snap.Style(el, "text-decoration")
		}
		if strings.Contains(strings.ToLower(decoration), "blink") {
			findings = append(findings, Finding{
				HTML:     excerpt(el, mediaExcerptLen),
				Selector: tag,
				Message:  "text-decoration: blink 스타일이 사용되었습니다.",
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return findings, nil
}

// animationOf resolves the first animation's name and duration in seconds,
// preferring the longhand properties over the shorthand.
func animationOf(snap *Snapshot, el *goquery.Selection) (string, float64) {
	name, seconds := parseAnimationShorthand(firstListItem(snap.Style(el, "animation")))
	if v := firstListItem(snap.Style(el, "animation-name")); v != "" {
		name = v
	}
	if v := firstListItem(snap.Style(el, "animation-duration")); v != "" {
		if d, ok := parseTime(v); ok {
			seconds = d
		}
	}
	if strings.EqualFold(name, "none") {
		name = ""
	}
	return name, seconds
}

var animationKeywords = map[string]bool{
	"linear": true, "ease": true, "ease-in": true, "ease-out": true, "ease-in-out": true,
	"step-start": true, "step-end": true, "infinite": true,
	"normal": true, "reverse": true, "alternate": true, "alternate-reverse": true,
	"none": true, "forwards": true, "backwards": true, "both": true,
	"running": true, "paused": true, "initial": true, "inherit": true, "unset": true,
}

// parseAnimationShorthand extracts the name and the first time value
// (the duration) of a single animation shorthand entry.
func parseAnimationShorthand(v string) (string, float64) {
	var name string
	var seconds float64
	durationSet := false
	for _, tok := range strings.Fields(v) {
		if d, ok := parseTime(tok); ok {
			if !durationSet {
				seconds, durationSet = d, true
			}
			continue
		}
		lower := strings.ToLower(tok)
		if animationKeywords[lower] || strings.Contains(tok, "(") {
			continue
		}
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			continue
		}
		if name == "" {
			name = tok
		}
	}
	return name, seconds
}

func parseTime(v string) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	div := 1.0
	switch {
	case strings.HasSuffix(v, "ms"):
		v, div = strings.TrimSuffix(v, "ms"), 1000
	case strings.HasSuffix(v, "s"):
		v = strings.TrimSuffix(v, "s")
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f / div, true
}

func firstListItem(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
