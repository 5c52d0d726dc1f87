package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

type langAttrRule struct{ baseRule }

var knownLangCodes = map[string]bool{
	"ko": true, "en": true, "ja": true, "zh": true, "zh-cn": true, "zh-tw": true,
	"fr": true, "de": true, "es": true, "pt": true, "it": true, "ru": true,
	"ar": true, "hi": true, "th": true, "vi": true, "id": true, "ms": true,
	"ko-kr": true, "en-us": true, "en-gb": true, "ja-jp": true, "zh-hans": true, "zh-hant": true,
}

// langTagPattern accepts a plausible primary subtag with an optional region/script subtag
var langTagPattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z]{2,})?$`)

func (r langAttrRule) Check(_ context.Context, snap *Snapshot) ([]Finding, error) {
	root := snap.Doc.Find("html").First()
	if root.Length() == 0 {
		return nil, nil
	}

	lang := strings.ToLower(strings.TrimSpace(root.AttrOr("lang", "")))
	if lang == "" {
		return []Finding{{
			HTML:     openingTag(root.Get(0)),
			Selector: "html",
			Message:  "html 요소에 lang 속성이 없습니다.",
		}}, nil
	}

	base := strings.SplitN(lang, "-", 2)[0]
	if knownLangCodes[lang] || knownLangCodes[base] || langTagPattern.MatchString(lang) {
		return nil, nil
	}
	return []Finding{{
		HTML:     fmt.Sprintf(`<html lang="%s">`, lang),
		Selector: "html",
		Message:  fmt.Sprintf(`lang 속성값 "%s"이(가) 유효한 언어 코드가 아닙니다.`, lang),
	}}, nil
}
