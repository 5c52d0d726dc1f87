package rules

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	excerptLen      = 200
	mediaExcerptLen = 300
)

// excerpt returns the element's outer HTML cut to max runes
func excerpt(sel *goquery.Selection, max int) string {
	markup, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return truncate(markup, max)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// openingTag renders only the start tag of an element, attributes included
func openingTag(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("<" + n.Data)
	for _, a := range n.Attr {
		fmt.Fprintf(&b, ` %s="%s"`, a.Key, html.EscapeString(a.Val))
	}
	b.WriteString(">")
	return b.String()
}

// buildSelector produces a best-effort selector for an element: its id,
// "parent > tag" when it is the only child of its type, or tag:nth-of-type.
func buildSelector(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	if id, ok := sel.Attr("id"); ok && id != "" {
		return "#" + id
	}

	tag := goquery.NodeName(sel)
	parent := sel.Parent()
	if parent.Length() == 0 || parent.Get(0).Type != html.ElementNode {
		return tag
	}

	node := sel.Get(0)
	siblings := parent.ChildrenFiltered(tag)
	if siblings.Length() == 1 {
		return goquery.NodeName(parent) + " > " + tag
	}
	idx := 0
	siblings.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Get(0) == node {
			idx = i + 1
			return false
		}
		return true
	})
	return fmt.Sprintf("%s:nth-of-type(%d)", tag, idx)
}
