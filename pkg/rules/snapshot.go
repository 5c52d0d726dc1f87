package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/mhb8436/aria/pkg/browser"
	"github.com/mhb8436/aria/pkg/logger"
)

// Snapshot is a read-only view of a rendered page that rules inspect.
// It is safe for concurrent use once built.
type Snapshot struct {
	URL    string
	Doc    *goquery.Document
	Sheets []*css.Stylesheet

	styles map[*html.Node][]*css.Declaration
}

// linkedSheetsScript returns the text of every stylesheet loaded through <link>.
// Cross-origin sheets throw on cssRules access and are skipped.
const linkedSheetsScript = `(() => {
  const out = [];
  for (const sheet of Array.from(document.styleSheets)) {
    if (!sheet.ownerNode || sheet.ownerNode.tagName !== "LINK") continue;
    try {
      out.push(Array.from(sheet.cssRules).map(r => r.cssText).join("\n"));
    } catch (e) {}
  }
  return out;
})()`

// Capture builds a snapshot from the current state of a live page
func Capture(ctx context.Context, page browser.Page) (*Snapshot, error) {
	content, err := page.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	url, err := page.URL(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page url: %w", err)
	}

	var linked []string
	if err := page.Evaluate(ctx, linkedSheetsScript, &linked); err != nil {
		logger.Debugf("linked stylesheets unavailable on %s: %v", url, err)
		linked = nil
	}
	return FromHTML(url, content, linked...)
}

// FromHTML parses markup and stylesheets into a snapshot. Inline <style>
// elements are read from the markup; extraCSS holds external sheets.
func FromHTML(pageURL, markup string, extraCSS ...string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	snap := &Snapshot{URL: pageURL, Doc: doc, styles: make(map[*html.Node][]*css.Declaration)}

	var sources []string
	sources = append(sources, extraCSS...)
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		sources = append(sources, s.Text())
	})
	for _, src := range sources {
		sheet, err := parser.Parse(src)
		if err != nil {
			logger.Debugf("skipping unparsable stylesheet on %s: %v", pageURL, err)
			continue
		}
		snap.Sheets = append(snap.Sheets, sheet)
	}

	snap.indexStyles()
	return snap, nil
}

// indexStyles attaches matching declarations to every element. Sheet
// rules apply in source order and the style attribute last; specificity is
// not modelled.
func (s *Snapshot) indexStyles() {
	for _, sheet := range s.Sheets {
		s.indexRules(sheet.Rules)
	}

	s.Doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		decls, err := parser.ParseDeclarations(sel.AttrOr("style", ""))
		if err != nil {
			return
		}
		node := sel.Get(0)
		s.styles[node] = append(s.styles[node], decls...)
	})
}

func (s *Snapshot) indexRules(rules []*css.Rule) {
	for _, rule := range rules {
		if rule.Kind == css.AtRule {
			if strings.Contains(strings.ToLower(rule.Name), "keyframes") {
				continue
			}
			s.indexRules(rule.Rules)
			continue
		}
		for _, selector := range rule.Selectors {
			s.Doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
				node := sel.Get(0)
				s.styles[node] = append(s.styles[node], rule.Declarations...)
			})
		}
	}
}

// Style returns the effective value of a CSS property on the element,
// honouring !important, or "" when the property is not set.
func (s *Snapshot) Style(sel *goquery.Selection, property string) string {
	if sel.Length() == 0 {
		return ""
	}
	var value string
	important := false
	for _, d := range s.styles[sel.Get(0)] {
		if !strings.EqualFold(d.Property, property) {
			continue
		}
		if important && !d.Important {
			continue
		}
		value = strings.TrimSpace(d.Value)
		important = d.Important
	}
	return value
}

// StyleRules returns every qualified rule of the captured stylesheets,
// flattening conditional at-rules.
func (s *Snapshot) StyleRules() []*css.Rule {
	var out []*css.Rule
	var walk func([]*css.Rule)
	walk = func(rules []*css.Rule) {
		for _, r := range rules {
			if r.Kind == css.AtRule {
				if !strings.Contains(strings.ToLower(r.Name), "keyframes") {
					walk(r.Rules)
				}
				continue
			}
			out = append(out, r)
		}
	}
	for _, sheet := range s.Sheets {
		walk(sheet.Rules)
	}
	return out
}
