package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links to these resources are never crawled
var skipExtensions = regexp.MustCompile(`(?i)\.(pdf|zip|png|jpg|jpeg|gif|svg|mp4|mp3|doc|xls|ppt)$`)

// Normalize drops the fragment and one trailing slash so equivalent links
// compare equal. Unparsable input is returned unchanged.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Host = strings.ToLower(u.Host)
	if port := u.Port(); (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = u.Hostname()
	}
	return strings.TrimSuffix(u.String(), "/")
}

// linkFilter decides which discovered links join the frontier
type linkFilter struct {
	host       string
	sameDomain bool
	exclude    []string
}

func (f linkFilter) allow(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if f.sameDomain && u.Host != f.host {
		return false
	}
	for _, p := range f.exclude {
		if p != "" && strings.Contains(link, p) {
			return false
		}
	}
	return !skipExtensions.MatchString(u.Path)
}

// extractLinks returns the normalized, filtered targets of every a[href] in
// markup, resolved against <base href> or pageURL, in document order.
func extractLinks(pageURL, markup string, filter linkFilter) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = b
		}
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		ref, err := base.Parse(strings.TrimSpace(a.AttrOr("href", "")))
		if err != nil {
			return
		}
		link := Normalize(ref.String())
		if filter.allow(link) {
			links = append(links, link)
		}
	})
	return links, nil
}
