// Package goquery locates search index scripts referenced by generated
// documentation pages using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docidx"
)

// Ensure ScriptLocator implements docidx.ScriptLocator at compile time.
var _ docidx.ScriptLocator = (*ScriptLocator)(nil)

// ScriptLocator finds the search index script of a documentation page.
//
// Newer generators publish the script location in a data-search-index-js
// attribute (on the rustdoc-vars element); older pages load it with a
// script tag whose src names search-index.
type ScriptLocator struct{}

// NewScriptLocator creates a new ScriptLocator.
func NewScriptLocator() *ScriptLocator {
	return &ScriptLocator{}
}

// Locate returns the absolute URL of the index script referenced by html.
func (l *ScriptLocator) Locate(html, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", docidx.Errorf(docidx.EINVALID, "invalid page URL %q", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docidx.Errorf(docidx.EINVALID, "failed to parse page %q", pageURL)
	}

	ref := l.fromVars(doc)
	if ref == "" {
		ref = l.fromScriptTags(doc)
	}
	if ref == "" {
		return "", docidx.Errorf(docidx.ENOTFOUND, "page %q references no search index", pageURL)
	}

	u, err := base.Parse(ref)
	if err != nil {
		return "", docidx.Errorf(docidx.EINVALID, "invalid search index reference %q", ref)
	}
	return u.String(), nil
}

// fromVars reads the data-search-index-js attribute. A bare file name is
// resolved against data-root-path when the element carries one.
func (l *ScriptLocator) fromVars(doc *goquery.Document) string {
	sel := doc.Find("[data-search-index-js]").First()
	ref, ok := sel.Attr("data-search-index-js")
	if !ok || strings.TrimSpace(ref) == "" {
		return ""
	}
	ref = strings.TrimSpace(ref)
	if root := strings.TrimSpace(sel.AttrOr("data-root-path", "")); root != "" && !strings.Contains(ref, "/") {
		return strings.TrimSuffix(root, "/") + "/" + ref
	}
	return ref
}

func (l *ScriptLocator) fromScriptTags(doc *goquery.Document) string {
	var ref string
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if strings.Contains(src, "search-index") {
			ref = strings.TrimSpace(src)
			return false
		}
		return true
	})
	return ref
}
