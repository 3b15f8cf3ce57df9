package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// The two allow-list profiles for user-authored HTML. The article profile
// accepts everything the rich content editor can emit, including inline
// images and figures. The legacy profile is for plain-HTML sources (the
// markdown-backed informational pages) and permits no media elements.
//
// Both profiles are built once at init and are safe for concurrent use.
var (
	articlePolicy = newArticlePolicy()
	legacyPolicy  = newLegacyPolicy()
)

var dataAttr = regexp.MustCompile(`^[a-z0-9.\-]+$`)

// basePolicy holds the allow-list shared by both profiles: text structure,
// inline formatting, links, and the editor's data attributes. Scripts, event
// handler attributes and non-https/mailto URI schemes are stripped regardless
// of anything added here.
func basePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "strong", "em", "u",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote", "code", "pre", "div", "span")

	p.AllowAttrs("class").Globally()
	p.AllowAttrs("data-line-height", "data-spacing").Matching(dataAttr).
		OnElements("p", "h1", "h2", "h3", "div")

	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowElements("a")
	p.AllowURLSchemes("https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(false)

	return p
}

func newArticlePolicy() *bluemonday.Policy {
	p := basePolicy()
	p.AllowElements("img", "figure", "figcaption")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	return p
}

func newLegacyPolicy() *bluemonday.Policy {
	return basePolicy()
}

// Article sanitizes HTML produced by the rich content editor. Disallowed
// nodes and attributes are silently stripped, never rejected: the rendering
// pipeline must not fail on untrusted input.
func Article(html string) string {
	return articlePolicy.Sanitize(html)
}

// Legacy sanitizes HTML from plain-HTML or markdown sources using the
// narrower profile without media elements.
func Legacy(html string) string {
	return legacyPolicy.Sanitize(html)
}
