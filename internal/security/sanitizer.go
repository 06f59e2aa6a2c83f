// Package security guards the two places where remote content touches the
// user: HTML fragments rendered into pages, and cover-image URLs fetched on
// the user's behalf.
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe HTML from remote content. Book descriptions come
// from an external catalog and review content is user-generated; both are
// rendered as HTML, so everything outside a small allowlist is removed.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds a sanitizer allowing basic text formatting only:
// paragraphs, line breaks, lists, emphasis, and links. Links are forced to
// open in a new tab with rel="noopener noreferrer". Scripts, styles, images,
// iframes, and event attributes are all dropped.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "b", "i", "strong", "em",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	return &Sanitizer{policy: p}
}

// Sanitize returns a safe version of the given HTML fragment. It is
// idempotent and returns the empty string for empty input.
func (s *Sanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
