// Package sanitize cleans user supplied card text with a bluemonday policy.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/eslsoft/studyhub/internal/usecase"
)

// HTMLSanitizer keeps user generated formatting, images and MathJax spans and
// drops scripts, event handlers and other active content.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

var _ usecase.ContentSanitizer = (*HTMLSanitizer)(nil)

func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy().
		AllowElements("img").
		AllowAttrs("src", "alt").OnElements("img").
		AllowElements("math", "span").
		AllowAttrs("class").OnElements("span")
	return &HTMLSanitizer{policy: policy}
}

// Sanitize is safe for concurrent use.
func (s *HTMLSanitizer) Sanitize(input string) string {
	return s.policy.Sanitize(input)
}
