// Package sanitize cleans user supplied text before it is stored or fanned
// out to other clients.
package sanitize

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from user text.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New returns a sanitizer that allows no HTML at all. Posts, comments and
// risk messages are plain text.
func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// maxPasses bounds how many layers of entity encoding Text unwraps.
const maxPasses = 8

// Text removes every tag (and the body of script/style elements) and trims
// surrounding whitespace. The result is decoded and sanitized again until it
// stops changing, so markup hidden behind entities such as &lt;script&gt; is
// removed instead of being decoded into live tags.
func (s *Sanitizer) Text(raw string) string {
	if raw == "" {
		return ""
	}
	cur := raw
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(cur))
		if next == cur {
			return strings.TrimSpace(next)
		}
		cur = next
	}
	// Still changing: keep the escaped form rather than decoded markup.
	return strings.TrimSpace(s.policy.Sanitize(cur))
}

// URL returns raw when it is an absolute http(s) URL, otherwise "".
func (s *Sanitizer) URL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
