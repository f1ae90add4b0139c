package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips all markup from user-supplied text and returns plain
// text. The sanitizer HTML-encodes its output, so entities are decoded again
// before returning; renderers escape the value once more on output.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	clean := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(clean))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
