// Package slug normalizes blog post slugs into lowercase URL-safe
// identifiers: spaces become hyphens, anything outside [a-z0-9-] is dropped,
// runs of hyphens collapse, and leading/trailing hyphens are trimmed.
package slug

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	invalidRun = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun  = regexp.MustCompile(`-{2,}`)
)

// Normalize converts the input into its canonical slug form. Normalize is
// idempotent. An empty result means the input carried nothing usable and
// must be rejected by the caller.
func Normalize(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = spaceRun.ReplaceAllString(s, "-")
	s = invalidRun.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
