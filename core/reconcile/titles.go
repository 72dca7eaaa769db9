package reconcile

import (
	"regexp"
	"strings"
)

var coreSeparatorRe = regexp.MustCompile(`\s*(?::|\s[-–—]\s|[–—])`)

// SimplifiedTitle returns the text before the first colon, trimmed.
// Titles without a colon are returned trimmed and otherwise unchanged.
func SimplifiedTitle(raw string) string {
	if i := strings.Index(raw, ":"); i >= 0 {
		return strings.TrimSpace(raw[:i])
	}
	return strings.TrimSpace(raw)
}

// CoreTitle shortens a title to a search key: the text before the first
// separator (colon or spaced dash) without trailing platform tokens.
// Distinct records often share a core title, which keeps catalog queries down.
func CoreTitle(raw string) string {
	return defaultNormalizer.CoreTitle(raw)
}

// CoreTitle is the package CoreTitle using n's platform tokens.
func (n *Normalizer) CoreTitle(raw string) string {
	s := strings.TrimSpace(raw)
	if loc := coreSeparatorRe.FindStringIndex(s); loc != nil && loc[0] > 0 {
		s = s[:loc[0]]
	}
	s = glyphRe.ReplaceAllString(s, "")
	s = strip(n.trailingCIRe, s)
	return strings.TrimSpace(s)
}
