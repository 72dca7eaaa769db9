package reconcile

import (
	"regexp"
	"strings"
)

// Normalizer turns a raw platform title into a comparison-safe string.
// The token lists are configurable because they were tuned against observed
// platform title variants and differ between catalogs.
type Normalizer struct {
	// PlatformTokens are platform names stripped from parentheticals and title edges.
	PlatformTokens []string
	// BuildSuffixes are release-stage and region suffixes (beta, demo, eu...).
	BuildSuffixes []string
	// EditionSuffixes are edition qualifiers (deluxe, goty...). "edition" itself is optional after each.
	EditionSuffixes []string

	parenRe      *regexp.Regexp
	leadingRe    *regexp.Regexp
	trailingRe   *regexp.Regexp
	trailingCIRe *regexp.Regexp
	buildRe      *regexp.Regexp
	editionRe    *regexp.Regexp
}

var (
	glyphRe      = regexp.MustCompile(`[™®©]`)
	separatorRe  = regexp.MustCompile(`[:\-–—_/|]`)
	apostropheRe = regexp.MustCompile(`['’‘` + "`" + `]`)
	symbolRe     = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// DefaultPlatformTokens lists the platform names seen in store titles.
// Longer variants come first so alternation prefers them.
var DefaultPlatformTokens = []string{
	`playstation\s*vita`,
	`playstation\s*[®™]?\s*[345]`,
	`ps\s*vita`,
	`ps[345]`,
	`xbox\s+series\s+[xs](?:\s*[|/]\s*[xs])?`,
	`xbox\s+one`,
	`xbox\s+360`,
	`xbox`,
	`nintendo\s+switch`,
	`windows`,
	`pc`,
}

// DefaultBuildSuffixes lists release-stage and region suffixes.
var DefaultBuildSuffixes = []string{
	`open beta`, `closed beta`, `beta`, `alpha`, `demo`, `trial`,
	`early access`, `playtest`, `na`, `eu`, `us`, `uk`, `jp`, `asia`,
}

// DefaultEditionSuffixes lists edition qualifiers.
var DefaultEditionSuffixes = []string{
	`digital deluxe`, `deluxe`, `ultimate`, `gold`, `standard`, `complete`,
	`definitive`, `premium`, `collectors`, `special`, `anniversary`,
	`game of the year`, `goty`,
}

// NewNormalizer compiles a Normalizer from the given token lists.
// Empty lists fall back to the defaults.
func NewNormalizer(platformTokens, buildSuffixes, editionSuffixes []string) *Normalizer {
	if len(platformTokens) == 0 {
		platformTokens = DefaultPlatformTokens
	}
	if len(buildSuffixes) == 0 {
		buildSuffixes = DefaultBuildSuffixes
	}
	if len(editionSuffixes) == 0 {
		editionSuffixes = DefaultEditionSuffixes
	}

	platforms := `(?:` + strings.Join(platformTokens, `|`) + `)`
	builds := `(?:` + strings.Join(buildSuffixes, `|`) + `)`
	editions := `(?:` + strings.Join(editionSuffixes, `|`) + `)`
	trailing := `(?:\s*(?:[&+,/:\-–—]|\band\b)?\s*\b` + platforms + `)+\s*$`

	return &Normalizer{
		PlatformTokens:  platformTokens,
		BuildSuffixes:   buildSuffixes,
		EditionSuffixes: editionSuffixes,
		parenRe:         regexp.MustCompile(`\s*[\(\[][^\)\]]*` + platforms + `[^\)\]]*[\)\]]`),
		leadingRe:       regexp.MustCompile(`^\s*` + platforms + `\s*(?:[:\-–—]\s*)?\b`),
		trailingRe:      regexp.MustCompile(trailing),
		trailingCIRe:    regexp.MustCompile(`(?i)` + trailing),
		buildRe:         regexp.MustCompile(`(?:\s+` + builds + `)+\s*$`),
		editionRe:       regexp.MustCompile(`(?:\s+(?:` + editions + `(?:\s+edition)?|edition))+\s*$`),
	}
}

var defaultNormalizer = NewNormalizer(nil, nil, nil)

// Normalize applies the default Normalizer.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// Normalize lower-cases raw and strips platform, trademark, punctuation,
// build and edition noise. It is deterministic and idempotent: stripping one
// suffix can expose another, so passes repeat until nothing changes.
func (n *Normalizer) Normalize(raw string) string {
	s := strings.ToLower(raw)
	// no pass lengthens s, so this reaches a fixpoint
	for {
		next := n.pass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func (n *Normalizer) pass(s string) string {
	s = n.parenRe.ReplaceAllString(s, " ")
	s = strip(n.trailingRe, s)
	s = strip(n.leadingRe, s)
	s = glyphRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, " ")
	s = apostropheRe.ReplaceAllString(s, "")
	s = symbolRe.ReplaceAllString(s, " ")
	s = strip(n.buildRe, s)
	s = strip(n.editionRe, s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// strip removes re matches unless that would leave nothing: a title that is
// only a platform or edition word ("Xbox", "Gold") keeps it.
func strip(re *regexp.Regexp, s string) string {
	stripped := re.ReplaceAllString(s, "")
	if strings.TrimSpace(stripped) == "" {
		return s
	}
	return stripped
}
