// Validity predicates applied to candidate postings before persistence.
// Two layers: a base technology/seniority check shared by every source, and
// a GetOnBrd-specific location/modality decision table on top of it.

package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	allowedLocations = []string{"argentina", "buenos aires", "caba", "remoto", "remota", "remote", "anywhere"}
	disallowedModes  = []string{"hibrido", "hybrid", "presencial", "on-site", "onsite", "oficina"}
	argentinaTokens  = []string{"argentina", "buenos aires", "caba"}
)

// MatchesTechKeywords reports whether the text names at least one tracked
// technology or role word.
func MatchesTechKeywords(title, description string) bool {
	return techRegex.MatchString(title + " " + description)
}

// MatchesJuniorLevel reports whether the text names an entry-level synonym.
func MatchesJuniorLevel(title, description string) bool {
	return levelRegex.MatchString(title + " " + description)
}

// IsValidJob requires a tech-keyword match. The seniority match is only
// required when a level string was actually supplied: an empty level passes
// the "or" branch unconditionally, which mirrors how callers that never fill
// level behave today. Likely unintended upstream, kept as documented.
func IsValidJob(title, description, level string) bool {
	fullText := title + " " + description + " " + level
	hasTech := techRegex.MatchString(fullText)
	hasJunior := levelRegex.MatchString(fullText)
	return hasTech && (hasJunior || level == "")
}

// IsValidGetOnBrdJob layers the Argentina/remote location policy over
// IsValidJob:
//   - no location -> reject (unknown is not assumed acceptable)
//   - hybrid/on-site token without an Argentina token -> reject
//   - any allowed token (Argentina region or remote) -> accept
//   - anything else (other countries/cities) -> reject
//
// A hybrid posting inside Argentina is accepted: the region token overrides
// the modality rejection.
func IsValidGetOnBrdJob(title, location, description, level string) bool {
	if !IsValidJob(title, description, level) {
		return false
	}
	if location == "" {
		return false
	}

	normalized := normalizeLocation(location)

	if containsAny(normalized, disallowedModes) && !containsAny(normalized, argentinaTokens) {
		return false
	}
	if containsAny(normalized, allowedLocations) {
		return true
	}
	return false
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// normalizeLocation lowercases, strips diacritics and collapses whitespace
// so "Buenos Aires (Híbrido)" compares as "buenos aires (hibrido)".
func normalizeLocation(location string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, _ := transform.String(t, location)
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
