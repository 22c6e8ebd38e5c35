// Package slug derives URL-safe identifiers from titles and names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const separator = "-"

var (
	// punctuation is dropped, not replaced
	disallowed = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	// runs of whitespace, underscores and separators collapse to one separator
	gaps = regexp.MustCompile(`[\s_-]+`)
)

// Make converts s to a lowercase, hyphen separated slug.
// "Tech Corp!" becomes "tech-corp"; accented and non-Latin letters are transliterated.
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = unidecode.Unidecode(result)
	result = strings.ReplaceAll(result, "@", " at ")
	result = strings.ToLower(result)
	result = disallowed.ReplaceAllString(result, "")
	result = gaps.ReplaceAllString(result, separator)

	return strings.Trim(result, separator)
}
