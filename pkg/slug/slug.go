// Package slug builds URL-safe identifiers from titles and names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[-\s]+`)
	valid        = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
)

// Make folds accents to ASCII, lower-cases, drops punctuation and joins words with hyphens.
// "Anti-Wrinkle Injections" becomes "anti-wrinkle-injections".
func Make(s string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)

	out := invalidChars.ReplaceAllString(strings.ToLower(ascii), "")
	out = separators.ReplaceAllString(strings.TrimSpace(out), "-")
	return strings.Trim(out, "-_")
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return valid.MatchString(s)
}
