package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining diacritical marks, so
// "José" and "jose" compare equal after lowering.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeAnswer lower-cases, strips diacritics and trims whitespace. Both
// the stored correct answer and every submitted answer go through this before
// equality comparison.
func NormalizeAnswer(s string) string {
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.TrimSpace(stripped)
}

// AnswerMatches reports whether the submitted answer equals the correct one
// under normalized comparison.
func AnswerMatches(submitted, correct string) bool {
	return NormalizeAnswer(submitted) == NormalizeAnswer(correct)
}
