package render

import (
	"strings"
	"unicode"
)

// Humanize turns a raw field name into a label: underscores become spaces and
// the first letter of every word is upper-cased. The rest of each word is left
// as is, so Humanize is idempotent on its own output.
func Humanize(key string) string {
	s := strings.ReplaceAll(key, "_", " ")

	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !inWord {
			r = unicode.ToUpper(r)
		}
		inWord = word
		b.WriteRune(r)
	}
	return b.String()
}
