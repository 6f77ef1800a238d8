package media

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)
	multiSpace   = regexp.MustCompile(`\s+`)
	multiDot     = regexp.MustCompile(`\.{2,}`)
)

// Normalize turns a title into a name that is safe on common filesystems:
// illegal characters become spaces, dot and space runs collapse, diacritics
// are removed and surrounding spaces and dots are trimmed.
func Normalize(name string) string {
	name = illegalChars.ReplaceAllString(name, " ")
	name = removeAccents(name)
	name = multiDot.ReplaceAllString(name, ".")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.Trim(name, " .")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
