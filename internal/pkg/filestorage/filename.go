package filestorage

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSanitizedLength = 50

var (
	invalidChars     = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	repeatedDashes   = regexp.MustCompile(`-+`)
	leadingEdgeDash  = regexp.MustCompile(`^-+`)
	trailingEdgeDash = regexp.MustCompile(`-+$`)
)

// SanitizeFilename turns an uploaded file name into a safe identifier for
// object keys: extension stripped, diacritics removed, anything outside
// [a-zA-Z0-9_-] replaced with a dash, dashes collapsed and trimmed,
// lowercased and capped at 50 characters. An empty result falls back to
// "archivo".
func SanitizeFilename(filename string) string {
	name := filename
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}

	// NFD-decompose and drop combining marks so accented characters keep
	// their base letter instead of turning into dashes.
	decomposed := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(decomposed, name); err == nil {
		name = stripped
	}

	name = invalidChars.ReplaceAllString(name, "-")
	name = repeatedDashes.ReplaceAllString(name, "-")
	name = leadingEdgeDash.ReplaceAllString(name, "")
	name = trailingEdgeDash.ReplaceAllString(name, "")

	if name == "" {
		name = "archivo"
	}

	name = strings.ToLower(name)
	if len(name) > maxSanitizedLength {
		name = name[:maxSanitizedLength]
	}
	return name
}
