package valueobject

import (
	"strings"
	"unicode"
)

// normalize folds case and drops all whitespace, so "BT 2 - 6" and "bt2-6"
// share a lookup key.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// spellingTable re-keys a spelling map by normalized key.
func spellingTable[T any](spellings map[string]T) map[string]T {
	out := make(map[string]T, len(spellings))
	for k, v := range spellings {
		out[normalize(k)] = v
	}
	return out
}
