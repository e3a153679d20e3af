package categories

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeName trims and lowercases name, then capitalizes its first rune.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + name[size:]
}
