package wikipage

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Characters MediaWiki rejects in page titles.
const illegalTitleChars = "#<>[]|{}"

// NormalizeTitle turns a formula result into a usable page title: illegal
// characters are removed, underscores and whitespace runs become single
// spaces, and the first letter is upper-cased.
func NormalizeTitle(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalTitleChars, r) {
			return -1
		}
		if r == '_' {
			return ' '
		}
		return r
	}, raw)

	title := strings.Join(strings.Fields(cleaned), " ")
	if title == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(first)) + title[size:]
}
