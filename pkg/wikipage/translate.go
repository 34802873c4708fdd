package wikipage

import (
	"regexp"
	"strings"
)

const (
	translateOpen  = "<translate>"
	translateClose = "</translate>"
)

// Wrapper shapes in the order they are tried. The noinclude variants keep
// the tags out of transclusions and were written by older form versions.
var translationWrappers = []*regexp.Regexp{
	regexp.MustCompile(`(?s)^\s*<noinclude><translate></noinclude>\n?(.*?)\n?<noinclude></translate></noinclude>\s*$`),
	regexp.MustCompile(`(?s)^\s*<noinclude><translate>\n?(.*?)\n?</translate></noinclude>\s*$`),
	regexp.MustCompile(`(?s)^\s*<translate>\n?(.*?)\n?</translate>\s*$`),
}

// Translation unit markers, e.g. <!--T:12-->.
var (
	markerTrailingSpace = regexp.MustCompile(`(<!--T:\d+-->)\s+`)
	markerBeforeText    = regexp.MustCompile(`(<!--T:\d+-->)(\S)`)
	markerAfterText     = regexp.MustCompile(`(\S)(<!--T:\d+-->)`)
)

// StripTranslation removes one enclosing <translate> wrapper from text.
// Text that is not wrapped is returned unchanged.
func StripTranslation(text string) string {
	if inner, ok := unwrapTranslation(text); ok {
		return inner
	}
	return text
}

// unwrapTranslation matches a wrapper only when it encloses the whole text,
// so the captured text carries no further translate tags.
func unwrapTranslation(text string) (string, bool) {
	for _, wrapper := range translationWrappers {
		m := wrapper.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if hasTranslateTags(m[1]) {
			continue
		}
		return m[1], true
	}
	return "", false
}

// NormalizeMarkers puts every translation unit marker at the start of its own
// line, separated from preceding text by a blank line.
func NormalizeMarkers(text string) string {
	text = markerTrailingSpace.ReplaceAllString(text, "$1\n")
	text = markerBeforeText.ReplaceAllString(text, "$1\n$2")
	return markerAfterText.ReplaceAllString(text, "$1\n\n$2")
}

// WrapTranslation normalizes the unit markers in text and wraps it in
// <translate> tags.
func WrapTranslation(text string) string {
	return translateOpen + NormalizeMarkers(text) + translateClose
}

// dropTranslateTags removes every translate tag left in text.
func dropTranslateTags(text string) string {
	return strings.NewReplacer(translateOpen, "", translateClose, "").Replace(text)
}

// hasTranslateTags reports whether text already carries translate markup.
func hasTranslateTags(text string) bool {
	return strings.Contains(text, translateOpen) || strings.Contains(text, translateClose)
}
