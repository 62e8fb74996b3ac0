package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Label turns a snake_case identifier into a title-cased label
// ("awaiting_burn" becomes "Awaiting Burn").
func Label(id string) string {
	id = strings.TrimSpace(strings.ReplaceAll(id, "_", " "))
	if id == "" {
		return ""
	}
	return titleCaser.String(id)
}

// Truncate shortens s to at most max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}
