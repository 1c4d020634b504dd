package utils

import (
	"strings"

	"golang.org/x/text/width"
)

// DisplayWidth counts wide and fullwidth runes as two units
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

// TruncateDisplay cuts s to at most max display units without splitting a rune
func TruncateDisplay(s string, max int) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		w := runeWidth(r)
		if n+w > max {
			break
		}
		b.WriteRune(r)
		n += w
	}
	return b.String()
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
