// Package arabic prepares Arabic strings for PDF engines that lay text out
// strictly left-to-right: contextual glyph joining followed by visual
// reordering of mixed-direction runs.
package arabic

import (
	"strings"
	"unicode"

	"github.com/abdullahdiaa/garabic"
	"golang.org/x/text/unicode/bidi"
)

// Shape converts a logical-order string into the visually ordered glyph
// sequence expected by a left-to-right renderer. Strings without Arabic
// script are returned unchanged. Embedded Latin text and digits keep their
// internal left-to-right order.
func Shape(s string) string {
	if !ContainsArabic(s) {
		return s
	}

	// Contextual forms first (isolated/initial/medial/final), then visual
	// ordering of the mixed-direction runs.
	shaped := garabic.Shape(s)
	return reorderVisual(shaped)
}

// ContainsArabic reports whether s contains at least one rune from the
// Arabic script.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// reorderVisual applies the Unicode bidirectional algorithm with a
// right-to-left paragraph direction and flattens the runs into visual order.
// Right-to-left runs are rune-reversed; left-to-right runs (Latin, digits)
// pass through intact.
func reorderVisual(s string) string {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return s
	}
	ordering, err := p.Order()
	if err != nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		text := run.String()
		if run.Direction() == bidi.RightToLeft {
			text = reverseRunes(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
