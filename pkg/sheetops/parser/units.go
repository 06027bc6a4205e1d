// Package parser provides Excel sheet reading and reference parsing utilities.
package parser

import (
	"github.com/mattn/go-runewidth"
)

// DefaultWidthPadding is the number of character units added to the widest
// cell of a column when fitting its width.
const DefaultWidthPadding = 2

// MaxColumnWidth is the largest column width Excel accepts, in character units.
const MaxColumnWidth = 255

// TextWidth returns the display width of s in character units.
// East Asian wide characters count as two units.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// FitWidth returns the column width needed to show a cell of the given
// display width with padding, capped at MaxColumnWidth.
func FitWidth(textWidth, padding int) float64 {
	w := textWidth + padding
	if w > MaxColumnWidth {
		w = MaxColumnWidth
	}
	return float64(w)
}
