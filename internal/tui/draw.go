package tui

import (
	tcell "github.com/gdamore/tcell/v2"
)

// drawText writes s starting at (x, y), clipping at maxX. Writes that
// would land outside the clip region are dropped, never panic.
func drawText(screen tcell.Screen, x, y, maxX int, style tcell.Style, s string) {
	if y < 0 {
		return
	}
	col := x
	for _, ch := range s {
		if col >= maxX {
			break
		}
		if col >= 0 {
			screen.SetContent(col, y, ch, nil, style)
		}
		col++
	}
}

// drawBox draws a single-line border around the rectangle with its
// top-left corner at (x, y).
func drawBox(screen tcell.Screen, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		screen.SetContent(col, y, tcell.RuneHLine, nil, style)
		screen.SetContent(col, y+h-1, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		screen.SetContent(x, row, tcell.RuneVLine, nil, style)
		screen.SetContent(x+w-1, row, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
}

// clampCol shortens a table cell to width characters, marking the cut
// with a dot the way the original narrow columns do.
func clampCol(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "."
}
