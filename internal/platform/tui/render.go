package tui

import (
	"strings"

	"github.com/vovakirdan/starpusher/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string using the
// current theme.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, GetTheme())
}

// renderScreen styles each run of same-coloured cells once, so a board row
// costs a handful of escape sequences rather than one per cell.
func renderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(theme.cellStyle(color).Render(run.String()))
		}
	}
	return sb.String()
}
