package levels

import (
	"io"
	"strings"

	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
)

// Format renders a position back into level-file symbols, one string per row.
// Rows keep their full width so the output parses back to the same grid.
// A carried star is written like a free one.
// A door under the player or a star is not representable and is dropped.
func Format(level *core.Level, st core.State) []string {
	g := level.Grid
	boxes := make(map[core.Coord]bool, len(st.Boxes)+1)
	for _, b := range st.AllBoxes() {
		boxes[b] = true
	}

	rows := make([]string, g.H)
	line := make([]byte, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			line[x] = symbolAt(level, st, boxes, core.C(x, y))
		}
		rows[y] = string(line)
	}
	return rows
}

func symbolAt(level *core.Level, st core.State, boxes map[core.Coord]bool, c core.Coord) byte {
	goal := level.IsGoal(c)
	button := st.IsButton(c)
	switch {
	case level.Grid.Get(c).IsWall():
		return '#'
	case c == st.Player && goal:
		return '+'
	case c == st.Player && button:
		return 'p'
	case c == st.Player:
		return '@'
	case boxes[c] && goal:
		return '*'
	case boxes[c] && button:
		return 's'
	case boxes[c]:
		return '$'
	case goal:
		return '.'
	case button:
		return 'b'
	case st.IsDoor(c):
		return 'd'
	}
	return ' '
}

// Write writes a named level block in the file format accepted by Parse.
func Write(w io.Writer, level *core.Level, st core.State) error {
	var sb strings.Builder
	sb.WriteString("; ")
	sb.WriteString(level.Name)
	sb.WriteByte('\n')
	for _, row := range Format(level, st) {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
