package starpusher

import (
	"fmt"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
)

// Display characters.
const (
	WallChar       = '█'
	CornerChar     = '▓'
	GoalChar       = '·'
	StarChar       = '*'
	ButtonChar     = '_'
	DoorClosedChar = '▒'
	DoorOpenChar   = '░'
)

// playerChars is indexed by core.Dir.
var playerChars = [...]rune{
	core.DirUp:    '▲',
	core.DirLeft:  '◀',
	core.DirDown:  '▼',
	core.DirRight: '▶',
}

type decoration struct {
	char  rune
	color platformcore.Color
}

var decorationGlyphs = [...]decoration{
	{'♣', platformcore.ColorGreen},       // tall tree
	{'♠', platformcore.ColorGreen},       // short tree
	{'"', platformcore.ColorBrightGreen}, // grass
	{'^', platformcore.ColorBrown},       // rock
	{'∩', platformcore.ColorGray},        // igloo
}

const (
	hudHeight  = 2
	helpHeight = 2
	helpText   = " arrows move  w/x turn  space grab  u undo  r reset  n/b level  p pause  q quit"
	solvedText = " Level solved! Press any key for the next level, u to undo"
)

// Render draws the current level, HUD and overlays.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.session == nil {
		g.renderOverlay(dst, "No levels", "This pack is empty")
		return
	}

	bottom := dst.Height()
	if g.cfg.Display.ShowHelp {
		bottom -= helpHeight
		g.renderHelp(dst)
	}
	area := platformcore.NewRect(0, hudHeight, dst.Width(), bottom-hudHeight)

	if !g.renderMap(dst, area) {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line and a separator.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	left := " Star Pusher | " + g.pack.Title
	if g.session != nil {
		left += fmt.Sprintf(" | Level %d of %d: %s", g.levelIndex+1, g.pack.Len(), g.session.Level().Name)
	}
	dst.DrawTextColored(0, 0, left, platformcore.ColorCyan)

	if g.session != nil {
		right := fmt.Sprintf("Steps: %d ", g.session.Steps())
		color := platformcore.ColorBrightWhite
		if g.solved {
			right = fmt.Sprintf("Solved! Steps: %d ", g.session.Steps())
			color = platformcore.ColorBrightGreen
		}
		x := dst.Width() - utf8.RuneCountInString(right)
		if x > utf8.RuneCountInString(left) {
			dst.DrawTextColored(x, 0, right, color)
		}
	}

	dst.FillRect(platformcore.NewRect(0, 1, dst.Width(), 1), '─', platformcore.ColorGray)
}

func (g *Game) renderHelp(dst *platformcore.Screen) {
	y := dst.Height() - helpHeight
	dst.FillRect(platformcore.NewRect(0, y, dst.Width(), 1), '─', platformcore.ColorGray)
	if g.solved {
		dst.DrawTextColored(0, y+1, solvedText, platformcore.ColorBrightGreen)
		return
	}
	dst.DrawTextColored(0, y+1, helpText, platformcore.ColorGray)
}

// renderMap draws the grid centered in area. Cells are two columns wide
// when there is room so the map keeps a square-ish aspect. Returns false
// when the level does not fit.
func (g *Game) renderMap(dst *platformcore.Screen, area platformcore.Rect) bool {
	grid := g.session.Grid()
	cellW := 2
	if grid.W*cellW > area.W {
		cellW = 1
	}
	if grid.W*cellW > area.W || grid.H > area.H {
		return false
	}

	st := g.session.State()
	boxes := make(map[core.Coord]bool, len(st.Boxes)+1)
	for _, b := range st.Boxes {
		boxes[b] = true
	}

	r := area.Centered(grid.W*cellW, grid.H)
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			c := core.C(x, y)
			ch, fill, color := g.cellGlyph(c, st, boxes)
			sx := r.X + x*cellW
			dst.SetColored(sx, r.Y+y, ch, color)
			if cellW == 2 {
				dst.SetColored(sx+1, r.Y+y, fill, color)
			}
		}
	}
	return true
}

// cellGlyph picks the character for one map cell. fill is used for the
// second column of a wide cell.
func (g *Game) cellGlyph(c core.Coord, st core.State, boxes map[core.Coord]bool) (ch, fill rune, color platformcore.Color) {
	lvl := g.session.Level()
	grid := lvl.Grid
	goal := lvl.IsGoal(c)

	switch {
	case c == st.Player:
		return playerChars[st.Facing], ' ', platformcore.ColorBrightWhite
	case st.Carried != nil && *st.Carried == c:
		return StarChar, ' ', platformcore.ColorBrightCyan
	case boxes[c] && goal:
		return StarChar, ' ', platformcore.ColorBrightGreen
	case boxes[c]:
		return StarChar, ' ', platformcore.ColorYellow
	case goal:
		return GoalChar, ' ', platformcore.ColorBrightYellow
	case st.IsButton(c):
		if st.AnyButtonActive() {
			return ButtonChar, ' ', platformcore.ColorBrightGreen
		}
		return ButtonChar, ' ', platformcore.ColorRed
	case st.IsDoor(c):
		if st.IsDoorOpen(c) {
			return DoorOpenChar, DoorOpenChar, platformcore.ColorGreen
		}
		return DoorClosedChar, DoorClosedChar, platformcore.ColorRed
	}

	switch grid.Get(c) {
	case core.TileCorner:
		return CornerChar, CornerChar, platformcore.ColorGray
	case core.TileWall:
		return WallChar, WallChar, platformcore.ColorGray
	case core.TileFloorOutside:
		if d := g.decorations[c.Y*grid.W+c.X]; d > 0 {
			glyph := decorationGlyphs[d-1]
			return glyph.char, ' ', glyph.color
		}
	}
	return ' ', ' ', platformcore.ColorDefault
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).Centered(w, 5)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightYellow)
	drawCentered(dst, box, box.Y+1, line1, platformcore.ColorBrightWhite)
	drawCentered(dst, box, box.Y+3, line2, platformcore.ColorGray)
}

func drawCentered(dst *platformcore.Screen, box platformcore.Rect, y int, text string, c platformcore.Color) {
	x := box.X + (box.W-utf8.RuneCountInString(text))/2
	dst.DrawTextColored(x, y, text, c)
}
