package core

// Tile classifies one static grid cell.
type Tile uint8

const (
	// TileEmpty is open space that has not been classified yet.
	TileEmpty Tile = iota
	// TileWall blocks movement.
	TileWall
	// TileCorner is a wall with two walls around it in an L shape.
	// It blocks movement exactly like TileWall and only differs in rendering.
	TileCorner
	// TileFloorInside is open space reachable from the player start.
	TileFloorInside
	// TileFloorOutside is open space the player can never reach.
	TileFloorOutside
)

// String returns the name of the tile kind.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileWall:
		return "Wall"
	case TileCorner:
		return "Corner"
	case TileFloorInside:
		return "FloorInside"
	case TileFloorOutside:
		return "FloorOutside"
	default:
		return "Unknown"
	}
}

// IsWall reports whether the tile blocks movement.
func (t Tile) IsWall() bool {
	return t == TileWall || t == TileCorner
}

// Grid is the static geometry of a level.
// Tiles are stored in row-major order: index = y*W + x.
// A grid is treated as immutable once Decorate has run.
type Grid struct {
	W     int
	H     int
	Tiles []Tile
}

// NewGrid creates a grid of the given size with all tiles empty.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:     w,
		H:     h,
		Tiles: make([]Tile, w*h),
	}
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
// This is the strict check used when accepting moves.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the tile at c, or TileEmpty when c is out of bounds.
func (g *Grid) Get(c Coord) Tile {
	if !g.InBounds(c) {
		return TileEmpty
	}
	return g.Tiles[g.index(c)]
}

// Set stores a tile. Out of bounds writes are ignored.
func (g *Grid) Set(c Coord, t Tile) {
	if g.InBounds(c) {
		g.Tiles[g.index(c)] = t
	}
}

// IsWall reports whether c holds a wall or corner tile.
// Out of bounds coordinates are NOT walls; callers that need to keep things
// on the map must also check InBounds.
func (g *Grid) IsWall(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.Tiles[g.index(c)].IsWall()
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &Grid{W: g.W, H: g.H, Tiles: tiles}
}

// Count returns the number of tiles of the given kind.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, tile := range g.Tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Decorate runs the one-time classification pass:
// walls with an L-shaped pair of wall neighbours become corners, open space
// reachable from start becomes inside floor, the rest becomes outside floor.
// Only walls block the fill; door and button cells are open space here.
func (g *Grid) Decorate(start Coord) {
	g.markCorners()

	if g.InBounds(start) && !g.IsWall(start) {
		seen := make([]bool, len(g.Tiles))
		seen[g.index(start)] = true
		queue := []Coord{start}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if g.Get(c) == TileEmpty {
				g.Set(c, TileFloorInside)
			}
			for d := DirUp; d <= DirRight; d++ {
				n := c.Step(d)
				if !g.InBounds(n) || g.IsWall(n) || seen[g.index(n)] {
					continue
				}
				seen[g.index(n)] = true
				queue = append(queue, n)
			}
		}
	}

	for i, t := range g.Tiles {
		if t == TileEmpty {
			g.Tiles[i] = TileFloorOutside
		}
	}
}

// markCorners converts walls to corners. Decisions are made against the
// geometry before the pass so the result does not depend on scan order.
func (g *Grid) markCorners() {
	src := g.Clone()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			if src.Get(c) != TileWall {
				continue
			}
			up := src.IsWall(c.Step(DirUp))
			left := src.IsWall(c.Step(DirLeft))
			down := src.IsWall(c.Step(DirDown))
			right := src.IsWall(c.Step(DirRight))
			if (up && right) || (right && down) || (down && left) || (left && up) {
				g.Set(c, TileCorner)
			}
		}
	}
}
