package starpusher

import (
	"strings"
	"testing"

	"github.com/vovakirdan/starpusher/internal/config"
	platformcore "github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher/levels"
)

func TestRenderHUDAndMap(t *testing.T) {
	g := newTestGame(t, "classic", nil)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Star Pusher", "Classic", "Level 1 of 5: First Push", "Steps: 0"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if !strings.Contains(screen.Row(23), "grab") {
		t.Errorf("help line = %q", screen.Row(23))
	}

	out := screen.String()
	if !strings.ContainsRune(out, playerChars[core.DirDown]) {
		t.Error("player not drawn")
	}
	if !strings.ContainsRune(out, StarChar) || !strings.ContainsRune(out, GoalChar) {
		t.Error("star or goal not drawn")
	}
	if !strings.ContainsRune(out, CornerChar) || !strings.ContainsRune(out, WallChar) {
		t.Error("walls not drawn")
	}
}

func TestRenderColours(t *testing.T) {
	g := newTestGame(t, "classic", nil)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	colourOf := func(r rune) platformcore.Color {
		for y := 0; y < screen.Height(); y++ {
			for x := 0; x < screen.Width(); x++ {
				if c := screen.GetCell(x, y); c.Rune == r {
					return c.Color
				}
			}
		}
		t.Fatalf("%q not on screen", r)
		return platformcore.ColorDefault
	}
	if colourOf(StarChar) != platformcore.ColorYellow {
		t.Error("free star should be yellow")
	}

	step(g, platformcore.ActionRight)
	g.Render(screen)
	if colourOf(StarChar) != platformcore.ColorBrightGreen {
		t.Error("star on goal should be bright green")
	}
}

func TestRenderHelpCanBeHidden(t *testing.T) {
	g := newTestGame(t, "classic", func(c *config.StarPusherConfig) {
		c.Display.ShowHelp = false
	})
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "grab") {
		t.Error("help text drawn while disabled")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, "classic", nil)
	screen := platformcore.NewScreen(80, 24)

	step(g, platformcore.ActionRight)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Solved! Steps: 1") {
		t.Errorf("HUD should report the solve: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(23), "next level") {
		t.Errorf("help line should prompt for the next level: %q", screen.Row(23))
	}

	step(g, platformcore.ActionNextLevel, platformcore.ActionPause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("pause overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, "classic", nil)
	screen := platformcore.NewScreen(30, 7)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small overlay, got:\n%s", screen.String())
	}

	// Narrow screens fall back to single-column cells.
	screen = platformcore.NewScreen(10, 12)
	g.Render(screen)
	if strings.Contains(screen.String(), "Window too small") {
		t.Errorf("7-wide level should fit in 10 columns:\n%s", screen.String())
	}
}

func TestDecorations(t *testing.T) {
	lvls, err := levels.Parse("test", strings.NewReader("    #####\n    #@$.#\n    #####\n"))
	if err != nil {
		t.Fatal(err)
	}
	pack := &levels.Pack{ID: "deco", Title: "Deco", Levels: lvls}
	outside := lvls[0].Grid.Count(core.TileFloorOutside)
	if outside == 0 {
		t.Fatal("fixture has no outside floor")
	}

	decorated := func(pct int, seed int64) []uint8 {
		cfg := config.DefaultStarPusherConfig()
		cfg.Display.DecorationPct = pct
		g := New(pack).WithConfig(cfg)
		g.Reset(platformcore.RuntimeConfig{Seed: seed})
		return g.decorations
	}
	count := func(d []uint8) int {
		n := 0
		for _, v := range d {
			if v > 0 {
				n++
			}
		}
		return n
	}

	if n := count(decorated(0, 1)); n != 0 {
		t.Errorf("pct 0 decorated %d cells", n)
	}
	if n := count(decorated(100, 1)); n != outside {
		t.Errorf("pct 100 decorated %d of %d outside cells", n, outside)
	}

	a, b := decorated(50, 42), decorated(50, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed should give the same scenery")
		}
	}
}
