package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, s Solve) {
	t.Helper()
	if _, err := store.SaveSolve(s); err != nil {
		t.Fatalf("SaveSolve(%+v) failed: %v", s, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsSolves(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Solve{PackID: "classic", Level: 0, Steps: 12})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, ok, err := store.BestSteps("classic", 0)
	if err != nil || !ok || best != 12 {
		t.Errorf("BestSteps after reopen = %d, %v, %v", best, ok, err)
	}
}

func TestStoreSaveValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name  string
		solve Solve
	}{
		{"empty pack", Solve{Level: 0, Steps: 3}},
		{"negative level", Solve{PackID: "classic", Level: -1, Steps: 3}},
		{"negative steps", Solve{PackID: "classic", Level: 0, Steps: -3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SaveSolve(tc.solve); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStoreBestSteps(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestSteps("classic", 0); err != nil || ok {
		t.Fatalf("unsolved level: ok=%v err=%v", ok, err)
	}

	mustSave(t, store, Solve{PackID: "classic", Level: 0, Steps: 30})
	mustSave(t, store, Solve{PackID: "classic", Level: 0, Steps: 18})
	mustSave(t, store, Solve{PackID: "classic", Level: 0, Steps: 25})
	mustSave(t, store, Solve{PackID: "classic", Level: 1, Steps: 4})
	mustSave(t, store, Solve{PackID: "switches", Level: 0, Steps: 2})

	best, ok, err := store.BestSteps("classic", 0)
	if err != nil || !ok {
		t.Fatalf("BestSteps() = ok %v, err %v", ok, err)
	}
	if best != 18 {
		t.Errorf("Expected best 18, got %d", best)
	}
}

func TestStoreTopSolves(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Solve{PackID: "classic", Level: 2, Steps: 40, Player: "ann"})
	mustSave(t, store, Solve{PackID: "classic", Level: 2, Steps: 22, Player: "bob"})
	mustSave(t, store, Solve{PackID: "classic", Level: 2, Steps: 22, Player: "cid"})
	mustSave(t, store, Solve{PackID: "classic", Level: 2, Steps: 31, Player: "dee"})
	mustSave(t, store, Solve{PackID: "classic", Level: 3, Steps: 1, Player: "eve"})

	solves, err := store.TopSolves("classic", 2, 3)
	if err != nil {
		t.Fatalf("TopSolves() failed: %v", err)
	}
	if len(solves) != 3 {
		t.Fatalf("Expected 3 solves, got %d", len(solves))
	}

	expected := []struct {
		steps  int
		player string
	}{
		{22, "bob"},
		{22, "cid"},
		{31, "dee"},
	}
	for i, e := range expected {
		if solves[i].Steps != e.steps || solves[i].Player != e.player {
			t.Errorf("solves[%d] = %d/%s, expected %d/%s", i, solves[i].Steps, solves[i].Player, e.steps, e.player)
		}
		if solves[i].PackID != "classic" || solves[i].Level != 2 {
			t.Errorf("solves[%d] belongs to %s/%d", i, solves[i].PackID, solves[i].Level)
		}
		if solves[i].CreatedAt.IsZero() {
			t.Errorf("solves[%d] has no timestamp", i)
		}
	}

	// Default limit.
	solves, err = store.TopSolves("classic", 2, 0)
	if err != nil {
		t.Fatalf("TopSolves() failed: %v", err)
	}
	if len(solves) != 4 {
		t.Errorf("Expected 4 solves with default limit, got %d", len(solves))
	}
}

func TestStorePackBests(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Solve{PackID: "classic", Level: 1, LevelName: "Two Rows", Steps: 9, Player: "ann"})
	mustSave(t, store, Solve{PackID: "classic", Level: 1, LevelName: "Two Rows", Steps: 7, Player: "bob"})
	mustSave(t, store, Solve{PackID: "classic", Level: 1, LevelName: "Two Rows", Steps: 7, Player: "cid"})
	mustSave(t, store, Solve{PackID: "classic", Level: 0, LevelName: "First Push", Steps: 1, Player: "ann"})
	mustSave(t, store, Solve{PackID: "switches", Level: 0, Steps: 6})

	bests, err := store.PackBests("classic")
	if err != nil {
		t.Fatalf("PackBests() failed: %v", err)
	}
	if len(bests) != 2 {
		t.Fatalf("Expected 2 levels, got %d: %+v", len(bests), bests)
	}

	if bests[0].Level != 0 || bests[0].Steps != 1 || bests[0].Solves != 1 || bests[0].LevelName != "First Push" {
		t.Errorf("bests[0] = %+v", bests[0])
	}
	// Earliest of the tied solves wins.
	if bests[1].Level != 1 || bests[1].Steps != 7 || bests[1].Player != "bob" || bests[1].Solves != 3 {
		t.Errorf("bests[1] = %+v", bests[1])
	}

	empty, err := store.PackBests("nothing")
	if err != nil {
		t.Fatalf("PackBests() failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no bests, got %+v", empty)
	}
}

func TestStoreClearSolves(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Solve{PackID: "classic", Level: 0, Steps: 5})
	mustSave(t, store, Solve{PackID: "switches", Level: 0, Steps: 6})

	if err := store.ClearSolves("classic"); err != nil {
		t.Fatalf("ClearSolves() failed: %v", err)
	}

	if _, ok, _ := store.BestSteps("classic", 0); ok {
		t.Error("classic solves should be gone")
	}
	if _, ok, _ := store.BestSteps("switches", 0); !ok {
		t.Error("switches solves should remain")
	}
}

func TestStorePackStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetPackStats("classic")
	if err != nil {
		t.Fatalf("GetPackStats() failed: %v", err)
	}
	if stats.Solves != 0 || stats.LevelsSolved != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty pack stats = %+v", stats)
	}

	mustSave(t, store, Solve{PackID: "classic", Level: 0, Steps: 5})
	mustSave(t, store, Solve{PackID: "classic", Level: 0, Steps: 3})
	mustSave(t, store, Solve{PackID: "classic", Level: 4, Steps: 60})
	mustSave(t, store, Solve{PackID: "switches", Level: 1, Steps: 8})

	stats, err = store.GetPackStats("classic")
	if err != nil {
		t.Fatalf("GetPackStats() failed: %v", err)
	}
	if stats.Solves != 3 || stats.LevelsSolved != 2 || stats.FewestSteps != 3 {
		t.Errorf("classic stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllPackStats()
	if err != nil {
		t.Fatalf("GetAllPackStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 packs, got %d", len(all))
	}
	if all["switches"] == nil || all["switches"].Solves != 1 || all["switches"].FewestSteps != 8 {
		t.Errorf("switches stats = %+v", all["switches"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.starpusher/solves.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".starpusher", "solves.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}
