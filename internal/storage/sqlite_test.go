package storage

import (
	"errors"
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Score: 100, CalibrationHz: 440, Source: "keys"},
		{Score: 50, CalibrationHz: 220, Source: "tone"},
		{Score: 200, CalibrationHz: 330.5, Source: "wav", EndOption: "MAIN_MENU"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	wantScores := []int{200, 100, 50}
	for i, want := range wantScores {
		if top[i].Score != want {
			t.Errorf("run %d: score = %d, want %d", i, top[i].Score, want)
		}
	}
	if top[0].CalibrationHz != 330.5 || top[0].Source != "wav" || top[0].EndOption != "MAIN_MENU" {
		t.Errorf("best run fields = %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveRun(Run{Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(top))
	}
	if top[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", top[0].Score)
	}

	// Non-positive limits fall back to 10
	top, err = store.TopRuns(0)
	if err != nil {
		t.Fatalf("TopRuns(0) failed: %v", err)
	}
	if len(top) != 10 {
		t.Errorf("Expected 10 runs for default limit, got %d", len(top))
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 with no runs, got %d", best)
	}

	for _, score := range []int{12, 87, 40} {
		store.SaveRun(Run{Score: score})
	}

	best, err = store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 87 {
		t.Errorf("Expected best 87, got %d", best)
	}
}

func TestStoreSetEndOption(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Score: 30, Source: "keys"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.SetEndOption(id, "PLAY_AGAIN"); err != nil {
		t.Fatalf("SetEndOption() failed: %v", err)
	}
	top, _ := store.TopRuns(1)
	if top[0].EndOption != "PLAY_AGAIN" {
		t.Errorf("EndOption = %q, want PLAY_AGAIN", top[0].EndOption)
	}

	if err := store.SetEndOption(id+100, "MAIN_MENU"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreStatsAndClear(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 20, 30} {
		store.SaveRun(Run{Score: score})
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 3 || st.BestScore != 30 || st.AvgScore != 20 {
		t.Errorf("Stats = %+v", st)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed not populated")
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	st, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 0 || st.BestScore != 0 {
		t.Errorf("Stats after clear = %+v", st)
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
