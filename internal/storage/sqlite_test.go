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

func sampleRun(mapID string, found bool, pathLen int) RunEntry {
	return RunEntry{
		MapID:      mapID,
		StartX:     0, StartY: 0,
		EndX:       4, EndY: 4,
		Metric:     "manhattan",
		Moves:      "cardinal",
		Found:      found,
		PathLen:    pathLen,
		Expanded:   pathLen * 2,
		DurationMS: 3,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, run := range []RunEntry{
		sampleRun("open", true, 9),
		sampleRun("open", true, 11),
		sampleRun("open", false, 0),
		sampleRun("chamber", true, 14),
	} {
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RunsForMap("open", 10)
	if err != nil {
		t.Fatalf("RunsForMap() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 open runs, got %d", len(runs))
	}

	// Most recent first
	if runs[0].Found || runs[0].PathLen != 0 {
		t.Errorf("Expected the failed run first, got %+v", runs[0])
	}
	if runs[2].PathLen != 9 {
		t.Errorf("Expected oldest run last, got path_len %d", runs[2].PathLen)
	}
	if runs[2].Metric != "manhattan" || runs[2].Moves != "cardinal" {
		t.Errorf("Run parameters not round-tripped: %+v", runs[2])
	}

	all, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 total runs, got %d", len(all))
	}
	if all[0].MapID != "chamber" {
		t.Errorf("Expected most recent run first, got map %q", all[0].MapID)
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(sampleRun("open", true, 9+i)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].PathLen != 13 {
		t.Errorf("Expected newest run first, got path_len %d", runs[0].PathLen)
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestRun("open")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil best run for empty map, got %+v", best)
	}

	store.SaveRun(sampleRun("open", true, 12))
	store.SaveRun(sampleRun("open", false, 0))
	store.SaveRun(sampleRun("open", true, 9))
	store.SaveRun(sampleRun("open", true, 15))

	best, err = store.BestRun("open")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil {
		t.Fatal("Expected a best run")
	}
	if !best.Found || best.PathLen != 9 {
		t.Errorf("Expected shortest found run (9), got %+v", best)
	}
}

func TestStoreMapStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("open", true, 9))
	store.SaveRun(sampleRun("open", true, 11))
	store.SaveRun(sampleRun("open", false, 0))

	stats, err := store.GetMapStats("open")
	if err != nil {
		t.Fatalf("GetMapStats() failed: %v", err)
	}

	if stats.RunsCount != 3 {
		t.Errorf("Expected 3 runs, got %d", stats.RunsCount)
	}
	if stats.FoundCount != 2 {
		t.Errorf("Expected 2 found runs, got %d", stats.FoundCount)
	}
	if stats.BestPathLen != 9 {
		t.Errorf("Expected best path length 9, got %d", stats.BestPathLen)
	}
	if stats.AvgExpanded <= 0 {
		t.Errorf("Expected positive average expanded, got %f", stats.AvgExpanded)
	}

	// Map with no runs
	empty, err := store.GetMapStats("ghost")
	if err != nil {
		t.Fatalf("GetMapStats() for empty map failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.BestPathLen != 0 {
		t.Errorf("Expected zeroed stats for empty map, got %+v", empty)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("open", true, 9))
	store.SaveRun(sampleRun("open", true, 11))
	store.SaveRun(sampleRun("chamber", true, 14))

	if err := store.ClearRuns("open"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	openRuns, _ := store.RunsForMap("open", 10)
	if len(openRuns) != 0 {
		t.Errorf("Expected 0 open runs after clear, got %d", len(openRuns))
	}

	chamberRuns, _ := store.RunsForMap("chamber", 10)
	if len(chamberRuns) != 1 {
		t.Errorf("Chamber runs should not be affected by clearing open")
	}
}
