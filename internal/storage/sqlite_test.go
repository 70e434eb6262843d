package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/escape/internal/game"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreRecordUpsert(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Record(1); err != nil || ok {
		t.Fatalf("Record(1) = %v, %v; expected absent", ok, err)
	}

	if err := store.SaveRecord(1, game.Record{Tenths: 500, Holder: "ABC"}); err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}
	if err := store.SaveRecord(1, game.Record{Tenths: 423, Holder: "XYZ"}); err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}
	if err := store.SaveRecord(3, game.Record{Tenths: 91, Holder: "Q"}); err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}

	r, ok, err := store.Record(1)
	if err != nil || !ok {
		t.Fatalf("Record(1) = %v, %v", ok, err)
	}
	if r != (game.Record{Tenths: 423, Holder: "XYZ"}) {
		t.Errorf("Record(1) = %+v, expected the overwrite", r)
	}

	all, err := store.AllRecords()
	if err != nil {
		t.Fatalf("AllRecords() failed: %v", err)
	}
	if len(all) != 2 || all[0].LevelID != 1 || all[1].LevelID != 3 {
		t.Fatalf("AllRecords() = %+v, expected levels 1 and 3", all)
	}
	if all[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}

	loaded, err := store.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords() failed: %v", err)
	}
	want := map[int]game.Record{
		1: {Tenths: 423, Holder: "XYZ"},
		3: {Tenths: 91, Holder: "Q"},
	}
	if !reflect.DeepEqual(loaded, want) {
		t.Errorf("LoadRecords() = %v, expected %v", loaded, want)
	}

	if err := store.DeleteRecord(3); err != nil {
		t.Fatalf("DeleteRecord() failed: %v", err)
	}
	if _, ok, _ := store.Record(3); ok {
		t.Error("record 3 should be gone")
	}
}

func TestStoreUnlocked(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveUnlocked(); err != nil {
		t.Fatalf("SaveUnlocked() with no ids failed: %v", err)
	}
	if err := store.SaveUnlocked(3, 2); err != nil {
		t.Fatalf("SaveUnlocked() failed: %v", err)
	}
	if err := store.SaveUnlocked(2, 5); err != nil {
		t.Fatalf("SaveUnlocked() repeat failed: %v", err)
	}

	ids, err := store.LoadUnlocked()
	if err != nil {
		t.Fatalf("LoadUnlocked() failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{2, 3, 5}) {
		t.Errorf("LoadUnlocked() = %v, expected [2 3 5]", ids)
	}
}

func TestStoreCompletions(t *testing.T) {
	store := openTestStore(t)

	for _, tenths := range []int{300, 100, 200} {
		if err := store.SaveCompletion(2, tenths); err != nil {
			t.Fatalf("SaveCompletion() failed: %v", err)
		}
	}

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	st, ok := stats[2]
	if !ok {
		t.Fatal("expected stats for level 2")
	}
	if st.Completions != 3 || st.BestTenths != 100 || st.AvgTenths != 200 {
		t.Errorf("stats = %+v", st)
	}
	if _, ok := stats[1]; ok {
		t.Error("level 1 was never completed")
	}
}

func TestStoreClearProgress(t *testing.T) {
	store := openTestStore(t)
	store.SaveRecord(1, game.Record{Tenths: 10, Holder: "A"})
	store.SaveUnlocked(2)
	store.SaveCompletion(1, 10)

	if err := store.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}

	recs, _ := store.LoadRecords()
	ids, _ := store.LoadUnlocked()
	stats, _ := store.AllLevelStats()
	if len(recs) != 0 || len(ids) != 0 || len(stats) != 0 {
		t.Errorf("after ClearProgress: records=%v unlocked=%v stats=%v", recs, ids, stats)
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "progress.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	store.SaveRecord(4, game.Record{Tenths: 77, Holder: "ZED"})
	store.SaveUnlocked(4)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if r, ok, _ := store.Record(4); !ok || r.Holder != "ZED" {
		t.Errorf("Record(4) = %+v, %v after reopen", r, ok)
	}
	if ids, _ := store.LoadUnlocked(); !reflect.DeepEqual(ids, []int{4}) {
		t.Errorf("LoadUnlocked() = %v after reopen", ids)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
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
