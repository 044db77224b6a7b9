package db

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	return db
}

func TestInsertAndGetRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	topWords := []string{"fun:3", "hello:2"}
	runID, err := db.InsertRun("corpus.txt", 2, 12, 8, 1500*time.Millisecond, topWords)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("InsertRun() returned 0 run ID")
	}

	run, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}
	if run.InputPath != "corpus.txt" {
		t.Errorf("run.InputPath = %q, want %q", run.InputPath, "corpus.txt")
	}
	if run.WorkerCount != 2 {
		t.Errorf("run.WorkerCount = %d, want 2", run.WorkerCount)
	}
	if run.TotalTokens != 12 {
		t.Errorf("run.TotalTokens = %d, want 12", run.TotalTokens)
	}
	if run.DistinctWords != 8 {
		t.Errorf("run.DistinctWords = %d, want 8", run.DistinctWords)
	}
	if run.DurationSeconds != 1.5 {
		t.Errorf("run.DurationSeconds = %v, want 1.5", run.DurationSeconds)
	}
	if !reflect.DeepEqual(run.TopWords, topWords) {
		t.Errorf("run.TopWords = %v, want %v", run.TopWords, topWords)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i := 0; i < 3; i++ {
		if _, err := db.InsertRun("corpus.txt", 2, 10, 5, time.Second, nil); err != nil {
			t.Fatalf("InsertRun() #%d error = %v", i, err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].RunID <= runs[1].RunID {
		t.Errorf("runs not newest first: %d then %d", runs[0].RunID, runs[1].RunID)
	}
}

func TestListRunsEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("ListRuns() on empty db = %v, want none", runs)
	}
}
