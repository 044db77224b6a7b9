package db

import (
	"encoding/json"
	"fmt"
	"time"
)

// Run is one recorded coordinator run.
type Run struct {
	RunID           int64
	CreatedAt       time.Time
	InputPath       string
	WorkerCount     int
	TotalTokens     int
	DistinctWords   int
	DurationSeconds float64
	TopWords        []string
}

// InsertRun records a completed run and returns its id. topWords is stored
// as a JSON array of "word:count" strings.
func (db *DB) InsertRun(inputPath string, workerCount, totalTokens, distinctWords int, duration time.Duration, topWords []string) (int64, error) {
	topJSON, err := json.Marshal(topWords)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal top words: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO runs (input_path, worker_count, total_tokens, distinct_words, duration_seconds, top_words)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inputPath, workerCount, totalTokens, distinctWords, duration.Seconds(), string(topJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, created_at, input_path, worker_count, total_tokens, distinct_words, duration_seconds, top_words
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var topJSON string
		if err := rows.Scan(&run.RunID, &run.CreatedAt, &run.InputPath, &run.WorkerCount,
			&run.TotalTokens, &run.DistinctWords, &run.DurationSeconds, &topJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if topJSON != "" {
			if err := json.Unmarshal([]byte(topJSON), &run.TopWords); err != nil {
				return nil, fmt.Errorf("failed to parse top words for run %d: %w", run.RunID, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunByID returns a single run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var run Run
	var topJSON string
	err := db.QueryRow(`
		SELECT run_id, created_at, input_path, worker_count, total_tokens, distinct_words, duration_seconds, top_words
		FROM runs WHERE run_id = ?`, runID).
		Scan(&run.RunID, &run.CreatedAt, &run.InputPath, &run.WorkerCount,
			&run.TotalTokens, &run.DistinctWords, &run.DurationSeconds, &topJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	if topJSON != "" {
		if err := json.Unmarshal([]byte(topJSON), &run.TopWords); err != nil {
			return nil, fmt.Errorf("failed to parse top words for run %d: %w", runID, err)
		}
	}
	return &run, nil
}
