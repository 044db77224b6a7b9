// Package runs lists recorded coordinator runs.
package runs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/distwc/pkg/db"
	"github.com/urfave/cli/v2"
)

// RunsAction prints recent run history, newest first.
func RunsAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	var database *db.DB
	var err error
	if dbPath := c.String("history-db"); dbPath != "" {
		database, err = db.OpenAt(dbPath)
	} else {
		database, err = db.Open()
	}
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	history, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		os.Exit(2)
	}

	if len(history) == 0 {
		fmt.Println("No runs recorded yet. Run 'distwc count' first.")
		return nil
	}

	for _, run := range history {
		fmt.Printf("run %d  %s  input=%s workers=%d tokens=%d distinct=%d duration=%.2fs\n",
			run.RunID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.InputPath,
			run.WorkerCount, run.TotalTokens, run.DistinctWords, run.DurationSeconds)
		if len(run.TopWords) > 0 {
			fmt.Printf("  top: %s\n", strings.Join(run.TopWords, " "))
		}
	}
	return nil
}
