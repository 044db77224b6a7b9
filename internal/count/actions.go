package count

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dtnitsch/distwc/internal/common"
	"github.com/dtnitsch/distwc/models"
	"github.com/dtnitsch/distwc/pkg/coordinator"
	"github.com/dtnitsch/distwc/pkg/db"
	"github.com/dtnitsch/distwc/pkg/mapreduce"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const topWordsHistoryLimit = 25

// CountAction runs one coordinator pass: split the input across the
// configured workers, merge their tables, report the aggregate, and record
// the run in history.
func CountAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config := &models.ClusterConfig{
		DialTimeoutSeconds: c.Duration("dial-timeout").Seconds(),
		IOTimeoutSeconds:   c.Duration("io-timeout").Seconds(),
	}

	if c.IsSet("config") {
		fileConfig, err := models.LoadConfig(c.String("config"))
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(2)
		}
		config.Workers = fileConfig.Workers
		if fileConfig.Input != "" {
			config.Input = fileConfig.Input
		}
		if fileConfig.DialTimeoutSeconds > 0 {
			config.DialTimeoutSeconds = fileConfig.DialTimeoutSeconds
		}
		if fileConfig.IOTimeoutSeconds > 0 {
			config.IOTimeoutSeconds = fileConfig.IOTimeoutSeconds
		}
	}

	if c.IsSet("workers") {
		config.Workers = strings.Split(c.String("workers"), ",")
	}
	if c.IsSet("input") {
		config.Input = c.String("input")
	}

	if len(config.Workers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No worker endpoints provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  distwc count --workers "127.0.0.1:9101,127.0.0.1:9102" --input corpus.txt`)
		fmt.Fprintln(os.Stderr, `  distwc count --config cluster.yaml`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: distwc count --help")
		os.Exit(2)
	}
	if config.Input == "" {
		fmt.Fprintln(os.Stderr, "Error: No input provided (use --input <file> or --input -)")
		os.Exit(2)
	}

	endpoints, invalid := common.SanitizeAndValidateEndpoints(config.Workers)
	if len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d worker endpoint(s) are malformed (even after cleanup):\n", len(invalid))
		for _, bad := range invalid {
			fmt.Fprintf(os.Stderr, "  - %q\n", bad)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Endpoints must be host:port pairs, e.g. 127.0.0.1:9101")
		os.Exit(2)
	}

	text, err := readInput(config.Input)
	if err != nil {
		logger.Error("failed to read input", "input", config.Input, "error", err)
		os.Exit(2)
	}

	coord := coordinator.New(logger, coordinator.Config{
		Endpoints:   endpoints,
		DialTimeout: time.Duration(config.DialTimeoutSeconds * float64(time.Second)),
		IOTimeout:   time.Duration(config.IOTimeoutSeconds * float64(time.Second)),
	})

	aggregate, err := coord.Run(text)
	if err != nil {
		var unavailable *coordinator.WorkerUnavailableError
		if errors.As(err, &unavailable) {
			logger.Error("run failed, one or more workers unavailable", "error", err)
			os.Exit(1)
		}
		logger.Error("run failed", "error", err)
		os.Exit(2)
	}

	totalTokens := 0
	for _, count := range aggregate {
		totalTokens += count
	}
	stats := Stats{
		Workers:          len(endpoints),
		TotalTokens:      totalTokens,
		DistinctWords:    len(aggregate),
		TotalTimeSeconds: time.Since(startTime).Seconds(),
		TopWords:         mapreduce.TopKeywords(aggregate, topWordsHistoryLimit),
	}

	if err := printOutput(c.String("format"), aggregate, c.Int("top"), stats); err != nil {
		logger.Error("failed to write output", "error", err)
		os.Exit(2)
	}

	if !c.Bool("no-history") {
		recordRun(logger, c.String("history-db"), config.Input, stats, startTime)
	}

	return nil
}

// readInput loads the source text from a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printOutput(format string, aggregate map[string]int, top int, stats Stats) error {
	switch format {
	case "", "text":
		mapreduce.PrintCounts(os.Stdout, aggregate, top)
		return nil
	case "json":
		output := FinalOutput{
			Status: "success",
			Counts: mapreduce.SortedCounts(aggregate, top),
			Stats:  stats,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case "yaml":
		output := FinalOutput{
			Status: "success",
			Counts: mapreduce.SortedCounts(aggregate, top),
			Stats:  stats,
		}
		data, err := yaml.Marshal(output)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Print(string(data))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// recordRun appends the run to the history database. History failures are
// logged and otherwise ignored: the count already succeeded.
func recordRun(logger *slog.Logger, dbPath, inputPath string, stats Stats, startTime time.Time) {
	var database *db.DB
	var err error
	if dbPath != "" {
		database, err = db.OpenAt(dbPath)
	} else {
		database, err = db.Open()
	}
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.InsertRun(inputPath, stats.Workers, stats.TotalTokens,
		stats.DistinctWords, time.Since(startTime), stats.TopWords)
	if err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}
	logger.Info("Run recorded", "run_id", runID, "db", database.Path())
}
