// Package workerd wires the worker service to its CLI command.
package workerd

import (
	"log/slog"
	"os"

	"github.com/dtnitsch/distwc/pkg/worker"
	"github.com/urfave/cli/v2"
)

// WorkerAction starts a worker on the configured listen address and serves
// until the coordinator sends the shutdown sentinel (or hangs up without a
// payload). Returns nil on a clean shutdown so the process exits 0.
func WorkerAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	server := worker.New(logger, c.Duration("io-timeout"))
	if err := server.Listen(c.String("listen")); err != nil {
		logger.Error("failed to listen", "addr", c.String("listen"), "error", err)
		os.Exit(2)
	}

	if err := server.Serve(); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(2)
	}
	return nil
}
