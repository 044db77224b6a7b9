package main

import (
	"log"
	"os"
	"time"

	"github.com/dtnitsch/distwc/internal/count"
	"github.com/dtnitsch/distwc/internal/runs"
	"github.com/dtnitsch/distwc/internal/workerd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "distwc",
		Usage: "distributed word count over a static worker pool",
		Commands: []*cli.Command{
			{
				Name:  "count",
				Usage: "split an input text across the workers and print the merged word counts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "workers",
						Usage: "comma-separated worker endpoints (host:port)",
					},
					&cli.StringFlag{
						Name:  "input",
						Usage: "path of the source text file, or - for stdin",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML cluster config (flags override file values)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "text",
						Usage: "output format: text, json or yaml",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "limit output to the N most frequent words (0 = all)",
					},
					&cli.DurationFlag{
						Name:  "dial-timeout",
						Value: 5 * time.Second,
						Usage: "per-worker connection timeout",
					},
					&cli.DurationFlag{
						Name:  "io-timeout",
						Value: 30 * time.Second,
						Usage: "per-worker request/response timeout",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "skip recording the run in the history database",
					},
					&cli.StringFlag{
						Name:  "history-db",
						Usage: "history database path (default: next to the binary)",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: count.CountAction,
			},
			{
				Name:  "worker",
				Usage: "serve word-count requests until the coordinator sends DONE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":9101",
						Usage: "bind address (host:port)",
					},
					&cli.DurationFlag{
						Name:  "io-timeout",
						Value: 30 * time.Second,
						Usage: "per-connection read/write timeout",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: workerd.WorkerAction,
			},
			{
				Name:  "runs",
				Usage: "list recorded runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 10,
						Usage: "number of runs to show",
					},
					&cli.StringFlag{
						Name:  "history-db",
						Usage: "history database path (default: next to the binary)",
					},
				},
				Action: runs.RunsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
