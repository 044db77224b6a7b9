// Package coordinator drives a word-count run: it splits the input across
// the configured workers, collects their partial tables, merges them, and
// finally tells every reachable worker to shut down.
package coordinator

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/dtnitsch/distwc/pkg/chunker"
	"github.com/dtnitsch/distwc/pkg/mapreduce"
	"github.com/dtnitsch/distwc/pkg/wire"
)

// WorkerUnavailableError reports a worker that could not be reached or did
// not answer its work request. The run fails but other workers are still
// contacted and shut down.
type WorkerUnavailableError struct {
	Endpoint string
	Err      error
}

func (e *WorkerUnavailableError) Error() string {
	return fmt.Sprintf("worker %s unavailable: %v", e.Endpoint, e.Err)
}

func (e *WorkerUnavailableError) Unwrap() error { return e.Err }

// Config holds one run's inputs. Endpoints is the static worker list; the
// input is split into exactly one chunk per endpoint.
type Config struct {
	Endpoints   []string
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// Coordinator owns the connections of a single run. Safe to reuse for
// repeated runs against the same worker set as long as the workers have not
// been shut down.
type Coordinator struct {
	logger *slog.Logger
	cfg    Config
}

func New(logger *slog.Logger, cfg Config) *Coordinator {
	return &Coordinator{logger: logger, cfg: cfg}
}

type partial struct {
	endpoint string
	table    map[string]int
	err      error
}

// Run distributes text across the workers and returns the merged table.
//
// All workers are contacted concurrently, one connection per worker carrying
// exactly one chunk. Shutdown sentinels are sent only after every response
// has been collected, and only to workers that answered; unreachable workers
// are reported together via joined WorkerUnavailableError values, in which
// case no aggregate is returned.
func (c *Coordinator) Run(text string) (map[string]int, error) {
	n := len(c.cfg.Endpoints)
	if n == 0 {
		return nil, errors.New("coordinator: no worker endpoints configured")
	}

	chunks, err := chunker.Split(text, n)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Dispatching chunks", "workers", n)
	results := make(chan partial, n)
	var wg sync.WaitGroup
	for i, endpoint := range c.cfg.Endpoints {
		wg.Add(1)
		go func(endpoint, chunk string) {
			defer wg.Done()
			table, err := c.countOn(endpoint, chunk)
			results <- partial{endpoint: endpoint, table: table, err: err}
		}(endpoint, chunks[i])
	}
	wg.Wait()
	close(results)

	var tables []map[string]int
	unavailable := map[string]bool{}
	var errs []error
	for res := range results {
		if res.err != nil {
			c.logger.Error("Worker failed", "endpoint", res.endpoint, "error", res.err)
			unavailable[res.endpoint] = true
			errs = append(errs, &WorkerUnavailableError{Endpoint: res.endpoint, Err: res.err})
			continue
		}
		tables = append(tables, res.table)
	}

	// Every response is in; healthy workers may now be released. Workers
	// already diagnosed unreachable are skipped.
	for _, endpoint := range c.cfg.Endpoints {
		if unavailable[endpoint] {
			continue
		}
		if err := c.sendDone(endpoint); err != nil {
			c.logger.Warn("Failed to deliver shutdown sentinel", "endpoint", endpoint, "error", err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return mapreduce.Reduce(tables), nil
}

// countOn sends one chunk to endpoint and reads back its frequency table.
func (c *Coordinator) countOn(endpoint, chunk string) (map[string]int, error) {
	conn, err := c.dial(endpoint)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := wire.WritePayload(conn, wire.Chunk{Text: chunk}); err != nil {
		return nil, fmt.Errorf("send chunk: %w", err)
	}

	payload, err := wire.ReadPayload(conn)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	table, ok := payload.(wire.Table)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload %T", payload)
	}
	return table, nil
}

// sendDone opens a fresh connection to deliver the shutdown sentinel.
func (c *Coordinator) sendDone(endpoint string) error {
	conn, err := c.dial(endpoint)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := wire.WritePayload(conn, wire.Done{}); err != nil {
		return fmt.Errorf("send sentinel: %w", err)
	}
	return nil
}

func (c *Coordinator) dial(endpoint string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: c.cfg.DialTimeout}
	conn, err := dialer.Dial("tcp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	if c.cfg.IOTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.cfg.IOTimeout))
	}
	return conn, nil
}
