// Package chunker splits input text into contiguous line groups, one per
// worker.
package chunker

import (
	"fmt"
	"math"
	"strings"
)

// Split partitions text into exactly n chunks of whole lines. Boundaries are
// round(i*lines/n), so chunk sizes differ by at most one line and joining the
// chunks back with newlines reproduces the original line sequence. When the
// text has fewer lines than n, trailing chunks are empty strings; callers
// still dispatch them.
func Split(text string, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("chunker: worker count must be >= 1, got %d", n)
	}

	lines := strings.Split(text, "\n")
	total := len(lines)

	chunks := make([]string, n)
	for i := 0; i < n; i++ {
		lo := boundary(i, total, n)
		hi := boundary(i+1, total, n)
		chunks[i] = strings.Join(lines[lo:hi], "\n")
	}
	return chunks, nil
}

func boundary(i, total, n int) int {
	return int(math.Round(float64(i) * float64(total) / float64(n)))
}
