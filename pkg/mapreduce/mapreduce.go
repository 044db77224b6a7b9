package mapreduce

import "github.com/dtnitsch/distwc/pkg/analytics"

// Map generates a word frequency map for a single chunk of text.
func Map(content string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(content)
}

// Reduce aggregates a slice of word frequency maps into a single map. Absent
// keys count as zero, so the result is independent of input order.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
