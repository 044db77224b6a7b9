package mapreduce

import (
	"fmt"
	"io"
	"sort"
)

// WordCount is one (word, count) pair of a sorted frequency table.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// SortedCounts flattens a frequency map into pairs ordered by count
// descending, ties broken by word ascending, so output is deterministic.
// A non-positive limit returns every pair.
func SortedCounts(wordCounts map[string]int, limit int) []WordCount {
	pairs := make([]WordCount, 0, len(wordCounts))
	for w, c := range wordCounts {
		pairs = append(pairs, WordCount{Word: w, Count: c})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Word < pairs[j].Word
	})

	if limit > 0 && limit < len(pairs) {
		pairs = pairs[:limit]
	}
	return pairs
}

// PrintCounts writes the sorted pairs to w, one "word count" line each.
func PrintCounts(w io.Writer, wordCounts map[string]int, limit int) {
	for _, pair := range SortedCounts(wordCounts, limit) {
		fmt.Fprintf(w, "%s %d\n", pair.Word, pair.Count)
	}
}

// TopKeywords formats the top-n pairs as "word:count" strings for compact
// summaries and run history.
func TopKeywords(wordCounts map[string]int, n int) []string {
	pairs := SortedCounts(wordCounts, n)
	keywords := make([]string, len(pairs))
	for i, pair := range pairs {
		keywords[i] = fmt.Sprintf("%s:%d", pair.Word, pair.Count)
	}
	return keywords
}
