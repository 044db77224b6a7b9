// Package analytics computes word-frequency tables over text.
package analytics

import "strings"

type Analytics struct{}

// WordFrequency counts whitespace-delimited tokens. Tokens are matched
// exactly: case-sensitive, no punctuation stripping. Tables computed on
// different workers only merge correctly because every worker applies the
// same tokenization, so no normalization happens here.
func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(text) // handles runs of spaces, tabs and newlines
	frequencies := make(map[string]int)

	for _, word := range words {
		frequencies[word]++
	}

	return frequencies
}

// TokenCount returns the total number of tokens in text.
func (a *Analytics) TokenCount(text string) int {
	return len(strings.Fields(text))
}
