package analytics

import (
	"reflect"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}

	tests := []struct {
		name string
		text string
		want map[string]int
	}{
		{
			name: "basic",
			text: "hello world\nthis is a test",
			want: map[string]int{"hello": 1, "world": 1, "this": 1, "is": 1, "a": 1, "test": 1},
		},
		{
			name: "repeats",
			text: "hello again\nfun fun fun",
			want: map[string]int{"hello": 1, "again": 1, "fun": 3},
		},
		{
			name: "case_sensitive",
			text: "Go go GO",
			want: map[string]int{"Go": 1, "go": 1, "GO": 1},
		},
		{
			name: "punctuation_kept",
			text: "end. end end.",
			want: map[string]int{"end.": 2, "end": 1},
		},
		{
			name: "mixed_whitespace",
			text: "a\tb  c\n\nd",
			want: map[string]int{"a": 1, "b": 1, "c": 1, "d": 1},
		},
		{
			name: "empty",
			text: "",
			want: map[string]int{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := a.WordFrequency(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("WordFrequency(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTokenCount(t *testing.T) {
	a := &Analytics{}
	if got := a.TokenCount("fun fun fun\nhello"); got != 4 {
		t.Errorf("TokenCount() = %d, want 4", got)
	}
	if got := a.TokenCount(""); got != 0 {
		t.Errorf("TokenCount(\"\") = %d, want 0", got)
	}
}
