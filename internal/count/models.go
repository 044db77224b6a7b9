package count

import "github.com/dtnitsch/distwc/pkg/mapreduce"

// FinalOutput is the structured output for one coordinator run.
type FinalOutput struct {
	Status string                `json:"status" yaml:"status"`
	Counts []mapreduce.WordCount `json:"counts" yaml:"counts"`
	Stats  Stats                 `json:"stats" yaml:"stats"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	Workers          int      `json:"workers" yaml:"workers"`
	TotalTokens      int      `json:"total_tokens" yaml:"total_tokens"`
	DistinctWords    int      `json:"distinct_words" yaml:"distinct_words"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopWords         []string `json:"top_words,omitempty" yaml:"top_words,omitempty"`
}
