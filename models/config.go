// Package models defines data structures for configuration and run output.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClusterConfig holds the static cluster layout for a coordinator run.
// Values may come from a YAML file, CLI flags, or both; flags win.
type ClusterConfig struct {
	// Workers lists the worker endpoints as host:port strings. The input
	// is split into exactly one chunk per worker.
	Workers []string `yaml:"workers"`

	// Input is the path of the source text file. "-" reads stdin.
	Input string `yaml:"input"`

	// DialTimeoutSeconds bounds each connection attempt.
	DialTimeoutSeconds float64 `yaml:"dial_timeout_seconds"`

	// IOTimeoutSeconds bounds each request/response exchange.
	IOTimeoutSeconds float64 `yaml:"io_timeout_seconds"`
}

// LoadConfig reads a ClusterConfig from a YAML file.
func LoadConfig(path string) (*ClusterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var config ClusterConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}
