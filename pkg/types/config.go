// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// DefaultDir returns the fixed knowledge directory the tool operates on when
// no directory is given: knowledge/servicenow, joined with the platform
// separator.
func DefaultDir() string {
	return filepath.Join("knowledge", "servicenow")
}

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// Dir is the directory scanned for *.pdf files; outputs are written as
	// siblings with a .txt extension.
	Dir string `json:"dir" yaml:"dir"`
}

// IndexConfig holds settings for the text index stage.
type IndexConfig struct {
	// Dir is the directory containing converted .txt files.
	Dir string `json:"dir" yaml:"dir"`

	// IndexDir is where the SQLite database and exports live
	// (default: Dir/index).
	IndexDir string `json:"index_dir,omitempty" yaml:"index_dir,omitempty"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// WatchConfig holds settings for the watch stage.
type WatchConfig struct {
	// Dir is the directory monitored for new PDFs.
	Dir string `json:"dir" yaml:"dir"`

	// SettleDelay is how long to wait after a file event before converting,
	// so that files still being copied in have a chance to finish (default 1s).
	SettleDelay time.Duration `json:"settle_delay" yaml:"settle_delay"`
}

// Config groups all stage configurations.
type Config struct {
	Convert ConversionConfig `json:"convert" yaml:"convert"`
	Index   IndexConfig      `json:"index" yaml:"index"`
	Watch   WatchConfig      `json:"watch" yaml:"watch"`
}
