package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config holds persistent viewer settings stored at <profileDir>/table.json.
type Config struct {
	Theme  string `json:"theme,omitempty"` // empty follows the terminal background
	Source string `json:"source,omitempty"`

	RowHeight     int  `json:"row_height"`
	Overscan      int  `json:"overscan"`
	VariableRows  bool `json:"variable_rows"`
	DebounceMS    int  `json:"debounce_ms"`
	DisableHeader bool `json:"disable_header"`
	ResetSizes    bool `json:"reset_sizes"`
	MeasureMargin int  `json:"measure_margin"`
	Scrollbar     bool `json:"scrollbar"`

	// MarkdownColumns are rendered with glamour.
	MarkdownColumns []string `json:"markdown_columns,omitempty"`
	// ColumnWidths override the widths derived from content, by key.
	ColumnWidths map[string]int `json:"column_widths,omitempty"`
	// MarkdownStyle is a glamour standard style; empty follows the terminal.
	MarkdownStyle string `json:"markdown_style,omitempty"`
}

const filename = "table.json"

// Load reads <profileDir>/table.json and returns the parsed Config.
// If the file is absent or unreadable, a default Config is returned.
func Load(profileDir string) Config {
	cfg := Defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults()
	}
	return cfg
}

// Save writes cfg to <profileDir>/table.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Defaults returns the settings used when no file exists. Terminal lines
// are whole, so no measure margin is needed by default.
func Defaults() Config {
	return Config{
		Source:        "git:.",
		RowHeight:     1,
		Overscan:      1,
		VariableRows:  true,
		DebounceMS:    50,
		MeasureMargin: 0,
		Scrollbar:     true,
	}
}

// Debounce returns DebounceMS as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// IsMarkdown reports whether the column with key renders markdown.
func (c Config) IsMarkdown(key string) bool {
	for _, k := range c.MarkdownColumns {
		if k == key {
			return true
		}
	}
	return false
}
