package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Load    LoaderConfig  `json:"load" yaml:"load"`
	Display DisplayConfig `json:"display" yaml:"display"`
	Filters FilterConfig  `json:"filters" yaml:"filters"`
	Search  SearchConfig  `json:"search" yaml:"search"`
}

// LoaderConfig holds history loading options.
type LoaderConfig struct {
	GraceMillis int    `json:"graceMillis" yaml:"graceMillis"` // Default: 5000
	PollMillis  int    `json:"pollMillis" yaml:"pollMillis"`   // Default: 500
	Backend     string `json:"backend" yaml:"backend"`         // "go-git" or "git-cli"
}

// Grace returns the startup grace period.
func (c LoaderConfig) Grace() time.Duration {
	return time.Duration(c.GraceMillis) * time.Millisecond
}

// Poll returns the startup re-check interval.
func (c LoaderConfig) Poll() time.Duration {
	return time.Duration(c.PollMillis) * time.Millisecond
}

// DisplayConfig holds the placeholders shown when data cannot be presented.
type DisplayConfig struct {
	BinaryMarker      string `json:"binaryMarker" yaml:"binaryMarker"`
	UnavailableMarker string `json:"unavailableMarker" yaml:"unavailableMarker"`
	AbsentMarker      string `json:"absentMarker" yaml:"absentMarker"`
	MaxContentBytes   int64  `json:"maxContentBytes" yaml:"maxContentBytes"`
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// SearchConfig holds the default summary patterns for log --grep.
type SearchConfig struct {
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Load: LoaderConfig{
			GraceMillis: 5000,
			PollMillis:  500,
			Backend:     "go-git",
		},
		Display: DisplayConfig{
			BinaryMarker:      "binary content, not displayable",
			UnavailableMarker: "content unavailable",
			AbsentMarker:      "not found",
			MaxContentBytes:   1 << 20,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Search: SearchConfig{
			Patterns: []string{},
		},
	}
}

var fileNames = []string{".histview.json", ".histview.yaml", ".histview.yml"}

// Discover returns the first config file found in dir and then in the home
// directory, or "" when there is none.
func Discover(dir string) string {
	dirs := []string{dir}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, d := range dirs {
		for _, name := range fileNames {
			p := filepath.Join(d, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = Discover(".")
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values that would make the browser unusable.
func (c *Config) Validate() error {
	if c.Load.GraceMillis < 0 {
		return fmt.Errorf("load.graceMillis must not be negative: %d", c.Load.GraceMillis)
	}
	if c.Load.PollMillis <= 0 {
		return fmt.Errorf("load.pollMillis must be positive: %d", c.Load.PollMillis)
	}
	if c.Display.MaxContentBytes < 0 {
		return fmt.Errorf("display.maxContentBytes must not be negative: %d", c.Display.MaxContentBytes)
	}
	return nil
}

// SaveConfig saves configuration to a file. The extension selects the format.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
