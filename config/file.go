package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pevans/newsscrape/scraper"
	"gopkg.in/yaml.v3"
)

// OutputConfig controls where exports are written.
type OutputConfig struct {
	Dir             string `yaml:"dir"`
	SpreadsheetName string `yaml:"spreadsheet_name"`
}

// HistoryConfig locates the run history database.
type HistoryConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls log verbosity and an optional log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// RetryConfig controls the pause between failed scrape attempts. The number
// of attempts is fixed.
type RetryConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// FileConfig represents the structure of newsscrape.yaml.
type FileConfig struct {
	Site    scraper.SiteConfig `yaml:"site"`
	Output  OutputConfig       `yaml:"output"`
	History HistoryConfig      `yaml:"history"`
	Logging LoggingConfig      `yaml:"logging"`
	Retry   RetryConfig        `yaml:"retry"`
	Input   Input              `yaml:"input"`
}

// Default returns the configuration used when no file is present.
func Default() *FileConfig {
	return &FileConfig{
		Site: scraper.DefaultSiteConfig(),
		Output: OutputConfig{
			Dir:             "output",
			SpreadsheetName: "all_news_data.xlsx",
		},
		History: HistoryConfig{DSN: "output/history.db"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from path on top of Default. A missing file is
// not an error. Returns an error if the file exists but cannot be parsed.
func Load(path string) (*FileConfig, error) {
	cfg := Default()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
