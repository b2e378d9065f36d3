package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete toolkit configuration
type Config struct {
	Paths   PathsConfig   `json:"paths" yaml:"paths"`
	Fill    FillConfig    `json:"fill" yaml:"fill"`
	Quotes  QuotesConfig  `json:"quotes" yaml:"quotes"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// PathsConfig locates the input and artifact trees
type PathsConfig struct {
	InputsDir    string `json:"inputs_dir" yaml:"inputs_dir"`
	ArtifactsDir string `json:"artifacts_dir" yaml:"artifacts_dir"`
}

// FillConfig contains plan-filler buffer parameters
type FillConfig struct {
	EntryBufferPct float64 `json:"entry_buffer_pct" yaml:"entry_buffer_pct"`
	StopBufferPct  float64 `json:"stop_buffer_pct" yaml:"stop_buffer_pct"`
}

// QuotesConfig selects quote providers, tried in order
type QuotesConfig struct {
	Providers   []string `json:"providers" yaml:"providers"` // "stooq", "yahoo", "file"
	StooqSuffix string   `json:"stooq_suffix,omitempty" yaml:"stooq_suffix,omitempty"`
	PricesFile  string   `json:"prices_file,omitempty" yaml:"prices_file,omitempty"`
	Timeout     string   `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g., "10s", "1m"
}

// ParseTimeout converts the timeout string to time.Duration
func (q QuotesConfig) ParseTimeout() (time.Duration, error) {
	if q.Timeout == "" {
		return 10 * time.Second, nil
	}
	return time.ParseDuration(q.Timeout)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	CSVDir string `json:"csv_dir,omitempty" yaml:"csv_dir,omitempty"`
}

// Input file locations under Paths.InputsDir.

func (c *Config) PreferencesPath() string {
	return filepath.Join(c.Paths.InputsDir, "preferences.json")
}

func (c *Config) UniversePath() string {
	return filepath.Join(c.Paths.InputsDir, "universe.txt")
}

func (c *Config) StrategySpecPath() string {
	return filepath.Join(c.Paths.InputsDir, "strategy_spec.md")
}

func (c *Config) DataSourcesPath() string {
	return filepath.Join(c.Paths.InputsDir, "data_sources.md")
}

// Artifact locations under Paths.ArtifactsDir. Trade plans sit in the
// signals tree because the screener stage produces them.

func (c *Config) SignalsDir() string {
	return filepath.Join(c.Paths.ArtifactsDir, "signals")
}

func (c *Config) TradePlansPath() string {
	return filepath.Join(c.SignalsDir(), "trade_plans.json")
}

func (c *Config) ScreenerPath() string {
	return filepath.Join(c.SignalsDir(), "screener.json")
}

func (c *Config) ResearchDir() string {
	return filepath.Join(c.Paths.ArtifactsDir, "research")
}

func (c *Config) DailyBriefPath() string {
	return filepath.Join(c.ResearchDir(), "daily_brief.md")
}

func (c *Config) WatchlistPath() string {
	return filepath.Join(c.ResearchDir(), "watchlist.json")
}

func (c *Config) SizingDir() string {
	return filepath.Join(c.Paths.ArtifactsDir, "sizing")
}

func (c *Config) OrderSheetPath() string {
	return filepath.Join(c.SizingDir(), "order_sheet.json")
}

func (c *Config) ChecklistPath() string {
	return filepath.Join(c.SizingDir(), "risk_checklist.md")
}

func (c *Config) WorkbookPath() string {
	return filepath.Join(c.SizingDir(), "order_sheet.xlsx")
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Paths.InputsDir == "" {
		return fmt.Errorf("paths.inputs_dir is required")
	}
	if c.Paths.ArtifactsDir == "" {
		return fmt.Errorf("paths.artifacts_dir is required")
	}
	if c.Fill.EntryBufferPct < 0 || c.Fill.EntryBufferPct >= 1 {
		return fmt.Errorf("fill.entry_buffer_pct must be in [0, 1)")
	}
	if c.Fill.StopBufferPct <= 0 || c.Fill.StopBufferPct >= 1 {
		return fmt.Errorf("fill.stop_buffer_pct must be between 0 and 1")
	}
	for _, p := range c.Quotes.Providers {
		switch p {
		case "stooq", "yahoo":
		case "file":
			if c.Quotes.PricesFile == "" {
				return fmt.Errorf("quotes.prices_file required for the file provider")
			}
		default:
			return fmt.Errorf("unknown quote provider: %s", p)
		}
	}
	if _, err := c.Quotes.ParseTimeout(); err != nil {
		return fmt.Errorf("quotes.timeout: %w", err)
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if c.Journal.Type == "csv" && c.Journal.CSVDir == "" {
		return fmt.Errorf("journal csv_dir required for CSV type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			InputsDir:    "inputs",
			ArtifactsDir: "artifacts",
		},
		Fill: FillConfig{
			EntryBufferPct: 0.001,
			StopBufferPct:  0.02,
		},
		Quotes: QuotesConfig{
			Providers:   []string{"stooq", "yahoo"},
			StooqSuffix: ".us",
			Timeout:     "10s",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./sizer.sqlite",
		},
	}
}
