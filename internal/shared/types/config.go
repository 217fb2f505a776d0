package types

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	PlanPath    string `json:"plan_path" yaml:"plan_path" toml:"plan_path"`
	SheetName   string `json:"sheet_name" yaml:"sheet_name" toml:"sheet_name"`
	OutputDir   string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	LogPath     string `json:"log_path" yaml:"log_path" toml:"log_path"`
	TransferDay int    `json:"transfer_day" yaml:"transfer_day" toml:"transfer_day"`
	Timezone    string `json:"timezone" yaml:"timezone" toml:"timezone"`
	PreparedFor string `json:"prepared_for" yaml:"prepared_for" toml:"prepared_for"`
	EnvFile     string `json:"env_file" yaml:"env_file" toml:"env_file"`

	// Telegram credentials normally come from the environment or .env file.
	BotToken string `json:"bot_token" yaml:"bot_token" toml:"bot_token"`
	ChatID   string `json:"chat_id" yaml:"chat_id" toml:"chat_id"`
}

const (
	DefaultPlanPath    = "data/Mom_Care_Monthly_Support_Plan.xlsx"
	DefaultSheetName   = "Mom Monthly Support Plan"
	DefaultOutputDir   = "out"
	DefaultLogPath     = "data/logs.csv"
	DefaultTransferDay = 1
	DefaultTimezone    = "Europe/London"
	DefaultEnvFile     = ".env"
)

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		PlanPath:    DefaultPlanPath,
		SheetName:   DefaultSheetName,
		OutputDir:   DefaultOutputDir,
		LogPath:     DefaultLogPath,
		TransferDay: DefaultTransferDay,
		Timezone:    DefaultTimezone,
		EnvFile:     DefaultEnvFile,
	}
}

// Merge copies every non-zero field of other onto c.
func (c *Config) Merge(other Config) {
	if other.PlanPath != "" {
		c.PlanPath = other.PlanPath
	}
	if other.SheetName != "" {
		c.SheetName = other.SheetName
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.LogPath != "" {
		c.LogPath = other.LogPath
	}
	if other.TransferDay != 0 {
		c.TransferDay = other.TransferDay
	}
	if other.Timezone != "" {
		c.Timezone = other.Timezone
	}
	if other.PreparedFor != "" {
		c.PreparedFor = other.PreparedFor
	}
	if other.EnvFile != "" {
		c.EnvFile = other.EnvFile
	}
	if other.BotToken != "" {
		c.BotToken = other.BotToken
	}
	if other.ChatID != "" {
		c.ChatID = other.ChatID
	}
}

// Validate checks the fields the scheduler depends on.
func (c Config) Validate() error {
	if c.TransferDay < 1 || c.TransferDay > 31 {
		return fmt.Errorf("transfer day must be between 1 and 31, got %d", c.TransferDay)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
