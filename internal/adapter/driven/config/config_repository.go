package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/momcarebot/internal/domain/repository"
	"github.com/diillson/momcarebot/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Environment variables read on top of the config file.
const (
	EnvBotToken    = "TELEGRAM_BOT_TOKEN"
	EnvChatID      = "TELEGRAM_CHAT_ID"
	EnvPlanPath    = "MOMCARE_PLAN_PATH"
	EnvOutputDir   = "MOMCARE_OUTPUT_DIR"
	EnvLogPath     = "MOMCARE_LOG_PATH"
	EnvTransferDay = "MOMCARE_TRANSFER_DAY"
	EnvTimezone    = "MOMCARE_TIMEZONE"
	EnvPreparedFor = "MOMCARE_PREPARED_FOR"
)

// ConfigRepositoryImpl layers file, dotenv and environment settings over the defaults.
type ConfigRepositoryImpl struct {
	getenv func(string) string
}

// NewConfigRepository creates a ConfigRepository reading the process environment.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{getenv: os.Getenv}
}

// Load builds the effective configuration: defaults, then the optional config
// file, then the .env file, then the process environment.
func (r *ConfigRepositoryImpl) Load(filePath string) (*types.Config, error) {
	cfg := types.DefaultConfig()

	if filePath != "" {
		fileCfg, err := r.LoadConfigFile(filePath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(*fileCfg)
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading env file %s: %w", cfg.EnvFile, err)
	}

	envCfg, err := r.fromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Merge(envCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a TOML, YAML or JSON config file, chosen by extension.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

func (r *ConfigRepositoryImpl) fromEnv() (types.Config, error) {
	cfg := types.Config{
		BotToken:    r.getenv(EnvBotToken),
		ChatID:      r.getenv(EnvChatID),
		PlanPath:    r.getenv(EnvPlanPath),
		OutputDir:   r.getenv(EnvOutputDir),
		LogPath:     r.getenv(EnvLogPath),
		Timezone:    r.getenv(EnvTimezone),
		PreparedFor: r.getenv(EnvPreparedFor),
	}
	if day := strings.TrimSpace(r.getenv(EnvTransferDay)); day != "" {
		n, err := strconv.Atoi(day)
		if err != nil {
			return types.Config{}, fmt.Errorf("invalid %s %q: %w", EnvTransferDay, day, err)
		}
		cfg.TransferDay = n
	}
	return cfg, nil
}
