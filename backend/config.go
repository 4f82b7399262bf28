package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr       string       `json:"listen_addr" yaml:"listen_addr"`
	LogLevel         string       `json:"log_level" yaml:"log_level"`
	LogFormat        string       `json:"log_format" yaml:"log_format"`
	AiTimeBudgetMs   int          `json:"ai_time_budget_ms" yaml:"ai_time_budget_ms"`
	AiSeed           int64        `json:"ai_seed" yaml:"ai_seed"`
	AiLogSearchStats bool         `json:"ai_log_search_stats" yaml:"ai_log_search_stats"`
	TickIntervalMs   int          `json:"tick_interval_ms" yaml:"tick_interval_ms"`
	DecideRatePerSec float64      `json:"decide_rate_per_sec" yaml:"decide_rate_per_sec"`
	DecideBurst      int          `json:"decide_burst" yaml:"decide_burst"`
	MaxSessions      int          `json:"max_sessions" yaml:"max_sessions"`
	Game             GameSettings `json:"game" yaml:"game"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		LogFormat:  "text",

		// 80ms keeps the UI responsive even on 15x15 boards.
		AiTimeBudgetMs:   80,
		AiSeed:           0,
		AiLogSearchStats: false,

		TickIntervalMs:   50,
		DecideRatePerSec: 50,
		DecideBurst:      10,
		MaxSessions:      256,

		Game: DefaultGameSettings(),
	}
}

func (c Config) AiTimeBudget() time.Duration {
	return time.Duration(c.AiTimeBudgetMs) * time.Millisecond
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func (c Config) Validate() error {
	var errs []error
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr must not be empty"))
	}
	if c.AiTimeBudgetMs <= 0 {
		errs = append(errs, fmt.Errorf("ai_time_budget_ms %d must be positive", c.AiTimeBudgetMs))
	}
	if c.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval_ms %d must be positive", c.TickIntervalMs))
	}
	if c.DecideRatePerSec < 0 {
		errs = append(errs, fmt.Errorf("decide_rate_per_sec %v must not be negative", c.DecideRatePerSec))
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("max_sessions %d must be positive", c.MaxSessions))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be text or json", c.LogFormat))
	}
	if err := c.Game.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("game: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfig layers defaults, an optional YAML (or JSON) file and KURO_*
// environment variables, then validates the result.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}
	loadConfigFromEnv(&config)
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadConfigFromEnv(config *Config) {
	if v := os.Getenv("KURO_LISTEN_ADDR"); v != "" {
		config.ListenAddr = v
	}
	if v := os.Getenv("KURO_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("KURO_LOG_FORMAT"); v != "" {
		config.LogFormat = v
	}
	if v := os.Getenv("KURO_AI_TIME_BUDGET_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.AiTimeBudgetMs = i
		}
	}
	if v := os.Getenv("KURO_AI_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.AiSeed = i
		}
	}
	if v := os.Getenv("KURO_AI_LOG_SEARCH_STATS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.AiLogSearchStats = b
		}
	}
	if v := os.Getenv("KURO_DECIDE_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.DecideRatePerSec = f
		}
	}
	if v := os.Getenv("KURO_EDGE_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Game.EdgeSize = i
		}
	}
	if v := os.Getenv("KURO_WIN_LENGTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Game.WinLength = i
		}
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
