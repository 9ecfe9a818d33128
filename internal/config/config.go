package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

const (
	defaultBaseURL          = "http://localhost:5000"
	defaultRequestTimeout   = 15
	defaultStorageDriver    = DriverSQLite
	defaultSQLitePath       = "infinity-box.db"
	defaultRedisAddr        = "localhost:6379"
	defaultSessionKey       = "gameSession"
	defaultMaxWinPercentage = 0.10
	defaultMinBetAmount     = 10
	defaultMaxBetAmount     = 1000
	defaultHouseEdge        = 0.05
	defaultSessionWinCap    = 10000
	defaultBetCapMultiplier = 1.10
	defaultAutosaveInterval = 30
	defaultDevListenAddr    = ":5000"
	defaultDevStartingCoins = 1000
	defaultDevRatePerSecond = 20
	defaultDevRatePerMinute = 600
	defaultDevRateBan       = 10
	defaultSoundDir         = "assets/sounds"
)

// Config client configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Economy   EconomyConfig   `yaml:"economy"`
	Log       LogConfig       `yaml:"log"`
	UI        UIConfig        `yaml:"ui"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// ServerConfig game backend location
type ServerConfig struct {
	BaseURL        string `yaml:"base_url" env:"SERVER_BASE_URL"`
	RequestTimeout int    `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT"` // seconds, 0 disables
}

// AuthConfig where the bearer credential comes from. Token wins over TokenFile.
type AuthConfig struct {
	Token     string `yaml:"token" env:"AUTH_TOKEN"`
	TokenFile string `yaml:"token_file" env:"AUTH_TOKEN_FILE"`
}

// StorageConfig local session persistence
type StorageConfig struct {
	Driver        string `yaml:"driver" env:"STORAGE_DRIVER"`
	SQLitePath    string `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH"`
	RedisAddr     string `yaml:"redis_addr" env:"STORAGE_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"STORAGE_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"STORAGE_REDIS_DB"`
	SessionKey    string `yaml:"session_key" env:"STORAGE_SESSION_KEY"`
}

// EconomyConfig payout and bet policy
type EconomyConfig struct {
	MaxWinPercentage float64 `yaml:"max_win_percentage" env:"ECONOMY_MAX_WIN_PERCENTAGE"`
	MinBetAmount     float64 `yaml:"min_bet_amount" env:"ECONOMY_MIN_BET_AMOUNT"`
	MaxBetAmount     float64 `yaml:"max_bet_amount" env:"ECONOMY_MAX_BET_AMOUNT"`
	HouseEdge        float64 `yaml:"house_edge" env:"ECONOMY_HOUSE_EDGE"`
	SessionWinCap    float64 `yaml:"session_win_cap" env:"ECONOMY_SESSION_WIN_CAP"`
	BetCapMultiplier float64 `yaml:"bet_cap_multiplier" env:"ECONOMY_BET_CAP_MULTIPLIER"`
	AutosaveInterval int     `yaml:"autosave_interval" env:"ECONOMY_AUTOSAVE_INTERVAL"` // seconds
}

// LogConfig debug log location. Empty Dir means ~/.infinity-box.
type LogConfig struct {
	Dir string `yaml:"dir" env:"LOG_DIR"`
}

// UIConfig terminal host settings
type UIConfig struct {
	Sound    bool   `yaml:"sound" env:"UI_SOUND"`
	SoundDir string `yaml:"sound_dir" env:"UI_SOUND_DIR"`
}

// DevServerConfig local stand-in backend
type DevServerConfig struct {
	ListenAddr    string  `yaml:"listen_addr" env:"DEVSERVER_LISTEN_ADDR"`
	SigningSecret string  `yaml:"signing_secret" env:"DEVSERVER_SIGNING_SECRET"`
	StartingCoins float64 `yaml:"starting_coins" env:"DEVSERVER_STARTING_COINS"`
	RatePerSecond int     `yaml:"rate_per_second" env:"DEVSERVER_RATE_PER_SECOND"`
	RatePerMinute int     `yaml:"rate_per_minute" env:"DEVSERVER_RATE_PER_MINUTE"`
	RateBan       int     `yaml:"rate_ban" env:"DEVSERVER_RATE_BAN"` // seconds
}

// RateBanDuration returns how long a throttled client stays banned
func (c *DevServerConfig) RateBanDuration() time.Duration {
	return time.Duration(c.RateBan) * time.Second
}

// RequestTimeoutDuration returns the per-request HTTP timeout
func (c *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// AutosaveIntervalDuration returns the autosave period
func (c *EconomyConfig) AutosaveIntervalDuration() time.Duration {
	return time.Duration(c.AutosaveInterval) * time.Second
}

// Load reads the YAML file at path over the defaults, then applies .env and
// environment overrides. Keys absent from both keep their default; an explicit
// zero is kept.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	fillRequired(cfg)

	return cfg, nil
}

// Default returns the default configuration with environment overrides applied.
func Default() *Config {
	cfg := defaults()
	if err := applyEnv(cfg); err != nil {
		// Malformed env values fall back to defaults.
		cfg = defaults()
	}
	fillRequired(cfg)
	return cfg
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Storage: StorageConfig{
			Driver:     defaultStorageDriver,
			SQLitePath: defaultSQLitePath,
			RedisAddr:  defaultRedisAddr,
			SessionKey: defaultSessionKey,
		},
		Economy: EconomyConfig{
			MaxWinPercentage: defaultMaxWinPercentage,
			MinBetAmount:     defaultMinBetAmount,
			MaxBetAmount:     defaultMaxBetAmount,
			HouseEdge:        defaultHouseEdge,
			SessionWinCap:    defaultSessionWinCap,
			BetCapMultiplier: defaultBetCapMultiplier,
			AutosaveInterval: defaultAutosaveInterval,
		},
		UI: UIConfig{
			SoundDir: defaultSoundDir,
		},
		DevServer: DevServerConfig{
			ListenAddr:    defaultDevListenAddr,
			StartingCoins: defaultDevStartingCoins,
			RatePerSecond: defaultDevRatePerSecond,
			RatePerMinute: defaultDevRatePerMinute,
			RateBan:       defaultDevRateBan,
		},
	}
}

// fillRequired restores settings that have no meaningful empty value.
func fillRequired(cfg *Config) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = defaultBaseURL
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = defaultStorageDriver
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = defaultSQLitePath
	}
	if cfg.Storage.SessionKey == "" {
		cfg.Storage.SessionKey = defaultSessionKey
	}
	if cfg.Economy.AutosaveInterval <= 0 {
		cfg.Economy.AutosaveInterval = defaultAutosaveInterval
	}
	if cfg.DevServer.ListenAddr == "" {
		cfg.DevServer.ListenAddr = defaultDevListenAddr
	}
}
