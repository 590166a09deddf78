package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// UserConfigDir is relative to the user config root ($XDG_CONFIG_HOME or ~/.config).
	UserConfigDir  = "lifeos"
	UserConfigFile = "config.yaml"

	EnvAPIBase  = "LIFEOS_API_BASE"
	EnvLogLevel = "LIFEOS_LOG_LEVEL"
	EnvDataDir  = "LIFEOS_DATA_DIR"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Shop     ShopConfig     `yaml:"shop"`
	Speech   SpeechConfig   `yaml:"speech"`
	Audio    AudioConfig    `yaml:"audio"`
	Log      LogConfig      `yaml:"log"`
	DataDir  string         `yaml:"data_dir"`

	// Path is the last config file applied, empty when only defaults were used.
	Path string `yaml:"-"`
}

type APIConfig struct {
	BaseURL    string            `yaml:"base_url"`
	Timeout    time.Duration     `yaml:"timeout"`
	Headers    map[string]string `yaml:"headers"`
	HealthPath string            `yaml:"health_path"`
}

type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type DefaultsConfig struct {
	FallbackNicheID int64 `yaml:"fallback_niche_id"`
}

type ShopItem struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
	Price int    `yaml:"price"`
}

type AchievementRule struct {
	Key       string `yaml:"key"`
	Title     string `yaml:"title"`
	Icon      string `yaml:"icon"`
	Kind      string `yaml:"kind"`
	Threshold int    `yaml:"threshold"`
}

type ShopConfig struct {
	Items        []ShopItem        `yaml:"items"`
	Achievements []AchievementRule `yaml:"achievements"`
}

type SpeechConfig struct {
	// Command is split on whitespace and executed; stdout is the transcript.
	Command string `yaml:"command"`
}

type AudioConfig struct {
	Enabled bool   `yaml:"enabled"`
	Player  string `yaml:"player"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:    "http://localhost:8000",
			Timeout:    15 * time.Second,
			Headers:    map[string]string{"ngrok-skip-browser-warning": "true"},
			HealthPath: "/health/check",
		},
		Refresh:  RefreshConfig{Interval: 30 * time.Second},
		Defaults: DefaultsConfig{FallbackNicheID: 1},
		Shop:     DefaultShop(),
		Audio:    AudioConfig{Enabled: true},
		Log:      LogConfig{Level: "info"},
		DataDir:  defaultDataDir(),
	}
}

// DefaultShop is the built-in catalog used when no config overrides it.
func DefaultShop() ShopConfig {
	return ShopConfig{
		Items: []ShopItem{
			{Key: "coffee", Title: "Coffee break", Icon: "☕", Price: 50},
			{Key: "episode", Title: "One series episode", Icon: "📺", Price: 150},
			{Key: "game_hour", Title: "Hour of gaming", Icon: "🎮", Price: 300},
			{Key: "cheat_meal", Title: "Cheat meal", Icon: "🍔", Price: 500},
			{Key: "day_off", Title: "Day off", Icon: "🏖", Price: 2000},
		},
		Achievements: []AchievementRule{
			{Key: "streak_3", Title: "Warming up", Icon: "🔥", Kind: "streak", Threshold: 3},
			{Key: "streak_7", Title: "Week warrior", Icon: "⚡", Kind: "streak", Threshold: 7},
			{Key: "streak_30", Title: "Unbreakable", Icon: "💎", Kind: "streak", Threshold: 30},
			{Key: "level_5", Title: "Apprentice", Icon: "🌱", Kind: "level", Threshold: 5},
			{Key: "level_10", Title: "Adept", Icon: "🌳", Kind: "level", Threshold: 10},
			{Key: "level_25", Title: "Master", Icon: "👑", Kind: "level", Threshold: 25},
		},
	}
}

// LoadOptions carries the layers above the config files.
type LoadOptions struct {
	ConfigPath string
	APIBase    string
	LogLevel   string
	Getenv     func(string) string
}

// Load applies, in order: defaults, the user config file, the explicit config
// file, environment variables and flag overrides.
func Load(opts LoadOptions) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	if userPath := UserConfigPath(getenv); userPath != "" {
		if err := applyFile(&cfg, userPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}
	if opts.ConfigPath != "" {
		if err := applyFile(&cfg, opts.ConfigPath); err != nil {
			return Config{}, err
		}
	}

	if v := getenv(EnvAPIBase); v != "" {
		cfg.API.BaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if opts.APIBase != "" {
		cfg.API.BaseURL = opts.APIBase
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a single file over the defaults. Used by the config watcher.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := applyFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.Path = path
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.BaseURL != "/" {
		if _, err := url.Parse(c.API.BaseURL); err != nil {
			return fmt.Errorf("api.base_url: %w", err)
		}
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive")
	}
	seen := map[string]bool{}
	for _, item := range c.Shop.Items {
		if item.Key == "" || item.Price < 0 {
			return fmt.Errorf("shop item %q: key and non-negative price required", item.Title)
		}
		if seen[item.Key] {
			return fmt.Errorf("shop item %q declared twice", item.Key)
		}
		seen[item.Key] = true
	}
	for _, rule := range c.Shop.Achievements {
		if rule.Kind != "streak" && rule.Kind != "level" {
			return fmt.Errorf("achievement %q: kind must be streak or level", rule.Key)
		}
	}
	return nil
}

// Save writes the config as YAML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func UserConfigPath(getenv func(string) string) string {
	root := getenv("XDG_CONFIG_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, UserConfigDir, UserConfigFile)
}

func (c Config) PrefsPath() string {
	return filepath.Join(c.DataDir, "prefs.db")
}

func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "lifeos.log")
}

func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "lifeos")
	}
	return ".lifeos"
}
