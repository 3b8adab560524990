// Package config loads DayCoach runtime configuration from a TOML file and
// environment variables, exposing typed structs and accessors for all
// sections.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config is the runtime configuration loaded from defaults, config.toml,
// and env vars.
type Config struct {
	// HomeDir is runtime-resolved from DAYCOACH_HOME and not read from config.
	HomeDir  string                   `mapstructure:"-"`
	LLM      LLMConfig                `mapstructure:"llm"`
	Coach    CoachConfig              `mapstructure:"coach"`
	Channels map[string]ChannelConfig `mapstructure:"channels"`
}

// LLMConfig configures the text-generation backend.
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// CoachConfig controls scheduling of proactive checks and maintenance.
type CoachConfig struct {
	TickInterval    time.Duration `mapstructure:"tick_interval"`
	TickMinGap      time.Duration `mapstructure:"tick_min_gap"`
	MaintenanceHour int           `mapstructure:"maintenance_hour"`
	StartupGrace    time.Duration `mapstructure:"startup_grace"`
}

// ChannelConfig configures one outbound delivery channel.
type ChannelConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	ChatID  int64  `mapstructure:"chat_id"`
}

var defaultConfig = Config{
	LLM: LLMConfig{
		Provider:       "anthropic",
		APIKey:         "",
		Model:          "claude-sonnet-4-6",
		MaxTokens:      1024,
		RequestTimeout: 30 * time.Second,
	},
	Coach: CoachConfig{
		TickInterval:    5 * time.Minute,
		TickMinGap:      30 * time.Minute,
		MaintenanceHour: 3,
		StartupGrace:    2 * time.Minute,
	},
	Channels: map[string]ChannelConfig{
		"telegram": {
			Enabled: false,
			Token:   "",
			ChatID:  0,
		},
	},
}

// homeDir returns the DayCoach home directory.
// Uses DAYCOACH_HOME env var if set, otherwise defaults to ~/.daycoach.
func homeDir() (string, error) {
	if dir := os.Getenv("DAYCOACH_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".daycoach"), nil
}

func homeConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.toml")
}

// Load merges hardcoded defaults and config file values in that order.
// Config is always at $DAYCOACH_HOME/config.toml.
func Load() (*Config, error) {
	homeDir, err := homeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(homeConfigPath(homeDir))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		expandEnvStringHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = decodeHook
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.HomeDir = homeDir
	return &cfg, nil
}

// Write writes the merged configuration (defaults overlaid by user config)
// to w in TOML format.
func Write(w io.Writer) error {
	if w == nil {
		return errors.New("writer is required")
	}

	homeDir, err := homeDir()
	if err != nil {
		return err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(homeConfigPath(homeDir))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	// Keep duration fields human-readable in generated TOML.
	v.Set("llm.request_timeout", v.GetDuration("llm.request_timeout").String())
	v.Set("coach.tick_interval", v.GetDuration("coach.tick_interval").String())
	v.Set("coach.tick_min_gap", v.GetDuration("coach.tick_min_gap").String())
	v.Set("coach.startup_grace", v.GetDuration("coach.startup_grace").String())

	if err := v.WriteConfigTo(w); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// InitUserConfig writes the bootstrap config file if it does not exist and
// returns its path.
func InitUserConfig() (string, error) {
	homeDir, err := homeDir()
	if err != nil {
		return "", err
	}
	path := homeConfigPath(homeDir)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat config file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("llm.provider", defaultConfig.LLM.Provider)
	v.Set("llm.api_key", "$ANTHROPIC_API_KEY")
	v.Set("llm.model", defaultConfig.LLM.Model)
	v.Set("llm.request_timeout", defaultConfig.LLM.RequestTimeout.String())
	v.Set("coach.maintenance_hour", defaultConfig.Coach.MaintenanceHour)
	v.Set("channels.telegram.enabled", false)
	v.Set("channels.telegram.token", "")
	v.Set("channels.telegram.chat_id", 0)

	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return "", fmt.Errorf("create home dir: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return path, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", defaultConfig.LLM.Provider)
	v.SetDefault("llm.api_key", defaultConfig.LLM.APIKey)
	v.SetDefault("llm.model", defaultConfig.LLM.Model)
	v.SetDefault("llm.max_tokens", defaultConfig.LLM.MaxTokens)
	v.SetDefault("llm.request_timeout", defaultConfig.LLM.RequestTimeout)

	v.SetDefault("coach.tick_interval", defaultConfig.Coach.TickInterval)
	v.SetDefault("coach.tick_min_gap", defaultConfig.Coach.TickMinGap)
	v.SetDefault("coach.maintenance_hour", defaultConfig.Coach.MaintenanceHour)
	v.SetDefault("coach.startup_grace", defaultConfig.Coach.StartupGrace)

	v.SetDefault("channels.telegram.enabled", defaultConfig.Channels["telegram"].Enabled)
	v.SetDefault("channels.telegram.token", defaultConfig.Channels["telegram"].Token)
	v.SetDefault("channels.telegram.chat_id", defaultConfig.Channels["telegram"].ChatID)
}

// DataFile returns the path of the persisted coaching document.
func (c *Config) DataFile() string {
	return filepath.Join(c.HomeDir, "data.json")
}

// TelegramChannel returns Telegram channel config with fallback defaults.
func (c *Config) TelegramChannel() ChannelConfig {
	if ch, ok := c.Channels["telegram"]; ok {
		return ch
	}
	return defaultConfig.Channels["telegram"]
}

// Validate checks required LLM fields.
func (c LLMConfig) Validate() error {
	if c.Provider == "" {
		return errors.New("provider is required")
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be > 0")
	}
	if c.Provider == "anthropic" && c.APIKey == "" {
		return errors.New("api_key is required")
	}
	return nil
}

// Validate checks scheduling bounds.
func (c CoachConfig) Validate() error {
	if c.TickInterval <= 0 {
		return errors.New("tick_interval must be > 0")
	}
	if c.TickMinGap <= 0 {
		return errors.New("tick_min_gap must be > 0")
	}
	if c.MaintenanceHour < 0 || c.MaintenanceHour > 23 {
		return errors.New("maintenance_hour must be in [0, 23]")
	}
	if c.StartupGrace < 0 {
		return errors.New("startup_grace must be >= 0")
	}
	return nil
}

// Validate checks required channel fields when the channel is enabled.
func (c ChannelConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Token == "" {
		return errors.New("token is required when enabled=true")
	}
	if c.ChatID == 0 {
		return errors.New("chat_id is required when enabled=true")
	}
	return nil
}

// Validate validates startup configuration and returns the first fatal error.
func (cfg *Config) Validate() error {
	if err := cfg.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := cfg.Coach.Validate(); err != nil {
		return fmt.Errorf("coach: %w", err)
	}
	for name, ch := range cfg.Channels {
		if err := ch.Validate(); err != nil {
			return fmt.Errorf("channels.%s: %w", name, err)
		}
	}
	return nil
}

func expandEnvStringHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		value, ok := data.(string)
		if !ok {
			return data, nil
		}
		return os.ExpandEnv(value), nil
	}
}
