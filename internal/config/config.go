package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/shenzhen/internal/keys"
)

// Config holds application configuration.
type Config struct {
	UI          UIConfig
	Stats       StatsConfig
	Log         LogConfig
	Game        GameConfig
	Keybindings []KeybindingConfig
}

// UIConfig holds presentation settings.
type UIConfig struct {
	RedrawInterval time.Duration `mapstructure:"redraw_interval"`
	ShowHelp       bool          `mapstructure:"show_help"`
}

// StatsConfig holds the game history store settings.
type StatsConfig struct {
	Enabled bool
	Path    string
}

// LogConfig holds debug log settings. An empty File disables logging.
type LogConfig struct {
	File  string
	Level string
}

// GameConfig holds deal settings. Seed 0 deals a random board.
type GameConfig struct {
	Seed uint64
}

// KeybindingConfig overrides the keys of one action.
type KeybindingConfig struct {
	Scope  string
	Action string
	Keys   []string
}

// Load reads configuration from file and env. Env var overrides use prefix SHENZHEN_.
func Load() (Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}
	v.SetDefault("ui.redraw_interval", 100*time.Millisecond)
	v.SetDefault("ui.show_help", true)
	v.SetDefault("stats.enabled", true)
	v.SetDefault("stats.path", filepath.Join(home, ".local", "share", "shenzhen", "shenzhen.db"))
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("game.seed", 0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SHENZHEN_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "shenzhen"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHENZHEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine; an explicit or broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.RedrawInterval <= 0 {
		return Config{}, fmt.Errorf("ui.redraw_interval must be positive, got %s", c.UI.RedrawInterval)
	}
	return c, nil
}

// Overrides converts the configured keybindings for the key registry.
func (c Config) Overrides() []keys.Override {
	out := make([]keys.Override, 0, len(c.Keybindings))
	for _, kb := range c.Keybindings {
		out = append(out, keys.Override{Scope: kb.Scope, Action: kb.Action, Keys: kb.Keys})
	}
	return out
}
