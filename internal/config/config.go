// Package config provides Viper-based configuration loading for skirmish.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GameConfig holds rule set and party generation settings.
type GameConfig struct {
	// Rules is the rule set name: "simple" or "standard".
	Rules string `mapstructure:"rules"`
	// Seed seeds the random number generator. Zero derives it from the clock.
	Seed int64 `mapstructure:"seed"`
	// Parties is the number of parties generated at start.
	Parties int `mapstructure:"parties"`
	// PartySize is the number of members per generated party.
	PartySize int `mapstructure:"party_size"`
	// Points is the point budget shared by a generated party.
	Points int `mapstructure:"points"`
}

// AnimationConfig holds animation engine and announcement pacing.
type AnimationConfig struct {
	// Floor is the worker sleep when no animator is live.
	Floor time.Duration `mapstructure:"floor"`
	// AnnounceDelay is the pause between the source flash and the target glow.
	AnnounceDelay time.Duration `mapstructure:"announce_delay"`
	// SettleDelay is the pause after the target glow.
	SettleDelay time.Duration `mapstructure:"settle_delay"`
}

// UIConfig holds terminal colours.
type UIConfig struct {
	HPColor string `mapstructure:"hp_color"`
	MPColor string `mapstructure:"mp_color"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File receives log output; the terminal belongs to the game.
	File string `mapstructure:"file"`
}

// TelemetryConfig holds tracing settings.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SaveConfig holds persistence settings.
type SaveConfig struct {
	// Path is loaded at start when it exists and written on exit. Empty
	// disables saving.
	Path string `mapstructure:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Animation AnimationConfig `mapstructure:"animation"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Save      SaveConfig      `mapstructure:"save"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAnimation(c.Animation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateUI(c.UI); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	validRules := map[string]bool{"simple": true, "standard": true}
	if !validRules[g.Rules] {
		errs = append(errs, fmt.Sprintf("game.rules must be one of [simple, standard], got %q", g.Rules))
	}
	if g.Parties < 1 {
		errs = append(errs, fmt.Sprintf("game.parties must be >= 1, got %d", g.Parties))
	}
	if g.PartySize < 1 || g.PartySize > 8 {
		errs = append(errs, fmt.Sprintf("game.party_size must be 1-8, got %d", g.PartySize))
	}
	if g.Points < 0 {
		errs = append(errs, fmt.Sprintf("game.points must be >= 0, got %d", g.Points))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateAnimation(a AnimationConfig) error {
	var errs []string
	if a.Floor <= 0 {
		errs = append(errs, "animation.floor must be positive")
	}
	if a.AnnounceDelay < 0 {
		errs = append(errs, "animation.announce_delay must not be negative")
	}
	if a.SettleDelay < 0 {
		errs = append(errs, "animation.settle_delay must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateUI(u UIConfig) error {
	var errs []string
	if !isHexColor(u.HPColor) {
		errs = append(errs, fmt.Sprintf("ui.hp_color must be a #RRGGBB colour, got %q", u.HPColor))
	}
	if !isHexColor(u.MPColor) {
		errs = append(errs, fmt.Sprintf("ui.mp_color must be a #RRGGBB colour, got %q", u.MPColor))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.File == "" {
		return errors.New("logging.file must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by the defaults alone.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.rules", "standard")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.parties", 1)
	v.SetDefault("game.party_size", 4)
	v.SetDefault("game.points", 12)

	v.SetDefault("animation.floor", "50ms")
	v.SetDefault("animation.announce_delay", "500ms")
	v.SetDefault("animation.settle_delay", "1s")

	v.SetDefault("ui.hp_color", "#CC3333")
	v.SetDefault("ui.mp_color", "#3366CC")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "skirmish.log")

	v.SetDefault("telemetry.enabled", false)

	v.SetDefault("save.path", "")
}
