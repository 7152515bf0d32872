// Package config provides Viper-based configuration loading for hoard.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Dice source kinds.
const (
	SourceCrypto = "crypto"
	SourceSeeded = "seeded"
)

// DiceConfig selects the random source behind every roll.
type DiceConfig struct {
	// Source is "crypto" for crypto/rand or "seeded" for a reproducible PRNG.
	Source string `mapstructure:"source"`
	// Seed seeds the "seeded" source. Zero picks a fresh random seed.
	Seed int64 `mapstructure:"seed"`
}

// TreasureConfig holds treasure generation settings.
type TreasureConfig struct {
	// TablesFile overrides the built-in treasure tables when non-empty.
	TablesFile string `mapstructure:"tables_file"`
	// Breakdown appends the roll trace to formatted results.
	Breakdown bool `mapstructure:"breakdown"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Dice     DiceConfig     `mapstructure:"dice"`
	Treasure TreasureConfig `mapstructure:"treasure"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDice(d DiceConfig) error {
	if d.Source != SourceCrypto && d.Source != SourceSeeded {
		return fmt.Errorf("dice.source must be one of [crypto, seeded], got %q", d.Source)
	}
	if d.Source == SourceCrypto && d.Seed != 0 {
		return fmt.Errorf("dice.seed requires dice.source %q", SourceSeeded)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with explicit key overrides (e.g. from command
// line flags) applied above file and environment before validation.
//
// Postcondition: Returns a valid Config or a non-nil error.
func LoadWithOverrides(path string, overrides map[string]any) (Config, error) {
	v := viper.New()

	// Environment variable overrides with HOARD_ prefix
	v.SetEnvPrefix("HOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	for key, value := range overrides {
		v.Set(key, value)
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

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("dice.source", SourceCrypto)
	v.SetDefault("dice.seed", 0)

	v.SetDefault("treasure.tables_file", "")
	v.SetDefault("treasure.breakdown", false)
}
