// Package config loads huetune settings from defaults, an optional TOML file,
// HUETUNE_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/huetune/internal/cost"
	"github.com/jmylchreest/huetune/internal/theme"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HUETUNE"

// Config holds application configuration.
type Config struct {
	Theme    string
	Mode     string
	Seed     string
	LogLevel string `mapstructure:"log_level"`
	Weights  cost.Weights
	Output   OutputConfig
}

// OutputConfig holds optional output file paths.
type OutputConfig struct {
	Swatch string
	Report string
}

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"theme":         "theme",
	"mode":          "mode",
	"seed":          "seed",
	"log_level":     "log-level",
	"output.swatch": "swatch",
	"output.report": "save-report",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme:    theme.DefaultName,
		Mode:     string(theme.Light),
		LogLevel: "info",
		Weights:  cost.DefaultWeights(),
	}
}

// DefaultPath returns the config file looked for when none is given.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "huetune", "config.toml")
}

// Load reads configuration. An explicit path (or $HUETUNE_CONFIG) must exist;
// the default path is optional. Flags present in flags override every other
// source when set.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("toml")
	explicit := path
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigFile(DefaultPath())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missingDefault := explicit == "" && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist))
		if !missingDefault {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the mode and weights.
func (c Config) Validate() error {
	if _, err := theme.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := c.InitializedWeights(); err != nil {
		return err
	}
	return nil
}

// ThemeMode returns the parsed mode.
func (c Config) ThemeMode() (theme.Mode, error) {
	return theme.ParseMode(c.Mode)
}

// InitializedWeights returns the configured weights after validation and
// partition derivation.
func (c Config) InitializedWeights() (cost.Weights, error) {
	w := c.Weights
	if err := w.Initialize(); err != nil {
		return cost.Weights{}, fmt.Errorf("weights: %w", err)
	}
	return w, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("theme", d.Theme)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output.swatch", d.Output.Swatch)
	v.SetDefault("output.report", d.Output.Report)

	w := d.Weights
	for key, value := range map[string]float32{
		"contrast":       w.Contrast,
		"distance":       w.Distance,
		"range":          w.Range,
		"target":         w.Target,
		"protanopia":     w.Protanopia,
		"deuteranopia":   w.Deuteranopia,
		"tritanopia":     w.Tritanopia,
		"distance_bg_bg": w.DistanceBgBg,
		"distance_bg_fg": w.DistanceBgFg,
		"distance_fg_fg": w.DistanceFgFg,
		"target_bg":      w.TargetBg,
		"target_fg":      w.TargetFg,
		"contrast_bg_bg": w.ContrastBgBg,
		"contrast_bg_fg": w.ContrastBgFg,
	} {
		v.SetDefault("weights."+key, value)
	}
}
