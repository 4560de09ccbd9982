package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/evanschultz/pseudo-refine/pkg/theme"
)

// AppName names the config directory and the environment prefix.
const AppName = "pseudo-refine"

// EnvPrefix is prepended to environment overrides, e.g. PSEUDO_REFINE_THEME.
const EnvPrefix = "PSEUDO_REFINE"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds editor settings.
type Config struct {
	Theme       string `mapstructure:"theme" yaml:"theme" json:"theme"`
	ThemeFile   string `mapstructure:"theme_file" yaml:"theme_file,omitempty" json:"theme_file,omitempty"`
	UITheme     string `mapstructure:"ui_theme" yaml:"ui_theme" json:"ui_theme"` // light, dark
	ExportFile  string `mapstructure:"export_file" yaml:"export_file" json:"export_file"`
	IndentWidth int    `mapstructure:"indent_width" yaml:"indent_width" json:"indent_width"`
	CaseFold    bool   `mapstructure:"case_fold" yaml:"case_fold" json:"case_fold"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file,omitempty" json:"log_file,omitempty"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

var defaults = map[string]any{
	"theme":        theme.Default,
	"theme_file":   "",
	"ui_theme":     "light",
	"export_file":  "algoritmo.txt",
	"indent_width": 4,
	"case_fold":    false,
	"log_file":     "",
	"log_level":    "info",
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme:       theme.Default,
		UITheme:     "light",
		ExportFile:  "algoritmo.txt",
		IndentWidth: 4,
		LogLevel:    "info",
	}
}

// Dir returns the config directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load resolves settings from defaults, the config file, the environment and
// flags, in increasing priority. An empty path searches the config directory
// for config.yaml, which may be absent. An explicit path must exist. Flags
// are matched by key with underscores written as dashes (--indent-width);
// only flags the user actually set override lower layers.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if flags != nil {
		for key := range defaults {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.ThemeFile == "" && !theme.Known(c.Theme) {
		return fmt.Errorf("%w: theme %q (available: %s)", ErrInvalid, c.Theme, strings.Join(theme.Names(), ", "))
	}
	switch c.UITheme {
	case "light", "dark":
	default:
		return fmt.Errorf("%w: ui_theme %q must be light or dark", ErrInvalid, c.UITheme)
	}
	if c.IndentWidth < 1 || c.IndentWidth > 16 {
		return fmt.Errorf("%w: indent_width %d must be between 1 and 16", ErrInvalid, c.IndentWidth)
	}
	if c.ExportFile == "" {
		return fmt.Errorf("%w: export_file is empty", ErrInvalid)
	}
	return nil
}
