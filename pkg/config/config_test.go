package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadSearchesConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, AppName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeConfig(t, dir, "theme: monokai\nexport_file: salida.txt\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "monokai", cfg.Theme)
	assert.Equal(t, "salida.txt", cfg.ExportFile)
	assert.Equal(t, 4, cfg.IndentWidth)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "theme: monokai\nindent_width: 8\nui_theme: dark\n")
	t.Setenv("PSEUDO_REFINE_INDENT_WIDTH", "2")
	t.Setenv("PSEUDO_REFINE_UI_THEME", "light")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("ui-theme", "light", "")
	flags.Bool("case-fold", false, "")
	flags.String("theme", "dracula", "")
	require.NoError(t, flags.Parse([]string{"--ui-theme=dark", "--case-fold"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "monokai", cfg.Theme, "unset flag must not override the file")
	assert.Equal(t, 2, cfg.IndentWidth, "env beats file")
	assert.Equal(t, "dark", cfg.UITheme, "flag beats env")
	assert.True(t, cfg.CaseFold)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorContains(t, err, "reading config")
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "theme: solarized\n")

	_, err := Load(path, nil)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"unknown theme", func(c *Config) { c.Theme = "x" }, false},
		{"theme file overrides name", func(c *Config) { c.Theme = "x"; c.ThemeFile = "x.json" }, true},
		{"bad ui theme", func(c *Config) { c.UITheme = "blue" }, false},
		{"zero indent", func(c *Config) { c.IndentWidth = 0 }, false},
		{"huge indent", func(c *Config) { c.IndentWidth = 17 }, false},
		{"empty export", func(c *Config) { c.ExportFile = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}
