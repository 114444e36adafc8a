package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "lovchat"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lovchat"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: LOVCHAT_* (highest among these sources)
	v.SetEnvPrefix("lovchat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Normalize a few dependent values post-merge
	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}

	// The OpenAI credentials are conventionally ambient; honor the plain
	// variables when the prefixed ones are absent.
	if v.GetString("openai.api_key") == "" {
		if k := os.Getenv("OPENAI_API_KEY"); k != "" {
			v.Set("openai.api_key", k)
		}
	}
	if v.GetString("openai.base_url") == "" {
		if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
			v.Set("openai.base_url", u)
		}
	}

	// Allow comma-separated env override for archives; GetString yields the
	// raw env value while file-sourced arrays come back empty here.
	if s := strings.TrimSpace(v.GetString("archives")); strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if a := strings.TrimSpace(p); a != "" {
				out = append(out, a)
			}
		}
		if len(out) > 0 {
			v.Set("archives", out)
		}
	}
	if len(v.GetStringSlice("archives")) == 0 {
		v.Set("archives", DefaultArchives())
	}
	return nil
}

// DefaultArchives lists the Lovdata public-data archives indexed when the
// config names none.
func DefaultArchives() []string {
	return []string{
		"gjeldende-lover.tar.bz2",
		"gjeldende-sentrale-forskrifter.tar.bz2",
	}
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/lovchat or ~/.local/share/lovchat
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "lovchat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "lovchat")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "lovchat", "config.toml")
}

// ResolveDBPath returns the sqlite chunk-store path under data_dir.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "lovchat.db")
}

// ResolveRawDir returns the directory where downloaded archives are kept.
func ResolveRawDir(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	return filepath.Join(dir, "raw")
}
