package configs

import (
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
)

// DefaultPath is where commands look for a config when --config is unset.
const DefaultPath = "sitelock.toml"

type Config struct {
	Site  SiteConfig  `toml:"site"`
	Build BuildConfig `toml:"build"`
	Audit AuditConfig `toml:"audit"`
}

type SiteConfig struct {
	Input   string `toml:"input"`
	Output  string `toml:"output"`
	Title   string `toml:"title"`
	Heading string `toml:"heading"`
	Prompt  string `toml:"prompt"`
	Button  string `toml:"button"`
}

type BuildConfig struct {
	// PasswordEnv names the environment variable holding the site password.
	PasswordEnv string   `toml:"password_env"`
	Exclude     []string `toml:"exclude"`
}

type AuditConfig struct {
	// Log is a JSON Lines file that records each build. Empty disables it.
	Log string `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Input:   "dist",
			Output:  "encrypted/index.html",
			Title:   "Protected site",
			Heading: "Protected site",
			Prompt:  "Enter password to access the site",
			Button:  "Unlock",
		},
		Build: BuildConfig{
			PasswordEnv: "SITE_PASSWORD",
			Exclude:     []string{},
		},
	}
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if config.Build.PasswordEnv == "" {
		config.Build.PasswordEnv = Default().Build.PasswordEnv
	}

	return config, nil
}

// WriteDefault writes the default config to path. It refuses to overwrite
// an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", kerrors.ErrConfigExists, path)
	}

	if err := SaveTOML(path, Default()); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}
	return nil
}
