package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ThemeMode is the terminal palette of the CLI.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

func ParseThemeMode(value string) (ThemeMode, error) {
	switch ThemeMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("unknown theme %q", value)
	}
}

func (m *ThemeMode) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseThemeMode(node.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type CLIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	StorePath string        `yaml:"store_path"`
	Theme     ThemeMode     `yaml:"theme"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DefaultCLIConfigPath is ~/.config/fitness-cli/config.yaml.
func DefaultCLIConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "fitness-cli.yaml")
	}
	return filepath.Join(dir, "fitness-cli", "config.yaml")
}

// LoadCLI reads the YAML config at path. A missing file yields defaults.
// FITNESS_BASE_URL and FITNESS_THEME override the file.
func LoadCLI(path string) (CLIConfig, error) {
	cfg := CLIConfig{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return CLIConfig{}, fmt.Errorf("reading cli config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return CLIConfig{}, fmt.Errorf("parsing cli config: %w", err)
		}
	}

	if v := os.Getenv("FITNESS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FITNESS_THEME"); v != "" {
		theme, err := ParseThemeMode(v)
		if err != nil {
			return CLIConfig{}, err
		}
		cfg.Theme = theme
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Theme == "" {
		cfg.Theme = ThemeDark
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.StorePath == "" {
		cfg.StorePath = filepath.Join(filepath.Dir(path), "session.db")
	}
	return cfg, nil
}
