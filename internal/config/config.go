package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/tabulate/internal/validate"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TBL_CONFIG"

// Keys lists the settable configuration keys in display order.
var Keys = []string{"output", "input", "color", "min_width", "separator", "missing"}

// ColorModes lists the accepted values for the color key.
var ColorModes = []string{"auto", "always", "never"}

// Config represents the CLI configuration
type Config struct {
	// Default output format (text, json, ndjson, yaml)
	Output string `yaml:"output,omitempty"`

	// Default input format when it cannot be detected (csv, tsv, json, ndjson, yaml)
	Input string `yaml:"input,omitempty"`

	// Default color mode (auto, always, never)
	Color string `yaml:"color,omitempty"`

	// Minimum border width of every column; nil keeps the renderer default
	MinWidth *int `yaml:"min_width,omitempty"`

	// Column separator; nil keeps the renderer default
	Separator *string `yaml:"separator,omitempty"`

	// Text printed for empty cells
	Missing string `yaml:"missing,omitempty"`
}

// configPathFunc is the function used to get the default config path
// It can be overridden for testing
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

// defaultConfigPath returns $TBL_CONFIG or ~/.config/tabulate/config.yaml
func defaultConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tabulate", "config.yaml"), nil
}

// DefaultConfigPath returns the path config is loaded from and saved to.
func DefaultConfigPath() (string, error) {
	return configPathFunc()
}

// Load loads config from the default path, returns empty config if not found
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// Save saves config to the default path
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves config to a specific path
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// IsEmpty reports whether no key is set.
func (c *Config) IsEmpty() bool {
	return *c == Config{}
}

// Set assigns a key from its string form. Format names are stored as given;
// callers validate them against the input and output packages.
func (c *Config) Set(key, value string) error {
	switch key {
	case "output":
		c.Output = value
	case "input":
		c.Input = value
	case "color":
		if !contains(ColorModes, value) {
			return fmt.Errorf("invalid color mode %q, must be one of: %s", value, strings.Join(ColorModes, ", "))
		}
		c.Color = value
	case "min_width":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid min_width %q, must be a non-negative integer", value)
		}
		if err := validate.MinWidth(key, n); err != nil {
			return err
		}
		c.MinWidth = &n
	case "separator":
		if err := validate.SingleLine(key, value); err != nil {
			return err
		}
		c.Separator = &value
	case "missing":
		if err := validate.SingleLine(key, value); err != nil {
			return err
		}
		c.Missing = value
	default:
		return fmt.Errorf("unknown config key %q\n\nSupported keys: %s", key, strings.Join(Keys, ", "))
	}
	return nil
}

// validate checks the layout keys of a loaded file.
func (c *Config) validate() error {
	if c.MinWidth != nil {
		if err := validate.MinWidth("min_width", *c.MinWidth); err != nil {
			return err
		}
	}
	if c.Separator != nil {
		if err := validate.SingleLine("separator", *c.Separator); err != nil {
			return err
		}
	}
	return validate.SingleLine("missing", c.Missing)
}

// Unset clears a key.
func (c *Config) Unset(key string) error {
	switch key {
	case "output":
		c.Output = ""
	case "input":
		c.Input = ""
	case "color":
		c.Color = ""
	case "min_width":
		c.MinWidth = nil
	case "separator":
		c.Separator = nil
	case "missing":
		c.Missing = ""
	default:
		return fmt.Errorf("unknown config key %q\n\nSupported keys: %s", key, strings.Join(Keys, ", "))
	}
	return nil
}

func contains(slice []string, value string) bool {
	for _, s := range slice {
		if s == value {
			return true
		}
	}
	return false
}
