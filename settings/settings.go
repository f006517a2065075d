// Package settings loads CLI configuration from a YAML file, a .env file
// and OASB_* environment variables, in increasing precedence.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lepidus/oaswitchboard/mapping"
	"github.com/lepidus/oaswitchboard/switchboard"
)

const (
	// AppName names the XDG config and data directories.
	AppName = "oaswitchboard"

	// ConfigFile is the config file name under the XDG config directory.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "OASB_"
)

// Config holds CLI settings.
type Config struct {
	BaseURL     string        `yaml:"base_url,omitempty"`
	Email       string        `yaml:"email,omitempty"`
	Password    string        `yaml:"password,omitempty"`
	Profile     string        `yaml:"profile,omitempty"`
	ProfileFile string        `yaml:"profile_file,omitempty"`
	LedgerPath  string        `yaml:"ledger_path,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	MaxRetries  int           `yaml:"max_retries,omitempty"`
	RateLimit   float64       `yaml:"rate_limit,omitempty"`
	Locale      string        `yaml:"locale,omitempty"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:    switchboard.BaseURL,
		Profile:    mapping.DefaultProfileName,
		LedgerPath: DefaultLedgerPath(),
		Timeout:    switchboard.DefaultTimeout,
		RateLimit:  switchboard.DefaultRateLimit,
	}
}

// DefaultLedgerPath returns the ledger location under the XDG data home.
func DefaultLedgerPath() string {
	return filepath.Join(xdg.DataHome, AppName, "ledger.db")
}

// ConfigPath returns the existing config file in the XDG config
// directories, or "" when there is none.
func ConfigPath() string {
	path, err := xdg.SearchConfigFile(filepath.Join(AppName, ConfigFile))
	if err != nil {
		return ""
	}
	return path
}

// LoadDotEnv loads variables from .env files into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load returns the defaults overlaid with the YAML file at path (or the
// XDG config file when path is empty) and then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
			cfg.Path = path
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"BASE_URL", &c.BaseURL},
		{"EMAIL", &c.Email},
		{"PASSWORD", &c.Password},
		{"PROFILE", &c.Profile},
		{"PROFILE_FILE", &c.ProfileFile},
		{"LEDGER_PATH", &c.LedgerPath},
		{"LOCALE", &c.Locale},
	}
	for _, s := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + s.name); ok {
			*s.dst = v
		}
	}

	if v := os.Getenv(EnvPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvPrefix + "MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sMAX_RETRIES: %w", EnvPrefix, err)
		}
		c.MaxRetries = n
	}
	if v := os.Getenv(EnvPrefix + "RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", EnvPrefix, err)
		}
		c.RateLimit = f
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	return nil
}

// HasCredentials reports whether an account email and password are set.
func (c *Config) HasCredentials() bool {
	return strings.TrimSpace(c.Email) != "" && c.Password != ""
}
