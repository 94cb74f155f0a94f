// Package config loads indexdesk settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultHost         = "http://localhost:7700"
	DefaultPollIndex    = 30 * time.Second
	DefaultPollSearch   = 5 * time.Second
	DefaultTimeout      = 10 * time.Second
	DefaultLogLevel     = "info"
	DefaultToastTimeout = 4 * time.Second
	DefaultRetention    = 500

	envPrefix = "INDEXDESK"
)

// Config is the resolved configuration shared by the TUI, CLI and MCP server
type Config struct {
	Host    string        `mapstructure:"host"`
	APIKey  string        `mapstructure:"api_key"`
	Index   string        `mapstructure:"index"`
	Timeout time.Duration `mapstructure:"timeout"`

	Log     LogConfig     `mapstructure:"log"`
	Journal JournalConfig `mapstructure:"journal"`
	Poll    PollConfig    `mapstructure:"poll"`
	Toast   ToastConfig   `mapstructure:"toast"`

	// Source is the config file that was read, empty when none was found
	Source string `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type JournalConfig struct {
	Path      string `mapstructure:"path"`
	Disabled  bool   `mapstructure:"disabled"`
	Retention int    `mapstructure:"retention"` // tasks kept per index
}

type PollConfig struct {
	Index  time.Duration `mapstructure:"index"`
	Search time.Duration `mapstructure:"search"`
}

type ToastConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"host":      "host",
	"api-key":   "api_key",
	"index":     "index",
	"log-level": "log.level",
	"log-file":  "log.file",
	"journal":   "journal.path",
	"timeout":   "timeout",
}

// Load resolves the configuration. path names an explicit config file; when
// empty indexdesk.yaml is searched in the working directory and in
// ~/.config/indexdesk. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("host", DefaultHost)
	v.SetDefault("api_key", "")
	v.SetDefault("index", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("journal.path", "")
	v.SetDefault("journal.disabled", false)
	v.SetDefault("journal.retention", DefaultRetention)
	v.SetDefault("poll.index", DefaultPollIndex)
	v.SetDefault("poll.search", DefaultPollSearch)
	v.SetDefault("toast.timeout", DefaultToastTimeout)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("indexdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "indexdesk"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.Host = strings.TrimRight(cfg.Host, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that would otherwise fail much later
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if !strings.HasPrefix(c.Host, "http://") && !strings.HasPrefix(c.Host, "https://") {
		return fmt.Errorf("host must start with http:// or https://, got %q", c.Host)
	}
	if c.Poll.Index <= 0 || c.Poll.Search <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Journal.Retention <= 0 {
		return fmt.Errorf("journal retention must be positive")
	}
	return nil
}

// LogPath returns the log file for the TUI, which cannot write to the
// terminal it draws on
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "indexdesk", "indexdesk.log")
}

// RegisterFlags adds the flags Load understands to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: indexdesk.yaml in . or ~/.config/indexdesk)")
	fs.String("host", "", "search engine URL (default "+DefaultHost+")")
	fs.String("api-key", "", "search engine API key")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-file", "", "log file path")
	fs.String("journal", "", "task journal database path")
	fs.Duration("timeout", 0, "HTTP request timeout")
}
