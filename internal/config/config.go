package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DefaultSourceURL is the members list the admin table was built against.
const DefaultSourceURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

// Config holds application configuration.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	List   ListConfig   `mapstructure:"list"`
	UI     UIConfig     `mapstructure:"ui"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig says where members are fetched from.
type SourceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ListConfig holds table behaviour.
type ListConfig struct {
	PageSize      int  `mapstructure:"page_size"`
	PreserveEdits bool `mapstructure:"preserve_edits"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DarkMode bool `mapstructure:"dark_mode"`
}

// CacheConfig holds the sqlite snapshot cache settings.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Keep    int    `mapstructure:"keep"`
}

// LogConfig holds the log file settings. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix ADMINUI_.
func Load() (Config, error) {
	v := viper.New()
	home := os.Getenv("HOME")

	// default values
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("list.page_size", 10)
	v.SetDefault("list.preserve_edits", true)
	v.SetDefault("ui.dark_mode", false)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", filepath.Join(home, ".local", "share", "adminui", "adminui.db"))
	v.SetDefault("cache.keep", 5)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "adminui", "adminui.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ADMINUI_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "adminui"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ADMINUI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(cfgPath == "" && os.IsNotExist(err)) {
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

// Validate rejects settings the table cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Source.URL) == "" {
		errs = append(errs, errors.New("source.url must be set"))
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, errors.New("source.timeout must not be negative"))
	}
	if c.List.PageSize < 1 {
		errs = append(errs, fmt.Errorf("list.page_size must be at least 1, got %d", c.List.PageSize))
	}
	if c.Cache.Enabled {
		if strings.TrimSpace(c.Cache.Path) == "" {
			errs = append(errs, errors.New("cache.path must be set when the cache is enabled"))
		}
		if c.Cache.Keep < 1 {
			errs = append(errs, fmt.Errorf("cache.keep must be at least 1, got %d", c.Cache.Keep))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Path is the config file Load reads and SaveDarkMode writes.
func Path() string {
	if p := os.Getenv("ADMINUI_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "adminui", "config.toml")
}

// saveMu serialises writes to the config file.
var saveMu sync.Mutex

// SaveDarkMode records the display mode in the config file. Only
// ui.dark_mode changes; the rest of the file is kept as written, so
// defaults and ADMINUI_ env overrides never end up on disk.
func SaveDarkMode(dark bool) error {
	return saveKey("ui.dark_mode", dark)
}

func saveKey(key string, value any) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config: %w", err)
	}
	v.Set(key, value)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
