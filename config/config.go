// Package config loads the qm configuration from defaults, an optional
// config file, a .env file and QM_ prefixed environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/williamleo0369-ux/quant-monitor-sub001/kv"
)

// EnvPrefix prefixes every environment variable, e.g. QM_STORE_DRIVER.
const EnvPrefix = "QM"

// Config holds application configuration
type Config struct {
	DataDir      string        // directory of the store and the config file
	StoreDriver  string        // file, sqlite, sqlite3 or memory
	StorePath    string        // store location, relative to DataDir
	LogLevel     string        // debug, info, warn, error
	LogPretty    bool          // console log output
	Seed         uint64        // market simulation seed, 0 is time-based
	Currency     string        // currency of every amount
	RefreshDelay time.Duration // cosmetic pause before a price refresh
	Raw          bool          // print Markdown without terminal styling
}

func defaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("data_dir", filepath.Join(home, ".quant-monitor"))
	v.SetDefault("store.driver", kv.DriverFile)
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("market.seed", 0)
	v.SetDefault("currency", "CNY")
	v.SetDefault("refresh.delay", "0s")
	v.SetDefault("render.raw", false)
}

// Load reads the configuration. configFile may be empty, in which case
// config.{yaml,toml,json} is looked up in the working directory and the data
// directory; a missing file is not an error.
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(v.GetString("data_dir"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		DataDir:      v.GetString("data_dir"),
		StoreDriver:  v.GetString("store.driver"),
		StorePath:    v.GetString("store.path"),
		LogLevel:     v.GetString("log.level"),
		LogPretty:    v.GetBool("log.pretty"),
		Seed:         v.GetUint64("market.seed"),
		Currency:     strings.ToUpper(v.GetString("currency")),
		RefreshDelay: v.GetDuration("refresh.delay"),
		Raw:          v.GetBool("render.raw"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case kv.DriverFile, kv.DriverSQLite, kv.DriverSQLite3, kv.DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.DataDir == "" && c.StoreDriver != kv.DriverMemory {
		return errors.New("data_dir is required")
	}
	if c.Currency == "" {
		return errors.New("currency is required")
	}
	if c.RefreshDelay < 0 {
		return fmt.Errorf("refresh.delay %v is negative", c.RefreshDelay)
	}
	return nil
}

// Overrides are configuration values given on the command line. Zero values
// keep the loaded configuration.
type Overrides struct {
	DataDir     string
	StoreDriver string
	LogLevel    string
	Seed        uint64
	Raw         bool
}

// Override applies o to c and validates the result.
func (c *Config) Override(o Overrides) error {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.StoreDriver != "" {
		c.StoreDriver = o.StoreDriver
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Raw {
		c.Raw = true
	}
	return c.Validate()
}

// Store returns the location of the store, resolved against DataDir.
func (c *Config) Store() string {
	path := c.StorePath
	if path == "" {
		switch c.StoreDriver {
		case kv.DriverSQLite, kv.DriverSQLite3:
			path = "quant.db"
		default:
			path = "quant.json"
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}
