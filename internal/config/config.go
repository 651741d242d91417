// Package config loads japa's configuration from an optional config.yaml and
// JAPA_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/japa/internal/store"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Log      LogConfig      `mapstructure:"log"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Counter  CounterConfig  `mapstructure:"counter"`
	Export   ExportConfig   `mapstructure:"export"`
}

// DataConfig locates the database.
type DataConfig struct {
	Dir    string `mapstructure:"dir"`
	DBFile string `mapstructure:"db_file"`
}

// LogConfig controls the log file. An empty File disables logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ReminderConfig struct {
	CheckInterval time.Duration `mapstructure:"check_interval"`
}

type CounterConfig struct {
	DefaultTarget int `mapstructure:"default_target"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in configPath, the working directory and the
// user config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "japa"))
	}

	// e.g. JAPA_DATA_DIR, JAPA_LOG_LEVEL, JAPA_REMINDER_CHECK_INTERVAL
	v.SetEnvPrefix("JAPA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	dataDir := "."
	if path, err := store.DefaultDBPath(); err == nil {
		dataDir = filepath.Dir(path)
	}
	exportDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		exportDir = home
	}

	v.SetDefault("data.dir", dataDir)
	v.SetDefault("data.db_file", "japa.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "japa.log")

	v.SetDefault("reminder.check_interval", "1m")

	v.SetDefault("counter.default_target", 108)

	v.SetDefault("export.dir", exportDir)
}

func (c *Config) validate() error {
	if c.Reminder.CheckInterval <= 0 {
		return fmt.Errorf("reminder.check_interval must be positive, got %s", c.Reminder.CheckInterval)
	}
	if c.Counter.DefaultTarget < 0 {
		return fmt.Errorf("counter.default_target must not be negative, got %d", c.Counter.DefaultTarget)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}

// DBPath returns the database file path. ":memory:" is passed through.
func (c *Config) DBPath() string {
	if c.Data.DBFile == ":memory:" || filepath.IsAbs(c.Data.DBFile) {
		return c.Data.DBFile
	}
	return filepath.Join(c.Data.Dir, c.Data.DBFile)
}

// LogPath returns the log file path, or "" when logging is off.
func (c *Config) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Data.Dir, c.Log.File)
}

func (c *Config) ExportDir() string {
	return c.Export.Dir
}
