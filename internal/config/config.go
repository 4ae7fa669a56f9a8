// Package config layers runtime options: defaults, then an optional yaml
// file, then environment variables, then flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Modes for the presenter.
const (
	ModeTUI   = "tui"
	ModePlain = "plain"
	ModeOnce  = "once"
)

// Store backends for the recorder.
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Config carries runtime options for spmon.
type Config struct {
	LogPath   string        `yaml:"log_path"`
	Interval  time.Duration `yaml:"interval"`
	TopN      int           `yaml:"top_n"`
	Mode      string        `yaml:"mode"`
	Store     string        `yaml:"store"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
}

func Default() Config {
	return Config{
		LogPath:   "system_performance_log.csv",
		Interval:  3 * time.Second,
		TopN:      5,
		Mode:      ModeTUI,
		Store:     StoreCSV,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the effective config from args. A missing config file is
// not an error; a present but unreadable one is.
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("spmon", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to yaml config file")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "log destination for records")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "target cycle period (effective minimum 1s)")
	fs.IntVar(&cfg.TopN, "top", cfg.TopN, "ranked processes per category")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "presenter mode: tui|plain|once")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "record sink: csv|sqlite")

	// Parse twice: once to find -config, then again after the file and
	// env layers so flags win.
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *configPath != "" {
		if err := cfg.applyFile(*configPath); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	godotenv.Load()

	if v := os.Getenv("SPMON_LOG"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("SPMON_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Interval = parsed
		} else if secs, err2 := strconv.Atoi(v); err2 == nil {
			c.Interval = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("SPMON_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TopN = n
		}
	}
	if v := os.Getenv("SPMON_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("SPMON_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("SPMON_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SPMON_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

func (c *Config) normalize() {
	if c.TopN < 1 {
		c.TopN = Default().TopN
	}
	if c.Interval <= 0 {
		c.Interval = Default().Interval
	}
	if c.LogPath == "" {
		c.LogPath = Default().LogPath
	}
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeTUI, ModePlain, ModeOnce:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Store {
	case StoreCSV, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}
