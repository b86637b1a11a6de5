package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not set.
const DefaultConfigFile = "turing.yaml"

// Environment overrides.
const (
	EnvStepLimit = "TURING_STEP_LIMIT"
	EnvStore     = "TURING_STORE"
	EnvRedisURL  = "TURING_REDIS_URL"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds the settings shared by every command.
type Config struct {
	StepLimit int    `yaml:"step_limit"`
	Store     string `yaml:"store"`
	RunsDir   string `yaml:"runs_dir"`
	RedisURL  string `yaml:"redis_url"`
	Addr      string `yaml:"addr"`
	Debug     bool   `yaml:"debug"`
	NoColor   bool   `yaml:"no_color"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		StepLimit: 500,
		Store:     StoreFile,
		RunsDir:   file.DefaultPath,
		RedisURL:  "redis://localhost:6379/0",
		Addr:      ":8080",
	}
}

// LoadConfig resolves the configuration: flags over environment over file
// over defaults. path may be empty, in which case DefaultConfigFile is read
// if it exists. flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if flags != nil {
		if err := cfg.applyFlags(flags); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStepLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStepLimit, err)
		}
		c.StepLimit = n
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.RedisURL = v
	}
	return nil
}

// applyFlags copies the flags the user actually set.
func (c *Config) applyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "step-limit":
			c.StepLimit, err = flags.GetInt(f.Name)
		case "store":
			c.Store = f.Value.String()
		case "runs-dir":
			c.RunsDir = f.Value.String()
		case "redis-url":
			c.RedisURL = f.Value.String()
		case "addr":
			c.Addr = f.Value.String()
		case "debug":
			c.Debug, err = flags.GetBool(f.Name)
		case "no-color":
			c.NoColor, err = flags.GetBool(f.Name)
		}
	})
	return err
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	if c.StepLimit <= 0 {
		return fmt.Errorf("step limit must be positive, got %d", c.StepLimit)
	}
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want %s, %s or %s)", c.Store, StoreMemory, StoreFile, StoreRedis)
	}
	return nil
}
