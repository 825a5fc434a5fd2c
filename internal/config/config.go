// Package config reads editor settings from the environment and an optional
// YAML file named by OMAL_CONFIG. Environment values win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"omal-editor/internal/languages"
	"omal-editor/internal/logger"
)

const DefaultRunTimeout = 30 * time.Second

type Config struct {
	LogLevel        logger.LogLevel
	JSONLogs        bool
	RunTimeout      time.Duration
	DefaultLanguage string
	Languages       []languages.Language
	// Source is the YAML file the settings came from, if any.
	Source string
}

type fileConfig struct {
	LogLevel        string          `yaml:"log_level"`
	JSONLogs        *bool           `yaml:"json_logs"`
	RunTimeout      string          `yaml:"run_timeout"`
	DefaultLanguage string          `yaml:"default_language"`
	Languages       []languageEntry `yaml:"languages"`
}

type languageEntry struct {
	Name       string   `yaml:"name"`
	Command    []string `yaml:"command"`
	Extensions []string `yaml:"extensions"`
	Shell      bool     `yaml:"shell"`
}

func Default() Config {
	return Config{
		LogLevel:        logger.InfoLevel,
		RunTimeout:      DefaultRunTimeout,
		DefaultLanguage: languages.Python,
	}
}

// FromEnvironment loads the configuration of the running process.
func FromEnvironment() (Config, error) {
	return Load(os.Getenv)
}

// Load builds a Config from defaults, then the YAML file, then env values.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("OMAL_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.applyFile(data); err != nil {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.Source = path
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyFile(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.LogLevel != "" {
		level, err := logger.ParseLevel(fc.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	if fc.JSONLogs != nil {
		c.JSONLogs = *fc.JSONLogs
	}
	if fc.RunTimeout != "" {
		d, err := parseTimeout(fc.RunTimeout)
		if err != nil {
			return err
		}
		c.RunTimeout = d
	}
	if fc.DefaultLanguage != "" {
		c.DefaultLanguage = fc.DefaultLanguage
	}
	for _, entry := range fc.Languages {
		c.Languages = append(c.Languages, languages.Language{
			Name:       entry.Name,
			Command:    entry.Command,
			Extensions: entry.Extensions,
			Shell:      entry.Shell,
		})
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	switch v := getenv("LOG_LEVEL"); {
	case v != "":
		level, err := logger.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("LOG_LEVEL: %w", err)
		}
		c.LogLevel = level
	case getenv("DEBUG") == "1":
		c.LogLevel = logger.DebugLevel
	}

	if v := getenv("OMAL_JSON_LOGS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OMAL_JSON_LOGS: %w", err)
		}
		c.JSONLogs = b
	}

	if v := getenv("OMAL_RUN_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("OMAL_RUN_TIMEOUT: %w", err)
		}
		c.RunTimeout = d
	}

	if v := getenv("OMAL_DEFAULT_LANGUAGE"); v != "" {
		c.DefaultLanguage = v
	}
	return nil
}

// parseTimeout accepts a Go duration; "0" disables the timeout.
func parseTimeout(s string) (time.Duration, error) {
	if s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative timeout %s", s)
	}
	return d, nil
}

// Registry returns the builtin language registry with the configured
// overrides and default applied.
func (c Config) Registry() (*languages.Registry, error) {
	r := languages.Builtin()
	for _, l := range c.Languages {
		if err := r.Register(l); err != nil {
			return nil, err
		}
	}
	if c.DefaultLanguage != "" {
		if err := r.SetDefault(c.DefaultLanguage); err != nil {
			return nil, fmt.Errorf("default language: %w", err)
		}
	}
	return r, nil
}
