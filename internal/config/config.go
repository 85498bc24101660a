// Package config loads the server's runtime settings from an optional YAML
// file and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/janisto/echo-greeter/internal/platform/validate"
)

// Address is the fixed listen address of the server.
const Address = "0.0.0.0:8080"

// Environment variables read by Load.
const (
	EnvConfigFile  = "GREETER_CONFIG"
	EnvEnvironment = "APP_ENVIRONMENT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvMinifyHTML  = "MINIFY_HTML"
)

// Config holds the settings that may vary between deployments.
type Config struct {
	Environment string `yaml:"environment" validate:"oneof=development test production"`
	LogLevel    string `yaml:"logLevel"    validate:"oneof=debug info warn warning error"`
	MinifyHTML  bool   `yaml:"minifyHTML"`
}

// Default returns the production defaults.
func Default() Config {
	return Config{
		Environment: "production",
		LogLevel:    "info",
	}
}

// Load starts from Default, applies the YAML file named by GREETER_CONFIG
// when set, then environment overrides, and validates the result.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate.New().Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// decodeYAML rejects unknown keys so typos do not silently fall back to defaults.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvMinifyHTML); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinifyHTML, err)
		}
		cfg.MinifyHTML = b
	}
	return nil
}

// IsDevelopment reports whether the server runs in the development environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
