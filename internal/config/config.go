// Package config loads the resolver-wizard configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"resolver-wizard/internal/graphqlapi"
	"resolver-wizard/internal/logging"
)

const (
	DefaultAddress   = "localhost:10101"
	DefaultTimeout   = 10 * time.Second
	DefaultNamespace = "gloo-system"
)

// Config is the on-disk configuration.
type Config struct {
	Version  string `yaml:"version"`
	Server   Server `yaml:"server"`
	Log      Log    `yaml:"log"`
	API      API    `yaml:"api,omitempty"`
	ReadOnly bool   `yaml:"readOnly,omitempty"`
}

// Server is where the API server listens.
type Server struct {
	Address  string        `yaml:"address"`
	Insecure bool          `yaml:"insecure,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// API names the GraphQL API commands act on when none is given.
type API struct {
	Name      string `yaml:"name,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
	Cluster   string `yaml:"cluster,omitempty"`
}

// Ref returns the API as a remote reference.
func (a API) Ref() graphqlapi.ClusterObjectRef {
	return graphqlapi.ClusterObjectRef{Name: a.Name, Namespace: a.Namespace, ClusterName: a.Cluster}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}

	if c.Server.Timeout == 0 {
		c.Server.Timeout = DefaultTimeout
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Log.Format == "" {
		c.Log.Format = logging.FormatText
	}

	if c.API.Name != "" && c.API.Namespace == "" {
		c.API.Namespace = DefaultNamespace
	}
}

// Validate checks values the loader cannot default.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Timeout < 0 {
		errs = append(errs, fmt.Errorf("server.timeout must not be negative, got %s", c.Server.Timeout))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.Log.Format))
	}

	return errors.Join(errs...)
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes a Config to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
