package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration of the application.
type Config struct {
	LogLevel string         `yaml:"logLevel"`
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Metrics  *MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	HttpHost     string `yaml:"httpHost"`
	HttpPort     string `yaml:"httpPort"`
	MaxTimeoutMs int    `yaml:"maxTimeoutMs"`
}

type UpstreamConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LoadConfig loads the configuration from the specified file.
func LoadConfig(fs afero.Fs, filename string) (*Config, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the two required startup values: listen port and
// destination endpoint.
func (c *Config) Validate() error {
	if c.Server.HttpPort == "" {
		return fmt.Errorf("server.httpPort is required")
	}
	if c.Upstream.Endpoint == "" {
		return fmt.Errorf("upstream.endpoint is required")
	}
	return nil
}
