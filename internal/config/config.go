// Package config loads optional run defaults from a YAML file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when --config is unset.
const EnvVar = "EXOPARAM_CONFIG"

// Config holds defaults for CLI flags. Pointer fields distinguish "unset"
// from a zero value so a file can set threads: 0 explicitly.
type Config struct {
	Output       string   `yaml:"output"`
	Threads      *int     `yaml:"threads"`
	ScaleHeights *float64 `yaml:"scale_heights"`
	LogLevel     string   `yaml:"loglevel"`
	LogFormat    string   `yaml:"logformat"`
	MetricsFile  string   `yaml:"metrics_file"`
}

// Parse decodes a config payload. An empty payload yields a zero Config.
func Parse(data []byte) (Config, error) {
	var c Config
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if c.Threads != nil && *c.Threads < 0 {
		return Config{}, fmt.Errorf("config: threads must be >= 0")
	}
	if c.ScaleHeights != nil && *c.ScaleHeights <= 0 {
		return Config{}, fmt.Errorf("config: scale_heights must be > 0")
	}
	return c, nil
}

// Load reads the config at path. When path is empty it falls back to
// $EXOPARAM_CONFIG; with neither set it returns a zero Config.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvVar))
	}
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
