package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/takaryo1010/privdict/render"
)

// FileConfig represents the structure of the optional YAML config file.
type FileConfig struct {
	URL     string  `yaml:"url"`
	Retired *string `yaml:"retired"`
	Format  string  `yaml:"format"`
	Timeout string  `yaml:"timeout"`
}

// LoadConfig loads and validates the config file at the given path.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if fc.Format != "" {
		if _, err := render.ParseFormat(fc.Format); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid config: timeout %q must be a non-negative duration", fc.Timeout)
		}
	}
	return &fc, nil
}

// apply copies the file settings into cfg, except those named in explicit.
func (fc *FileConfig) apply(cfg *Config, explicit map[string]bool) error {
	if fc.URL != "" && !explicit["url"] {
		cfg.URL = fc.URL
	}
	if fc.Retired != nil && !explicit["retired"] {
		cfg.Retired = *fc.Retired
	}
	if fc.Format != "" && !explicit["format"] {
		f, err := render.ParseFormat(fc.Format)
		if err != nil {
			return err
		}
		cfg.Format = f
	}
	if fc.Timeout != "" && !explicit["timeout"] {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	return nil
}
