// Package config loads the curate client configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL            = "http://localhost:8000"
	DefaultEntriesPerPage    = 10
	DefaultBannerTTL         = 10 * time.Second
	DefaultNoticeTTL         = 3 * time.Second
	DefaultDownloadNoticeTTL = 2 * time.Second
)

// Config holds the client's configuration.
type Config struct {
	API struct {
		URL string `yaml:"url"`
	} `yaml:"api"`
	Editor struct {
		EntriesPerPage int           `yaml:"entries_per_page"`
		BannerTTL      time.Duration `yaml:"banner_ttl"`
		NoticeTTL      time.Duration `yaml:"notice_ttl"`
	} `yaml:"editor"`
	Download struct {
		Dir       string        `yaml:"dir"`
		NoticeTTL time.Duration `yaml:"notice_ttl"`
	} `yaml:"download"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns a config with every field populated.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.Editor.EntriesPerPage <= 0 {
		c.Editor.EntriesPerPage = DefaultEntriesPerPage
	}
	if c.Editor.BannerTTL <= 0 {
		c.Editor.BannerTTL = DefaultBannerTTL
	}
	if c.Editor.NoticeTTL <= 0 {
		c.Editor.NoticeTTL = DefaultNoticeTTL
	}
	if c.Download.Dir == "" {
		c.Download.Dir = "."
	}
	if c.Download.NoticeTTL <= 0 {
		c.Download.NoticeTTL = DefaultDownloadNoticeTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(Dir(), "curate.log")
	}
}

// Dir is the per-user directory holding the config file and logs.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".curate")
}

// Path resolves the config file location: explicit path, then $CURATE_CONFIG,
// then ~/.curate/config.yml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("CURATE_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.yml")
}

// LoadConfig reads configuration from the specified YAML file. A missing file is
// not an error unless required is set; defaults are used instead.
func LoadConfig(configPath string, required bool) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist) && !required:
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	config.ApplyEnv()
	config.applyDefaults()
	return config, nil
}

// ApplyEnv overrides fields from CURATE_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CURATE_API_URL"); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv("CURATE_DOWNLOAD_DIR"); v != "" {
		c.Download.Dir = v
	}
	if v := os.Getenv("CURATE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
