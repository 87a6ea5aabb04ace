package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultAPIBaseURL = "https://jsonplaceholder.typicode.com"
	defaultDBPath     = "todo-cli.db"
	defaultLogLevel   = "info"
	defaultConfigPath = "~/.config/todo-cli/config.toml"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL string
	DBPath     string
	LogPath    string
	LogLevel   string
}

type fileConfig struct {
	APIBaseURL string `toml:"api_base_url"`
	DBPath     string `toml:"db_path"`
	LogPath    string `toml:"log_path"`
	LogLevel   string `toml:"log_level"`
}

// Load builds the config from defaults, then the optional TOML file named by
// TODO_CONFIG (or the default location), then the environment.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL: defaultAPIBaseURL,
		DBPath:     defaultDBPath,
		LogLevel:   defaultLogLevel,
	}

	path := os.Getenv("TODO_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return Config{}, err
	}

	cfg.mergeEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	resolved, err := expandPath(path)
	if err != nil {
		if required {
			return err
		}
		return nil
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", resolved, err)
	}

	setIfPresent(&c.APIBaseURL, fc.APIBaseURL)
	setIfPresent(&c.DBPath, fc.DBPath)
	setIfPresent(&c.LogPath, fc.LogPath)
	setIfPresent(&c.LogLevel, fc.LogLevel)
	return nil
}

func (c *Config) mergeEnv() {
	setIfPresent(&c.APIBaseURL, os.Getenv("TODO_API_BASE_URL"))
	setIfPresent(&c.DBPath, os.Getenv("TODO_DB_PATH"))
	setIfPresent(&c.LogPath, os.Getenv("TODO_LOG_PATH"))
	setIfPresent(&c.LogLevel, os.Getenv("TODO_LOG_LEVEL"))
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("APIBaseURL is not a valid URL: %s", c.APIBaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("APIBaseURL must use http or https: %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	return nil
}

func setIfPresent(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
