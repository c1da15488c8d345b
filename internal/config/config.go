// Package config loads settings from an optional YAML file overlaid with
// COURTSIDE_-prefixed environment variables; env wins.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "COURTSIDE_"

type APIConfig struct {
	Addr        string        `koanf:"addr"`
	DatabaseURL string        `koanf:"database_url"`
	LeagueFile  string        `koanf:"league_file"`
	Seed        int64         `koanf:"seed"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`
}

type WorkerConfig struct {
	DatabaseURL string        `koanf:"database_url"`
	TickEvery   time.Duration `koanf:"tick_every"`
	Seed        int64         `koanf:"seed"`
}

type CLIConfig struct {
	APIBaseURL string `koanf:"api_base_url"`
}

func load(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	return k, nil
}

// LoadAPI reads API settings; path may be empty for env-only operation.
func LoadAPI(path string) (APIConfig, error) {
	cfg := APIConfig{
		Addr:        ":8080",
		HTTPTimeout: 60 * time.Second,
	}
	k, err := load(path)
	if err != nil {
		return cfg, err
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if !strings.HasPrefix(cfg.Addr, ":") && !strings.Contains(cfg.Addr, ":") {
		cfg.Addr = ":" + cfg.Addr
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("database_url is required (set %sDATABASE_URL)", envPrefix)
	}
	return cfg, nil
}

// LoadWorker reads the offseason worker's settings.
func LoadWorker(path string) (WorkerConfig, error) {
	cfg := WorkerConfig{TickEvery: 5 * time.Minute}
	k, err := load(path)
	if err != nil {
		return cfg, err
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("database_url is required (set %sDATABASE_URL)", envPrefix)
	}
	return cfg, nil
}

// LoadCLI reads client settings; everything has a default.
func LoadCLI() CLIConfig {
	cfg := CLIConfig{APIBaseURL: "http://localhost:8080"}
	if k, err := load(""); err == nil {
		_ = k.Unmarshal("", &cfg)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg
}
