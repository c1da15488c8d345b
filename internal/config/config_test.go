package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAPIFromFile(t *testing.T) {
	path := writeConfig(t, `addr: ":9090"
database_url: postgres://localhost/courtside
league_file: /tmp/league.yaml
seed: 42
http_timeout: 30s
`)
	cfg, err := LoadAPI(path)
	if err != nil {
		t.Fatalf("LoadAPI: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.DatabaseURL != "postgres://localhost/courtside" {
		t.Fatalf("database_url = %q", cfg.DatabaseURL)
	}
	if cfg.Seed != 42 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("http_timeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoadAPIEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `addr: ":9090"
database_url: postgres://file/db
`)
	t.Setenv("COURTSIDE_DATABASE_URL", "postgres://env/db")
	t.Setenv("COURTSIDE_ADDR", ":7070")

	cfg, err := LoadAPI(path)
	if err != nil {
		t.Fatalf("LoadAPI: %v", err)
	}
	if cfg.DatabaseURL != "postgres://env/db" {
		t.Fatalf("database_url = %q, want env value", cfg.DatabaseURL)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("addr = %q, want env value", cfg.Addr)
	}
}

func TestLoadAPIDefaults(t *testing.T) {
	t.Setenv("COURTSIDE_DATABASE_URL", "postgres://env/db")

	cfg, err := LoadAPI("")
	if err != nil {
		t.Fatalf("LoadAPI: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q, want default :8080", cfg.Addr)
	}
	if cfg.HTTPTimeout != 60*time.Second {
		t.Fatalf("http_timeout = %v, want default 60s", cfg.HTTPTimeout)
	}
}

func TestLoadAPIRequiresDatabaseURL(t *testing.T) {
	_, err := LoadAPI("")
	if err == nil {
		t.Fatalf("expected error without database_url")
	}
	if !strings.Contains(err.Error(), "database_url") {
		t.Fatalf("error = %v", err)
	}
}

func TestLoadAPIBarePort(t *testing.T) {
	path := writeConfig(t, `addr: "9191"
database_url: postgres://localhost/courtside
`)
	cfg, err := LoadAPI(path)
	if err != nil {
		t.Fatalf("LoadAPI: %v", err)
	}
	if cfg.Addr != ":9191" {
		t.Fatalf("addr = %q, want :9191", cfg.Addr)
	}
}

func TestLoadAPIMissingFile(t *testing.T) {
	if _, err := LoadAPI(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadWorker(t *testing.T) {
	t.Setenv("COURTSIDE_DATABASE_URL", "postgres://env/db")
	t.Setenv("COURTSIDE_TICK_EVERY", "90s")

	cfg, err := LoadWorker("")
	if err != nil {
		t.Fatalf("LoadWorker: %v", err)
	}
	if cfg.TickEvery != 90*time.Second {
		t.Fatalf("tick_every = %v", cfg.TickEvery)
	}
}

func TestLoadWorkerRequiresDatabaseURL(t *testing.T) {
	if _, err := LoadWorker(""); err == nil {
		t.Fatalf("expected error without database_url")
	}
}

func TestLoadCLI(t *testing.T) {
	cfg := LoadCLI()
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("api_base_url = %q", cfg.APIBaseURL)
	}

	t.Setenv("COURTSIDE_API_BASE_URL", "http://api.example.com/")
	cfg = LoadCLI()
	if cfg.APIBaseURL != "http://api.example.com" {
		t.Fatalf("api_base_url = %q, want trailing slash trimmed", cfg.APIBaseURL)
	}
}
