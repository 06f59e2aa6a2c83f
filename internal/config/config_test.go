package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_CreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.BaseURL == "" {
		t.Error("default base_url is empty")
	}
	if cfg.Server.Port != 8765 {
		t.Errorf("default port = %d, want 8765", cfg.Server.Port)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file was not created: %v", err)
	}
}

func TestLoad_ParsesValues(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://api.example.com/api"
timeout_seconds = 10

[server]
port = 9000
auto_open_browser = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com/api" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("timeout_seconds = %d, want 10", cfg.API.TimeoutSeconds)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.AutoOpenBrowser {
		t.Error("auto_open_browser = true, want false")
	}
}

func TestLoad_ExplicitZeroPortIsAnError(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 0
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "server.port") {
		t.Errorf("Load() error = %v, want explicit port validation error", err)
	}
}

func TestLoad_RejectsBadBaseURL(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "not a url"
`)

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted an invalid base_url")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://file.example.com/api"

[server]
port = 9000
`)

	t.Setenv("BOOKBRUST_API_URL", "https://env.example.com/api")
	t.Setenv("BOOKBRUST_PORT", "9001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "https://env.example.com/api" {
		t.Errorf("base_url = %q, env override not applied", cfg.API.BaseURL)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("port = %d, env override not applied", cfg.Server.Port)
	}
}

func TestLoad_IgnoresInvalidEnvPort(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9000
`)

	t.Setenv("BOOKBRUST_PORT", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want file value 9000", cfg.Server.Port)
	}
}
