package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	verrors "github.com/verso-ui/verso/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return dir
}

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `{"name": "demo"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Name)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Server.Host != DefaultHost || cfg.Server.Port != DefaultPort {
		t.Errorf("Server = %+v, want default host/port", cfg.Server)
	}
	if cfg.Sessions.Max != DefaultMaxSessions {
		t.Errorf("Sessions.Max = %d, want %d", cfg.Sessions.Max, DefaultMaxSessions)
	}
	if got := cfg.IdleTimeout(); got != 30*time.Minute {
		t.Errorf("IdleTimeout() = %v, want 30m", got)
	}
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	dir := writeConfig(t, `{
		"name": "demo",
		"baseUrl": "https://example.com/app",
		"server": {"host": "0.0.0.0", "port": 9000},
		"sessions": {"max": 50, "idleTimeout": "5m"}
	}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BaseURL != "https://example.com/app" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.ParsedBaseURL().Path != "/app" {
		t.Errorf("ParsedBaseURL().Path = %q, want /app", cfg.ParsedBaseURL().Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Sessions.Max != 50 {
		t.Errorf("Sessions.Max = %d, want 50", cfg.Sessions.Max)
	}
	if got := cfg.IdleTimeout(); got != 5*time.Minute {
		t.Errorf("IdleTimeout() = %v, want 5m", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing verso.json")
	}
	var ve *verrors.VersoError
	if !stderrors.As(err, &ve) {
		t.Fatalf("expected *VersoError, got %T", err)
	}
	if ve.Code != "E200" {
		t.Errorf("Code = %q, want E200", ve.Code)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := writeConfig(t, `{"name": `)

	_, err := Load(dir)
	var ve *verrors.VersoError
	if !stderrors.As(err, &ve) || ve.Code != "E201" {
		t.Fatalf("expected E201, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:     "relative base URL",
			mutate:   func(c *Config) { c.BaseURL = "relative/path" },
			wantCode: "E202",
		},
		{
			name:     "port out of range",
			mutate:   func(c *Config) { c.Server.Port = 70000 },
			wantCode: "E201",
		},
		{
			name:     "negative session cap",
			mutate:   func(c *Config) { c.Sessions.Max = -1 },
			wantCode: "E201",
		},
		{
			name:     "bad idle timeout",
			mutate:   func(c *Config) { c.Sessions.IdleTimeout = "soon" },
			wantCode: "E201",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			var ve *verrors.VersoError
			if !stderrors.As(err, &ve) || ve.Code != tt.wantCode {
				t.Fatalf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := writeConfig(t, `{"name": "demo", "baseUrl": "http://localhost:3000"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg.Server.Port = 3000
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if reloaded.Server.Port != 3000 {
		t.Errorf("Server.Port = %d after reload, want 3000", reloaded.Server.Port)
	}
}
