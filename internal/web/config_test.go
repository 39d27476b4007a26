package web

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	content := `{
		"server": {"port": 9090, "host": "127.0.0.1"},
		"database": {"url": "postgres://u:p@localhost/db", "max_connections": 10},
		"auth": {"enabled": true, "api_key": "k1"},
		"features": {"ad_hoc_extract_enabled": false, "cache_size": 64}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.Server.Port != 9090 || config.Server.Host != "127.0.0.1" {
		t.Errorf("server = %+v", config.Server)
	}
	if config.Database.MaxConnections != 10 {
		t.Errorf("max_connections = %d, want 10", config.Database.MaxConnections)
	}
	if !config.Auth.Enabled || config.Auth.APIKey != "k1" {
		t.Errorf("auth = %+v", config.Auth)
	}
	if config.Features.AdHocExtractEnabled || config.Features.CacheSize != 64 {
		t.Errorf("features = %+v", config.Features)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", config.Server.Port)
	}
	if config.Auth.Enabled {
		t.Error("auth should default to disabled")
	}
	if !config.Features.AdHocExtractEnabled {
		t.Error("ad-hoc extraction should default to enabled")
	}
	if config.Features.CacheSize <= 0 {
		t.Errorf("default cache size = %d, want positive", config.Features.CacheSize)
	}
}
