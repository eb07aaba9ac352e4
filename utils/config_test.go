package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	original := &Config{
		Server: ServerConfig{
			APIBaseURL: "https://app.example.com",
			SocketURL:  "wss://app.example.com",
		},
		UI:   UIConfig{Theme: "dark", FontSize: 15, WindowWidth: 1280, WindowHeight: 820},
		Data: DataConfig{CachePath: filepath.Join(dir, "cache.db")},
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Server.APIBaseURL != original.Server.APIBaseURL {
		t.Errorf("api base url mismatch: %s", loaded.Server.APIBaseURL)
	}
	if loaded.Server.SocketURL != original.Server.SocketURL {
		t.Errorf("socket url mismatch: %s", loaded.Server.SocketURL)
	}
	if loaded.UI.Theme != "dark" || loaded.UI.FontSize != 15 {
		t.Errorf("ui config mismatch: %+v", loaded.UI)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := &Config{
		Server: ServerConfig{
			APIBaseURL: "http://localhost:5000",
			SocketURL:  "ws://localhost:5000",
		},
	}
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	t.Setenv(EnvAPIBaseURL, "https://staging.example.com")
	t.Setenv(EnvSocketURL, "wss://staging.example.com")

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Server.APIBaseURL != "https://staging.example.com" {
		t.Errorf("env override not applied to api base url: %s", loaded.Server.APIBaseURL)
	}
	if loaded.Server.SocketURL != "wss://staging.example.com" {
		t.Errorf("env override not applied to socket url: %s", loaded.Server.SocketURL)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid config file")
	}
}
