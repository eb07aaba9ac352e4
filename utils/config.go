package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Server ServerConfig `json:"server"`
	UI     UIConfig     `json:"ui"`
	Data   DataConfig   `json:"data"`
}

// ServerConfig holds the backend endpoints. Both URLs are externally
// supplied; the client never derives one from the other.
type ServerConfig struct {
	APIBaseURL string `json:"api_base_url"`
	SocketURL  string `json:"socket_url"`
}

// UIConfig represents UI configuration
type UIConfig struct {
	Theme        string `json:"theme"`
	FontSize     int    `json:"font_size"`
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
}

// DataConfig represents local data storage configuration
type DataConfig struct {
	CachePath string `json:"cache_path"`
	ExportDir string `json:"export_dir,omitempty"`
}

// Environment variables that override the config file. Useful for pointing
// a dev build at a local backend without editing the config.
const (
	EnvAPIBaseURL = "MAGNECRUIT_API_BASE_URL"
	EnvSocketURL  = "MAGNECRUIT_SOCKET_URL"
)

// LoadConfig loads configuration from file and applies environment overrides
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnvOverrides()

	// Expand paths
	if config.Data.CachePath != "" {
		config.Data.CachePath = expandPath(config.Data.CachePath)
	}

	return &config, nil
}

// applyEnvOverrides lets environment variables win over the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.Server.APIBaseURL = v
	}
	if v := os.Getenv(EnvSocketURL); v != "" {
		c.Server.SocketURL = v
	}
}

// SaveConfig saves configuration to file
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	// Expand ~
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	// Make absolute
	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	// Try to get user config directory
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		return "./config/default.json"
	}

	return filepath.Join(configDir, "magnecruit-client", "config.json")
}

// EnsureDefaultConfig creates a default config file if it doesn't exist
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	// Check if config exists
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	defaultConfig := &Config{
		Server: ServerConfig{
			APIBaseURL: "http://localhost:5000",
			SocketURL:  "ws://localhost:5000",
		},
		UI: UIConfig{
			Theme:        "light",
			FontSize:     14,
			WindowWidth:  1280,
			WindowHeight: 820,
		},
		Data: DataConfig{
			CachePath: "./data/magnecruit.db",
		},
	}

	if err := SaveConfig(configPath, defaultConfig); err != nil {
		return "", err
	}

	return configPath, nil
}
