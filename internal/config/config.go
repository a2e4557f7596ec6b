package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the config file
const (
	EnvDataDir = "QITRACK_DATA_DIR"
	EnvBackend = "QITRACK_BACKEND"
)

// Config represents the application configuration
type Config struct {
	// DataDir holds the projects and pdsa tables
	DataDir string `yaml:"data_dir"`

	// Backend selects the storage implementation: "csv" or "sqlite"
	Backend string `yaml:"backend"`

	Log         LogConfig   `yaml:"log"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// LogConfig controls the rotating log file
type LogConfig struct {
	Level     string `yaml:"level"` // debug, info, warn, error
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		config.applyEnv()
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path; a missing file yields the defaults
func LoadFile(path string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := Default()
		config.applyEnv()
		return config, nil
	}

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyEnv()

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "qitrack", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "qitrack", "config.yaml"), nil
}

// homeDir returns ~/.qitrack, or a relative .qitrack when there is no home
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qitrack"
	}
	return filepath.Join(home, ".qitrack")
}

// applyEnv overrides file values with QITRACK_* environment variables
func (c *Config) applyEnv() {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.DataDir = dir
	}
	if backend := os.Getenv(EnvBackend); backend != "" {
		c.Backend = backend
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(homeDir(), "data")
	}
	if c.Backend == "" {
		c.Backend = "csv"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(homeDir(), "logs", "qitrack.log")
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxFiles <= 0 {
		c.Log.MaxFiles = 5
	}
	c.ColorScheme.ApplyDefaults()
}
