// Package config loads the Chat Analysis Engine's tunable configuration:
// classifier connection details, concurrency, and persistence paths.
// Defaults apply first, a YAML file overlays them, and environment
// variables take final precedence — the same layering the teacher used
// for its own app config.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the CAE's runtime configuration.
type Config struct {
	AppDir string `yaml:"-"`

	DBPath string `yaml:"db_path"`

	ClassifierEndpoint  string `yaml:"classifier_endpoint"`
	ClassifierAPIKey    string `yaml:"classifier_api_key"`
	ClassifierRPM       int    `yaml:"classifier_rpm"`
	ClassifierTimeoutMs int    `yaml:"classifier_timeout_ms"`

	Concurrency int `yaml:"concurrency"`
}

// GetAppDir returns the CAE application directory for the current OS.
func GetAppDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CAE")
	case "linux":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cae")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "CAE")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".cae")
	}
}

// Default returns the configuration a fresh installation runs with: no
// classifier configured (lexical scoring only), sequential scoring.
func Default() *Config {
	appDir := GetAppDir()
	return &Config{
		AppDir:              appDir,
		DBPath:              filepath.Join(appDir, "cae.db"),
		ClassifierTimeoutMs: ClassifierTimeoutMs,
		Concurrency:         1,
	}
}

// Load reads path (if it exists) as YAML over the defaults, then applies
// environment overrides. A missing file is not an error — Default()'s
// values stand.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ClassifierEndpoint = getEnv("CAE_CLASSIFIER_ENDPOINT", cfg.ClassifierEndpoint)
	cfg.ClassifierAPIKey = getEnv("CAE_CLASSIFIER_API_KEY", cfg.ClassifierAPIKey)
	cfg.DBPath = getEnv("CAE_DB_PATH", cfg.DBPath)

	if cfg.ClassifierTimeoutMs <= 0 {
		cfg.ClassifierTimeoutMs = ClassifierTimeoutMs
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
