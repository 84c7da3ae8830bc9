package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := Default()
	if cfg.Concurrency != 1 {
		t.Fatalf("expected default concurrency 1, got %d", cfg.Concurrency)
	}
	if cfg.ClassifierTimeoutMs != ClassifierTimeoutMs {
		t.Fatalf("expected default classifier timeout %d, got %d", ClassifierTimeoutMs, cfg.ClassifierTimeoutMs)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != 1 {
		t.Fatalf("expected default concurrency, got %d", cfg.Concurrency)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "classifier_endpoint: https://example.test/classify\nconcurrency: 4\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClassifierEndpoint != "https://example.test/classify" {
		t.Fatalf("expected endpoint from YAML, got %q", cfg.ClassifierEndpoint)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("expected concurrency 4 from YAML, got %d", cfg.Concurrency)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("classifier_endpoint: https://yaml.test\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	t.Setenv("CAE_CLASSIFIER_ENDPOINT", "https://env.test")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClassifierEndpoint != "https://env.test" {
		t.Fatalf("expected env override, got %q", cfg.ClassifierEndpoint)
	}
}
