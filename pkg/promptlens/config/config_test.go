package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/promptlens/pkg/promptlens/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Expected concurrency 4, got %d", cfg.Concurrency)
	}
	if cfg.ClusterSimilarity != 0.25 {
		t.Errorf("Expected cluster similarity 0.25, got %v", cfg.ClusterSimilarity)
	}
	if cfg.StrengthsCount != 3 {
		t.Errorf("Expected 3 strengths, got %d", cfg.StrengthsCount)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "promptlens.yaml", `concurrency: 2
cluster_similarity: 0.4
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Expected concurrency 2, got %d", cfg.Concurrency)
	}
	if cfg.ClusterSimilarity != 0.4 {
		t.Errorf("Expected cluster similarity 0.4, got %v", cfg.ClusterSimilarity)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.TopNGrams != 10 {
		t.Errorf("Missing key should keep default 10, got %d", cfg.TopNGrams)
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"concurrency too high", "concurrency: 8\n", "Concurrency"},
		{"concurrency zero", "concurrency: 0\n", "Concurrency"},
		{"similarity above one", "cluster_similarity: 1.5\n", "ClusterSimilarity"},
		{"similarity zero", "cluster_similarity: 0\n", "ClusterSimilarity"},
		{"ngrams", "top_ngrams: 500\n", "TopNGrams"},
		{"strengths", "strengths_count: 9\n", "StrengthsCount"},
		{"log level", "log_level: loud\n", "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", tt.content))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Error should name %s: %v", tt.field, err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeFile(t, "broken.yaml", "concurrency: [1, 2\n"))
	if err == nil {
		t.Error("Should error on malformed YAML")
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("/nonexistent/promptlens.yaml")
	if err == nil {
		t.Error("Should error on nonexistent config")
	}
}
