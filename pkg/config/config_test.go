package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devicelab-dev/flowdigest/pkg/core"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "flowdigest.yaml")

	content := `
input: traces/checkout.json
output:
  interactions: out/interactions.md
  interactionsJSON: out/interactions.json
  summary: out/summary.md
  image: out/social.png
ai:
  baseURL: http://localhost:8080/v1
  completionModel: gpt-4o
  temperature: 0.2
  completionTimeout: 30s
  imageTimeout: 2m
image:
  width: 800
  height: 418
  background: "#FFFFFF"
log:
  file: logs/run.log
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input != "traces/checkout.json" {
		t.Errorf("expected input traces/checkout.json, got %s", cfg.Input)
	}
	if cfg.Output.InteractionsJSON != "out/interactions.json" {
		t.Errorf("expected interactions JSON path, got %s", cfg.Output.InteractionsJSON)
	}
	if cfg.AI.CompletionModel != "gpt-4o" || cfg.AI.Temperature != 0.2 {
		t.Errorf("unexpected AI config: %+v", cfg.AI)
	}
	if cfg.AI.CompletionTimeout != 30*time.Second {
		t.Errorf("expected 30s completion timeout, got %s", cfg.AI.CompletionTimeout)
	}
	if cfg.AI.ImageTimeout != 2*time.Minute {
		t.Errorf("expected 2m image timeout, got %s", cfg.AI.ImageTimeout)
	}
	if cfg.AI.ImageModel != "gpt-image-1" {
		t.Errorf("expected default image model to survive, got %s", cfg.AI.ImageModel)
	}
	if cfg.Image.Width != 800 || cfg.Image.Height != 418 {
		t.Errorf("unexpected image size %dx%d", cfg.Image.Width, cfg.Image.Height)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Input != "flow.json" {
		t.Errorf("expected flow.json, got %s", cfg.Input)
	}
	if cfg.Output.Interactions != "interactions.md" || cfg.Output.Summary != "summary.md" || cfg.Output.Image != "social.png" {
		t.Errorf("unexpected outputs: %+v", cfg.Output)
	}
	if cfg.AI.CompletionTimeout != 60*time.Second || cfg.AI.ImageTimeout != 120*time.Second {
		t.Errorf("unexpected timeouts: %s/%s", cfg.AI.CompletionTimeout, cfg.AI.ImageTimeout)
	}
	if cfg.Image.Width != 1200 || cfg.Image.Height != 630 {
		t.Errorf("unexpected canvas %dx%d", cfg.Image.Width, cfg.Image.Height)
	}
	if cfg.Log.File != "" {
		t.Errorf("expected logging off by default, got log file %q", cfg.Log.File)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/flowdigest.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "flowdigest.yaml")

	content := `output: [invalid yaml`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "flowdigest.yaml")

	content := `
image:
  width: 0
ai:
  temperature: 3
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if core.CategoryOf(err) != core.ErrCategoryConfig {
		t.Errorf("expected config category, got %s", core.CategoryOf(err))
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "flowdigest.yaml")

	if err := os.WriteFile(configPath, []byte(``), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input != "flow.json" {
		t.Errorf("expected default input, got %s", cfg.Input)
	}
}

func TestLoadFromDir_ConfigYml(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "flowdigest.yml")

	content := `input: other.json`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input != "other.json" {
		t.Errorf("expected input other.json, got %s", cfg.Input)
	}
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Input != "flow.json" {
		t.Errorf("expected default config, got input %s", cfg.Input)
	}
}

func TestLoadFromDir_PrefersYamlOverYml(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "flowdigest.yaml"), []byte(`input: a.json`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "flowdigest.yml"), []byte(`input: b.json`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should prefer flowdigest.yaml
	if cfg.Input != "a.json" {
		t.Errorf("expected a.json (from flowdigest.yaml), got %s", cfg.Input)
	}
}
