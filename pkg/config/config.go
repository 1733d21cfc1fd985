// Package config handles configuration for flowdigest.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"gopkg.in/yaml.v3"
)

// Config represents the workspace configuration (flowdigest.yaml).
type Config struct {
	Input  string       `yaml:"input"` // Flow file to read
	Output OutputConfig `yaml:"output"`
	AI     AIConfig     `yaml:"ai"`
	Image  ImageConfig  `yaml:"image"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig names the artifact files.
type OutputConfig struct {
	Interactions     string `yaml:"interactions"`
	InteractionsJSON string `yaml:"interactionsJSON"` // Empty disables the JSON export
	Summary          string `yaml:"summary"`
	Image            string `yaml:"image"`
	HTML             string `yaml:"html"` // Digest page written by run; empty disables it
}

// AIConfig configures the text and image generation services.
type AIConfig struct {
	BaseURL           string        `yaml:"baseURL"` // Empty uses the provider default
	CompletionModel   string        `yaml:"completionModel"`
	Temperature       float64       `yaml:"temperature"`
	CompletionTimeout time.Duration `yaml:"completionTimeout"`
	ImageModel        string        `yaml:"imageModel"`
	ImageSize         string        `yaml:"imageSize"`
	ImageTimeout      time.Duration `yaml:"imageTimeout"`
}

// ImageConfig describes the social image canvas.
type ImageConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // Hex color, e.g. #FAFAFD
}

// LogConfig configures the log file. An empty File disables logging.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Input: "flow.json",
		Output: OutputConfig{
			Interactions: "interactions.md",
			Summary:      "summary.md",
			Image:        "social.png",
		},
		AI: AIConfig{
			CompletionModel:   "gpt-4o-mini",
			Temperature:       0.5,
			CompletionTimeout: 60 * time.Second,
			ImageModel:        "gpt-image-1",
			ImageSize:         "1024x1024",
			ImageTimeout:      120 * time.Second,
		},
		Image: ImageConfig{
			Width:      1200,
			Height:     630,
			Background: "#FAFAFD",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load loads configuration from a file. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, core.ErrInvalidConfig.
			WithMessage(fmt.Sprintf("invalid config %s", path)).
			WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir looks for flowdigest.yaml or flowdigest.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try flowdigest.yaml first
	configPath := filepath.Join(dir, "flowdigest.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try flowdigest.yml
	configPath = filepath.Join(dir, "flowdigest.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return defaults
	return Default(), nil
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Input) == "" {
		problems = append(problems, "input must not be empty")
	}
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		problems = append(problems, fmt.Sprintf("image size %dx%d must be positive", c.Image.Width, c.Image.Height))
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		problems = append(problems, fmt.Sprintf("temperature %.2f out of range [0, 2]", c.AI.Temperature))
	}
	if c.AI.CompletionTimeout <= 0 || c.AI.ImageTimeout <= 0 {
		problems = append(problems, "timeouts must be positive")
	}
	if len(problems) == 0 {
		return nil
	}
	return core.ErrInvalidConfig.WithMessage("invalid configuration: " + strings.Join(problems, "; "))
}
