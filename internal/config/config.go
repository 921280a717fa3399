package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// Output layout
	OutputDir  string `yaml:"output_dir"`
	OutputName string `yaml:"output_name"`

	// Windowing
	Windowing WindowingConfig `yaml:"windowing"`

	// Reel assembly
	Reel ReelConfig `yaml:"reel"`

	// Analyzer (Gemini) settings
	Analyzer AnalyzerConfig `yaml:"analyzer"`

	// Per-window analysis fan-out
	Concurrency int `yaml:"concurrency"`

	// Abort the run on the first failed window instead of degrading
	StrictWindows bool `yaml:"strict_windows"`
}

type WindowingConfig struct {
	WindowSeconds  float64 `yaml:"window_seconds"`
	OverlapSeconds float64 `yaml:"overlap_seconds"`
}

type ReelConfig struct {
	MaxTotalSeconds  float64 `yaml:"max_total_seconds"`
	GapTolerance     float64 `yaml:"gap_tolerance_seconds"`
	CrossfadeSeconds float64 `yaml:"crossfade_seconds"`
}

type AnalyzerConfig struct {
	Model              string  `yaml:"model"`
	APIKey             string  `yaml:"api_key" env:"GEMINI_API_KEY"`
	PollTimeoutSeconds float64 `yaml:"poll_timeout_seconds"`
	PollIntervalSeconds   float64 `yaml:"poll_interval_seconds"`
}

// Load reads configuration from file or returns defaults. A missing file
// is not an error; the API key falls back to the GEMINI_API_KEY env var.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

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

	if cfg.Analyzer.APIKey == "" {
		cfg.Analyzer.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		OutputDir:   "output",
		OutputName:  "highlights",
		Concurrency: 2,
		Windowing: WindowingConfig{
			WindowSeconds:  90,
			OverlapSeconds: 8,
		},
		Reel: ReelConfig{
			MaxTotalSeconds:  240,
			GapTolerance:     2.0,
			CrossfadeSeconds: 0.5,
		},
		Analyzer: AnalyzerConfig{
			Model:              "gemini-2.5-flash",
			PollTimeoutSeconds: 300,
			PollIntervalSeconds:   5,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./reelforge.yaml",
		"./reelforge.yml",
		filepath.Join(os.Getenv("HOME"), ".reelforge", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
