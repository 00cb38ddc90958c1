package headless

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a move script
type Config struct {
	// Moves are played in order, one terminal line each
	Moves []string `yaml:"moves" json:"moves"`

	// Delay is the pause between two lines
	Delay time.Duration `yaml:"delay" json:"delay"`

	// StopOnError ends the run at the first rejected or failed line
	StopOnError bool `yaml:"stop_on_error" json:"stop_on_error"`

	// Timeout bounds the whole run; zero means no limit
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	Artifacts ArtifactConfig `yaml:"artifacts" json:"artifacts"`
}

// ArtifactConfig defines artifact generation configuration
type ArtifactConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Moves) == 0 {
		return fmt.Errorf("script has no moves")
	}
	for i, line := range c.Moves {
		if line == "" {
			return fmt.Errorf("move %d is empty", i+1)
		}
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.Artifacts.Enabled && c.Artifacts.OutputDir == "" {
		return fmt.Errorf("artifacts require an output_dir")
	}
	return nil
}

// DefaultConfig returns the settings used for fields a script leaves out
func DefaultConfig() *Config {
	return &Config{
		Delay:       time.Second,
		StopOnError: true,
		Artifacts: ArtifactConfig{
			Enabled:   false,
			OutputDir: ".tilted/artifacts",
		},
	}
}

// LoadConfig reads a YAML script on top of DefaultConfig and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML script on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return config, nil
}
