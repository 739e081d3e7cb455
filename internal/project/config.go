package project

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the per-project configuration persisted next to the stage
// directories. It records what book the project translates and between
// which languages; runtime thresholds live in internal/config.
type Config struct {
	BookName       string    `yaml:"book_name"`
	EpubFile       string    `yaml:"epub_file"`
	SourceLanguage string    `yaml:"source_language"`
	TargetLanguage string    `yaml:"target_language"`
	Created        time.Time `yaml:"created"`
}

// LoadConfig reads the project configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the project configuration file.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal project config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project config: %w", err)
	}
	return nil
}
