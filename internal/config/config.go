package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HeaderStyles lists the accepted values for export.header_style.
var HeaderStyles = []string{"original", "snake", "camel", "kebab", "screaming"}

// Config represents the complete configuration for tablify
type Config struct {
	Flatten FlattenConfig `yaml:"flatten"`
	Extract ExtractConfig `yaml:"extract"`
	Export  ExportConfig  `yaml:"export"`
	View    ViewConfig    `yaml:"view"`
}

// FlattenConfig controls how nested JSON collapses into columns
type FlattenConfig struct {
	// KeyDelimiter joins nested object keys into column names.
	KeyDelimiter string `yaml:"key_delimiter"`
	// MaxInlineArray is the longest scalar array still joined into one
	// cell; longer or nested arrays are embedded as JSON text.
	MaxInlineArray int `yaml:"max_inline_array"`
	// ArraySeparator joins the elements of an inlined scalar array.
	ArraySeparator string `yaml:"array_separator"`
}

// ExtractConfig controls how the row set is located in a document
type ExtractConfig struct {
	// NameColumn is the synthesized key column for dictionary-shaped
	// documents. It is also the column promoted to the front.
	NameColumn string `yaml:"name_column"`
}

// ExportConfig controls output rendering
type ExportConfig struct {
	PrettyJSON  bool   `yaml:"pretty_json"`
	HeaderStyle string `yaml:"header_style"`
}

// ViewConfig controls terminal rendering
type ViewConfig struct {
	// MaxRows caps how many rows `view` renders; 0 renders all.
	MaxRows int `yaml:"max_rows"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Flatten: FlattenConfig{
			KeyDelimiter:   ".",
			MaxInlineArray: 10,
			ArraySeparator: ", ",
		},
		Extract: ExtractConfig{
			NameColumn: "Name",
		},
		Export: ExportConfig{
			PrettyJSON:  true,
			HeaderStyle: "original",
		},
		View: ViewConfig{
			MaxRows: 0,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDiscover loads the config at path when given, otherwise searches
// for one and falls back to defaults when none is found.
func LoadOrDiscover(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if found := FindConfigFile(); found != "" {
		return LoadConfig(found)
	}
	return NewConfig(), nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".tablify.yml", ".tablify.yaml", "tablify.yml", "tablify.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate rejects knob values the engine cannot honor
func (c *Config) Validate() error {
	if c.Flatten.KeyDelimiter == "" {
		return fmt.Errorf("invalid flatten.key_delimiter: must not be empty")
	}
	if c.Flatten.MaxInlineArray < 0 {
		return fmt.Errorf("invalid flatten.max_inline_array %d: must be zero or positive", c.Flatten.MaxInlineArray)
	}
	if c.Extract.NameColumn == "" {
		return fmt.Errorf("invalid extract.name_column: must not be empty")
	}
	if c.View.MaxRows < 0 {
		return fmt.Errorf("invalid view.max_rows %d: must be zero or positive", c.View.MaxRows)
	}
	if !validHeaderStyle(c.Export.HeaderStyle) {
		return fmt.Errorf("invalid export.header_style '%s': must be one of %v", c.Export.HeaderStyle, HeaderStyles)
	}
	return nil
}

func validHeaderStyle(style string) bool {
	for _, s := range HeaderStyles {
		if s == style {
			return true
		}
	}
	return false
}
