// Package config handles global histdem configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global histdem configuration.
type Config struct {
	// Template is the path to the boilerplate template file.
	Template string `toml:"template"`

	// OutputDir is where generated documents are written.
	OutputDir string `toml:"output_dir"`

	// BasePath is the directory under which the dataset folders live.
	BasePath string `toml:"base_path"`

	// Folders maps dataset ids to their data folder names. Entries override
	// the built-in mapping of the archive's published datasets.
	Folders map[string]string `toml:"folders"`

	// Gazetteer maps place names to Wikidata QIDs, extending the built-in
	// gazetteer.
	Gazetteer map[string]string `toml:"gazetteer"`
}

// defaultFolders is the folder mapping of the archive's published datasets.
var defaultFolders = map[string]string{
	"147": "datafile_147_Serbia_1863",
	"21":  "datafile_21_Albania_1918",
	"262": "datafile_262_Montenegro_1879",
	"266": "datafile_266_Armenians_in_Istanbul_1907",
	"153": "datafile_153_Rhodope_mountains_around_1900",
	"234": "datafile_234_Wallachia_1838",
	"154": "datafile_154_Dalmatia_1674",
	"164": "datafile_164_Istanbul_1907",
	"165": "datafile_165_Istanbul_1885",
	"152": "datafile_152_Hungary_1869",
}

// FolderMap returns the effective dataset-folder mapping: the built-in
// entries overlaid with the configured ones.
func (c *Config) FolderMap() map[string]string {
	merged := make(map[string]string, len(defaultFolders)+len(c.Folders))
	for id, folder := range defaultFolders {
		merged[id] = folder
	}
	for id, folder := range c.Folders {
		merged[id] = folder
	}
	return merged
}

// EffectiveOutputDir returns the configured output directory or the default.
func (c *Config) EffectiveOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return "output"
}

// EffectiveBasePath returns the configured base path or the current directory.
func (c *Config) EffectiveBasePath() string {
	if c.BasePath != "" {
		return c.BasePath
	}
	return "."
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/histdem/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	// Prefer XDG-style ~/.config/histdem/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "histdem", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	// Fall back to XDG config dir or OS-specific location
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "histdem", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

const defaultConfigContent = `# histdem configuration

# Boilerplate template used for every generated document.
# template = "histdem-template.yaml"

# Directory where generated documents are written.
# output_dir = "output"

# Directory under which the dataset folders live.
# base_path = "."

# Extra dataset folder mappings (override the built-in ones).
# [folders]
# 300 = "datafile_300_Bosnia_1885"

# Extra gazetteer entries: place name -> Wikidata QID.
# [gazetteer]
# "Sarajevo" = "Q11194"
`

// CreateDefaultAt writes a commented default config file at path.
// An existing file is left untouched.
func CreateDefaultAt(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil // already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
