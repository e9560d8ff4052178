package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads and validates the configuration from the directory.
func Load(fsys afero.Fs, dir string) (*Config, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(dir) == ConfigurationName {
		dir = filepath.Dir(dir)
	}

	contents, err := afero.ReadFile(fsys, filepath.Join(dir, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Config
	if err := yaml.UnmarshalStrict(contents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Initialize scaffolds a configuration directory with the default
// config. It refuses to overwrite an existing configuration.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) error {
	configPath := filepath.Join(dir, ConfigurationName)

	exists, err := afero.Exists(fsys, configPath)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s already exists, refusing to overwrite", configPath)
	}

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0644); err != nil {
		return err
	}
	logger.Printf("wrote %s", configPath)
	return nil
}

// DefaultDir is where the shell looks for its configuration unless
// overridden on the command line.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rush")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "rush")
}
