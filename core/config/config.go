package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	// ConfigurationName is the file name looked up in the config
	// directory.
	ConfigurationName = "config.yaml"

	// Color mode values.
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// Config holds the shell's user-tunable settings.
type Config struct {
	// Motd is printed once when an interactive session starts.
	Motd string `json:"motd"`

	// Prompt is the prompt template; \u, \h, \w and \$ expand to user,
	// host, working directory and the privilege marker.
	Prompt string `json:"prompt" validate:"required"`

	// HistoryFile stores interactive history; "~/" expands to the home
	// directory. Empty keeps history in memory only.
	HistoryFile string `json:"history_file"`

	// Color controls prompt colorization. Empty means auto.
	Color string `json:"color" validate:"omitempty,oneof=always auto never"`

	// PathPrepend is a colon separated list of directories put in front
	// of PATH at startup.
	PathPrepend string `json:"path_prepend"`
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// ExpandedHistoryFile resolves a leading "~/" in HistoryFile against the
// user's home directory.
func (c *Config) ExpandedHistoryFile() string {
	if !strings.HasPrefix(c.HistoryFile, "~/") {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, c.HistoryFile[2:])
}

// Default returns the embedded default configuration. It panics on
// failure because the embedded file should never be invalid at runtime.
func Default() *Config {
	var out Config
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
