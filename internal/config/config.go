// Package config resolves jsderive settings from defaults, an optional
// jsderive.yaml, JSDERIVE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "jsderive.yaml"

// EnvPrefix prefixes every environment variable jsderive reads.
const EnvPrefix = "JSDERIVE_"

// Config is the resolved tool configuration.
type Config struct {
	// OutputSuffix replaces ".go" in a source file name to name its output.
	OutputSuffix string `koanf:"output_suffix" yaml:"output_suffix"`
	// RuntimeImport is the import path of the runtime the generated code calls.
	RuntimeImport string `koanf:"runtime_import" yaml:"runtime_import"`
	// EmbedErrors turns classifier failures into compile errors in the output
	// instead of failing the run.
	EmbedErrors bool `koanf:"embed_errors" yaml:"embed_errors"`
	// Types are derived with the named shape without a directive.
	Types []string `koanf:"types" yaml:"types"`
	// Tuples are derived with the positional shape without a directive.
	Tuples []string `koanf:"tuples" yaml:"tuples"`
	// BuildTags are passed to the go tool when loading packages.
	BuildTags []string `koanf:"build_tags" yaml:"build_tags"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	// LogJSON switches log output to JSON.
	LogJSON bool `koanf:"log_json" yaml:"log_json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputSuffix:  "_jsgen.go",
		RuntimeImport: "jsderive/jsrt",
		EmbedErrors:   true,
		Types:         []string{},
		Tuples:        []string{},
		BuildTags:     []string{},
		LogLevel:      "warn",
	}
}

// listKeys hold comma-separated lists when set from the environment or a
// flag.
var listKeys = []string{"types", "tuples", "build_tags"}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasSuffix(c.OutputSuffix, ".go") || c.OutputSuffix == ".go" {
		errs = append(errs, fmt.Errorf("output_suffix %q must end in .go and not be .go", c.OutputSuffix))
	}

	if strings.HasSuffix(c.OutputSuffix, "_test.go") {
		errs = append(errs, fmt.Errorf("output_suffix %q would produce test files", c.OutputSuffix))
	}

	if strings.TrimSpace(c.RuntimeImport) == "" {
		errs = append(errs, errors.New("runtime_import must not be empty"))
	}

	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q must be one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}

	for _, name := range c.Types {
		if slices.Contains(c.Tuples, name) {
			errs = append(errs, fmt.Errorf("type %s is listed in both types and tuples", name))
		}
	}

	return errors.Join(errs...)
}
