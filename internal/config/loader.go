package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// Source names the layer a setting was resolved from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Options selects the layers Load reads.
type Options struct {
	// File is the configuration file. When empty, DefaultFile is read if it
	// exists; an explicit File must exist.
	File string
	// Dir is where DefaultFile is looked up; empty means the working
	// directory.
	Dir string
	// Environ lists environment variables as KEY=value; nil means os.Environ.
	Environ func() []string
	// Overrides are flag values keyed by setting name. They take precedence
	// over every other layer.
	Overrides map[string]any
}

// Loaded is a resolved configuration together with where each setting came
// from.
type Loaded struct {
	Config  *Config
	File    string
	Sources map[string]Source
}

type loader struct {
	koanf   *koanf.Koanf
	known   []string
	sources map[string]Source
}

// Load resolves the configuration from defaults, the file, the environment
// and opts.Overrides, in that order.
func Load(opts Options) (*Loaded, error) {
	l := &loader{
		koanf:   koanf.New("."),
		sources: make(map[string]Source),
	}

	if err := l.loadDefaults(); err != nil {
		return nil, err
	}

	file, err := l.loadFile(opts.File, opts.Dir)
	if err != nil {
		return nil, err
	}

	if err := l.loadEnvironment(opts.Environ); err != nil {
		return nil, err
	}

	if err := l.loadOverrides(opts.Overrides); err != nil {
		return nil, err
	}

	config, err := l.unmarshalAndValidate()
	if err != nil {
		return nil, err
	}

	return &Loaded{Config: config, File: file, Sources: l.sources}, nil
}

func (l *loader) loadDefaults() error {
	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	l.known = l.koanf.Keys()
	for _, key := range l.known {
		l.sources[key] = SourceDefault
	}

	return nil
}

// loadFile returns the path read, or "" when no file was used.
func (l *loader) loadFile(path, dir string) (string, error) {
	required := path != ""
	if !required {
		path = filepath.Join(dir, DefaultFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("failed to read config file: %w", err)
	}

	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, key := range slices.Sorted(maps.Keys(values)) {
		if !slices.Contains(l.known, key) {
			return "", fmt.Errorf("%s: unknown setting %q", path, key)
		}
	}

	if err := l.apply(rawMap(values), SourceFile); err != nil {
		return "", err
	}

	return path, nil
}

func (l *loader) loadEnvironment(environ func() []string) error {
	provider := env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: l.transformEnv,
		EnvironFunc:   environ,
	})

	values, err := provider.Read()
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	return l.apply(rawMap(values), SourceEnv)
}

// transformEnv maps JSDERIVE_OUTPUT_SUFFIX to output_suffix. Variables that
// name no setting are dropped.
func (l *loader) transformEnv(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if !slices.Contains(l.known, key) {
		return "", nil
	}

	if slices.Contains(listKeys, key) {
		return key, splitList(value)
	}

	return key, value
}

func (l *loader) loadOverrides(overrides map[string]any) error {
	for key := range overrides {
		if !slices.Contains(l.known, key) {
			return fmt.Errorf("unknown setting %q", key)
		}
	}

	return l.apply(rawMap(overrides), SourceFlag)
}

func (l *loader) apply(values rawMap, source Source) error {
	if len(values) == 0 {
		return nil
	}

	if err := l.koanf.Load(values, nil); err != nil {
		return fmt.Errorf("failed to apply %s settings: %w", source, err)
	}

	for key := range values {
		l.sources[key] = source
	}

	return nil
}

func (l *loader) unmarshalAndValidate() (*Config, error) {
	var config Config

	if err := l.koanf.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func splitList(value string) []string {
	items := []string{}

	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("ReadBytes not implemented")
}
