package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "YGGAUTH_"

// envSectionSeparator separates nesting levels in environment variable
// names. Single underscores stay part of the key, so
// YGGAUTH_STORAGE__DATA_DIR maps to storage.data_dir.
const envSectionSeparator = "__"

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithOverrides sets dotted keys applied after every other source.
// Empty string values are ignored so unset flags do not clobber config.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) {
		l.overrides = values
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies the file, the environment and the overrides in that order,
// then unmarshals into target. Keys no source sets leave target's field
// alone, so pass a struct already holding the defaults.
func (l *Loader) Load(target any) error {
	steps := make([]func() error, 0, 3)
	if l.filePath != "" {
		steps = append(steps, func() error { return l.LoadFile(l.filePath) })
	}
	steps = append(steps, l.LoadEnv)
	if len(l.overrides) > 0 {
		steps = append(steps, func() error { return l.LoadMap(l.overrides) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile loads a YAML file.
func (l *Loader) LoadFile(path string) error {
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads prefixed environment variables.
func (l *Loader) LoadEnv() error {
	transform := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		return strings.ToLower(strings.ReplaceAll(s, envSectionSeparator, "."))
	}
	if err := l.k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadMap loads dotted keys from a map.
func (l *Loader) LoadMap(values map[string]any) error {
	if err := l.k.Load(overrides(values), nil); err != nil {
		return fmt.Errorf("load overrides: %w", err)
	}
	return nil
}

// Keys returns every loaded key in dotted form.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}
