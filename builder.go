// File: lixenwraith/fini/builder.go
package fini

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ValidatorFunc defines the signature for a function that can validate a Config instance.
// It receives the fully loaded *Config object and should return an error if validation fails.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for building configurations
type Builder struct {
	cfg        *Config
	mode       Mode
	files      []string
	texts      []string
	argv       []string
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		cfg:        New(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile adds a configuration file; files are read in the order given
func (b *Builder) WithFile(path string) *Builder {
	if path != "" {
		b.files = append(b.files, path)
	}
	return b
}

// WithString adds INI/FINI text, read after all files
func (b *Builder) WithString(text string) *Builder {
	b.texts = append(b.texts, text)
	return b
}

// WithArgv sets the raw command line consulted by WithFileDiscovery
func (b *Builder) WithArgv(argv []string) *Builder {
	b.argv = argv
	return b
}

// WithMode sets how every read interprets FINI markers
func (b *Builder) WithMode(mode Mode) *Builder {
	b.mode = mode
	return b
}

// WithArgs binds the pre-parsed commandline argument mapping
func (b *Builder) WithArgs(args map[string]any) *Builder {
	b.cfg.SetArgs(args)
	return b
}

// WithEnvNames binds option names to environment variable names
func (b *Builder) WithEnvNames(names map[string]string) *Builder {
	b.cfg.SetEnvNames(names)
	return b
}

// WithEnvLookup replaces the environment reader
func (b *Builder) WithEnvLookup(fn EnvLookup) *Builder {
	b.cfg.SetEnvLookup(fn)
	return b
}

// WithFormats sets the substitution table of the fmt function
func (b *Builder) WithFormats(formats map[string]string) *Builder {
	b.cfg.SetFormats(formats)
	return b
}

// WithRegistry replaces the function registry
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.cfg.SetRegistry(r)
	return b
}

// WithFunction registers an additional conversion function
func (b *Builder) WithFunction(fn Function) *Builder {
	if err := b.cfg.Registry().Register(fn); err != nil && b.err == nil {
		b.err = fmt.Errorf("failed to register function: %w", err)
	}
	return b
}

// WithMarkers replaces the FINI help and metadata markers
func (b *Builder) WithMarkers(help, meta string) *Builder {
	b.cfg.SetParser(Parser{HelpMarker: help, MetaMarker: meta})
	return b
}

// WithDefaultSection renames the fallback section
func (b *Builder) WithDefaultSection(name string) *Builder {
	b.cfg.SetDefaultSection(name)
	return b
}

// WithKeyTransform replaces option name normalization
func (b *Builder) WithKeyTransform(fn KeyTransform) *Builder {
	b.cfg.SetKeyTransform(fn)
	return b
}

// WithTagName sets the struct tag used by Scan
func (b *Builder) WithTagName(tag string) *Builder {
	b.cfg.SetTagName(tag)
	return b
}

// WithLogger sets the logger
func (b *Builder) WithLogger(l logrus.FieldLogger) *Builder {
	b.cfg.SetLogger(l)
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Config instance with all specified options.
// A missing file is reported with ErrConfigNotFound alongside a usable Config.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	var loadErrors []error
	for _, path := range b.files {
		if err := b.cfg.ReadFile(path, b.mode); err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				return nil, err
			}
			loadErrors = append(loadErrors, err)
		}
	}
	for _, text := range b.texts {
		if err := b.cfg.ReadString(text, b.mode); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(b.cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return b.cfg, errors.Join(loadErrors...)
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		// A missing file is not fatal; the application can run on overrides.
		if !errors.Is(err, ErrConfigNotFound) {
			panic(fmt.Sprintf("config build failed: %v", err))
		}
	}
	return cfg
}

// BuildAndScan builds and decodes every section into the provided target struct pointer
func (b *Builder) BuildAndScan(target any) error {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return err
	}

	if err := cfg.Scan(target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}

	// ErrConfigNotFound or nil
	return err
}
