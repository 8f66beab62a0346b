// File: lixenwraith/fini/convenience.go
package fini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Fetch creates a Config from a file path, or from INI text when no such file
// exists. FINI markers are parsed on this first read.
func Fetch(fileOrString string) (*Config, error) {
	cfg := New()
	if info, err := os.Stat(fileOrString); err == nil && !info.IsDir() {
		return cfg, cfg.ReadFile(fileOrString, ModeAuto)
	}
	return cfg, cfg.ReadString(fileOrString, ModeAuto)
}

// MustFetch is like Fetch but panics on error
func MustFetch(fileOrString string) *Config {
	cfg, err := Fetch(fileOrString)
	if err != nil {
		panic(fmt.Sprintf("config fetch failed: %v", err))
	}
	return cfg
}

// Validate checks that every "section.option" path resolves without error.
func (c *Config) Validate(required ...string) error {
	var missing []string
	var errs []error

	for _, path := range required {
		section, option, found := strings.Cut(path, ".")
		if !found {
			missing = append(missing, path+" (expected section.option)")
			continue
		}
		s, err := c.Section(section)
		if err != nil {
			missing = append(missing, path)
			continue
		}
		if _, err := s.Value(option); err != nil {
			if errors.Is(err, ErrOptionNotFound) {
				missing = append(missing, path)
				continue
			}
			errs = append(errs, err)
		}
	}

	if len(missing) > 0 {
		errs = append([]error{fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))}, errs...)
	}
	return errors.Join(errs...)
}

// Export resolves every option of every section.
func (c *Config) Export() (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)
	for _, name := range c.Sections() {
		s, err := c.Section(name)
		if err != nil {
			return nil, err
		}
		values, err := s.Values()
		if err != nil {
			return nil, err
		}
		if len(values) == 0 && name == c.store.DefaultSection() {
			continue
		}
		out[name] = values
	}
	return out, nil
}

// Dump writes resolved values to w as toml, yaml or json. Blank results of
// bool, int and float are omitted.
func (c *Config) Dump(w io.Writer, format string) error {
	values, err := c.Export()
	if err != nil {
		return err
	}
	for _, sec := range values {
		for option, v := range sec {
			if v == nil {
				delete(sec, option)
			}
		}
	}

	switch format {
	case FormatTOML, "":
		return toml.NewEncoder(w).Encode(values)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	default:
		return fmt.Errorf("unsupported dump format %q", format)
	}
}

// Debug returns a formatted string showing every option with its raw tiers,
// selected source and function chain.
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString(fmt.Sprintf("Default section: %s\n", c.store.DefaultSection()))
	b.WriteString(fmt.Sprintf("Functions: %s\n", strings.Join(c.registry.Names(), ", ")))

	for _, name := range c.Sections() {
		options := c.store.Options(name)
		if len(options) == 0 {
			continue
		}
		sort.Strings(options)
		b.WriteString(fmt.Sprintf("[%s]\n", name))
		for _, option := range options {
			sel, err := Resolve(c.store, name, option, c.overrides)
			b.WriteString(fmt.Sprintf("  %s:\n", option))
			if err != nil {
				b.WriteString(fmt.Sprintf("    Error: %v\n", err))
				continue
			}
			b.WriteString(fmt.Sprintf("    Source: %s\n", sel.Source))
			b.WriteString(fmt.Sprintf("    Chain: %s\n", describeChain(c.Functions(name, option))))
			if sel.Original.ArgSet {
				b.WriteString(fmt.Sprintf("    arg: %v\n", sel.Original.Arg))
			}
			if sel.Original.Env != "" {
				b.WriteString(fmt.Sprintf("    env: %q\n", sel.Original.Env))
			}
			if sel.Original.OptSet {
				b.WriteString(fmt.Sprintf("    opt: %q\n", sel.Original.Opt))
			}
		}
	}

	return b.String()
}

// String renders the raw store as INI text.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := c.store.WriteINI(&buf); err != nil {
		return ""
	}
	return buf.String()
}
