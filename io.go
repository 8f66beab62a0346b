// File: lixenwraith/fini/io.go
package fini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// File formats understood by ReadFile and Save.
const (
	FormatINI  = "ini"
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ReadFile loads a configuration file. INI text goes through the store reader;
// TOML, YAML and JSON documents are mapped to sections first. Either way the
// values then pass through the same FINI handling selected by mode.
func (c *Config) ReadFile(path string, mode Mode) error {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(fileData)
	}
	if format == "" {
		return fmt.Errorf("unable to determine config format for file '%s'", path)
	}

	log := c.log.WithFields(logrus.Fields{"path": path, "format": format})
	if format == FormatINI {
		if err := c.Read(bytes.NewReader(fileData), mode); err != nil {
			return fmt.Errorf("failed to parse INI config file '%s': %w", path, err)
		}
		log.Debug("config file loaded")
		return nil
	}

	doc, err := decodeDocument(format, fileData)
	if err != nil {
		return fmt.Errorf("failed to parse %s config file '%s': %w", strings.ToUpper(format), path, err)
	}
	c.ingest(c.applyDocument(doc), mode)
	log.Debug("config file loaded")
	return nil
}

// ReadGlob loads every file matching a doublestar pattern ("conf.d/**/*.ini")
// in lexical order. Later files override earlier ones.
func (c *Config) ReadGlob(pattern string, mode Mode) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
	}
	sort.Strings(matches)
	for _, path := range matches {
		if err := c.ReadFile(path, mode); err != nil {
			return nil, err
		}
	}
	c.log.WithFields(logrus.Fields{"pattern": pattern, "files": len(matches)}).Debug("config glob loaded")
	return matches, nil
}

// Save writes the raw store atomically, format chosen by extension.
// Unknown extensions are written as INI text.
func (c *Config) Save(path string) error {
	data, err := c.encode(detectFileFormat(path))
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// encode renders the raw store in format.
func (c *Config) encode(format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(c.store.Nested()); err != nil {
			return nil, fmt.Errorf("failed to marshal config data to TOML: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c.store.Nested()); err != nil {
			return nil, fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c.store.Nested()); err != nil {
			return nil, fmt.Errorf("failed to marshal config data to JSON: %w", err)
		}
	default:
		if err := c.store.WriteINI(&buf); err != nil {
			return nil, fmt.Errorf("failed to write INI config data: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func decodeDocument(format string, data []byte) (map[string]any, error) {
	doc := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return doc, nil
}

// applyDocument stores a decoded document: top-level tables become sections,
// top-level scalars land in the default section and nested tables become
// dotted option names.
func (c *Config) applyDocument(doc map[string]any) []Key {
	var keys []Key
	set := func(section string, values map[string]any) {
		c.store.AddSection(section)
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.store.Set(section, name, stringifyValue(values[name]))
			keys = append(keys, Key{Section: section, Option: c.store.NormalizeKey(name)})
		}
	}

	defaults := make(map[string]any)
	names := make([]string, 0, len(doc))
	for name, value := range doc {
		if _, isMap := value.(map[string]any); isMap {
			names = append(names, name)
			continue
		}
		defaults[name] = value
	}
	sort.Strings(names)

	set(c.store.DefaultSection(), defaults)
	for _, name := range names {
		set(name, flattenMap(doc[name].(map[string]any), ""))
	}
	return keys
}

// stringifyValue renders a decoded document value the way INI text would hold it.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = stringifyValue(item)
		}
		return joinComma(items)
	default:
		return fmt.Sprint(val)
	}
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ini", ".fini", ".cfg":
		return FormatINI
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		// .conf and friends: detect from content
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	if _, err := NewStore("").ReadINI(bytes.NewReader(data)); err == nil {
		return FormatINI
	}

	// YAML accepts nearly anything, so it goes last
	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return ""
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op after a successful rename

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
