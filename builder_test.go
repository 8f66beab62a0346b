// FILE: lixenwraith/fini/builder_test.go
package fini

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the fluent configuration builder
func TestBuilder(t *testing.T) {
	t.Run("StringsAndOverrides", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithString("[app]\nname = demo\nport =\n    :: f: int\n    80\n").
			WithArgs(map[string]any{"port": "8080"}).
			WithEnvNames(map[string]string{"name": "APP_NAME"}).
			WithEnvLookup(envMap(map[string]string{"APP_NAME": "from-env"})).
			Build()
		require.NoError(t, err)

		s := mustSection(t, cfg, "app")
		v, err := s.Value("port")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), v)
		v, err = s.Value("name")
		require.NoError(t, err)
		assert.Equal(t, "from-env", v)
	})

	t.Run("FilesThenStrings", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "base.ini", "[app]\nname = file\nlevel = info\n")

		cfg, err := NewBuilder().
			WithFile(path).
			WithString("[app]\nname = text\n").
			Build()
		require.NoError(t, err)

		s := mustSection(t, cfg, "app")
		v, _ := s.Value("name")
		assert.Equal(t, "text", v)
		v, _ = s.Value("level")
		assert.Equal(t, "info", v)
	})

	t.Run("MissingFileIsNotFatal", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithFile(filepath.Join(t.TempDir(), "missing.ini")).
			WithString("[app]\nname = x\n").
			Build()
		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, cfg)
		assert.True(t, cfg.HasSection("app"))

		assert.NotPanics(t, func() {
			NewBuilder().WithFile(filepath.Join(t.TempDir(), "missing.ini")).MustBuild()
		})
	})

	t.Run("MalformedTextIsFatal", func(t *testing.T) {
		cfg, err := NewBuilder().WithString("key = no section\n").Build()
		assert.ErrorIs(t, err, ErrParse)
		assert.Nil(t, cfg)

		assert.Panics(t, func() {
			NewBuilder().WithString("key = no section\n").MustBuild()
		})
	})

	t.Run("DuplicateFunction", func(t *testing.T) {
		_, err := NewBuilder().WithFunction(NewFunction("int", applyInt)).Build()
		assert.Error(t, err)
	})

	t.Run("CustomFunction", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithFunction(upperFunc()).
			WithString("[s]\nname =\n    :: f: upper\n    quiet\n").
			Build()
		require.NoError(t, err)
		v, err := mustSection(t, cfg, "s").Value("name")
		require.NoError(t, err)
		assert.Equal(t, "QUIET", v)
	})

	t.Run("Validators", func(t *testing.T) {
		var order []string
		_, err := NewBuilder().
			WithString("[s]\nport = 0\n").
			WithValidator(func(c *Config) error {
				order = append(order, "first")
				return nil
			}).
			WithValidator(func(c *Config) error {
				order = append(order, "second")
				v, err := c.Get("s").Value("port")
				if err != nil {
					return err
				}
				if v == "0" {
					return errors.New("port must be set")
				}
				return nil
			}).
			WithValidator(nil).
			Build()
		assert.ErrorContains(t, err, "port must be set")
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("MarkersAndSection", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithMarkers("? ", "?? ").
			WithDefaultSection("common").
			WithKeyTransform(nil).
			WithString("[common]\nlog-level =\n    ? The level.\n    ?? f: comma\n    a, b\n[s]\n").
			Build()
		require.NoError(t, err)

		v, err := mustSection(t, cfg, "s").Value("log-level")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)

		rec, ok := cfg.Record("common", "log-level")
		require.True(t, ok)
		assert.Equal(t, []string{"The level."}, rec.Help)
	})

	t.Run("ModeINI", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithMode(ModeINI).
			WithString("[s]\nport =\n    :: f: int\n    80\n").
			Build()
		require.NoError(t, err)
		v, err := mustSection(t, cfg, "s").Value("port")
		require.NoError(t, err)
		assert.Equal(t, "\n:: f: int\n80", v)
	})

	t.Run("Logger", func(t *testing.T) {
		var buf bytes.Buffer
		log := logrus.New()
		log.SetOutput(&buf)
		log.SetLevel(logrus.DebugLevel)

		_, err := NewBuilder().WithLogger(log).WithString("[s]\na = 1\n").Build()
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "config text read")
	})
}

// TestBuilderFileDiscovery tests discovery through the raw command line
func TestBuilderFileDiscovery(t *testing.T) {
	dir := t.TempDir()
	explicit := writeFile(t, dir, "explicit.ini", "[s]\nfrom = flag\n")
	writeFile(t, dir, "app.fini", "[s]\nfrom = search\n")

	opts := FileDiscoveryOptions{
		Name:       "app",
		Extensions: []string{".ini", ".fini"},
		Paths:      []string{dir},
		CLIFlag:    "--config",
		EnvVar:     "FINI_TEST_CONFIG",
	}

	t.Run("Flag", func(t *testing.T) {
		assert.Equal(t, explicit, DiscoverFile(opts, []string{"prog", "--config", explicit}))
		assert.Equal(t, explicit, DiscoverFile(opts, []string{"prog", "--config=" + explicit}))

		cfg, err := NewBuilder().
			WithArgv([]string{"prog", "--config", explicit}).
			WithFileDiscovery(opts).
			Build()
		require.NoError(t, err)
		v, _ := mustSection(t, cfg, "s").Value("from")
		assert.Equal(t, "flag", v)
	})

	t.Run("EnvVar", func(t *testing.T) {
		t.Setenv("FINI_TEST_CONFIG", explicit)
		assert.Equal(t, explicit, DiscoverFile(opts, nil))
	})

	t.Run("SearchPaths", func(t *testing.T) {
		assert.Equal(t, filepath.Join(dir, "app.fini"), DiscoverFile(opts, nil))
	})

	t.Run("NothingFound", func(t *testing.T) {
		none := opts
		none.Name = "absent"
		assert.Empty(t, DiscoverFile(none, nil))

		cfg, err := NewBuilder().WithFileDiscovery(none).Build()
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})
}

// TestBuildAndScan tests building straight into a struct
func TestBuildAndScan(t *testing.T) {
	var target struct {
		Server struct {
			Port int  `fini:"port"`
			TLS  bool `fini:"tls"`
		} `fini:"server"`
	}

	err := NewBuilder().
		WithString("[server]\nport =\n    :: f: int\n    443\ntls =\n    :: f: bool\n    on\n").
		BuildAndScan(&target)
	require.NoError(t, err)
	assert.Equal(t, 443, target.Server.Port)
	assert.True(t, target.Server.TLS)

	t.Run("MissingFilePassesThrough", func(t *testing.T) {
		var out struct{}
		err := NewBuilder().WithFile(filepath.Join(t.TempDir(), "none.ini")).BuildAndScan(&out)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}
