// FILE: lixenwraith/fini/resolve_test.go
package fini

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(vars map[string]string) EnvLookup {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// TestSelectPrecedence tests the fixed ARG > ENV > OPT order
func TestSelectPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		triple   Triple
		value    any
		source   Source
		selected bool
	}{
		{"FalseArgWins", Triple{Arg: false, ArgSet: true, Env: "x", Opt: "y", OptSet: true}, false, SourceArg, true},
		{"EmptyStringArgWins", Triple{Arg: "", ArgSet: true, Env: "x"}, "", SourceArg, true},
		{"EmptyListArgWins", Triple{Arg: []string{}, ArgSet: true, Opt: "y", OptSet: true}, []string{}, SourceArg, true},
		{"EnvBeatsOpt", Triple{Env: "x", Opt: "y", OptSet: true}, "x", SourceEnv, true},
		{"EmptyEnvFallsThrough", Triple{Env: "", Opt: "y", OptSet: true}, "y", SourceOpt, true},
		{"EmptyOptSelected", Triple{Opt: "", OptSet: true}, "", SourceOpt, true},
		{"Nothing", Triple{}, nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, ok := Select(tt.triple)
			assert.Equal(t, tt.selected, ok)
			assert.Equal(t, tt.value, sel.Value)
			assert.Equal(t, tt.source, sel.Source)
			assert.Equal(t, tt.triple, sel.Original)
		})
	}
}

// TestOverridesTriple tests collection of raw values from the override sources
func TestOverridesTriple(t *testing.T) {
	o := Overrides{
		Args:     map[string]any{"a": nil, "b": 0},
		EnvNames: map[string]string{"a": "APP_A", "c": "APP_UNSET", "d": ""},
		Env:      envMap(map[string]string{"APP_A": "from-env"}),
	}

	t.Run("NilArgIsUnbound", func(t *testing.T) {
		tr := o.Triple("a", "opt", true)
		assert.False(t, tr.ArgSet)
		assert.Equal(t, "from-env", tr.Env)
		assert.Equal(t, "opt", tr.Opt)
	})

	t.Run("ZeroArgIsBound", func(t *testing.T) {
		tr := o.Triple("b", "", false)
		assert.True(t, tr.ArgSet)
		assert.Equal(t, 0, tr.Arg)
	})

	t.Run("UnsetVariable", func(t *testing.T) {
		tr := o.Triple("c", "", false)
		assert.Equal(t, "", tr.Env)
	})

	t.Run("NoAutoDerivedNames", func(t *testing.T) {
		o := Overrides{Env: envMap(map[string]string{"E": "x", "e": "x"})}
		tr := o.Triple("e", "", false)
		assert.Equal(t, "", tr.Env)
	})

	t.Run("DefaultsToProcessEnvironment", func(t *testing.T) {
		t.Setenv("FINI_TEST_RESOLVE", "proc")
		o := Overrides{EnvNames: map[string]string{"x": "FINI_TEST_RESOLVE"}}
		assert.Equal(t, "proc", o.Triple("x", "", false).Env)
	})
}

// TestResolve tests resolution against a store
func TestResolve(t *testing.T) {
	store := NewStore("")
	store.Set(DefaultSectionName, "shared", "from-default")
	store.Set("sec", "own", "from-sec")

	t.Run("OwnValue", func(t *testing.T) {
		sel, err := Resolve(store, "sec", "own", Overrides{})
		require.NoError(t, err)
		assert.Equal(t, "from-sec", sel.Value)
		assert.Equal(t, SourceOpt, sel.Source)
	})

	t.Run("DefaultFallback", func(t *testing.T) {
		sel, err := Resolve(store, "sec", "shared", Overrides{})
		require.NoError(t, err)
		assert.Equal(t, "from-default", sel.Value)
	})

	t.Run("TripleAlwaysReturned", func(t *testing.T) {
		o := Overrides{
			Args:     map[string]any{"own": "arg"},
			EnvNames: map[string]string{"own": "E"},
			Env:      envMap(map[string]string{"E": "env"}),
		}
		sel, err := Resolve(store, "sec", "own", o)
		require.NoError(t, err)
		assert.Equal(t, SourceArg, sel.Source)
		assert.Equal(t, Triple{Arg: "arg", ArgSet: true, Env: "env", Opt: "from-sec", OptSet: true}, sel.Original)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Resolve(store, "sec", "nope", Overrides{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOptionNotFound)

		var oe *OptionError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, "sec", oe.Section)
		assert.Equal(t, "nope", oe.Option)
	})

	t.Run("ArgOnly", func(t *testing.T) {
		sel, err := Resolve(store, "sec", "cli_only", Overrides{Args: map[string]any{"cli_only": 3}})
		require.NoError(t, err)
		assert.Equal(t, 3, sel.Value)
	})
}
