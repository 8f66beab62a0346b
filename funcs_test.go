// FILE: lixenwraith/fini/funcs_test.go
package fini

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommaSplit tests the escape-aware comma splitter
func TestCommaSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Empty", "", []string{}},
		{"TwoItems", "aa, bb", []string{"aa", "bb"}},
		{"EscapedComma", `aa\, bb`, []string{"aa, bb"}},
		{"BackslashBeforeEscapedComma", `aa\\, bb`, []string{`aa\, bb`}},
		{"LoneBackslashKept", `a\a`, []string{`a\a`}},
		{"DoubleBackslashKept", `a\\a`, []string{`a\\a`}},
		{"LineBreakSeparates", "a\nb", []string{"a", "b"}},
		{"BlankFieldsDropped", "a,, b ,\n, ", []string{"a", "b"}},
		{"TrailingBackslash", `a\`, []string{`a\`}},
		{"Whitespace", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyComma(tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("JoinCommaInverse", func(t *testing.T) {
		items := []string{"a, b", "c", `d\e`}
		assert.Equal(t, items, parseComma(joinComma(items)))
	})
}

// TestLineSplit tests the line splitter
func TestLineSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Empty", "", []string{}},
		{"TrimsCommasAndSpace", "a,\n b ,\n\n c", []string{"a", "b", "c"}},
		{"CommasInsideKept", "x, y\nz", []string{"x, y", "z"}},
		{"EscapedLineBreak", "x\\\ny", []string{"x\ny"}},
		{"CarriageReturn", "a\r\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyLine(tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestBar tests joining with bars
func TestBar(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Empty", []string{}, ""},
		{"Single", []string{"x"}, "x"},
		{"Two", []string{"a", "b"}, "a|b"},
		{"AnySlice", []any{"a", "b", "c"}, "a|b|c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyBar(tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("StringRejected", func(t *testing.T) {
		_, err := applyBar("a,b", nil)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

// TestBoolIntFloat tests scalar conversions
func TestBoolIntFloat(t *testing.T) {
	t.Run("Bool", func(t *testing.T) {
		for _, s := range []string{"1", "yes", "TRUE", "On", " true "} {
			got, err := applyBool(s, nil)
			require.NoError(t, err, s)
			assert.Equal(t, true, got, s)
		}
		for _, s := range []string{"0", "no", "False", "OFF"} {
			got, err := applyBool(s, nil)
			require.NoError(t, err, s)
			assert.Equal(t, false, got, s)
		}

		got, err := applyBool("", nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = applyBool("maybe", nil)
		assert.ErrorIs(t, err, ErrFormat)

		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, FuncBool, fe.Func)
		assert.Equal(t, "maybe", fe.Value)
	})

	t.Run("Int", func(t *testing.T) {
		got, err := applyInt("42", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)

		got, err = applyInt(" -7 ", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(-7), got)

		got, err = applyInt("", nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = applyInt("4x", nil)
		assert.ErrorIs(t, err, ErrFormat)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("Float", func(t *testing.T) {
		got, err := applyFloat("1.5", nil)
		require.NoError(t, err)
		assert.Equal(t, 1.5, got)

		got, err = applyFloat("", nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = applyFloat("one", nil)
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("NonStringInput", func(t *testing.T) {
		_, err := applyInt(3, nil)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

// TestCmd tests shell-style splitting
func TestCmd(t *testing.T) {
	t.Run("QuotingAndComments", func(t *testing.T) {
		got, err := applyCmd(`ls -l "my file" 'x y' a\ b # trailing comment`, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "-l", "my file", "x y", "a b"}, got)
	})

	t.Run("CommentRunsToEnd", func(t *testing.T) {
		got, err := applyCmd("ls -l # comment\nrm -rf x", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "-l"}, got)

		got, err = applyCmd("# all of it\nls", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got)
	})

	t.Run("HashInsideWordOrQuotes", func(t *testing.T) {
		got, err := applyCmd(`echo a#b "# x" '#y' \#z`, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"echo", "a#b", "# x", "#y", "#z"}, got)
	})

	t.Run("MultiLine", func(t *testing.T) {
		got, err := applyCmd("make\n  build", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"make", "build"}, got)
	})

	t.Run("BackslashesInDoubleQuotes", func(t *testing.T) {
		got, err := applyCmd(`cp "C:\tmp\a" "say \"hi\"" "\\" dst`, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"cp", `C:\tmp\a`, `say "hi"`, `\`, "dst"}, got)
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := applyCmd("", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got)
	})

	t.Run("UnbalancedQuote", func(t *testing.T) {
		_, err := applyCmd(`echo "open`, nil)
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("Cmds", func(t *testing.T) {
		got, err := applyCmds([]string{"ls *.txt", `find . "aaa"`}, nil)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"ls", "*.txt"}, {"find", ".", "aaa"}}, got)
	})

	t.Run("CmdsFailsOnAnyItem", func(t *testing.T) {
		_, err := applyCmds([]string{"ok", `bad "quote`}, nil)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

// TestFmt tests placeholder substitution
func TestFmt(t *testing.T) {
	ctx := &Context{Formats: map[string]string{"home": "/home/me", "n": "3"}}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Substitute", "{home}/.cache", "/home/me/.cache"},
		{"Several", "{n}-{n}", "3-3"},
		{"EscapedBraces", "{{home}} {home}", "{home} /home/me"},
		{"NoPlaceholders", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyFmt(tt.input, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	for _, bad := range []string{"{missing}", "{home", "home}", "{home:>8}", "{0}"} {
		t.Run("Error_"+bad, func(t *testing.T) {
			_, err := applyFmt(bad, ctx)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}

	t.Run("NilContext", func(t *testing.T) {
		got, err := applyFmt("x", nil)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})
}
