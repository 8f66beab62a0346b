// FILE: lixenwraith/fini/funcs.go
package fini

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Built-in function names.
const (
	FuncBool  = "bool"
	FuncInt   = "int"
	FuncFloat = "float"
	FuncComma = "comma"
	FuncLine  = "line"
	FuncBar   = "bar"
	FuncCmd   = "cmd"
	FuncCmds  = "cmds"
	FuncFmt   = "fmt"
	FuncPlus  = "plus"
)

// booleanStates follows the usual INI truth table.
var booleanStates = map[string]bool{
	"1": true, "yes": true, "true": true, "on": true,
	"0": false, "no": false, "false": false, "off": false,
}

func builtins() []Function {
	return []Function{
		NewFunction(FuncBool, applyBool),
		NewFunction(FuncInt, applyInt),
		NewFunction(FuncFloat, applyFloat),
		NewFunction(FuncComma, applyComma),
		NewFunction(FuncLine, applyLine),
		NewFunction(FuncBar, applyBar),
		NewFunction(FuncCmd, applyCmd),
		NewFunction(FuncCmds, applyCmds),
		NewFunction(FuncFmt, applyFmt),
		NewFunction(FuncPlus, applyPlus),
	}
}

func asString(fn string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", formatErrorf(fn, value, "expects a string, got %T", value)
	}
	return s, nil
}

func asStrings(fn string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, formatErrorf(fn, value, "item %d is %T, not a string", i, item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, formatErrorf(fn, value, "expects a list of strings, got %T", value)
}

func applyBool(value any, _ *Context) (any, error) {
	s, err := asString(FuncBool, value)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, ok := booleanStates[strings.ToLower(s)]
	if !ok {
		return nil, formatErrorf(FuncBool, value, "not a boolean")
	}
	return b, nil
}

func applyInt(value any, _ *Context) (any, error) {
	s, err := asString(FuncInt, value)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &FormatError{Func: FuncInt, Value: value, Err: err}
	}
	return i, nil
}

func applyFloat(value any, _ *Context) (any, error) {
	s, err := asString(FuncFloat, value)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &FormatError{Func: FuncFloat, Value: value, Err: err}
	}
	return f, nil
}

func applyComma(value any, _ *Context) (any, error) {
	s, err := asString(FuncComma, value)
	if err != nil {
		return nil, err
	}
	return parseComma(s), nil
}

func applyLine(value any, _ *Context) (any, error) {
	s, err := asString(FuncLine, value)
	if err != nil {
		return nil, err
	}
	return parseLine(s), nil
}

func applyBar(value any, _ *Context) (any, error) {
	items, err := asStrings(FuncBar, value)
	if err != nil {
		return nil, err
	}
	return strings.Join(items, "|"), nil
}

func applyCmd(value any, _ *Context) (any, error) {
	s, err := asString(FuncCmd, value)
	if err != nil {
		return nil, err
	}
	return splitCommand(s)
}

func applyCmds(value any, _ *Context) (any, error) {
	items, err := asStrings(FuncCmds, value)
	if err != nil {
		return nil, err
	}
	cmds := make([][]string, 0, len(items))
	for _, item := range items {
		words, err := splitCommand(item)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, words)
	}
	return cmds, nil
}

// splitCommand tokenizes s with POSIX shell quoting rules. An unquoted '#'
// at the start of a word comments out the rest of s, line breaks included.
func splitCommand(s string) ([]string, error) {
	words, err := shellquote.Split(stripComment(s))
	if err != nil {
		return nil, &FormatError{Func: FuncCmd, Value: s, Err: err}
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}

// stripComment cuts s at the first '#' that begins a word outside quotes.
// Unterminated quotes are left for the splitter to report.
func stripComment(s string) string {
	const (
		unquoted = iota
		single
		double
	)
	state := unquoted
	wordStart := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case single:
			if c == '\'' {
				state = unquoted
			}
		case double:
			if c == '\\' {
				i++
			} else if c == '"' {
				state = unquoted
			}
		default:
			switch c {
			case ' ', '\t', '\n', '\r':
				wordStart = true
				continue
			case '#':
				if wordStart {
					return s[:i]
				}
			case '\\':
				i++
			case '\'':
				state = single
			case '"':
				state = double
			}
			wordStart = false
		}
	}
	return s
}

// applyFmt substitutes {name} placeholders from the format table. Only bare
// names are supported; "{{" and "}}" render literal braces, and format specs
// such as {name:>8} or positional {0} are reported as unresolved.
func applyFmt(value any, ctx *Context) (any, error) {
	s, err := asString(FuncFmt, value)
	if err != nil {
		return nil, err
	}
	var formats map[string]string
	if ctx != nil {
		formats = ctx.Formats
	}
	return substitute(s, formats)
}

// substitute replaces {name} placeholders from formats. "{{" and "}}" render
// literal braces.
func substitute(s string, formats map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return "", formatErrorf(FuncFmt, s, "unmatched '{' at offset %d", i)
			}
			name := s[i+1 : i+1+end]
			repl, ok := formats[name]
			if !ok {
				return "", formatErrorf(FuncFmt, s, "no value for placeholder %q", name)
			}
			b.WriteString(repl)
			i += end + 1
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", formatErrorf(FuncFmt, s, "single '}' at offset %d", i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// describeChain renders a chain for logs and debug output.
func describeChain(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ","))
}
