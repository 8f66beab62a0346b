// FILE: lixenwraith/fini/argspec.go
package fini

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Action is the kind of flag an ArgSpec describes.
type Action string

const (
	// ActionStore takes one free-form value
	ActionStore Action = "store"
	// ActionStoreConst takes no value and stores Const under Dest
	ActionStoreConst Action = "store_const"
)

// Constant tokens stored by boolean flags.
const (
	ConstTrue  = "true"
	ConstFalse = "false"
)

// Metadata names consumed by the builder rather than passed through.
const (
	ChoicesKey = "choices"
	DestKey    = "dest"
	HelpKey    = "help"
)

// ArgSpec describes one commandline flag derived from a FINI option.
type ArgSpec struct {
	Option   string
	Names    []string
	Action   Action
	Const    string
	Dest     string
	Choices  []string
	Help     string
	Metadata map[string]any
}

// FlagName derives the long flag for option: "log_level" becomes "--log-level".
func FlagName(option string) string {
	return "--" + strings.ReplaceAll(option, "_", "-")
}

// BuildArgSpec turns a record with help text into a flag specification.
// Records without help are config-only and report false.
func BuildArgSpec(rec Record) (ArgSpec, bool) {
	if len(rec.Help) == 0 {
		return ArgSpec{}, false
	}

	spec := ArgSpec{
		Option:   rec.Option,
		Action:   ActionStore,
		Help:     strings.Join(rec.Help, "\n"),
		Metadata: make(map[string]any),
	}

	var names string
	for _, e := range rec.Metadata {
		switch e.Name {
		case NamesKey:
			names = e.Value
		case ChoicesKey:
			spec.Choices = splitFuncNames(e.Value)
		case DestKey:
			spec.Dest = e.Value
		default:
			spec.Metadata[e.Name] = coerceScalar(e.Value)
		}
	}
	spec.Names = flagNames(rec.Option, names)

	if slices.ContainsFunc(rec.Functions, func(name string) bool { return normalizeFuncName(name) == FuncBool }) {
		spec.Action = ActionStoreConst
		spec.Const = ConstTrue
		if spec.Dest != "" {
			spec.Const = ConstFalse
		}
	}
	return spec, true
}

// BuildArgSpecFromMap builds a specification from a generic mapping, as
// decoded from JSON or YAML. Recognized keys are help (string or list),
// names, f, choices and dest; any other key becomes metadata.
func BuildArgSpecFromMap(option string, m map[string]any) (ArgSpec, bool, error) {
	rec := Record{Option: option}
	for key, value := range m {
		switch key {
		case HelpKey:
			lines, err := cast.ToStringSliceE(value)
			if err != nil {
				return ArgSpec{}, false, fmt.Errorf("option %q: help: %w", option, err)
			}
			if s, isString := value.(string); isString {
				lines = strings.Split(s, "\n")
			}
			rec.Help = lines
		case FuncKey:
			if s, isString := value.(string); isString {
				rec.Functions = splitFuncNames(s)
				continue
			}
			names, err := cast.ToStringSliceE(value)
			if err != nil {
				return ArgSpec{}, false, fmt.Errorf("option %q: f: %w", option, err)
			}
			rec.Functions = names
		default:
			s, err := metaString(value)
			if err != nil {
				return ArgSpec{}, false, fmt.Errorf("option %q: %s: %w", option, key, err)
			}
			rec.Metadata = rec.Metadata.set(key, s)
		}
	}
	// map iteration order is random; keep metadata stable
	slices.SortFunc(rec.Metadata, func(a, b MetaEntry) int { return strings.Compare(a.Name, b.Name) })

	spec, ok := BuildArgSpec(rec)
	return spec, ok, nil
}

// ArgSpecs returns flag specifications for every FINI record with help text,
// in read order. Dest names are normalized like option names.
func (c *Config) ArgSpecs() []ArgSpec {
	var specs []ArgSpec
	for _, rec := range c.records {
		if spec, ok := BuildArgSpec(rec); ok {
			if spec.Dest != "" {
				spec.Dest = c.store.NormalizeKey(spec.Dest)
			}
			specs = append(specs, spec)
		}
	}
	return specs
}

// flagNames expands "names" fragments and appends the derived long flag.
func flagNames(option, fragments string) []string {
	var names []string
	add := func(name string) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	for _, f := range strings.FieldsFunc(fragments, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
		switch {
		case strings.HasPrefix(f, "-"):
			add(f)
		case len([]rune(f)) == 1:
			add("-" + f)
		default:
			add("--" + f)
		}
	}
	add(FlagName(option))
	return names
}

// coerceScalar reads number-looking metadata as int64, then float64;
// everything else stays a string.
func coerceScalar(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	if i, err := cast.ToInt64E(t); err == nil {
		return i
	}
	if f, err := cast.ToFloat64E(t); err == nil {
		return f
	}
	return s
}

func metaString(value any) (string, error) {
	if items, isList := value.([]any); isList {
		parts, err := cast.ToStringSliceE(items)
		if err != nil {
			return "", err
		}
		return strings.Join(parts, ","), nil
	}
	if items, isList := value.([]string); isList {
		return strings.Join(items, ","), nil
	}
	return cast.ToStringE(value)
}
