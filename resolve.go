// FILE: lixenwraith/fini/resolve.go
package fini

import "os"

// Source tags which tier supplied a selected value.
type Source string

const (
	// SourceArg represents values supplied by the commandline argument mapping
	SourceArg Source = "arg"
	// SourceEnv represents values supplied by environment variables
	SourceEnv Source = "env"
	// SourceOpt represents values held by the store
	SourceOpt Source = "opt"
)

// EnvLookup returns the value of an environment variable and whether it is set.
type EnvLookup func(name string) (string, bool)

// Triple carries the raw value of every tier, whichever one was selected.
type Triple struct {
	Arg    any
	ArgSet bool
	Env    string
	Opt    string
	OptSet bool
}

// Selection is the outcome of precedence resolution for one option.
type Selection struct {
	Value    any
	Source   Source
	Original Triple
}

// Overrides groups the commandline and environment inputs shared by all sections.
type Overrides struct {
	// Args maps option names to pre-parsed commandline values; nil means unbound
	Args map[string]any
	// EnvNames maps option names to environment variable names
	EnvNames map[string]string
	// Env reads environment variables; nil falls back to os.LookupEnv
	Env EnvLookup
}

// Triple collects the raw values for option. opt/optSet are the store lookup result.
func (o Overrides) Triple(option, opt string, optSet bool) Triple {
	t := Triple{Opt: opt, OptSet: optSet}
	if v, ok := o.Args[option]; ok && v != nil {
		t.Arg, t.ArgSet = v, true
	}
	if name, ok := o.EnvNames[option]; ok && name != "" {
		lookup := o.Env
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if v, ok := lookup(name); ok {
			t.Env = v
		}
	}
	return t
}

// Select applies the fixed precedence: bound argument, non-empty environment
// value, stored value. ok is false when no tier supplies a value.
func Select(t Triple) (Selection, bool) {
	switch {
	case t.ArgSet:
		return Selection{Value: t.Arg, Source: SourceArg, Original: t}, true
	case t.Env != "":
		return Selection{Value: t.Env, Source: SourceEnv, Original: t}, true
	case t.OptSet:
		return Selection{Value: t.Opt, Source: SourceOpt, Original: t}, true
	}
	return Selection{Original: t}, false
}

// Resolve runs the precedence algorithm for option within section.
func Resolve(store ValueStore, section, option string, o Overrides) (Selection, error) {
	opt, optSet := store.Lookup(section, option)
	sel, ok := Select(o.Triple(option, opt, optSet))
	if !ok {
		return sel, &OptionError{Section: section, Option: option}
	}
	return sel, nil
}
