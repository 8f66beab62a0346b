// FILE: lixenwraith/fini/flagbind/flagbind.go

// Package flagbind registers fini ArgSpecs as pflag flags and turns the parsed
// flags back into the argument mapping a fini.Config resolves against.
package flagbind

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/fini"
)

// Binding tracks the flags registered for a set of ArgSpecs.
type Binding struct {
	fs      *pflag.FlagSet
	entries []*entry
	seq     int
}

type entry struct {
	spec fini.ArgSpec
	val  *flagValue
}

// flagValue implements pflag.Value for both store and store_const flags.
type flagValue struct {
	b       *Binding
	isConst bool
	value   string
	set     bool
	order   int
}

func (v *flagValue) String() string {
	return v.value
}

func (v *flagValue) Set(s string) error {
	if v.isConst {
		on, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.set = on
		v.value = strconv.FormatBool(on)
	} else {
		v.value, v.set = s, true
	}
	v.b.seq++
	v.order = v.b.seq
	return nil
}

func (v *flagValue) Type() string {
	if v.isConst {
		return "bool"
	}
	return "string"
}

// Register adds one flag per spec to fs. The derived long name becomes the
// flag name; other long names are hidden aliases sharing its value and a
// single-letter name becomes the shorthand.
func Register(fs *pflag.FlagSet, specs []fini.ArgSpec) (*Binding, error) {
	b := &Binding{fs: fs}
	for _, spec := range specs {
		long, aliases, short, err := splitNames(spec)
		if err != nil {
			return nil, err
		}

		val := &flagValue{b: b, isConst: spec.Action == fini.ActionStoreConst}
		usage := spec.Help
		if len(spec.Choices) > 0 {
			usage = fmt.Sprintf("%s (choices: %s)", usage, strings.Join(spec.Choices, ", "))
		}

		if fs.Lookup(long) != nil {
			return nil, fmt.Errorf("flag --%s already defined", long)
		}
		flag := fs.VarPF(val, long, short, usage)
		if val.isConst {
			flag.NoOptDefVal = "true"
		}
		for _, alias := range aliases {
			if fs.Lookup(alias) != nil {
				return nil, fmt.Errorf("flag --%s already defined", alias)
			}
			af := fs.VarPF(val, alias, "", usage)
			if val.isConst {
				af.NoOptDefVal = "true"
			}
			af.Hidden = true
		}

		b.entries = append(b.entries, &entry{spec: spec, val: val})
		logrus.WithFields(logrus.Fields{
			"option": spec.Option,
			"flag":   long,
			"action": string(spec.Action),
		}).Debug("flag registered")
	}
	return b, nil
}

// splitNames maps spec names onto pflag's one name plus one shorthand model.
func splitNames(spec fini.ArgSpec) (long string, aliases []string, short string, err error) {
	derived := strings.TrimPrefix(fini.FlagName(spec.Option), "--")
	for _, name := range spec.Names {
		switch {
		case strings.HasPrefix(name, "--"):
			n := strings.TrimPrefix(name, "--")
			if n != derived {
				aliases = append(aliases, n)
			}
		case strings.HasPrefix(name, "-") && len(name) == 2:
			if short != "" {
				return "", nil, "", fmt.Errorf("option %q: more than one short flag (%s, -%s)", spec.Option, name, short)
			}
			short = name[1:]
		default:
			return "", nil, "", fmt.Errorf("option %q: unsupported flag name %q", spec.Option, name)
		}
	}
	return derived, aliases, short, nil
}

// Args returns the argument mapping for the flags given on the command line.
// Store flags map their option to the string given; const flags store their
// constant under Dest, or under their own option without one. When several
// flags share a destination the one given last wins.
func (b *Binding) Args() (map[string]any, error) {
	changed := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		if e.val.set {
			changed = append(changed, e)
		}
	}
	sort.SliceStable(changed, func(i, j int) bool { return changed[i].val.order < changed[j].val.order })

	args := make(map[string]any, len(changed))
	for _, e := range changed {
		if e.spec.Action == fini.ActionStoreConst {
			dest := e.spec.Dest
			if dest == "" {
				dest = e.spec.Option
			}
			args[dest] = e.spec.Const
			continue
		}
		if len(e.spec.Choices) > 0 && !slices.Contains(e.spec.Choices, e.val.value) {
			return nil, fmt.Errorf("invalid value %q for %s (choices: %s)",
				e.val.value, fini.FlagName(e.spec.Option), strings.Join(e.spec.Choices, ", "))
		}
		args[e.spec.Option] = e.val.value
	}
	return args, nil
}

// Apply binds the argument mapping to cfg and drops every cached value.
func (b *Binding) Apply(cfg *fini.Config) error {
	args, err := b.Args()
	if err != nil {
		return err
	}
	cfg.SetArgs(args)
	cfg.InvalidateAll()
	return nil
}
