// FILE: lixenwraith/fini/layered.go
package fini

import (
	"errors"
	"slices"
)

// Layered reads options from a section and falls back to a parent section
// before the store's default section applies. It holds no cache of its own.
type Layered struct {
	child  *Section
	parent *Section
}

// NewLayered pairs child with the parent it falls back to.
func NewLayered(child, parent *Section) *Layered {
	return &Layered{child: child, parent: parent}
}

// Value resolves option in the child. A missing or blank result (nil, "" or
// an empty list) is replaced by the parent's value when the parent has one;
// false and zero are not blank. Options whose chain is exactly plus merge
// parent and child sources instead.
func (l *Layered) Value(option string) (any, error) {
	if names := l.child.Functions(option); len(names) == 1 && normalizeFuncName(names[0]) == FuncPlus {
		return l.plusValue(option)
	}

	val, err := l.child.Value(option)
	if err != nil {
		if !errors.Is(err, ErrOptionNotFound) {
			return nil, err
		}
		return l.parent.Value(option)
	}

	if isBlank(val) {
		if parentVal, perr := l.parent.Value(option); perr == nil {
			return parentVal, nil
		} else if !errors.Is(perr, ErrOptionNotFound) {
			return nil, perr
		}
	}
	return val, nil
}

// Get resolves option like Value, returning the first fallback when neither
// section supplies it.
func (l *Layered) Get(option string, fallback ...any) (any, error) {
	v, err := l.Value(option)
	if err != nil && len(fallback) > 0 && errors.Is(err, ErrOptionNotFound) {
		return fallback[0], nil
	}
	return v, err
}

// Options returns the child's options followed by parent-only ones.
func (l *Layered) Options() []string {
	options := l.child.Options()
	for _, option := range l.parent.Options() {
		if !slices.Contains(options, option) {
			options = append(options, option)
		}
	}
	return options
}

// plusValue merges parent opt, child opt, child env and child arg in that order.
func (l *Layered) plusValue(option string) (any, error) {
	key := l.child.cfg.store.NormalizeKey(option)
	childSel, childErr := l.child.Select(key)
	if childErr != nil && !errors.Is(childErr, ErrOptionNotFound) {
		return nil, childErr
	}
	parentOpt, parentSet := l.parent.cfg.store.Lookup(l.parent.name, key)
	if childErr != nil && !parentSet {
		return nil, &OptionError{Section: l.child.name, Option: key}
	}

	t := childSel.Original
	sources := []any{nil, nil, t.Env, nil}
	if parentSet {
		sources[0] = parentOpt
	}
	if t.OptSet {
		sources[1] = t.Opt
	}
	if t.ArgSet {
		sources[3] = t.Arg
	}
	return mergePlusMinus(nil, sources...)
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case [][]string:
		return len(val) == 0
	}
	return false
}
