// FILE: lixenwraith/fini/plus.go
package fini

import (
	"slices"
	"strings"
)

const (
	plusPrefix  = "+"
	minusPrefix = "-"
)

// applyPlus ignores its input and merges the original opt, env and arg values.
func applyPlus(_ any, ctx *Context) (any, error) {
	if ctx == nil {
		return []string{}, nil
	}
	t := ctx.Original
	sources := []any{nil, t.Env, nil}
	if t.OptSet {
		sources[0] = t.Opt
	}
	if t.ArgSet {
		sources[2] = t.Arg
	}
	return mergePlusMinus(nil, sources...)
}

// mergePlusMinus folds each source into the accumulator from lowest to highest
// precedence. Blank sources are skipped. A batch of plain items replaces the
// accumulator; a batch of +item/-item edits it.
func mergePlusMinus(initial []string, sources ...any) ([]string, error) {
	acc := slices.Clone(initial)
	if acc == nil {
		acc = []string{}
	}
	for _, src := range sources {
		if src == nil {
			continue
		}
		s, ok := src.(string)
		if !ok {
			return nil, formatErrorf(FuncPlus, src, "each source must be a string, got %T", src)
		}
		if strings.TrimSpace(s) == "" {
			continue
		}

		batch := parseComma(s)
		prefixed := 0
		for _, item := range batch {
			if strings.HasPrefix(item, plusPrefix) || strings.HasPrefix(item, minusPrefix) {
				prefixed++
			}
		}

		if prefixed == 0 {
			acc = slices.Clone(batch)
			continue
		}
		if prefixed != len(batch) {
			return nil, formatErrorf(FuncPlus, s, "items must all be '+item'/'-item' or none of them")
		}

		for _, item := range batch {
			op, name := item[:1], item[1:]
			if name == "" {
				return nil, formatErrorf(FuncPlus, s, "empty item after %q", op)
			}
			if op == plusPrefix {
				if !slices.Contains(acc, name) {
					acc = append(acc, name)
				}
				continue
			}
			acc = slices.DeleteFunc(acc, func(v string) bool { return v == name })
		}
	}
	return acc, nil
}
