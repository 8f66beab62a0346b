// FILE: lixenwraith/fini/section.go
package fini

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Section is the cached view of one store section.
type Section struct {
	cfg   *Config
	name  string
	cache map[string]any
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Options returns the options visible in the section, inherited ones included.
func (s *Section) Options() []string {
	return s.cfg.store.Options(s.name)
}

// Has reports whether the store holds option for this section or its default.
func (s *Section) Has(option string) bool {
	_, ok := s.cfg.store.Lookup(s.name, option)
	return ok
}

// Functions returns the function chain bound to option.
func (s *Section) Functions(option string) []string {
	return s.cfg.Functions(s.name, option)
}

// Select returns the raw selection for option without running its chain.
func (s *Section) Select(option string) (Selection, error) {
	return Resolve(s.cfg.store, s.name, s.cfg.store.NormalizeKey(option), s.cfg.overrides)
}

// Value resolves option: precedence selection, then the function chain.
// Results are cached until invalidated; failures are not cached.
func (s *Section) Value(option string) (any, error) {
	key := s.cfg.store.NormalizeKey(option)
	if v, cached := s.cache[key]; cached {
		return v, nil
	}

	sel, err := Resolve(s.cfg.store, s.name, key, s.cfg.overrides)
	if err != nil {
		return nil, err
	}

	names := s.Functions(key)
	log := s.cfg.log.WithFields(logrus.Fields{
		"section": s.name,
		"option":  key,
		"source":  string(sel.Source),
		"chain":   describeChain(names),
	})

	ctx := &Context{Section: s.name, Option: key, Original: sel.Original, Formats: s.cfg.formats}
	v, err := s.cfg.registry.Apply(names, sel, ctx)
	if err != nil {
		log.WithError(err).Debug("option resolution failed")
		return nil, fmt.Errorf("%s.%s: %w", s.name, key, err)
	}

	log.Debug("option resolved")
	s.cache[key] = v
	return v, nil
}

// Get resolves option like Value. When no source supplies it, the first
// fallback is returned if given, otherwise the ErrOptionNotFound error.
func (s *Section) Get(option string, fallback ...any) (any, error) {
	v, err := s.Value(option)
	if err != nil && len(fallback) > 0 && errors.Is(err, ErrOptionNotFound) {
		return fallback[0], nil
	}
	return v, err
}

// Set writes a raw value to the store and drops the cached result.
func (s *Section) Set(option, value string) {
	key := s.cfg.store.NormalizeKey(option)
	s.cfg.store.Set(s.name, key, value)
	s.cfg.dropCached(Key{Section: s.name, Option: key})
}

// Cached returns the memoized value of option, if any.
func (s *Section) Cached(option string) (any, bool) {
	v, ok := s.cache[s.cfg.store.NormalizeKey(option)]
	return v, ok
}

// Invalidate clears cached values; with no options, all of them.
func (s *Section) Invalidate(options ...string) {
	if len(options) == 0 {
		clear(s.cache)
		return
	}
	for _, option := range options {
		delete(s.cache, s.cfg.store.NormalizeKey(option))
	}
}

// Values resolves every visible option, stopping at the first failure.
func (s *Section) Values() (map[string]any, error) {
	out := make(map[string]any)
	for _, option := range s.Options() {
		v, err := s.Value(option)
		if err != nil {
			return nil, err
		}
		out[option] = v
	}
	return out, nil
}
