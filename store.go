// FILE: lixenwraith/fini/store.go
package fini

import "strings"

// DefaultSectionName is the section consulted when a section lacks an option.
const DefaultSectionName = "DEFAULT"

// ValueStore is the flat sectioned key/value storage the resolver reads from.
type ValueStore interface {
	// Lookup returns the option of section, falling back to the default section.
	Lookup(section, option string) (string, bool)
	HasSection(section string) bool
	Sections() []string
}

// KeyTransform normalizes option names on every read and write.
type KeyTransform func(option string) string

// DashToUnderscore maps "log-level" to "log_level", leaving case intact.
func DashToUnderscore(option string) string {
	return strings.ReplaceAll(option, "-", "_")
}

// Key addresses one option of one section.
type Key struct {
	Section string
	Option  string
}

type storeSection struct {
	keys   []string
	values map[string]string
}

func newStoreSection() *storeSection {
	return &storeSection{values: make(map[string]string)}
}

// Store is the in-memory ValueStore. Sections and options keep insertion order.
type Store struct {
	defaultSection string
	transform      KeyTransform
	order          []string
	sections       map[string]*storeSection
}

// NewStore creates an empty store. An empty defaultSection selects DefaultSectionName.
func NewStore(defaultSection string) *Store {
	if defaultSection == "" {
		defaultSection = DefaultSectionName
	}
	return &Store{
		defaultSection: defaultSection,
		transform:      DashToUnderscore,
		sections: map[string]*storeSection{
			defaultSection: newStoreSection(),
		},
	}
}

// DefaultSection returns the name of the fallback section.
func (s *Store) DefaultSection() string {
	return s.defaultSection
}

// SetKeyTransform replaces the option name normalization; nil disables it.
func (s *Store) SetKeyTransform(fn KeyTransform) {
	s.transform = fn
}

// NormalizeKey applies the key transform to option.
func (s *Store) NormalizeKey(option string) string {
	if s.transform == nil {
		return option
	}
	return s.transform(option)
}

// AddSection creates section if it does not exist yet.
func (s *Store) AddSection(section string) {
	if _, exists := s.sections[section]; exists {
		return
	}
	s.sections[section] = newStoreSection()
	s.order = append(s.order, section)
}

// HasSection reports whether section exists. The default section always exists.
func (s *Store) HasSection(section string) bool {
	_, exists := s.sections[section]
	return exists
}

// Sections returns the default section followed by the others in insertion order.
func (s *Store) Sections() []string {
	return append([]string{s.defaultSection}, s.order...)
}

// Options returns the options visible in section, its own first, then inherited ones.
func (s *Store) Options(section string) []string {
	sec, exists := s.sections[section]
	if !exists {
		return nil
	}
	options := append([]string(nil), sec.keys...)
	if section == s.defaultSection {
		return options
	}
	for _, key := range s.sections[s.defaultSection].keys {
		if _, own := sec.values[key]; !own {
			options = append(options, key)
		}
	}
	return options
}

// Lookup returns the option of section, falling back to the default section.
func (s *Store) Lookup(section, option string) (string, bool) {
	sec, exists := s.sections[section]
	if !exists {
		return "", false
	}
	option = s.NormalizeKey(option)
	if v, ok := sec.values[option]; ok {
		return v, true
	}
	v, ok := s.sections[s.defaultSection].values[option]
	return v, ok
}

// Set stores value, creating the section when needed.
func (s *Store) Set(section, option, value string) {
	s.AddSection(section)
	sec := s.sections[section]
	option = s.NormalizeKey(option)
	if _, exists := sec.values[option]; !exists {
		sec.keys = append(sec.keys, option)
	}
	sec.values[option] = value
}

// Remove deletes option from section and reports whether it was present.
func (s *Store) Remove(section, option string) bool {
	sec, exists := s.sections[section]
	if !exists {
		return false
	}
	option = s.NormalizeKey(option)
	if _, ok := sec.values[option]; !ok {
		return false
	}
	delete(sec.values, option)
	for i, key := range sec.keys {
		if key == option {
			sec.keys = append(sec.keys[:i], sec.keys[i+1:]...)
			break
		}
	}
	return true
}

// Nested returns section -> option -> value for every non-empty section.
func (s *Store) Nested() map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, name := range s.Sections() {
		sec := s.sections[name]
		if len(sec.keys) == 0 && name == s.defaultSection {
			continue
		}
		m := make(map[string]string, len(sec.keys))
		for _, key := range sec.keys {
			m[key] = sec.values[key]
		}
		out[name] = m
	}
	return out
}
