// FILE: lixenwraith/fini/errors.go
package fini

import (
	"errors"
	"fmt"
)

var (
	// ErrSectionNotFound is returned when a section is accessed that the store does not hold.
	ErrSectionNotFound = errors.New("section not found")
	// ErrOptionNotFound is returned when no source supplies an option and no fallback was given.
	ErrOptionNotFound = errors.New("option not found")
	// ErrFormat is returned by conversion functions for malformed input.
	ErrFormat = errors.New("format error")
	// ErrUnknownFunction is returned when a chain names a function the registry does not hold.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrConfigNotFound is returned when a configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrParse is returned for INI text the store cannot read.
	ErrParse = errors.New("parse error")
)

// SectionError reports a missing section.
type SectionError struct {
	Section string
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("no section: %q", e.Section)
}

func (e *SectionError) Is(target error) bool {
	return target == ErrSectionNotFound
}

// OptionError reports an option that none of the sources supply.
type OptionError struct {
	Section string
	Option  string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("no option %q in section: %q", e.Option, e.Section)
}

func (e *OptionError) Is(target error) bool {
	return target == ErrOptionNotFound
}

// FormatError wraps a conversion failure with the function name and offending value.
type FormatError struct {
	Func  string
	Value any
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: invalid value %#v", e.Func, e.Value)
	}
	return fmt.Sprintf("%s: invalid value %#v: %v", e.Func, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatErrorf(fn string, value any, format string, args ...any) error {
	return &FormatError{Func: fn, Value: value, Err: fmt.Errorf(format, args...)}
}
