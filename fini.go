// FILE: lixenwraith/fini/fini.go
package fini

import (
	"strings"
)

const (
	// DefaultHelpMarker starts a help line in a FINI option blob.
	DefaultHelpMarker = ": "
	// DefaultMetaMarker starts a metadata line in a FINI option blob.
	DefaultMetaMarker = ":: "

	// FuncKey is the metadata name holding the comma separated function chain.
	FuncKey = "f"
	// NamesKey is the metadata name holding extra flag name fragments.
	NamesKey = "names"

	metaSeparator = ": "
)

// MetaEntry is a single metadata line.
type MetaEntry struct {
	Name  string
	Value string
}

// Metadata is an ordered name/value mapping. A repeated name updates the
// earlier entry in place.
type Metadata []MetaEntry

// Get returns the value stored under name.
func (m Metadata) Get(name string) (string, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Map returns the metadata as a plain map.
func (m Metadata) Map() map[string]string {
	out := make(map[string]string, len(m))
	for _, e := range m {
		out[e.Name] = e.Value
	}
	return out
}

func (m Metadata) set(name, value string) Metadata {
	for i := range m {
		if m[i].Name == name {
			m[i].Value = value
			return m
		}
	}
	return append(m, MetaEntry{Name: name, Value: value})
}

// Record is the parsed form of one option blob.
type Record struct {
	Section   string
	Option    string
	Value     string
	Help      []string
	Metadata  Metadata
	Functions []string
}

// Parser splits option blobs into help, metadata, function chain and value.
type Parser struct {
	HelpMarker string
	MetaMarker string
}

// NewParser returns a parser with the default markers.
func NewParser() Parser {
	return Parser{HelpMarker: DefaultHelpMarker, MetaMarker: DefaultMetaMarker}
}

type phase int

const (
	phaseHelp phase = iota
	phaseMeta
	phaseValue
)

// Parse scans blob line by line: help lines, then metadata lines, then value.
// Marker lines met after the value has started stay in the value. Parse never fails.
func (p Parser) Parse(blob string) Record {
	help, meta := p.HelpMarker, p.MetaMarker
	if help == "" {
		help = DefaultHelpMarker
	}
	if meta == "" {
		meta = DefaultMetaMarker
	}

	var rec Record
	var value []string

	lines := strings.Split(blob, "\n")
	// an INI value that begins on the line after "key =" starts blank
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	state := phaseHelp
	for _, line := range lines {
		if state == phaseHelp {
			if strings.HasPrefix(line, help) {
				rec.Help = append(rec.Help, strings.TrimPrefix(line, help))
				continue
			}
			state = phaseMeta
		}
		if state == phaseMeta {
			if strings.HasPrefix(line, meta) {
				name, rest := splitMeta(strings.TrimPrefix(line, meta))
				if name == FuncKey {
					rec.Functions = append(rec.Functions, splitFuncNames(rest)...)
				} else {
					rec.Metadata = rec.Metadata.set(name, rest)
				}
				continue
			}
			state = phaseValue
		}
		value = append(value, line)
	}

	rec.Value = trimBlankLines(value)
	return rec
}

func splitMeta(s string) (string, string) {
	name, rest, found := strings.Cut(s, metaSeparator)
	if !found {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(name), strings.TrimSpace(rest)
}

// splitFuncNames splits on plain commas, no escaping.
func splitFuncNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
