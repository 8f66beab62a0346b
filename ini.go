// FILE: lixenwraith/fini/ini.go
package fini

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxLineSize = 1024 * 1024

// ReadINI reads sectioned key/value text into the store and returns the keys
// it set, in file order. Indented lines continue the previous value; full-line
// comments start with '#' or ';'. Both '=' and ':' separate keys from values.
// A continuation line of backslashes followed by '#' or ';' loses one
// backslash, which is how WriteINI keeps such value lines from reading as
// comments.
func (s *Store) ReadINI(r io.Reader) ([]Key, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		keys        []Key
		section     string
		inSection   bool
		option      string
		lines       []string
		indentLevel int
	)

	flush := func() {
		if option == "" {
			return
		}
		value := strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
		s.Set(section, option, value)
		keys = append(keys, Key{Section: section, Option: s.NormalizeKey(option)})
		option, lines = "", nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if trimmed == "" {
			if option != "" {
				lines = append(lines, "")
			}
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if option != "" && indent > indentLevel {
			lines = append(lines, unescapeLine(trimmed))
			continue
		}

		flush()
		indentLevel = indent

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			inSection = true
			s.AddSection(section)
			continue
		}
		if !inSection {
			return keys, fmt.Errorf("%w: line %d: missing section header: %q", ErrParse, lineNo, line)
		}

		idx := strings.IndexAny(trimmed, "=:")
		if idx <= 0 {
			return keys, fmt.Errorf("%w: line %d: expected 'key = value': %q", ErrParse, lineNo, line)
		}
		key := strings.TrimSpace(trimmed[:idx])
		if key == "" {
			return keys, fmt.Errorf("%w: line %d: empty key: %q", ErrParse, lineNo, line)
		}
		option = key
		lines = []string{strings.TrimSpace(trimmed[idx+1:])}
	}
	if err := scanner.Err(); err != nil {
		return keys, fmt.Errorf("%w: %w", ErrParse, err)
	}
	flush()

	return keys, nil
}

// WriteINI renders the store as INI text that ReadINI reads back unchanged,
// provided no value line carries leading or trailing blanks.
func (s *Store) WriteINI(w io.Writer) error {
	bw := bufio.NewWriter(w)
	first := true
	for _, name := range s.Sections() {
		sec := s.sections[name]
		if name == s.defaultSection && len(sec.keys) == 0 {
			continue
		}
		if !first {
			bw.WriteString("\n")
		}
		first = false
		fmt.Fprintf(bw, "[%s]\n", name)
		for _, key := range sec.keys {
			lines := strings.Split(sec.values[key], "\n")
			fmt.Fprintf(bw, "%s = %s\n", key, lines[0])
			for _, l := range lines[1:] {
				if l == "" {
					bw.WriteString("\n")
					continue
				}
				fmt.Fprintf(bw, "    %s\n", escapeLine(l))
			}
		}
	}
	return bw.Flush()
}

// commentLike reports whether l is zero or more backslashes followed by a
// comment prefix.
func commentLike(l string) bool {
	rest := strings.TrimLeft(l, `\`)
	return strings.HasPrefix(rest, "#") || strings.HasPrefix(rest, ";")
}

func escapeLine(l string) string {
	if commentLike(l) {
		return `\` + l
	}
	return l
}

func unescapeLine(l string) string {
	if strings.HasPrefix(l, `\`) && commentLike(l) {
		return l[1:]
	}
	return l
}
