// FILE: lixenwraith/fini/config.go
package fini

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Mode selects how text read into a Config is interpreted.
type Mode string

const (
	// ModeAuto parses FINI markers until the first FINI read, plain INI afterwards
	ModeAuto Mode = ""
	// ModeFINI parses help, metadata and function chains out of every value read
	ModeFINI Mode = "fini"
	// ModeINI stores values verbatim and keeps existing function chains
	ModeINI Mode = "ini"
)

// Config owns the value store, the function chains parsed from FINI text, the
// override sources and the registry. Sections are created once per name and
// memoize resolved values until invalidated.
//
// Config is not safe for concurrent use; callers sharing one instance across
// goroutines must synchronize access themselves.
type Config struct {
	store     *Store
	contexts  map[string]map[string][]string
	records   []Record
	recordIdx map[Key]int
	finiRead  bool

	parser    Parser
	overrides Overrides
	formats   map[string]string
	registry  *Registry
	log       logrus.FieldLogger
	tagName   string

	sections []*Section
	index    map[string]int
}

// New creates an empty Config using the built-in function registry.
func New() *Config {
	return &Config{
		store:     NewStore(DefaultSectionName),
		contexts:  make(map[string]map[string][]string),
		recordIdx: make(map[Key]int),
		parser:    NewParser(),
		formats:   make(map[string]string),
		registry:  DefaultRegistry(),
		log:       logrus.StandardLogger(),
		tagName:   DefaultTagName,
		index:     make(map[string]int),
	}
}

// Store exposes the underlying value store.
func (c *Config) Store() *Store {
	return c.store
}

// SetDefaultSection renames the fallback section. Only valid before any read.
func (c *Config) SetDefaultSection(name string) {
	transform := c.store.transform
	c.store = NewStore(name)
	c.store.transform = transform
}

// SetKeyTransform replaces option name normalization; nil keeps names verbatim.
func (c *Config) SetKeyTransform(fn KeyTransform) {
	c.store.SetKeyTransform(fn)
}

// SetParser replaces the FINI markers used by later reads.
func (c *Config) SetParser(p Parser) {
	c.parser = p
}

// SetArgs binds the commandline argument mapping. Cached values are kept;
// call Invalidate for options whose resolution may change.
func (c *Config) SetArgs(args map[string]any) {
	c.overrides.Args = args
}

// Args returns the bound commandline argument mapping.
func (c *Config) Args() map[string]any {
	return c.overrides.Args
}

// SetEnvNames binds option names to environment variable names.
func (c *Config) SetEnvNames(names map[string]string) {
	c.overrides.EnvNames = names
}

// SetEnvLookup replaces the environment reader, os.LookupEnv by default.
func (c *Config) SetEnvLookup(fn EnvLookup) {
	c.overrides.Env = fn
}

// SetFormats binds the substitution table used by the fmt function.
func (c *Config) SetFormats(formats map[string]string) {
	if formats == nil {
		formats = make(map[string]string)
	}
	c.formats = formats
}

// SetRegistry replaces the function registry.
func (c *Config) SetRegistry(r *Registry) {
	if r == nil {
		r = DefaultRegistry()
	}
	c.registry = r
}

// Registry returns the function registry.
func (c *Config) Registry() *Registry {
	return c.registry
}

// SetLogger replaces the logger, logrus.StandardLogger by default.
func (c *Config) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	c.log = l
}

// SetTagName replaces the struct tag used by Scan.
func (c *Config) SetTagName(tag string) {
	c.tagName = tag
}

// ReadString reads INI text, see Read.
func (c *Config) ReadString(text string, mode Mode) error {
	return c.Read(strings.NewReader(text), mode)
}

// Read reads INI text into the store. In FINI mode every value read is parsed
// for help, metadata and function chain; earlier definitions of the same
// option are replaced.
func (c *Config) Read(r io.Reader, mode Mode) error {
	keys, err := c.store.ReadINI(r)
	c.ingest(keys, mode)
	return err
}

// ingest applies mode to freshly stored keys and drops their cached values.
func (c *Config) ingest(keys []Key, mode Mode) {
	if mode == ModeAuto {
		mode = ModeINI
		if !c.finiRead {
			mode = ModeFINI
		}
	}
	if mode == ModeFINI && len(keys) > 0 {
		c.finiRead = true
	}

	for _, k := range keys {
		if mode == ModeFINI {
			blob, _ := c.store.Lookup(k.Section, k.Option)
			rec := c.parser.Parse(blob)
			rec.Section, rec.Option = k.Section, k.Option
			c.store.Set(k.Section, k.Option, rec.Value)
			c.setFunctions(k.Section, k.Option, rec.Functions)
			c.putRecord(rec)
		}
		c.dropCached(k)
	}
	c.log.WithFields(logrus.Fields{"keys": len(keys), "mode": string(mode)}).Debug("config text read")
}

func (c *Config) setFunctions(section, option string, names []string) {
	if len(names) == 0 {
		if ctx := c.contexts[section]; ctx != nil {
			delete(ctx, option)
		}
		return
	}
	if c.contexts[section] == nil {
		c.contexts[section] = make(map[string][]string)
	}
	c.contexts[section][option] = names
}

func (c *Config) putRecord(rec Record) {
	k := Key{Section: rec.Section, Option: rec.Option}
	if i, exists := c.recordIdx[k]; exists {
		c.records[i] = rec
		return
	}
	c.recordIdx[k] = len(c.records)
	c.records = append(c.records, rec)
}

// dropCached clears the slot for k, in every section when k is a default.
func (c *Config) dropCached(k Key) {
	if k.Section == c.store.DefaultSection() {
		for _, s := range c.sections {
			delete(s.cache, k.Option)
		}
		return
	}
	if i, exists := c.index[k.Section]; exists {
		delete(c.sections[i].cache, k.Option)
	}
}

// Functions returns the function chain of option in section, inheriting from
// the default section. The result is nil for the identity chain.
func (c *Config) Functions(section, option string) []string {
	option = c.store.NormalizeKey(option)
	if names, ok := c.contexts[section][option]; ok {
		return names
	}
	return c.contexts[c.store.DefaultSection()][option]
}

// Record returns the parsed FINI record of option in section.
func (c *Config) Record(section, option string) (Record, bool) {
	i, exists := c.recordIdx[Key{Section: section, Option: c.store.NormalizeKey(option)}]
	if !exists {
		return Record{}, false
	}
	return c.records[i], true
}

// Records returns all parsed FINI records in read order.
func (c *Config) Records() []Record {
	return append([]Record(nil), c.records...)
}

// Sections returns all section names, the default section first.
func (c *Config) Sections() []string {
	return c.store.Sections()
}

// HasSection reports whether the store holds section.
func (c *Config) HasSection(name string) bool {
	return c.store.HasSection(name)
}

// Section returns the view of name, creating it on first access.
func (c *Config) Section(name string) (*Section, error) {
	if i, exists := c.index[name]; exists {
		return c.sections[i], nil
	}
	if !c.store.HasSection(name) {
		return nil, &SectionError{Section: name}
	}
	s := &Section{cfg: c, name: name, cache: make(map[string]any)}
	c.index[name] = len(c.sections)
	c.sections = append(c.sections, s)
	c.log.WithField("section", name).Debug("section view created")
	return s, nil
}

// Get returns the view of name, or nil when the section does not exist.
func (c *Config) Get(name string) *Section {
	s, err := c.Section(name)
	if err != nil {
		return nil
	}
	return s
}

// Invalidate clears cached values of section; with no options, all of them.
func (c *Config) Invalidate(section string, options ...string) {
	i, exists := c.index[section]
	if !exists {
		c.log.WithField("section", section).Warn("invalidate on section without view")
		return
	}
	c.sections[i].Invalidate(options...)
}

// InvalidateAll clears every cached value of every section.
func (c *Config) InvalidateAll() {
	for _, s := range c.sections {
		s.Invalidate()
	}
}
