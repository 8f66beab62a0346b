// FILE: lixenwraith/fini/fini_test.go
package fini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParserPhases tests the help, metadata and value phases of an option blob
func TestParserPhases(t *testing.T) {
	p := NewParser()

	t.Run("FullBlock", func(t *testing.T) {
		rec := p.Parse(": first help\n: second help\n:: choices: a,b\n:: f: comma\na\nb")

		assert.Equal(t, []string{"first help", "second help"}, rec.Help)
		assert.Equal(t, []string{"comma"}, rec.Functions)
		assert.Equal(t, Metadata{{Name: "choices", Value: "a,b"}}, rec.Metadata)
		assert.Equal(t, "a\nb", rec.Value)
	})

	t.Run("ValueOnly", func(t *testing.T) {
		rec := p.Parse("plain value")
		assert.Empty(t, rec.Help)
		assert.Empty(t, rec.Metadata)
		assert.Empty(t, rec.Functions)
		assert.Equal(t, "plain value", rec.Value)
	})

	t.Run("MetadataWithoutHelp", func(t *testing.T) {
		rec := p.Parse(":: f: int\n42")
		assert.Empty(t, rec.Help)
		assert.Equal(t, []string{"int"}, rec.Functions)
		assert.Equal(t, "42", rec.Value)
	})

	t.Run("LeadingBlankLinesSkipped", func(t *testing.T) {
		rec := p.Parse("\n\n: help\nvalue")
		assert.Equal(t, []string{"help"}, rec.Help)
		assert.Equal(t, "value", rec.Value)
	})

	t.Run("InteriorBlankLinesKept", func(t *testing.T) {
		rec := p.Parse(":: f: line\n\na\n\nb\n\n")
		assert.Equal(t, "a\n\nb", rec.Value)
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		rec := p.Parse("")
		assert.Equal(t, "", rec.Value)
		assert.Empty(t, rec.Functions)
	})

	t.Run("FunctionChainSplitWithoutEscapes", func(t *testing.T) {
		rec := p.Parse(`:: f: comma, bar ,, cmd\`)
		assert.Equal(t, []string{"comma", "bar", `cmd\`}, rec.Functions)
	})

	t.Run("NamesKeptAsMetadata", func(t *testing.T) {
		rec := p.Parse(": help\n:: names: v verbose\nno")
		names, ok := rec.Metadata.Get(NamesKey)
		assert.True(t, ok)
		assert.Equal(t, "v verbose", names)
	})

	t.Run("MetadataWithoutSeparator", func(t *testing.T) {
		rec := p.Parse(":: required\nx")
		v, ok := rec.Metadata.Get("required")
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("RepeatedMetadataUpdatesInPlace", func(t *testing.T) {
		rec := p.Parse(":: a: 1\n:: b: 2\n:: a: 3\nx")
		assert.Equal(t, Metadata{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}}, rec.Metadata)
		assert.Equal(t, map[string]string{"a": "3", "b": "2"}, rec.Metadata.Map())
	})

	t.Run("MetaSplitOnFirstSeparatorOnly", func(t *testing.T) {
		rec := p.Parse(":: url: http://host: 80\nx")
		v, _ := rec.Metadata.Get("url")
		assert.Equal(t, "http://host: 80", v)
	})
}

// TestParserLeniency tests that markers after the value phase began stay literal
func TestParserLeniency(t *testing.T) {
	p := NewParser()

	t.Run("LateMetadataIsValue", func(t *testing.T) {
		rec := p.Parse("literal\n:: f: int\n: help")
		assert.Empty(t, rec.Functions)
		assert.Empty(t, rec.Help)
		assert.Equal(t, "literal\n:: f: int\n: help", rec.Value)
	})

	t.Run("HelpAfterMetadataIsValue", func(t *testing.T) {
		rec := p.Parse(":: f: comma\n: not help\nx")
		assert.Equal(t, []string{"comma"}, rec.Functions)
		assert.Empty(t, rec.Help)
		assert.Equal(t, ": not help\nx", rec.Value)
	})

	t.Run("MarkerNeedsTrailingSpace", func(t *testing.T) {
		rec := p.Parse(":x\n::y")
		assert.Empty(t, rec.Help)
		assert.Empty(t, rec.Metadata)
		assert.Equal(t, ":x\n::y", rec.Value)
	})
}

// TestParserCustomMarkers tests configurable markers
func TestParserCustomMarkers(t *testing.T) {
	p := Parser{HelpMarker: "# ", MetaMarker: "## "}
	rec := p.Parse("# Port to use.\n## f: int\n8080")

	assert.Equal(t, []string{"Port to use."}, rec.Help)
	assert.Equal(t, []string{"int"}, rec.Functions)
	assert.Equal(t, "8080", rec.Value)

	t.Run("ZeroValueUsesDefaults", func(t *testing.T) {
		rec := Parser{}.Parse(": h\nv")
		assert.Equal(t, []string{"h"}, rec.Help)
	})
}
