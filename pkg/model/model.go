// Package model holds the canonical in-memory entities shared by the
// importer, builder, and runtime dictionary packages: terms, kanji, tags,
// sources, and frequency rows, before they are compiled into the on-disk
// container format.
package model

import "fmt"

// TagID identifies a TagRow within a Root's Tags slice.
type TagID int

// SourceID identifies a SourceRow within a Root's Sources slice.
type SourceID int

// Root aggregates every entity merged from one or more imported dictionary
// banks, ready for index construction and serialization.
type Root struct {
	Kanjis  []KanjiRow
	Terms   []TermRow
	Tags    []TagRow
	Sources []SourceRow
	Meta    []MetaRow

	tagKeys map[string]bool
}

// NewRoot returns an empty Root ready to accept merged entries.
func NewRoot() *Root {
	return &Root{tagKeys: make(map[string]bool)}
}

// AddTag appends tag to the Root, assigning it a unique Key derived from its
// Name (appending a numeric suffix on collision), and returns its TagID.
func (root *Root) AddTag(tag TagRow) TagID {
	if root.tagKeys == nil {
		root.tagKeys = make(map[string]bool)
	}
	key := tag.Name
	for n := 1; root.tagKeys[key]; n++ {
		key = fmt.Sprintf("%s_%d", tag.Name, n)
	}
	root.tagKeys[key] = true
	tag.Key = key
	root.Tags = append(root.Tags, tag)
	return TagID(len(root.Tags) - 1)
}

// AddSource appends source to the Root and returns its SourceID.
func (root *Root) AddSource(source SourceRow) SourceID {
	root.Sources = append(root.Sources, source)
	return SourceID(len(root.Sources) - 1)
}

// KanjiRow is a single kanji character entry: readings, meanings, and
// frequency/statistics contributed by one or more imported dictionaries.
type KanjiRow struct {
	Character string
	Onyomi    []string
	Kunyomi   []string
	Tags      map[TagID]bool
	Meanings  []string
	Stats     map[TagID]string
	Frequency *uint64
}

// TermRow is a single vocabulary entry: one expression/reading pair, its
// definitions, alternate forms, and provenance.
type TermRow struct {
	Expression string
	Reading    string
	Romaji     string // derived from Reading
	SearchKey  string // ASCII-only romaji key used for fast keyword search
	Definition []DefinitionRow
	Source     []SourceID
	Forms      []FormRow
	Tags       map[TagID]bool
	Frequency  *uint64
	Score      int32
}

// DefinitionRow is one gloss (sense) of a TermRow.
type DefinitionRow struct {
	Text  []string
	Info  []string
	Tags  map[TagID]bool
	Links []LinkRow
}

// FormRow is an alternate expression/reading pair for a TermRow (e.g. an
// alternate kanji spelling or okurigana variant).
type FormRow struct {
	Expression string
	Reading    string
	Romaji     string
	Frequency  *uint64
}

// LinkRow is a hyperlink attached to a DefinitionRow (e.g. a reference to an
// external glossary entry).
type LinkRow struct {
	URI   string
	Title string
}

// SourceRow records which imported dictionary bank a TermRow or KanjiRow came
// from, for provenance and conflict resolution during merge.
type SourceRow struct {
	Name     string
	Revision string
}

// MetaRow is a frequency or auxiliary statistic keyed by an expression, used
// to populate TermRow/KanjiRow.Frequency during the frequency join.
type MetaRow struct {
	Expression string
	Value      uint64
	Kanji      bool
}

// TagRow is a named, deduplicated tag attached to terms, kanji, or
// definitions (part-of-speech, dictionary-specific category, etc).
type TagRow struct {
	Key         string
	Name        string
	Category    string
	Description string
	Order       int32
}
