// Package bank decodes Yomichan-style dictionary banks: a ZIP archive
// containing an index.json manifest plus one or more term/kanji/tag/meta
// bank JSON files, each an array of fixed-shape positional tuples.
package bank

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kotobadb/kotobadb/pkg/kana"
)

// indexFileName is the manifest entry every bank archive must contain.
const indexFileName = "index.json"

// expectedFormat is the Yomichan bank schema version this importer targets.
const expectedFormat = 3

// Index is the decoded contents of a bank's index.json manifest.
type Index struct {
	Title    string `json:"title"`
	Format   int    `json:"format"`
	Revision string `json:"revision"`
}

// Term is one imported, normalized term-bank row.
type Term struct {
	Expression     string
	Reading        string
	SearchKey      string
	DefinitionTags []string
	Rules          []string
	Score          int32
	Glossary       []string
	Sequence       uint32
	TermTags       []string
	Source         string
}

// Kanji is one imported kanji-bank row.
type Kanji struct {
	Character string
	Onyomi    []string
	Kunyomi   []string
	Tags      []string
	Meanings  []string
	Stats     map[string]string
	Source    string
}

// Tag is one imported tag-bank row.
type Tag struct {
	Name     string
	Category string
	Order    int32
	Notes    string
}

// Meta is one imported frequency/auxiliary meta-bank row.
type Meta struct {
	Expression string
	Mode       string
	Data       uint32
}

// Dict holds every entry decoded from one bank archive.
type Dict struct {
	Title      string
	Format     int
	Revision   string
	Terms      []Term
	Kanji      []Kanji
	Tags       []Tag
	MetaTerms  []Meta
	MetaKanji  []Meta
}

// kind classifies a bank file by its normalized base name.
type kind int

const (
	kindUnknown kind = iota
	kindTerm
	kindKanji
	kindTag
	kindKanjiMeta
	kindTermMeta
)

var bankSuffix = regexp.MustCompile(`(_bank(_\d+)?)?\.json$`)

func classify(fileName string) kind {
	base := strings.ToLower(bankSuffix.ReplaceAllString(fileName, ""))
	switch base {
	case "term":
		return kindTerm
	case "kanji":
		return kindKanji
	case "tag":
		return kindTag
	case "kanji_meta":
		return kindKanjiMeta
	case "term_meta":
		return kindTermMeta
	default:
		return kindUnknown
	}
}

// Import reads a Yomichan-compatible ZIP archive and decodes every bank file
// it contains into a Dict.
func Import(r *zip.Reader) (*Dict, error) {
	indexEntry, err := r.Open(indexFileName)
	if err != nil {
		return nil, fmt.Errorf("bank: missing %s: %w", indexFileName, err)
	}
	defer indexEntry.Close()

	var idx Index
	if err := json.NewDecoder(indexEntry).Decode(&idx); err != nil {
		return nil, fmt.Errorf("bank: decoding %s: %w", indexFileName, err)
	}
	if idx.Format != expectedFormat {
		log.Printf("bank: WARNING: format for %q (%s) is %d (expected %d)", idx.Title, indexFileName, idx.Format, expectedFormat)
	}

	dict := &Dict{Title: idx.Title, Format: idx.Format, Revision: idx.Revision}

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := f.Name
		if name == indexFileName || !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		k := classify(name)
		if k == kindUnknown {
			continue
		}
		if err := importEntry(dict, f, k); err != nil {
			return nil, fmt.Errorf("bank: %s: %w", name, err)
		}
	}

	return dict, nil
}

func importEntry(dict *Dict, f *zip.File, k kind) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	switch k {
	case kindTerm:
		return importTerms(dict, rc)
	case kindKanji:
		return importKanji(dict, rc)
	case kindTag:
		return importTags(dict, rc)
	case kindKanjiMeta:
		rows, err := readMeta(rc)
		if err != nil {
			return err
		}
		dict.MetaKanji = append(dict.MetaKanji, rows...)
	case kindTermMeta:
		rows, err := readMeta(rc)
		if err != nil {
			return err
		}
		dict.MetaTerms = append(dict.MetaTerms, rows...)
	}
	return nil
}

// termTuple mirrors the 8-element positional array of a term bank row:
// [expression, reading, definitionTags, rules, score, glossary, sequence, termTags].
type termTuple struct {
	Expression     string
	Reading        string
	DefinitionTags string
	Rules          string
	Score          int32
	Glossary       []string
	Sequence       uint32
	TermTags       string
}

func (t *termTuple) UnmarshalJSON(data []byte) error {
	var raw [8]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &t.Expression); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &t.Reading); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &t.DefinitionTags); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[3], &t.Rules); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[4], &t.Score); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[5], &t.Glossary); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[6], &t.Sequence); err != nil {
		return err
	}
	return json.Unmarshal(raw[7], &t.TermTags)
}

func importTerms(dict *Dict, r io.Reader) error {
	var rows []termTuple
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return err
	}
	for _, row := range rows {
		term := normalizeTerm(row, dict.Title)
		if term.Expression == "" {
			continue
		}
		dict.Terms = append(dict.Terms, term)
	}
	return nil
}

// normalizeTerm applies the expression/reading/search-key normalization
// rules: NFC-fold and trim the expression and reading, fall back to the
// reading when the expression is blank, apply the させ方 reading override,
// derive a missing kana reading for expressions that contain no kanji, and
// compute the romaji search key.
func normalizeTerm(row termTuple, source string) Term {
	expression := nfcTrim(row.Expression)
	reading := nfcTrim(row.Reading)
	if expression == "" {
		expression = reading
	}

	switch {
	case reading == "させ方":
		reading = "させかた"
	case reading == "" && !containsKanji(expression):
		reading = kana.ToHiragana(expression)
	default:
		reading = kana.ToHiragana(reading)
	}

	keySource := reading
	if keySource == "" {
		keySource = expression
	}

	glossary := make([]string, 0, len(row.Glossary))
	for _, g := range row.Glossary {
		g = nfcTrim(g)
		if g != "" {
			glossary = append(glossary, g)
		}
	}

	return Term{
		Expression:     expression,
		Reading:        reading,
		SearchKey:      searchKey(keySource),
		DefinitionTags: csv(row.DefinitionTags),
		Rules:          csv(row.Rules),
		Score:          row.Score,
		Glossary:       glossary,
		Sequence:       row.Sequence,
		TermTags:       csv(row.TermTags),
		Source:         source,
	}
}

func containsKanji(s string) bool {
	for _, c := range s {
		if kana.IsKanji(c) {
			return true
		}
	}
	return false
}

var (
	searchKeyReplace  = regexp.MustCompile(`[-,'‘’/~]`)
	searchKeyValidate = regexp.MustCompile(`^[a-z0-9]+$`)
)

// oddoriji/chooonpu repetition marks romanize to nothing useful on their own
// and are special-cased to a descriptive key instead.
var specialSearchKeys = map[string]string{
	"ヽ": "odoriji",
	"ヾ": "odoriji",
	"ゝ": "odoriji",
	"ゞ": "odoriji",
	"ー": "chooonpu",
}

// searchKey returns a romaji search key for term: romaji is used because it
// handles katakana, hiragana, and romaji queries with a single key and
// tolerates incomplete syllables.
func searchKey(term string) string {
	if special, ok := specialSearchKeys[term]; ok {
		return special
	}

	key := strings.ToLower(kana.ToRomaji(term))
	key = kana.ExpandRomaji(key)
	key = searchKeyReplace.ReplaceAllString(key, "")

	if !searchKeyValidate.MatchString(key) {
		// malformed keys are tolerated, not rejected
		log.Printf("bank: WARNING: search key %q for %q is not ASCII alphanumeric", key, term)
	}
	return key
}

// kanjiTuple mirrors the 6-element positional array of a kanji bank row:
// [character, onyomi, kunyomi, tags, meanings, stats].
type kanjiTuple struct {
	Character string
	Onyomi    string
	Kunyomi   string
	Tags      string
	Meanings  []string
	Stats     map[string]string
}

func (k *kanjiTuple) UnmarshalJSON(data []byte) error {
	var raw [6]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &k.Character); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &k.Onyomi); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &k.Kunyomi); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[3], &k.Tags); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[4], &k.Meanings); err != nil {
		return err
	}
	return json.Unmarshal(raw[5], &k.Stats)
}

func importKanji(dict *Dict, r io.Reader) error {
	var rows []kanjiTuple
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return err
	}
	for _, row := range rows {
		dict.Kanji = append(dict.Kanji, Kanji{
			Character: row.Character,
			Onyomi:    csv(row.Onyomi),
			Kunyomi:   csv(row.Kunyomi),
			Tags:      csv(row.Tags),
			Meanings:  row.Meanings,
			Stats:     row.Stats,
			Source:    dict.Title,
		})
	}
	return nil
}

// tagTuple mirrors the 5-element positional array of a tag bank row:
// [name, category, order, notes, score]. The trailing score is unused.
type tagTuple struct {
	Name     string
	Category string
	Order    int32
	Notes    string
}

func (t *tagTuple) UnmarshalJSON(data []byte) error {
	var raw [5]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &t.Name); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &t.Category); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[2], &t.Order); err != nil {
		return err
	}
	return json.Unmarshal(raw[3], &t.Notes)
}

func importTags(dict *Dict, r io.Reader) error {
	var rows []tagTuple
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return err
	}
	for _, row := range rows {
		dict.Tags = append(dict.Tags, Tag{
			Name:     row.Name,
			Category: row.Category,
			Order:    row.Order,
			Notes:    row.Notes,
		})
	}
	return nil
}

// metaTuple mirrors the 3-element positional array of a meta bank row:
// [expression, mode, data].
type metaTuple struct {
	Expression string
	Mode       string
	Data       uint32
}

func (m *metaTuple) UnmarshalJSON(data []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &m.Expression); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &m.Mode); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &m.Data)
}

func readMeta(r io.Reader) ([]Meta, error) {
	var rows []metaTuple
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, err
	}
	result := make([]Meta, 0, len(rows))
	for _, row := range rows {
		result = append(result, Meta{Expression: row.Expression, Mode: row.Mode, Data: row.Data})
	}
	return result, nil
}

// csv splits a space-separated tag/rule list into its trimmed, NFC-folded
// elements. An empty string yields no elements.
func csv(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, " ")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = nfcTrim(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func nfcTrim(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
