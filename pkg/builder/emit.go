package builder

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kotobadb/kotobadb/pkg/container"
	"github.com/kotobadb/kotobadb/pkg/dictdb"
	"github.com/kotobadb/kotobadb/pkg/kana"
	"github.com/kotobadb/kotobadb/pkg/model"
)

const pageSize = 1000

// Emit compiles root into the five on-disk archives (dict.zip, text.zip,
// chars.zip, meta.zip, kanji.zip), writing each to the corresponding
// zip.Writer.
func Emit(root *model.Root, dictZip, textZip, charsZip, metaZip, kanjiZip *zip.Writer) error {
	terms := NewTable()
	glossary := NewTable()
	searchTable := NewTable()

	for _, term := range root.Terms {
		terms.Intern(term.Expression)
		terms.Intern(term.Reading)
		if term.SearchKey != "" {
			searchTable.Intern(term.SearchKey)
		}
	}

	index, pages := buildDictPages(root, terms, glossary)
	if err := validateGlossary(glossary); err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	if err := writeDictArchive(dictZip, index, pages); err != nil {
		return fmt.Errorf("builder: writing dict.zip: %w", err)
	}

	if err := writeTextArchive(textZip, root, terms, glossary, searchTable); err != nil {
		return fmt.Errorf("builder: writing text.zip: %w", err)
	}

	if err := writeCharsArchive(charsZip, root); err != nil {
		return fmt.Errorf("builder: writing chars.zip: %w", err)
	}

	if err := writeMetaArchive(metaZip, root); err != nil {
		return fmt.Errorf("builder: writing meta.zip: %w", err)
	}

	if err := writeKanjiArchive(kanjiZip, root); err != nil {
		return fmt.Errorf("builder: writing kanji.zip: %w", err)
	}

	return nil
}

// dictPage accumulates the per-page index/data vectors being built for one
// 1000-entry page of dict.zip, mirroring the page layout documented on
// pkg/dictdb's decodeEntryData.
type dictPage struct {
	offsets []uint32 // one per entry in the page: offset into data
	data    []uint32
}

func buildDictPages(root *model.Root, terms, glossary *Table) ([]uint32, map[int]*dictPage) {
	var index []uint32
	pages := make(map[int]*dictPage)

	for i, term := range root.Terms {
		pageNumber := i / pageSize
		page, ok := pages[pageNumber]
		if !ok {
			page = &dictPage{}
			pages[pageNumber] = page
		}

		expr := terms.Intern(term.Expression)
		lookup := terms.Intern(term.Reading)
		freq := uint32(0)
		if term.Frequency != nil {
			freq = uint32(*term.Frequency)
		}
		index = append(index, expr, lookup, lookup, freq)

		page.offsets = append(page.offsets, uint32(len(page.data)))
		page.data = appendEntryData(page.data, term, glossary)
	}

	return index, pages
}

func appendEntryData(data []uint32, term model.TermRow, glossary *Table) []uint32 {
	data = append(data, uint32(len(term.Definition)))
	for _, def := range term.Definition {
		source := uint32(0)
		if len(term.Source) > 0 {
			source = uint32(term.Source[0])
		}
		data = append(data, source)
		data = appendInternedList(data, glossary, def.Text)
		data = appendUint32List(data, nil) // rule_ids: de-inflection is not tracked per stored definition
		data = appendUint32List(data, sortedTagIDs(term.Tags))
		data = appendUint32List(data, sortedTagIDs(def.Tags))
	}
	return data
}

func sortedTagIDs(ids map[model.TagID]bool) []uint32 {
	out := make([]uint32, 0, len(ids))
	for id := range ids {
		out = append(out, uint32(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func appendUint32List(data []uint32, items []uint32) []uint32 {
	data = append(data, uint32(len(items)))
	data = append(data, items...)
	return data
}

func appendInternedList(data []uint32, table *Table, items []string) []uint32 {
	data = append(data, uint32(len(items)))
	for _, it := range items {
		data = append(data, table.Intern(it))
	}
	return data
}

// validateGlossary rejects any interned gloss containing a literal newline:
// the glossary string table packs entries back-to-back by byte offset and
// length with no per-string terminator, so an embedded newline would not
// corrupt parsing but would be indistinguishable from the boundary a
// line-oriented tool (or a future format revision) might assume is there.
func validateGlossary(glossary *Table) error {
	for _, s := range glossary.Strings {
		if strings.ContainsRune(s, '\n') {
			return fmt.Errorf("gloss %q contains a literal newline, which the on-disk glossary format cannot represent", s)
		}
	}
	return nil
}

func writeDictArchive(w *zip.Writer, index []uint32, pages map[int]*dictPage) error {
	if err := container.WriteUint32Vector(w, "index", index); err != nil {
		return err
	}

	numbers := make([]int, 0, len(pages))
	for n := range pages {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		page := pages[n]
		packed := make([]uint32, 0, 2+len(page.offsets)+len(page.data))
		packed = append(packed, uint32(len(page.offsets)), uint32(len(page.data)))
		packed = append(packed, page.offsets...)
		packed = append(packed, page.data...)
		if err := container.WriteUint32Vector(w, fmt.Sprintf("%04d", n), packed); err != nil {
			return err
		}
	}
	return nil
}

// writeCharsArchive emits one delta-range-encoded entry per indexable
// character (kanji or hiragana appearing in any term's reading/expression),
// named by its codepoint as a 6-hex-digit uppercase string.
func writeCharsArchive(w *zip.Writer, root *model.Root) error {
	byChar := make(map[rune]map[uint32]bool)
	for i, term := range root.Terms {
		for _, r := range term.Expression + term.Reading {
			if !(kana.IsKanji(r) || kana.IsHiragana(r)) {
				continue
			}
			if byChar[r] == nil {
				byChar[r] = make(map[uint32]bool)
			}
			byChar[r][uint32(i)] = true
		}
	}

	for c, set := range byChar {
		sorted := make([]uint32, 0, len(set))
		for idx := range set {
			sorted = append(sorted, idx)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		name := fmt.Sprintf("%06X", c)
		if err := container.WriteUint32Vector(w, name, dictdb.EncodeCharSet(sorted)); err != nil {
			return err
		}
	}
	return nil
}

func writeMetaArchive(w *zip.Writer, root *model.Root) error {
	tagsJSON, err := json.Marshal(root.Tags)
	if err != nil {
		return err
	}
	if err := container.WriteAll(w, "tags.json", tagsJSON); err != nil {
		return err
	}

	var sources strings.Builder
	for _, s := range root.Sources {
		sources.WriteString(s.Name)
		sources.WriteByte('\n')
	}
	return container.WriteAll(w, "sources.txt", []byte(sources.String()))
}

func writeKanjiArchive(w *zip.Writer, root *model.Root) error {
	kanjiJSON, err := json.Marshal(root.Kanjis)
	if err != nil {
		return err
	}
	return container.WriteAll(w, "kanji.json", kanjiJSON)
}
