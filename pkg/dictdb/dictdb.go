// Package dictdb implements the runtime reader for the compiled binary
// dictionary: lazily paged term entries, delta-range-encoded character sets,
// and multi-key set intersection, all backed by the container archives
// produced by pkg/builder.
package dictdb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kotobadb/kotobadb/pkg/container"
)

const pageSize = 1000

// EntryHeader is a single row from the dict.zip "index" file: terms_text
// string ids for the term's expression, reading, and lookup key (pkg/builder
// writes the reading's id as the lookup key), plus its frequency value (0
// when absent).
type EntryHeader struct {
	Expression uint32
	Reading    uint32
	Lookup     uint32
	Frequency  uint32
}

// EntryDefinition is one definition (sense) attached to a term: its source
// index, glossary string ids, rule ids, and the TagIDs of the term-level and
// definition-level tags.
type EntryDefinition struct {
	Source      uint32
	Text        []uint32
	Rules       []uint32
	TagsForTerm []uint32
	TagsForText []uint32
}

// DictEntry is a fully decoded term entry: its header fields plus every
// definition found on its page.
type DictEntry struct {
	Expression  uint32
	Reading     uint32
	Lookup      uint32
	Frequency   uint32
	Definitions []EntryDefinition
}

// Dict is the lazily paged reader over dict.zip. GetEntry is safe for
// concurrent use: pages are decoded at most once, behind a mutex.
type Dict struct {
	rows  []EntryHeader
	pages pageCache
}

type pageCache struct {
	mu     sync.Mutex
	source *container.Archive
	cached map[int][]uint32
}

// OpenDict reads the "index" file from archive into memory and returns a
// Dict ready to serve GetEntry calls against the archive's numbered page
// files.
func OpenDict(archive *container.Archive) (*Dict, error) {
	raw, err := archive.ReadUint32Vector("index")
	if err != nil {
		return nil, fmt.Errorf("dictdb: reading index: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("dictdb: index has %d values, not a multiple of 4", len(raw))
	}

	rows := make([]EntryHeader, len(raw)/4)
	for i := range rows {
		rows[i] = EntryHeader{
			Expression: raw[i*4],
			Reading:    raw[i*4+1],
			Lookup:     raw[i*4+2],
			Frequency:  raw[i*4+3],
		}
	}

	return &Dict{
		rows: rows,
		pages: pageCache{
			source: archive,
			cached: make(map[int][]uint32),
		},
	}, nil
}

// Count returns the number of terms in the dictionary.
func (d *Dict) Count() int {
	return len(d.rows)
}

// GetEntry decodes and returns the term at index, loading (and caching) its
// backing page file on first access.
func (d *Dict) GetEntry(index int) (DictEntry, error) {
	if index < 0 || index >= len(d.rows) {
		return DictEntry{}, fmt.Errorf("dictdb: entry index %d out of range [0,%d)", index, len(d.rows))
	}

	pageNumber := index / pageSize
	pageOffset := index % pageSize

	page, err := d.pages.get(pageNumber)
	if err != nil {
		return DictEntry{}, err
	}

	data, err := decodeEntryData(page, pageOffset)
	if err != nil {
		return DictEntry{}, err
	}

	head := d.rows[index]
	return DictEntry{
		Expression:  head.Expression,
		Reading:     head.Reading,
		Lookup:      head.Lookup,
		Frequency:   head.Frequency,
		Definitions: data,
	}, nil
}

func (c *pageCache) get(pageNumber int) ([]uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page, ok := c.cached[pageNumber]; ok {
		return page, nil
	}

	name := fmt.Sprintf("%04d", pageNumber)
	page, err := c.source.ReadUint32Vector(name)
	if err != nil {
		return nil, fmt.Errorf("dictdb: reading page %s: %w", name, err)
	}
	c.cached[pageNumber] = page
	return page, nil
}

// decodeEntryData walks a page's layout:
//
//	IndexLength: u32
//	DataLength:  u32
//	Index:       [u32; IndexLength]
//	Data:        [u32; DataLength]
//
// where Index[offset] gives the position within Data at which the requested
// entry's length-prefixed definition list begins.
func decodeEntryData(page []uint32, offset int) ([]EntryDefinition, error) {
	if len(page) < 2 {
		return nil, fmt.Errorf("dictdb: page too short (%d words)", len(page))
	}
	count := int(page[0])
	if offset < 0 || offset >= count {
		return nil, fmt.Errorf("dictdb: page offset %d out of range [0,%d)", offset, count)
	}

	index := page[2 : 2+count]
	data := page[2+count:]

	dataOffset := int(index[offset])
	if dataOffset < 0 || dataOffset >= len(data) {
		return nil, fmt.Errorf("dictdb: data offset %d out of range", dataOffset)
	}
	cursor := data[dataOffset:]

	definitionCount := int(cursor[0])
	cursor = cursor[1:]

	definitions := make([]EntryDefinition, 0, definitionCount)
	for i := 0; i < definitionCount; i++ {
		source := cursor[0]
		cursor = cursor[1:]

		var text, rules, tagsForTerm, tagsForText []uint32
		text, cursor = readList(cursor)
		rules, cursor = readList(cursor)
		tagsForTerm, cursor = readList(cursor)
		tagsForText, cursor = readList(cursor)

		definitions = append(definitions, EntryDefinition{
			Source:      source,
			Text:        text,
			Rules:       rules,
			TagsForTerm: tagsForTerm,
			TagsForText: tagsForText,
		})
	}

	return definitions, nil
}

func readList(data []uint32) (list []uint32, rest []uint32) {
	n := int(data[0])
	data = data[1:]
	list = append([]uint32(nil), data[:n]...)
	return list, data[n:]
}

// rangeMarker is the high bit used to mark the start of an inclusive range
// in a delta-range encoded character set.
const rangeMarker = 0x8000_0000

// rangeStartMask extracts the range's start index from a marked value.
const rangeStartMask = 0x0FFF_FFFF

// DecodeCharSet decodes a delta-range encoded u32 list into a sorted set of
// entry indexes: a value with the high bit set begins an inclusive range
// whose end is the following value; any other value is a single index.
func DecodeCharSet(packed []uint32) []uint32 {
	var result []uint32
	for i := 0; i < len(packed); i++ {
		v := packed[i]
		if v&rangeMarker != 0 {
			start := v & rangeStartMask
			i++
			end := packed[i]
			for idx := start; idx <= end; idx++ {
				result = append(result, idx)
			}
			continue
		}
		result = append(result, v)
	}
	return result
}

// QueryChars reads the chars.zip entry for ch (named by its codepoint as a
// 6-hex-digit uppercase string) and decodes it into a sorted set of entry
// indexes.
func QueryChars(archive *container.Archive, ch rune) ([]uint32, error) {
	packed, err := archive.ReadUint32Vector(fmt.Sprintf("%06X", ch))
	if err != nil {
		return nil, fmt.Errorf("dictdb: reading character entry for %q: %w", ch, err)
	}
	return DecodeCharSet(packed), nil
}

// EncodeCharSet delta-range encodes a sorted set of entry indexes: runs of
// 3 or more consecutive indexes collapse to a (marker|start, end) pair;
// shorter runs and isolated indexes are emitted verbatim.
func EncodeCharSet(sorted []uint32) []uint32 {
	var result []uint32
	i := 0
	for i < len(sorted) {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		runLen := j - i + 1
		if runLen >= 3 {
			result = append(result, (sorted[i]&rangeStartMask)|rangeMarker, sorted[j])
		} else {
			for k := i; k <= j; k++ {
				result = append(result, sorted[k])
			}
		}
		i = j + 1
	}
	return result
}

// Intersect returns the sorted intersection of several sorted index lists.
// It sorts the inputs by ascending length and walks the shortest, binary
// searching the remainder in each of the others, advancing past the search
// position each time to amortize repeated lookups.
func Intersect(lists [][]uint32) []uint32 {
	if len(lists) == 0 {
		return nil
	}
	for _, l := range lists {
		if len(l) == 0 {
			return nil
		}
	}

	ordered := make([][]uint32, len(lists))
	copy(ordered, lists)
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) < len(ordered[j]) })

	shortest := ordered[0]
	others := ordered[1:]
	cursors := make([]int, len(others))

	var result []uint32
outer:
	for _, candidate := range shortest {
		for oi, list := range others {
			pos := sort.Search(len(list)-cursors[oi], func(k int) bool {
				return list[cursors[oi]+k] >= candidate
			}) + cursors[oi]
			cursors[oi] = pos
			if pos >= len(list) || list[pos] != candidate {
				continue outer
			}
		}
		result = append(result, candidate)
	}
	return result
}
