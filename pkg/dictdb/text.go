package dictdb

import (
	"fmt"
	"sort"

	"github.com/kotobadb/kotobadb/pkg/container"
)

// StringTable is an in-memory copy of one of text.zip's Count/Index/Data
// string tables (glossary, terms_text, or search_text), indexable by the
// string id referenced from dict.zip or from a postings/reverse table.
type StringTable struct {
	strs []string
}

// OpenStringTable reads the string table entry named name from archive.
func OpenStringTable(archive *container.Archive, name string) (*StringTable, error) {
	strs, err := archive.ReadStringTable(name)
	if err != nil {
		return nil, fmt.Errorf("dictdb: reading %s: %w", name, err)
	}
	return &StringTable{strs: strs}, nil
}

// Len returns the number of strings in the table.
func (t *StringTable) Len() int { return len(t.strs) }

// Get returns the string at id.
func (t *StringTable) Get(id uint32) (string, error) {
	if int(id) >= len(t.strs) {
		return "", fmt.Errorf("dictdb: string id %d out of range [0,%d)", id, len(t.strs))
	}
	return t.strs[id], nil
}

// PostingsIndex is an in-memory copy of one of text.zip's *_index postings
// tables: for each string id (in table order), the sorted list of term
// entry indices that reference it.
type PostingsIndex struct {
	lists [][]uint32
}

// OpenPostingsIndex reads the postings entry named name from archive.
func OpenPostingsIndex(archive *container.Archive, name string) (*PostingsIndex, error) {
	lists, err := archive.ReadUint32ListVector(name)
	if err != nil {
		return nil, fmt.Errorf("dictdb: reading %s: %w", name, err)
	}
	return &PostingsIndex{lists: lists}, nil
}

// Entries returns the posted term entry indices for the given string id.
func (p *PostingsIndex) Entries(id uint32) ([]uint32, error) {
	if int(id) >= len(p.lists) {
		return nil, fmt.Errorf("dictdb: string id %d out of range [0,%d)", id, len(p.lists))
	}
	return p.lists[id], nil
}

// ReverseOrder is the permutation of a string table's ids sorted by each
// string's reversed form, as written by pkg/builder's buildReverseOrder.
type ReverseOrder struct {
	order []uint32
	table *StringTable
}

// OpenReverseOrder reads the reverse-order entry named name from archive,
// resolving its ids against table for suffix comparisons.
func OpenReverseOrder(archive *container.Archive, name string, table *StringTable) (*ReverseOrder, error) {
	order, err := archive.ReadUint32Vector(name)
	if err != nil {
		return nil, fmt.Errorf("dictdb: reading %s: %w", name, err)
	}
	return &ReverseOrder{order: order, table: table}, nil
}

// Suffix returns the string ids whose string ends with suffix, found by
// binary-searching the reversed-form ordering.
func (r *ReverseOrder) Suffix(suffix string) ([]uint32, error) {
	reversed := reverseRunes(suffix)
	lo := sort.Search(len(r.order), func(i int) bool {
		s, err := r.table.Get(r.order[i])
		if err != nil {
			return false
		}
		return reverseRunes(s) >= reversed
	})

	var result []uint32
	for i := lo; i < len(r.order); i++ {
		s, err := r.table.Get(r.order[i])
		if err != nil {
			return nil, err
		}
		rev := reverseRunes(s)
		if len(rev) < len(reversed) || rev[:len(reversed)] != reversed {
			break
		}
		result = append(result, r.order[i])
	}
	return result, nil
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// KeywordIndex is an in-memory copy of text.zip's glossary_index: a sorted
// set of English tokens, each mapped to the sorted list of term entry
// indices with a gloss containing it.
type KeywordIndex struct {
	entries []container.KeywordEntry
}

// OpenKeywordIndex reads the keyword index entry named name from archive.
func OpenKeywordIndex(archive *container.Archive, name string) (*KeywordIndex, error) {
	entries, err := archive.ReadKeywordIndex(name)
	if err != nil {
		return nil, fmt.Errorf("dictdb: reading %s: %w", name, err)
	}
	return &KeywordIndex{entries: entries}, nil
}

// Lookup returns the postings for key, or (nil, false) if key is absent.
func (k *KeywordIndex) Lookup(key string) ([]uint32, bool) {
	i := sort.Search(len(k.entries), func(i int) bool { return k.entries[i].Key >= key })
	if i >= len(k.entries) || k.entries[i].Key != key {
		return nil, false
	}
	return k.entries[i].Postings, true
}
