package builder

import (
	"archive/zip"
	"sort"

	"github.com/kotobadb/kotobadb/pkg/container"
	"github.com/kotobadb/kotobadb/pkg/model"
	"github.com/kotobadb/kotobadb/pkg/search"
)

// writeTextArchive emits text.zip: the glossary string table and its
// English-token keyword index, plus twin string-table/postings/reverse-order
// triples for term expressions+readings and for search keys.
func writeTextArchive(w *zip.Writer, root *model.Root, terms, glossary, searchTable *Table) error {
	if err := container.WriteStringTable(w, "glossary", glossary.Strings); err != nil {
		return err
	}
	if err := writeGlossaryIndex(w, root, glossary); err != nil {
		return err
	}

	if err := writeStringTriple(w, "terms", root, terms, func(term model.TermRow) []string {
		return []string{term.Expression, term.Reading}
	}); err != nil {
		return err
	}

	if err := writeStringTriple(w, "search", root, searchTable, func(term model.TermRow) []string {
		if term.SearchKey == "" {
			return nil
		}
		return []string{term.SearchKey}
	}); err != nil {
		return err
	}

	return nil
}

// writeStringTriple writes the <prefix>_text string table, <prefix>_index
// postings (one entry-index list per string id, in table order), and
// <prefix>_reverse permutation entries for table.
func writeStringTriple(w *zip.Writer, prefix string, root *model.Root, table *Table, keysFor func(model.TermRow) []string) error {
	if err := container.WriteStringTable(w, prefix+"_text", table.Strings); err != nil {
		return err
	}

	if err := writePostingsByString(w, prefix+"_index", root, table, keysFor); err != nil {
		return err
	}

	order := buildReverseOrder(table.Strings)
	if err := container.WriteUint32Vector(w, prefix+"_reverse", order); err != nil {
		return err
	}
	return nil
}

// writePostingsByString builds, for every string id in table (in table
// order), the sorted list of term entry indices whose keysFor(term) includes
// that string, and writes the result as a list vector.
func writePostingsByString(w *zip.Writer, name string, root *model.Root, table *Table, keysFor func(model.TermRow) []string) error {
	postingSets := make([]map[uint32]bool, len(table.Strings))
	for i, term := range root.Terms {
		for _, key := range keysFor(term) {
			id, ok := table.Lookup(key)
			if !ok {
				continue
			}
			if postingSets[id] == nil {
				postingSets[id] = make(map[uint32]bool)
			}
			postingSets[id][uint32(i)] = true
		}
	}

	lists := make([][]uint32, len(table.Strings))
	for id, set := range postingSets {
		list := make([]uint32, 0, len(set))
		for entry := range set {
			list = append(list, entry)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		lists[id] = list
	}

	return container.WriteUint32ListVector(w, name, lists)
}

// writeGlossaryIndex builds the English-token keyword index over glossary:
// each distinct token found by splitting every definition gloss maps to the
// sorted list of term entry indices that have a gloss containing it.
func writeGlossaryIndex(w *zip.Writer, root *model.Root, glossary *Table) error {
	postingSets := make(map[string]map[uint32]bool)
	for i, term := range root.Terms {
		for _, def := range term.Definition {
			for _, gloss := range def.Text {
				for _, token := range search.EnglishTokens(gloss) {
					if postingSets[token] == nil {
						postingSets[token] = make(map[uint32]bool)
					}
					postingSets[token][uint32(i)] = true
				}
			}
		}
	}

	keys := make([]string, 0, len(postingSets))
	for k := range postingSets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]container.KeywordEntry, len(keys))
	for i, k := range keys {
		set := postingSets[k]
		postings := make([]uint32, 0, len(set))
		for entry := range set {
			postings = append(postings, entry)
		}
		sort.Slice(postings, func(a, b int) bool { return postings[a] < postings[b] })
		entries[i] = container.KeywordEntry{Key: k, Postings: postings}
	}

	return container.WriteKeywordIndex(w, "glossary_index", entries)
}

// buildReverseOrder returns the permutation of strs' string ids sorted by
// each string's reversed form, so a suffix query can binary-search it
// directly instead of scanning every entry.
func buildReverseOrder(strs []string) []uint32 {
	order := make([]uint32, len(strs))
	for i := range order {
		order[i] = uint32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		return reverseRunes(strs[order[i]]) < reverseRunes(strs[order[j]])
	})
	return order
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
