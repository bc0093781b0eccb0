package builder

import (
	"log"
	"sort"
	"strings"

	"github.com/kotobadb/kotobadb/pkg/bank"
	"github.com/kotobadb/kotobadb/pkg/kana"
	"github.com/kotobadb/kotobadb/pkg/model"
)

// Builder accumulates imported bank data into a single model.Root,
// consolidating tags by name and merging duplicate term entries as each
// dictionary is added.
type Builder struct {
	root     *model.Root
	tagByKey map[string]model.TagID // lower-cased tag name -> consolidated id
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{
		root:     model.NewRoot(),
		tagByKey: make(map[string]model.TagID),
	}
}

// Root returns the accumulated model.Root. Valid after every AddBank call
// has completed.
func (b *Builder) Root() *model.Root {
	return b.root
}

// AddBank merges one imported dictionary bank into the builder's root:
// tags are consolidated case-insensitively across dictionaries, terms are
// merged with any existing entry sharing the same (expression, reading) or
// an equivalent definition set, and kanji rows are appended as-is (rows for
// the same character from different dictionaries stay separate entries).
func (b *Builder) AddBank(dict *bank.Dict) {
	source := b.root.AddSource(model.SourceRow{Name: dict.Title, Revision: dict.Revision})

	tagIDs := make(map[string]model.TagID, len(dict.Tags))
	for _, t := range dict.Tags {
		id := b.consolidateTag(t)
		tagIDs[t.Name] = id
	}

	resolveTags := func(names []string) map[model.TagID]bool {
		if len(names) == 0 {
			return map[model.TagID]bool{}
		}
		set := make(map[model.TagID]bool, len(names))
		for _, name := range names {
			if id, ok := tagIDs[name]; ok {
				set[id] = true
			} else {
				// Tag referenced but not declared by this bank's tag file;
				// consolidate it as a bare name with no category/notes.
				set[b.consolidateTag(bank.Tag{Name: name})] = true
			}
		}
		return set
	}

	for _, t := range dict.Terms {
		term := model.TermRow{
			Expression: t.Expression,
			Reading:    t.Reading,
			Romaji:     kana.ToRomaji(t.Reading),
			SearchKey:  t.SearchKey,
			Definition: []model.DefinitionRow{{
				Text: t.Glossary,
				Tags: resolveTags(t.DefinitionTags),
			}},
			Source: []model.SourceID{source},
			Tags:   resolveTags(t.TermTags),
			Score:  t.Score,
		}
		for _, rule := range t.Rules {
			term.Tags[b.consolidateTag(bank.Tag{Name: rule})] = true
		}

		b.addTerm(term)
	}

	for _, k := range dict.Kanji {
		stats := make(map[model.TagID]string, len(k.Stats))
		for key, val := range k.Stats {
			stats[b.consolidateTag(bank.Tag{Name: key})] = val
		}
		b.root.Kanjis = append(b.root.Kanjis, model.KanjiRow{
			Character: k.Character,
			Onyomi:    k.Onyomi,
			Kunyomi:   k.Kunyomi,
			Tags:      resolveTags(k.Tags),
			Meanings:  k.Meanings,
			Stats:     stats,
		})
	}
}

// addTerm tries to merge term into an existing entry; if no existing entry
// accepts the merge, term is appended as a new entry.
func (b *Builder) addTerm(term model.TermRow) {
	for i := range b.root.Terms {
		if MergeTerm(b.root.Tags, &b.root.Terms[i], &term) {
			return
		}
	}
	b.root.Terms = append(b.root.Terms, term)
}

// consolidateTag finds or creates a TagID for t.Name. If the name was
// already registered, t's notes are appended to the existing description
// (joined with " / ", skipping empty or identical text) and a non-empty,
// different category replaces the existing one with a logged warning (the
// pack carries no Unicode-collation-aware case folding library, so tag
// names are deduplicated with a plain lower-cased string comparator).
func (b *Builder) consolidateTag(t bank.Tag) model.TagID {
	key := strings.ToLower(t.Name)
	if id, ok := b.tagByKey[key]; ok {
		existing := &b.root.Tags[id]
		if t.Category != "" && t.Category != existing.Category {
			if existing.Category != "" {
				log.Printf("builder: WARNING: tag %q category %q replaces %q", t.Name, t.Category, existing.Category)
			}
			existing.Category = t.Category
		}
		switch {
		case t.Notes == "" || t.Notes == existing.Description:
		case existing.Description == "":
			existing.Description = t.Notes
		default:
			existing.Description += " / " + t.Notes
		}
		return id
	}

	id := b.root.AddTag(model.TagRow{
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Notes,
		Order:       t.Order,
	})
	b.tagByKey[key] = id
	return id
}

// ApplyFrequency joins meta rows (term and kanji frequency banks) onto the
// matching entries by expression (kanji by character). The first value joined
// onto an entry wins; later meta rows for the same entry are ignored. No
// count of joined rows is returned.
func (b *Builder) ApplyFrequency(termMeta, kanjiMeta []bank.Meta) {
	termByExpr := make(map[string][]int, len(b.root.Terms))
	for i, t := range b.root.Terms {
		termByExpr[t.Expression] = append(termByExpr[t.Expression], i)
	}
	for _, m := range termMeta {
		value := uint64(m.Data)
		for _, i := range termByExpr[m.Expression] {
			applyFrequency(&b.root.Terms[i].Frequency, value)
		}
	}

	kanjiByChar := make(map[string][]int, len(b.root.Kanjis))
	for i, k := range b.root.Kanjis {
		kanjiByChar[k.Character] = append(kanjiByChar[k.Character], i)
	}
	for _, m := range kanjiMeta {
		value := uint64(m.Data)
		for _, i := range kanjiByChar[m.Expression] {
			applyFrequency(&b.root.Kanjis[i].Frequency, value)
		}
	}
}

func applyFrequency(slot **uint64, value uint64) {
	if *slot == nil {
		v := value
		*slot = &v
	}
}

// SortTerms orders terms by descending frequency rank (nil frequency sorts
// last), then by expression, for deterministic, frequency-ranked output.
func (b *Builder) SortTerms() {
	sort.SliceStable(b.root.Terms, func(i, j int) bool {
		a, c := b.root.Terms[i].Frequency, b.root.Terms[j].Frequency
		if (a == nil) != (c == nil) {
			return a != nil
		}
		if a != nil && c != nil && *a != *c {
			return *a < *c
		}
		return b.root.Terms[i].Expression < b.root.Terms[j].Expression
	})
}
