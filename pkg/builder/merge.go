// Package builder merges imported dictionary banks into a single
// model.Root, consolidating tags, terms, and kanji across dictionaries
// before compiling the on-disk archives.
package builder

import (
	"github.com/kotobadb/kotobadb/pkg/model"
)

// MergeTerm attempts to merge b into a, modifying a in place, and reports
// whether the merge succeeded.
//
// Two terms are considered the same entry if their (expression, reading)
// pair matches directly, or if either is already recorded as a form of the
// other. Otherwise, a merge is still possible when the two entries have
// equivalent definitions, in which case b is folded into a as an alternate
// form.
func MergeTerm(tags []model.TagRow, a *model.TermRow, b *model.TermRow) bool {
	sameExpr := a.Expression == b.Expression
	sameRead := a.Reading == b.Reading

	same := (sameExpr && sameRead) || formListHasPair(b.Forms, a.Expression, a.Reading) || formListHasPair(a.Forms, b.Expression, b.Reading)

	if !same {
		if !AreDefinitionsEquivalent(a.Definition, b.Definition) {
			return false
		}
		MergeDefinitions(tags, a, b, nil)
		MergeTags(tags, a.Tags, b.Tags)
		MergeSources(a, b)
		a.Forms = append(a.Forms, model.FormRow{
			Expression: b.Expression,
			Reading:    b.Reading,
			Romaji:     b.Romaji,
			Frequency:  b.Frequency,
		})
		MergeForms(a, b)
		return true
	}

	var tagsFromB map[model.TagID]bool
	if CanMergeTags(tags, a.Tags, b.Tags) {
		MergeTags(tags, a.Tags, b.Tags)
	} else {
		tagsFromB = b.Tags
	}

	MergeDefinitions(tags, a, b, tagsFromB)
	MergeSources(a, b)
	MergeForms(a, b)
	return true
}

func formListHasPair(forms []model.FormRow, expression, reading string) bool {
	for _, f := range forms {
		if f.Expression == expression && f.Reading == reading {
			return true
		}
	}
	return false
}

// MergeSources appends every source in b not already present in a.
func MergeSources(a *model.TermRow, b *model.TermRow) {
	for _, s := range b.Source {
		found := false
		for _, existing := range a.Source {
			if existing == s {
				found = true
				break
			}
		}
		if !found {
			a.Source = append(a.Source, s)
		}
	}
}

// MergeForms appends every form in b not already present in a.
func MergeForms(a *model.TermRow, b *model.TermRow) {
	for _, f := range b.Forms {
		if !formListContains(a.Forms, f) {
			a.Forms = append(a.Forms, f)
		}
	}
}

func formListContains(forms []model.FormRow, f model.FormRow) bool {
	for _, existing := range forms {
		if existing.Expression == f.Expression && existing.Reading == f.Reading {
			return true
		}
	}
	return false
}

// AreDefinitionsEquivalent reports whether one set of definitions is a
// subset of the other, comparing only definition text (tags are ignored:
// two definitions sharing text are assumed mergeable regardless of tags).
func AreDefinitionsEquivalent(a, b []model.DefinitionRow) bool {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for _, sd := range small {
		if !definitionListHasText(big, sd.Text) {
			return false
		}
	}
	return true
}

func definitionListHasText(defs []model.DefinitionRow, text []string) bool {
	for _, d := range defs {
		if stringSlicesEqual(d.Text, text) {
			return true
		}
	}
	return false
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MergeDefinitions merges b's definitions into a. Definitions with matching
// text are merged in place (info, links, tags); definitions only present in
// b are appended, tagged with additionalBTags when the caller determined
// the root-level tag sets were not mergeable.
func MergeDefinitions(tags []model.TagRow, a *model.TermRow, b *model.TermRow, additionalBTags map[model.TagID]bool) {
	type pair struct{ indexA, indexB int }
	var eq []pair
	matchedB := make(map[int]bool)

	for ia, da := range a.Definition {
		for ib, db := range b.Definition {
			if matchedB[ib] {
				continue
			}
			if stringSlicesEqual(da.Text, db.Text) {
				eq = append(eq, pair{ia, ib})
				matchedB[ib] = true
				break
			}
		}
	}

	for ib, db := range b.Definition {
		if matchedB[ib] {
			continue
		}
		def := cloneDefinition(db)
		if additionalBTags != nil {
			MergeTags(tags, def.Tags, additionalBTags)
		}
		a.Definition = append(a.Definition, def)
	}

	for _, p := range eq {
		defA := &a.Definition[p.indexA]
		defB := &b.Definition[p.indexB]

		for _, info := range defB.Info {
			if !stringsContain(defA.Info, info) {
				defA.Info = append(defA.Info, info)
			}
		}
		for _, link := range defB.Links {
			if !linksContain(defA.Links, link) {
				defA.Links = append(defA.Links, link)
			}
		}
		MergeTags(tags, defA.Tags, defB.Tags)
	}
}

func cloneDefinition(d model.DefinitionRow) model.DefinitionRow {
	clone := model.DefinitionRow{
		Text:  append([]string(nil), d.Text...),
		Info:  append([]string(nil), d.Info...),
		Links: append([]model.LinkRow(nil), d.Links...),
		Tags:  make(map[model.TagID]bool, len(d.Tags)),
	}
	for id := range d.Tags {
		clone.Tags[id] = true
	}
	return clone
}

func stringsContain(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}

func linksContain(list []model.LinkRow, l model.LinkRow) bool {
	for _, it := range list {
		if it == l {
			return true
		}
	}
	return false
}

// CanMergeTags reports whether tag sets a and b can be merged: either is
// empty, one is an ID-level subset of the other, or (comparing by name, to
// allow cross-dictionary merging) one is a name-level subset of the other.
func CanMergeTags(tags []model.TagRow, a, b map[model.TagID]bool) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}

	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}

	allIDs := true
	for id := range small {
		if !big[id] {
			allIDs = false
			break
		}
	}
	if allIDs {
		return true
	}

	names := TagNames(tags, big)
	for id := range small {
		if !names[tags[id].Name] {
			return false
		}
	}
	return true
}

// MergeTags merges every tag in b into a whose name is not already present
// among a's tag names (assumes CanMergeTags already returned true).
func MergeTags(tags []model.TagRow, a, b map[model.TagID]bool) {
	names := TagNames(tags, a)
	for id := range b {
		if !names[tags[id].Name] {
			a[id] = true
		}
	}
}

// TagNames returns the set of tag names referenced by ids.
func TagNames(tags []model.TagRow, ids map[model.TagID]bool) map[string]bool {
	names := make(map[string]bool, len(ids))
	for id := range ids {
		names[tags[id].Name] = true
	}
	return names
}
