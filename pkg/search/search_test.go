package search

import (
	"testing"

	"github.com/kotobadb/kotobadb/pkg/model"
)

func buildTestRoot() *model.Root {
	root := model.NewRoot()
	root.Terms = []model.TermRow{
		{Expression: "食べる", Reading: "たべる", Definition: []model.DefinitionRow{{Text: []string{"to eat"}}}},
		{Expression: "食べ物", Reading: "たべもの", Definition: []model.DefinitionRow{{Text: []string{"food", "something to eat"}}}},
		{Expression: "飲む", Reading: "のむ", Definition: []model.DefinitionRow{{Text: []string{"to drink"}}}},
		{Expression: "飲み物", Reading: "のみもの", Definition: []model.DefinitionRow{{Text: []string{"a beverage"}}}},
	}
	root.Kanjis = []model.KanjiRow{
		{Character: "食", Meanings: []string{"eat", "food"}},
		{Character: "飲", Meanings: []string{"drink"}},
	}
	return root
}

func TestSearchTermsIsMode(t *testing.T) {
	root := buildTestRoot()
	idx := NewIndex(root)

	results, total := SearchTerms(root, idx, "たべる", Options{Mode: Is})
	if total != 1 || len(results) != 1 {
		t.Fatalf("total=%d len(results)=%d, want 1/1", total, len(results))
	}
	if results[0].Term.Expression != "食べる" {
		t.Errorf("Expression = %q, want %q", results[0].Term.Expression, "食べる")
	}
}

func TestSearchTermsPrefixMode(t *testing.T) {
	root := buildTestRoot()
	idx := NewIndex(root)

	results, _ := SearchTerms(root, idx, "たべ", Options{Mode: Prefix})
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
}

func TestSearchTermsContainsMode(t *testing.T) {
	root := buildTestRoot()
	idx := NewIndex(root)

	results, _ := SearchTerms(root, idx, "もの", Options{Mode: Contains})
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (食べ物, 飲み物)", len(results))
	}
}

func TestSearchKanji(t *testing.T) {
	root := buildTestRoot()
	idx := NewIndex(root)

	row, ok := SearchKanji(root, idx, '食')
	if !ok {
		t.Fatalf("SearchKanji('食') not found")
	}
	if len(row.Meanings) == 0 || row.Meanings[0] != "eat" {
		t.Errorf("Meanings = %v", row.Meanings)
	}

	if _, ok := SearchKanji(root, idx, '水'); ok {
		t.Errorf("SearchKanji('水') found, want not found")
	}
}

func TestSearchWordDeinflects(t *testing.T) {
	root := model.NewRoot()
	root.Terms = []model.TermRow{
		{Expression: "食べる", Reading: "たべる"},
	}
	idx := NewIndex(root)

	result := SearchWord(root, idx, "たべた", Options{Mode: Is})
	if len(result.Terms) == 0 {
		t.Fatalf("SearchWord(%q) = no results, want at least one via de-inflection", "たべた")
	}
	if result.Terms[0].Term.Expression != "食べる" {
		t.Errorf("Expression = %q, want %q", result.Terms[0].Term.Expression, "食べる")
	}
	if result.MatchedForm != "たべる" {
		t.Errorf("MatchedForm = %q, want %q", result.MatchedForm, "たべる")
	}
	if len(result.RuleChain) == 0 {
		t.Errorf("RuleChain = %v, want a non-empty rule chain", result.RuleChain)
	}
}

// TestSearchWordRuleChainNamesAppliedRule checks the rule chain names the
// specific rule group used to reach the matched dictionary form.
func TestSearchWordRuleChainNamesAppliedRule(t *testing.T) {
	root := model.NewRoot()
	root.Terms = []model.TermRow{
		{Expression: "食べる", Reading: "たべる"},
	}
	idx := NewIndex(root)

	result := SearchWord(root, idx, "たべません", Options{Mode: Is})
	if len(result.Terms) == 0 {
		t.Fatalf("SearchWord(%q) = no results, want a match via de-inflection", "たべません")
	}
	if result.Terms[0].Term.Expression != "食べる" {
		t.Errorf("Expression = %q, want %q", result.Terms[0].Term.Expression, "食べる")
	}
	if len(result.RuleChain) != 1 || result.RuleChain[0] != "polite negative" {
		t.Errorf("RuleChain = %v, want [%q]", result.RuleChain, "polite negative")
	}
}

func TestSearchWordStopsAtFirstMatchingCandidate(t *testing.T) {
	// Both 飲む (のむ) and a hypothetical のみる are reachable from the query;
	// SearchWord must stop at the first de-inflection candidate with a
	// non-empty match rather than unioning every candidate.
	root := model.NewRoot()
	root.Terms = []model.TermRow{
		{Expression: "飲む", Reading: "のむ"},
		{Expression: "飲みる", Reading: "のみる"},
	}
	idx := NewIndex(root)

	result := SearchWord(root, idx, "のみました", Options{Mode: Is})
	if len(result.Terms) != 1 {
		t.Fatalf("len(Terms) = %d, want exactly 1 (first matching candidate only)", len(result.Terms))
	}
}

func TestSearchEnglishExactToken(t *testing.T) {
	root := buildTestRoot()
	idx := NewIndex(root)

	// "eat" is a token of both "to eat" (食べる) and "something to eat" (食べ物).
	results, total := SearchEnglish(root, idx, "eat", Options{Mode: Is})
	if total != 2 || len(results) != 2 {
		t.Fatalf("total=%d len(results)=%d, want 2/2", total, len(results))
	}
	if results[0].Term.Expression != "食べる" {
		t.Errorf("Expression = %q, want %q", results[0].Term.Expression, "食べる")
	}
}

func TestSearchEnglishPrefixToken(t *testing.T) {
	root := buildTestRoot()
	idx := NewIndex(root)

	results, _ := SearchEnglish(root, idx, "bev", Options{Mode: Prefix})
	if len(results) != 1 || results[0].Term.Expression != "飲み物" {
		t.Fatalf("results = %+v, want a single match on 飲み物", results)
	}
}

func TestSearchEnglishFoldsAccents(t *testing.T) {
	root := model.NewRoot()
	root.Terms = []model.TermRow{
		{Expression: "珈琲", Reading: "こーひー", Definition: []model.DefinitionRow{{Text: []string{"café"}}}},
	}
	idx := NewIndex(root)

	results, _ := SearchEnglish(root, idx, "cafe", Options{Mode: Is})
	if len(results) != 1 {
		t.Fatalf("SearchEnglish(%q) = %d results, want 1 (accent-folded match)", "cafe", len(results))
	}
}

func TestMatchPrefix(t *testing.T) {
	root := model.NewRoot()
	root.Terms = []model.TermRow{
		{Expression: "食べ物", Reading: "たべもの"},
	}
	idx := NewIndex(root)

	// "たべものや" has no entry, but shrinking the prefix one character at a
	// time eventually reaches "たべもの", which is in the dictionary.
	result := MatchPrefix(root, idx, "たべものや", Options{})
	if len(result.Terms) == 0 {
		t.Fatalf("MatchPrefix(%q) = no match, want a match on a shorter prefix", "たべものや")
	}
	if result.Terms[0].Term.Expression != "食べ物" {
		t.Errorf("Expression = %q, want %q", result.Terms[0].Term.Expression, "食べ物")
	}
	if result.MatchedForm != "たべもの" {
		t.Errorf("MatchedForm = %q, want %q", result.MatchedForm, "たべもの")
	}
}

func TestMatchPrefixNoMatch(t *testing.T) {
	root := model.NewRoot()
	root.Terms = []model.TermRow{
		{Expression: "食べ物", Reading: "たべもの"},
	}
	idx := NewIndex(root)

	result := MatchPrefix(root, idx, "のむ", Options{})
	if len(result.Terms) != 0 {
		t.Errorf("MatchPrefix(%q) = %+v, want no match", "のむ", result.Terms)
	}
}
