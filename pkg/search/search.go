package search

import (
	"sort"
	"strings"

	"github.com/kotobadb/kotobadb/pkg/deinflect"
	"github.com/kotobadb/kotobadb/pkg/kana"
	"github.com/kotobadb/kotobadb/pkg/model"
)

// Mode selects how a query string must relate to a candidate's keywords.
type Mode int

const (
	// Contains is the default: the query may appear anywhere in a keyword.
	Contains Mode = iota
	Is
	Prefix
	Suffix
)

// hardLimit bounds the maximum number of results ever considered,
// regardless of the requested offset/limit.
const hardLimit = 50_000

// defaultLimit is used when Options.Limit is zero.
const defaultLimit = 100

// Options configures a search call.
type Options struct {
	Mode   Mode
	Offset int
	Limit  int
	Fuzzy  bool // hook; performs no extra work in the current implementation
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return defaultLimit
	}
	return o.Limit
}

// Result pairs a matched term's index with the root it was found in.
type Result struct {
	Index uint32
	Term  *model.TermRow
}

// SearchTerms looks up query against idx and returns the matching terms
// (after applying offset/limit) plus the total candidate count found before
// slicing. Matches are grouped exact, prefix, suffix, contains, and each
// group is in ascending entry-index order.
func SearchTerms(root *model.Root, idx *Index, query string, opts Options) ([]Result, int) {
	normalized := kana.NormalizeSearchString(query, true)
	if normalized == "" {
		return nil, 0
	}
	maxCount := opts.Offset + opts.limit()
	if maxCount > hardLimit {
		maxCount = hardLimit
	}

	var ordered []uint32
	seen := make(map[uint32]bool)
	sortedKeys := func(set map[uint32]bool) []uint32 {
		keys := make([]uint32, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		return keys
	}
	appendSet := func(set map[uint32]bool) {
		for _, idx := range sortedKeys(set) {
			if !seen[idx] {
				seen[idx] = true
				ordered = append(ordered, idx)
			}
		}
	}

	appendSet(idx.searchTermWordByPrefix(normalized, true))

	if opts.Mode == Prefix || opts.Mode == Contains {
		appendSet(idx.searchTermWordByPrefix(normalized, false))
	}

	if opts.Mode == Suffix || opts.Mode == Contains {
		for _, termIndex := range sortedKeys(idx.searchCandidatesBySuffix(normalized)) {
			if seen[termIndex] {
				continue
			}
			if termMatches(root.Terms[termIndex], normalized, strings.HasSuffix) {
				seen[termIndex] = true
				ordered = append(ordered, termIndex)
			}
		}
	}

	if opts.Mode == Contains {
		for _, termIndex := range sortedKeys(idx.indexesByKeyword(normalized)) {
			if seen[termIndex] {
				continue
			}
			if termMatches(root.Terms[termIndex], normalized, strings.Contains) {
				seen[termIndex] = true
				ordered = append(ordered, termIndex)
			}
		}
	}

	total := len(ordered)

	if len(ordered) > maxCount {
		ordered = ordered[:maxCount]
	}
	if opts.Offset < len(ordered) {
		ordered = ordered[opts.Offset:]
	} else {
		ordered = nil
	}
	if len(ordered) > opts.limit() {
		ordered = ordered[:opts.limit()]
	}

	results := make([]Result, len(ordered))
	for i, termIndex := range ordered {
		results[i] = Result{Index: termIndex, Term: &root.Terms[termIndex]}
	}
	return results, total
}

// SearchEnglish looks up query against the English gloss-token index: the
// query is split and folded the same way glosses are indexed, and a term
// matches if every resulting query token matches at least one of its gloss
// tokens: exactly in Is mode, and as a token prefix in every other mode
// (Suffix and Contains also match by prefix).
func SearchEnglish(root *model.Root, idx *Index, query string, opts Options) ([]Result, int) {
	tokens := englishTokens(query)
	if len(tokens) == 0 {
		return nil, 0
	}
	maxCount := opts.Offset + opts.limit()
	if maxCount > hardLimit {
		maxCount = hardLimit
	}

	var perToken []map[uint32]bool
	for _, token := range tokens {
		set := idx.searchEnglishByPrefix(token, true)
		if opts.Mode == Prefix || opts.Mode == Contains || opts.Mode == Suffix {
			for i := range idx.searchEnglishByPrefix(token, false) {
				set[i] = true
			}
		}
		if set == nil {
			set = make(map[uint32]bool)
		}
		perToken = append(perToken, set)
	}

	candidates := perToken[0]
	for _, set := range perToken[1:] {
		candidates = intersectSets(candidates, set)
	}

	ordered := make([]uint32, 0, len(candidates))
	for termIndex := range candidates {
		ordered = append(ordered, termIndex)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	total := len(ordered)
	if len(ordered) > maxCount {
		ordered = ordered[:maxCount]
	}
	if opts.Offset < len(ordered) {
		ordered = ordered[opts.Offset:]
	} else {
		ordered = nil
	}
	if len(ordered) > opts.limit() {
		ordered = ordered[:opts.limit()]
	}

	results := make([]Result, len(ordered))
	for i, termIndex := range ordered {
		results[i] = Result{Index: termIndex, Term: &root.Terms[termIndex]}
	}
	return results, total
}

// termMatches reports whether any of term's normalized keywords satisfy
// predicate against the normalized query.
func termMatches(term model.TermRow, normalizedQuery string, predicate func(s, substr string) bool) bool {
	for _, kw := range termKeywords(term) {
		if predicate(kana.NormalizeSearchString(kw, true), normalizedQuery) {
			return true
		}
	}
	return false
}

// SearchKanji returns the kanji row for the given character, if indexed.
func SearchKanji(root *model.Root, idx *Index, character rune) (*model.KanjiRow, bool) {
	i, ok := idx.KanjiByChar[character]
	if !ok {
		return nil, false
	}
	return &root.Kanjis[i], true
}

// WordResult is the outcome of SearchWord: the original query, the
// dictionary form it actually matched against, the matched terms, and the
// de-inflection rule chain applied to reach that form (empty when the query
// matched a term directly, with no de-inflection needed).
type WordResult struct {
	Query       string
	MatchedForm string
	Terms       []Result
	RuleChain   []string
}

// SearchWord looks up query directly; if that yields nothing, it walks
// query's de-inflection candidates in order and stops at the first one with
// a non-empty match, returning that candidate's dictionary form, matched
// terms, and rule chain. It never unions matches across candidates.
func SearchWord(root *model.Root, idx *Index, query string, opts Options) WordResult {
	folded := kana.NormalizeSearchString(query, true)
	if folded == "" {
		return WordResult{Query: query}
	}

	if results, _ := SearchTerms(root, idx, folded, opts); len(results) > 0 {
		return WordResult{Query: query, MatchedForm: folded, Terms: results}
	}

	if !deinflect.CanDeinflect(folded) {
		return WordResult{Query: query}
	}

	for _, candidate := range deinflect.Deinflect(folded) {
		if candidate.Term == folded {
			continue
		}
		results, _ := SearchTerms(root, idx, candidate.Term, opts)
		if len(results) == 0 {
			continue
		}
		return WordResult{
			Query:       query,
			MatchedForm: candidate.Term,
			Terms:       results,
			RuleChain:   candidate.From,
		}
	}

	return WordResult{Query: query}
}

// MatchPrefix tries SearchWord against successively shorter character
// prefixes of query, across the whole dictionary, stopping at the first
// prefix that matches.
func MatchPrefix(root *model.Root, idx *Index, query string, opts Options) WordResult {
	runes := []rune(query)
	prefixOpts := opts
	prefixOpts.Mode = Is

	for n := len(runes); n > 0; n-- {
		result := SearchWord(root, idx, string(runes[:n]), prefixOpts)
		if len(result.Terms) > 0 {
			return result
		}
	}
	return WordResult{Query: query}
}
