// Package search builds an in-memory lookup index over imported terms and
// kanji, and implements the four query modes (Is, Prefix, Suffix, Contains)
// against it.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/kotobadb/kotobadb/pkg/kana"
	"github.com/kotobadb/kotobadb/pkg/model"
)

// englishTokenSplit splits a gloss line into candidate English index tokens:
// runs of non-letter/non-digit characters are treated as separators.
var englishTokenSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// englishTokenValidate checks that a folded token is plain lower-case ASCII
// alphanumerics; malformed tokens are still indexed and no warning is
// reported for them.
var englishTokenValidate = regexp.MustCompile(`^[a-z0-9]+$`)

// englishTokens returns the normalized English index tokens for one gloss
// line: split on non-alphanumeric runs, lower-cased, then ASCII-folded via
// unidecode so accented loanword glosses ("café") still index under their
// plain-ASCII form ("cafe").
func englishTokens(gloss string) []string {
	var tokens []string
	for _, raw := range englishTokenSplit.Split(gloss, -1) {
		if raw == "" {
			continue
		}
		runes := []rune(raw)
		if kana.IsKanji(runes[0]) || kana.IsKana(runes[0]) {
			continue
		}
		token := strings.ToLower(unidecode.Unidecode(raw))
		_ = englishTokenValidate.MatchString(token) // malformed tokens are tolerated, not rejected
		tokens = append(tokens, token)
	}
	return tokens
}

// EnglishTokens is the exported form of englishTokens, reused by pkg/builder
// to build the on-disk glossary_index over the same token set this index
// matches against.
func EnglishTokens(gloss string) []string {
	return englishTokens(gloss)
}

const smallEnough = 100

// wordEntry is one row of the sorted word index: a normalized word and the
// set of term indexes whose expression or reading normalizes to it.
type wordEntry struct {
	word    string
	indexes map[uint32]bool
}

// Index is the runtime search index built over a model.Root's terms and
// kanji: exact/prefix lookup by sorted word, suffix lookup, and coarse
// SearchKey-based keyword filtering.
type Index struct {
	KanjiByChar  map[rune]uint32
	wordIndex    []wordEntry
	englishIndex []wordEntry
	suffixIndex  map[string]map[uint32]bool
	keyIndex     map[kana.SearchKey]map[uint32]bool
}

// NewIndex builds an Index from root's terms and kanji.
func NewIndex(root *model.Root) *Index {
	idx := &Index{
		KanjiByChar: make(map[rune]uint32),
		suffixIndex: make(map[string]map[uint32]bool),
		keyIndex:    make(map[kana.SearchKey]map[uint32]bool),
	}

	for i, k := range root.Kanjis {
		runes := []rune(k.Character)
		if len(runes) != 1 {
			continue
		}
		idx.KanjiByChar[runes[0]] = uint32(i)
	}

	words := make(map[string]map[uint32]bool)
	english := make(map[string]map[uint32]bool)
	for i, term := range root.Terms {
		keywords := termKeywords(term)
		for _, word := range keywords {
			normalized := kana.NormalizeSearchString(word, true)
			if normalized == "" {
				continue
			}
			idx.mapTermKeyword(words, normalized, uint32(i))
		}

		for _, def := range term.Definition {
			for _, gloss := range def.Text {
				for _, token := range englishTokens(gloss) {
					if english[token] == nil {
						english[token] = make(map[uint32]bool)
					}
					english[token][uint32(i)] = true
				}
			}
		}
	}

	idx.wordIndex = sortedWordIndex(words)
	idx.englishIndex = sortedWordIndex(english)

	return idx
}

func sortedWordIndex(words map[string]map[uint32]bool) []wordEntry {
	entries := make([]wordEntry, 0, len(words))
	for word, set := range words {
		entries = append(entries, wordEntry{word: word, indexes: set})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].word < entries[j].word })
	return entries
}

// termKeywords returns every distinct string worth indexing for a term: its
// main expression, reading, and romaji search key, plus every alternate
// form's expression and reading.
func termKeywords(term model.TermRow) []string {
	seen := map[string]bool{}
	var keywords []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		keywords = append(keywords, s)
	}
	add(term.Expression)
	add(term.Reading)
	add(term.SearchKey)
	for _, form := range term.Forms {
		add(form.Expression)
		add(form.Reading)
	}
	return keywords
}

// mapTermKeyword registers word against termIndex in every index structure:
// the sorted word index, the 1/2-char suffix index, and the SearchKey
// coarse keyword index.
func (idx *Index) mapTermKeyword(words map[string]map[uint32]bool, word string, termIndex uint32) {
	if words[word] == nil {
		words[word] = make(map[uint32]bool)
	}
	words[word][termIndex] = true

	for _, key := range kana.SearchKeys(word) {
		if idx.keyIndex[key] == nil {
			idx.keyIndex[key] = make(map[uint32]bool)
		}
		idx.keyIndex[key][termIndex] = true
	}

	runes := []rune(word)
	for _, n := range []int{1, 2} {
		if len(runes) < n {
			continue
		}
		suffix := string(reverse(runes[len(runes)-n:]))
		if idx.suffixIndex[suffix] == nil {
			idx.suffixIndex[suffix] = make(map[uint32]bool)
		}
		idx.suffixIndex[suffix][termIndex] = true
	}
}

func reverse(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, c := range runes {
		out[len(runes)-1-i] = c
	}
	return out
}

// searchTermWordByPrefix returns the candidate term indexes whose
// normalized word equals (fullMatch) or has query as a prefix.
func (idx *Index) searchTermWordByPrefix(query string, fullMatch bool) map[uint32]bool {
	return prefixSearch(idx.wordIndex, query, fullMatch)
}

// searchEnglishByPrefix returns the candidate term indexes whose English
// gloss token equals (fullMatch) or has query as a prefix.
func (idx *Index) searchEnglishByPrefix(query string, fullMatch bool) map[uint32]bool {
	return prefixSearch(idx.englishIndex, query, fullMatch)
}

func prefixSearch(entries []wordEntry, query string, fullMatch bool) map[uint32]bool {
	lo := sort.Search(len(entries), func(i int) bool { return entries[i].word >= query })

	result := make(map[uint32]bool)
	for i := lo; i < len(entries); i++ {
		w := entries[i].word
		if fullMatch {
			if w != query {
				break
			}
		} else if len(w) < len(query) || w[:len(query)] != query {
			break
		}
		for termIndex := range entries[i].indexes {
			result[termIndex] = true
		}
	}
	return result
}

// searchCandidatesBySuffix returns candidates whose last 1 or 2 characters
// (reversed) match the index built for word's own last characters.
func (idx *Index) searchCandidatesBySuffix(word string) map[uint32]bool {
	runes := []rune(word)
	n := 2
	if len(runes) < 2 {
		n = 1
	}
	if len(runes) < n {
		return nil
	}
	suffix := string(reverse(runes[len(runes)-n:]))
	return idx.suffixIndex[suffix]
}

// indexesByKeyword intersects the key-index candidate sets for every
// SearchKey in word, stopping early once the running result is already
// small enough that further narrowing isn't worth it.
func (idx *Index) indexesByKeyword(word string) map[uint32]bool {
	keys := kana.SearchKeys(word)
	var result map[uint32]bool
	for _, key := range keys {
		set := idx.keyIndex[key]
		if set == nil {
			return nil
		}
		if result == nil {
			result = copySet(set)
			continue
		}
		result = intersectSets(result, set)
		if len(result) < smallEnough {
			break
		}
	}
	return result
}

func copySet(s map[uint32]bool) map[uint32]bool {
	out := make(map[uint32]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func intersectSets(a, b map[uint32]bool) map[uint32]bool {
	out := make(map[uint32]bool)
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for k := range small {
		if big[k] {
			out[k] = true
		}
	}
	return out
}
