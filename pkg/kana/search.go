package kana

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSearchString trims, lower-cases, and NFC-normalizes the input.
// When japanese is true, the result is additionally folded to hiragana via
// ToHiragana.
func NormalizeSearchString(s string, japanese bool) string {
	text := norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
	if japanese {
		text = ToHiragana(text)
	}
	return text
}

// isSearchable reports whether c is a kanji or hiragana character — the only
// character classes indexed for search.
func isSearchable(c rune) bool {
	return IsKanji(c) || IsHiragana(c)
}

// intraWordRemovable reports whether c should be dropped entirely before
// word-splitting, rather than treated as a separator.
func intraWordRemovable(c rune) bool {
	switch c {
	case '々', '_', '\'':
		return true
	case '・', '᐀':
		return false
	default:
		return IsWordMark(c)
	}
}

// isWordSplit reports whether c separates search words.
func isWordSplit(c rune) bool {
	switch c {
	case '・', '᐀', '~', '～':
		return true
	}
	if IsJapanesePunctuation(c) {
		return true
	}
	return !(unicode.IsLetter(c) || unicode.IsDigit(c))
}

// SearchStrings normalizes s, removes intra-word marks, splits on word
// separators and non-alphanumeric characters, and returns the non-empty
// sub-words consisting only of kanji and hiragana characters.
func SearchStrings(s string) []string {
	return searchStringsNormalized(NormalizeSearchString(s, true))
}

func searchStringsNormalized(text string) []string {
	var result []string
	var group []rune
	haveGroup := false
	var groupKey bool

	flush := func() {
		if !haveGroup {
			return
		}
		if !groupKey {
			filtered := make([]rune, 0, len(group))
			for _, c := range group {
				if isSearchable(c) {
					filtered = append(filtered, c)
				}
			}
			if len(filtered) > 0 {
				result = append(result, string(filtered))
			}
		}
	}

	for _, c := range text {
		if intraWordRemovable(c) {
			continue
		}
		key := isWordSplit(c)
		if haveGroup && key != groupKey {
			flush()
			group = group[:0]
		}
		group = append(group, c)
		groupKey = key
		haveGroup = true
	}
	flush()

	return result
}

// ExpandRomaji folds the long-vowel dash produced by ToRomaji for `ー` into a
// doubled repetition of the preceding vowel (e.g. "ge-mu" -> "geemu"), so a
// romaji search key carries no punctuation that would otherwise have to be
// stripped separately. A dash with no preceding vowel is dropped.
func ExpandRomaji(s string) string {
	runes := []rune(s)
	var out strings.Builder
	out.Grow(len(s))
	for i, c := range runes {
		if c != '-' {
			out.WriteRune(c)
			continue
		}
		if i > 0 && isVowel(runes[i-1]) {
			out.WriteRune(runes[i-1])
		}
	}
	return out.String()
}

func isVowel(c rune) bool {
	switch c {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}

// SearchKey is a coarse (char, char) filter pair used to index terms for
// substring search. For a kanji character c2 is the zero rune.
type SearchKey struct {
	C0, C1 rune
}

// SearchKeys returns every SearchKey derivable from the (already normalized)
// input: a singleton key for every searchable character, plus — for every
// non-kanji searchable character — a paired key with each later searchable
// character in the string. Duplicates are not removed.
func SearchKeys(s string) []SearchKey {
	var searchable []rune
	for _, c := range s {
		if isSearchable(c) {
			searchable = append(searchable, c)
		}
	}

	var keys []SearchKey
	for i, c := range searchable {
		keys = append(keys, SearchKey{c, 0})
		if !IsKanji(c) {
			for j := i + 1; j < len(searchable); j++ {
				keys = append(keys, SearchKey{c, searchable[j]})
			}
		}
	}
	return keys
}
