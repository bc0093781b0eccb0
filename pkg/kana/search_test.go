package kana

import (
	"sort"
	"testing"
)

func TestSearchStrings(t *testing.T) {
	check := func(input string, want []string) {
		t.Helper()
		got := SearchStrings(input)
		if len(got) != len(want) {
			t.Errorf("SearchStrings(%q) = %v, want %v", input, got, want)
			return
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("SearchStrings(%q) = %v, want %v", input, got, want)
				return
			}
		}
	}

	check("", nil)
	check("ともだち", []string{"ともだち"})
	check("友達", []string{"友達"})
	check("友達とも", []string{"友達とも"})
	check("友達 とも", []string{"友達", "とも"})
	check("友達・とも", []string{"友達", "とも"})
	check("友達～とも", []string{"友達", "とも"})
	// Normalization folds "abc" to "あbc"; digits and letters are not word
	// separators, and only the kanji/hiragana of each word are kept.
	check("123abc", []string{"あ"})
	check("友達123とも", []string{"友達とも"})
	check("カタカナ", []string{"かたかな"})
	check("ひらがな", []string{"ひらがな"})
}

func TestSearchKeys(t *testing.T) {
	sortKeys := func(keys []SearchKey) {
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].C0 != keys[j].C0 {
				return keys[i].C0 < keys[j].C0
			}
			return keys[i].C1 < keys[j].C1
		})
	}

	check := func(input string, want []SearchKey) {
		t.Helper()
		got := SearchKeys(input)
		sortKeys(got)
		sortKeys(want)
		if len(got) != len(want) {
			t.Errorf("SearchKeys(%q) = %v, want %v", input, got, want)
			return
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("SearchKeys(%q) = %v, want %v", input, got, want)
				return
			}
		}
	}

	check("とも", []SearchKey{
		{'と', 0}, {'も', 0}, {'と', 'も'},
	})

	check("ともだち", []SearchKey{
		{'と', 0}, {'も', 0}, {'だ', 0}, {'ち', 0},
		{'と', 'も'}, {'と', 'だ'}, {'と', 'ち'},
		{'も', 'だ'}, {'も', 'ち'},
		{'だ', 'ち'},
	})

	check("友達とも", []SearchKey{
		{'友', 0}, {'達', 0}, {'と', 0}, {'も', 0},
		{'と', 'も'},
	})
}

func TestExpandRomaji(t *testing.T) {
	cases := []struct{ in, want string }{
		{"batsuge-mu", "batsugeemu"},
		{"a-i-u-e-o-", "aaiiuueeoo"},
		{"tokyo", "tokyo"},
		{"-abc", "abc"},
	}
	for _, tc := range cases {
		if got := ExpandRomaji(tc.in); got != tc.want {
			t.Errorf("ExpandRomaji(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
