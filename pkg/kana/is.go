package kana

// IsWordMark returns true for word marks such as `・`, `ー`, `゠`, and the
// katakana/hiragana iteration marks `ヽ ヾ ゝ ゞ`.
func IsWordMark(c rune) bool {
	switch c {
	case '・', 'ー', '゠':
		return true
	case 'ヽ', 'ヾ', 'ゝ', 'ゞ':
		return true
	default:
		return false
	}
}

// IsHiragana returns true if the character is a hiragana or `ー`.
//
// This excludes characters from the hiragana block that are not proper kana,
// such as combining diacritics and marks from U+3099 to U+309E (the digraph
// `ゟ`, U+309F, is included).
func IsHiragana(c rune) bool {
	switch c {
	case 'ゟ', 'ー':
		return true
	default:
		return c >= hiraganaStart && c <= hiraganaEnd
	}
}

// IsKatakana returns true if the character is a katakana or `ー`.
func IsKatakana(c rune) bool {
	switch c {
	case 'ヿ', 'ー':
		return true
	default:
		return c >= katakanaStart && c <= katakanaEnd
	}
}

// IsKanji returns true if the character is a kanji.
func IsKanji(c rune) bool {
	return c >= kanjiStart && c <= kanjiEnd
}

// IsKana returns true if the character is hiragana or katakana.
func IsKana(c rune) bool {
	return IsHiragana(c) || IsKatakana(c)
}

// IsJapanesePunctuation returns true if the character is a Japanese-style
// punctuation mark (CJK symbols, full-width ASCII-equivalents, currency).
func IsJapanesePunctuation(c rune) bool {
	switch {
	case c >= 0x3000 && c <= 0x303F: // CJK Symbols and Punctuation
		return true
	case c == 0x30FB: // Katakana punctuation `・`
		return true
	case c >= 0xFF61 && c <= 0xFF65: // Kana punctuation `｡` to `･`
		return true
	case c >= 0xFF01 && c <= 0xFF0F: // Zenkaku `！` to `／`
		return true
	case c >= 0xFF1A && c <= 0xFF1F: // Zenkaku `：` to `？`
		return true
	case c >= 0xFF3B && c <= 0xFF3F: // Zenkaku `［` to `＿`, but not `＾`
		return c != 0xFF3E
	case c >= 0xFF5B && c <= 0xFF60: // Zenkaku `｛` to `｠`
		return true
	case c >= 0xFFE0 && c <= 0xFFEE: // Currency symbols
		return true
	default:
		return false
	}
}

// isConsonant reports whether c is an ASCII consonant letter. When
// includeY is true, 'y' counts as a consonant (matches the sokuon-doubling
// check, which treats a leading "y..." chunk like any other consonant).
func isConsonant(c byte, includeY bool) bool {
	switch c {
	case 'a', 'i', 'u', 'e', 'o':
		return false
	case 'y':
		return includeY
	}
	return c >= 'a' && c <= 'z'
}
