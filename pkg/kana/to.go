package kana

import "strings"

// ToHiragana converts a string to hiragana. Katakana characters in the
// direct-map range are converted by codepoint offset; romaji chunks (up to
// four characters, longest match first) are looked up in the toHiragana
// table; unrecognized characters pass through lowercased.
func ToHiragana(s string) string {
	runes := []rune(s)
	n := len(runes)
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < n; {
		next := runes[i]
		skip := 1
		done := false

		switch {
		case next >= katakanaStart && next <= katakanaToHiraganaEnd:
			out.WriteRune(next - katakanaToHiraganaOffset)
			done = true
		case next >= hiraganaStart && next <= hiraganaEnd:
			// already hiragana, fall through to passthrough below
		default:
			end := i + toHiraganaMaxChunk
			if end > n {
				end = n
			}
			chunk := make([]rune, end-i)
			copy(chunk, runes[i:end])
			for j, c := range chunk {
				if c >= 'A' && c <= 'Z' {
					chunk[j] = c + ('a' - 'A')
				}
			}

			if len(chunk) >= 2 {
				c0 := chunk[0]
				if c0 != 'n' && isConsonantRune(c0, true) && chunk[0] == chunk[1] {
					out.WriteRune('っ')
					done = true
				}
			}

			if !done {
				for length := len(chunk); length >= 1; length-- {
					key := string(chunk[:length])
					if kanaStr, ok := toHiragana[key]; ok {
						out.WriteString(kanaStr)
						skip = length
						done = true
						break
					}
				}
			}
		}

		if !done {
			out.WriteString(strings.ToLower(string(next)))
		}

		i += skip
	}

	return out.String()
}

// ToRomaji converts kana (after first folding the input to hiragana via
// ToHiragana) to romaji. Sokuon (`っ`) doubles the following consonant; if it
// cannot (end of input, or the next sound has no consonant), a literal `'`
// is emitted instead.
func ToRomaji(s string) string {
	const smallTsuRepr = '\''

	runes := []rune(ToHiragana(s))
	n := len(runes)
	var out strings.Builder
	out.Grow(len(runes))

	wasSmallTsu := false

	for i := 0; i < n; {
		next := runes[i]
		skip := 1
		done := false

		if next == 'っ' {
			if wasSmallTsu {
				out.WriteRune(smallTsuRepr)
			}
			wasSmallTsu = true
			done = true
		} else if toRomajiChars[next] {
			maxLen := toRomajiMaxChunk
			if i+maxLen > n {
				maxLen = n - i
			}
			for length := maxLen; length >= 1; length-- {
				key := string(runes[i : i+length])
				if romaji, ok := toRomaji[key]; ok {
					if wasSmallTsu {
						first := []rune(romaji)[0]
						if isConsonantRune(first, true) {
							wasSmallTsu = false
							out.WriteRune(first)
						}
						if wasSmallTsu {
							out.WriteRune(smallTsuRepr)
							wasSmallTsu = false
						}
					}
					out.WriteString(romaji)
					skip = length
					done = true
					break
				}
			}
		}

		if !done {
			if wasSmallTsu {
				out.WriteRune(smallTsuRepr)
				wasSmallTsu = false
			}
			out.WriteRune(next)
		}

		i += skip
	}

	if wasSmallTsu {
		out.WriteRune(smallTsuRepr)
	}

	return out.String()
}

func isConsonantRune(c rune, includeY bool) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	return isConsonant(byte(c), includeY)
}
