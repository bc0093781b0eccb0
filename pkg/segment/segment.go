// Package segment is a thin, optional layer outside the compiled-database
// core: it wraps a morphological tokenizer to split a sentence into words so
// a caller can look up each word's dictionary form via pkg/search, rather
// than the whole sentence as a single query. De-inflection in the core
// (pkg/deinflect) is a verbatim suffix-rule BFS and has no dependency on a
// tokenizer; this package exists only for callers that want segmentation
// ahead of lookup.
package segment

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one analyzed unit of text.
type Token struct {
	Surface       string   // the text as it appears, e.g. "行っ"
	BaseForm      string   // dictionary form, e.g. "行く"
	Reading       string   // katakana pronunciation, e.g. "イッ"
	PartsOfSpeech []string // Kagome POS feature list, e.g. ["動詞", "自立", "*", "*"]
	PrimaryPOS    string   // PartsOfSpeech[0], if present
}

// Sentence is one segmented sentence and its tokens.
type Sentence struct {
	Text   string
	Tokens []Token
}

// Analyzer tokenizes Japanese text using the IPA dictionary.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer builds an Analyzer backed by the bundled IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Analyze tokenizes a single line of text.
func (a *Analyzer) Analyze(text string) []Token {
	morphs := a.t.Tokenize(text)
	var result []Token

	for _, m := range morphs {
		if m.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(m.Surface) == "" {
			continue
		}

		features := m.Features()

		base := m.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}

		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}

		primary := ""
		if len(features) > 0 {
			primary = features[0]
		}

		result = append(result, Token{
			Surface:       m.Surface,
			BaseForm:      base,
			Reading:       reading,
			PartsOfSpeech: features,
			PrimaryPOS:    primary,
		})
	}

	return result
}

// AnalyzeDocument splits text into sentences and tokenizes each one.
func (a *Analyzer) AnalyzeDocument(text string) []Sentence {
	var result []Sentence
	for _, s := range splitSentences(text) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		result = append(result, Sentence{Text: s, Tokens: a.Analyze(s)})
	}
	return result
}

// splitSentences breaks text on Japanese sentence-final punctuation and
// newlines, keeping the delimiter attached to the preceding sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '。' || r == '！' || r == '？' || r == '\n' {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}
