package segment

import "testing"

func TestAnalyzeTokenizesSurfaceAndBaseForm(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	tokens := a.Analyze("食べました")
	if len(tokens) == 0 {
		t.Fatal("Analyze returned no tokens")
	}

	found := false
	for _, tok := range tokens {
		if tok.BaseForm == "食べる" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected a token with BaseForm %q, got %+v", "食べる", tokens)
	}
}

func TestAnalyzePrimaryPOSMatchesFirstFeature(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	tokens := a.Analyze("猫が好きです")
	found := false
	for _, tok := range tokens {
		if len(tok.PartsOfSpeech) > 0 && tok.PrimaryPOS == tok.PartsOfSpeech[0] && tok.PrimaryPOS != "" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected at least one token with PrimaryPOS set and matching PartsOfSpeech[0]")
	}
}

func TestAnalyzeDocumentSplitsSentences(t *testing.T) {
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	sentences := a.AnalyzeDocument("今日は晴れです。明日は雨でしょう！")
	if len(sentences) != 2 {
		t.Fatalf("len(sentences) = %d, want 2", len(sentences))
	}
	for _, s := range sentences {
		if len(s.Tokens) == 0 {
			t.Errorf("sentence %q has no tokens", s.Text)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("一。二！三？四\n")
	want := []string{"一。", "二！", "三？", "四\n"}
	if len(got) != len(want) {
		t.Fatalf("splitSentences returned %d parts, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, got[i], want[i])
		}
	}
}
