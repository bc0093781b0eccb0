package builder

import (
	"testing"

	"github.com/kotobadb/kotobadb/pkg/bank"
)

func TestAddBankMergesDuplicateTerms(t *testing.T) {
	b := New()

	dict1 := &bank.Dict{
		Title: "dict-a",
		Terms: []bank.Term{
			{Expression: "食べる", Reading: "たべる", Glossary: []string{"to eat"}, TermTags: []string{"v1"}},
		},
		Tags: []bank.Tag{{Name: "v1", Category: "verb"}},
	}
	dict2 := &bank.Dict{
		Title: "dict-b",
		Terms: []bank.Term{
			{Expression: "食べる", Reading: "たべる", Glossary: []string{"to eat"}, TermTags: []string{"V1"}},
		},
		Tags: []bank.Tag{{Name: "V1", Category: "Verb"}},
	}

	b.AddBank(dict1)
	b.AddBank(dict2)

	root := b.Root()
	if len(root.Terms) != 1 {
		t.Fatalf("len(Terms) = %d, want 1 (merged)", len(root.Terms))
	}
	if len(root.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(root.Sources))
	}
	if len(root.Terms[0].Source) != 2 {
		t.Errorf("len(Terms[0].Source) = %d, want 2", len(root.Terms[0].Source))
	}

	// Tag names are consolidated case-insensitively, so "v1" and "V1" collapse
	// to a single TagRow.
	if len(root.Tags) != 1 {
		t.Fatalf("len(Tags) = %d, want 1 (case-insensitive tag consolidation)", len(root.Tags))
	}
}

func TestAddBankAppendsDistinctTerms(t *testing.T) {
	b := New()
	dict := &bank.Dict{
		Title: "dict-a",
		Terms: []bank.Term{
			{Expression: "食べる", Reading: "たべる", Glossary: []string{"to eat"}},
			{Expression: "飲む", Reading: "のむ", Glossary: []string{"to drink"}},
		},
	}
	b.AddBank(dict)

	if len(b.Root().Terms) != 2 {
		t.Fatalf("len(Terms) = %d, want 2", len(b.Root().Terms))
	}
}

func TestApplyFrequency(t *testing.T) {
	b := New()
	b.AddBank(&bank.Dict{
		Title: "dict-a",
		Terms: []bank.Term{
			{Expression: "食べる", Reading: "たべる", Glossary: []string{"to eat"}},
		},
	})

	b.ApplyFrequency([]bank.Meta{{Expression: "食べる", Mode: "freq", Data: 42}}, nil)

	freq := b.Root().Terms[0].Frequency
	if freq == nil || *freq != 42 {
		t.Fatalf("Frequency = %v, want 42", freq)
	}
}

func TestSortTermsByFrequency(t *testing.T) {
	b := New()
	b.AddBank(&bank.Dict{
		Title: "dict-a",
		Terms: []bank.Term{
			{Expression: "遅い", Reading: "おそい", Glossary: []string{"slow"}},
			{Expression: "速い", Reading: "はやい", Glossary: []string{"fast"}},
		},
	})
	b.ApplyFrequency([]bank.Meta{
		{Expression: "遅い", Mode: "freq", Data: 900},
		{Expression: "速い", Mode: "freq", Data: 10},
	}, nil)

	b.SortTerms()

	if b.Root().Terms[0].Expression != "速い" {
		t.Errorf("Terms[0].Expression = %q, want %q (lower frequency rank first)", b.Root().Terms[0].Expression, "速い")
	}
}
