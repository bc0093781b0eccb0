package model

import "testing"

func TestAddTagUniqueKey(t *testing.T) {
	root := NewRoot()

	id1 := root.AddTag(TagRow{Name: "adj-i"})
	id2 := root.AddTag(TagRow{Name: "adj-i"})
	id3 := root.AddTag(TagRow{Name: "adj-i"})

	if root.Tags[id1].Key != "adj-i" {
		t.Errorf("first tag key = %q, want %q", root.Tags[id1].Key, "adj-i")
	}
	if root.Tags[id2].Key != "adj-i_1" {
		t.Errorf("second tag key = %q, want %q", root.Tags[id2].Key, "adj-i_1")
	}
	if root.Tags[id3].Key != "adj-i_2" {
		t.Errorf("third tag key = %q, want %q", root.Tags[id3].Key, "adj-i_2")
	}
}

func TestAddSource(t *testing.T) {
	root := NewRoot()
	id := root.AddSource(SourceRow{Name: "jmdict", Revision: "2026-01-01"})
	if root.Sources[id].Name != "jmdict" {
		t.Errorf("source name = %q, want %q", root.Sources[id].Name, "jmdict")
	}
}
