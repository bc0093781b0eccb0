package dictdb

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/kotobadb/kotobadb/pkg/container"
)

func TestDecodeEncodeCharSet(t *testing.T) {
	original := []uint32{1, 2, 3, 4, 10, 20, 21, 22, 100}
	packed := EncodeCharSet(original)
	got := DecodeCharSet(packed)

	if len(got) != len(original) {
		t.Fatalf("len(got) = %d, want %d (packed=%v)", len(got), len(original), packed)
	}
	for i := range original {
		if got[i] != original[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], original[i])
		}
	}
}

func TestEncodeCharSetNoRuns(t *testing.T) {
	// Short runs (< 3) are left unpacked.
	packed := EncodeCharSet([]uint32{5, 6})
	if len(packed) != 2 {
		t.Fatalf("packed = %v, want 2 raw values", packed)
	}
}

func TestIntersect(t *testing.T) {
	a := []uint32{1, 2, 3, 4, 5, 10}
	b := []uint32{2, 4, 5, 9}
	c := []uint32{2, 4, 5, 6, 7}

	got := Intersect([][]uint32{a, b, c})
	want := []uint32{2, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIntersectEmpty(t *testing.T) {
	if got := Intersect([][]uint32{{1, 2}, {}}); got != nil {
		t.Errorf("Intersect with an empty list = %v, want nil", got)
	}
}

func TestOpenDictAndGetEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	// One term, entry 0, with a single definition.
	index := []uint32{
		100, 200, 300, 5, // Expression, Reading, Lookup, Frequency
	}
	if err := container.WriteUint32Vector(w, "index", index); err != nil {
		t.Fatalf("write index: %v", err)
	}

	// Page 0: IndexLength=1, DataLength=N, Index=[0], Data=...
	definitionData := []uint32{
		1,          // definition count
		42,         // source
		2, 7, 8,    // text list: count=2, values 7,8
		1, 3, // rules list: count=1, value 3
		0,    // tagsForTerm: count=0
		0,    // tagsForText: count=0
	}
	page := []uint32{1, uint32(len(definitionData)), 0}
	page = append(page, definitionData...)
	if err := container.WriteUint32Vector(w, "0000", page); err != nil {
		t.Fatalf("write page: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := container.Open(r)

	dict, err := OpenDict(archive)
	if err != nil {
		t.Fatalf("OpenDict: %v", err)
	}
	if dict.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", dict.Count())
	}

	entry, err := dict.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry.Expression != 100 || entry.Reading != 200 || entry.Lookup != 300 || entry.Frequency != 5 {
		t.Errorf("entry header = %+v", entry)
	}
	if len(entry.Definitions) != 1 {
		t.Fatalf("len(Definitions) = %d, want 1", len(entry.Definitions))
	}
	def := entry.Definitions[0]
	if def.Source != 42 {
		t.Errorf("Source = %d, want 42", def.Source)
	}
	if len(def.Text) != 2 || def.Text[0] != 7 || def.Text[1] != 8 {
		t.Errorf("Text = %v, want [7 8]", def.Text)
	}
	if len(def.Rules) != 1 || def.Rules[0] != 3 {
		t.Errorf("Rules = %v, want [3]", def.Rules)
	}

	if _, err := dict.GetEntry(1); err == nil {
		t.Errorf("GetEntry(out of range) = nil error, want error")
	}
}
