package container

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestWriteReadUint32Vector(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	values := []uint32{1, 2, 3, 0xFFFFFFFF, 0}
	if err := WriteUint32Vector(w, "nums.bin", values); err != nil {
		t.Fatalf("WriteUint32Vector: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := Open(r)

	got, err := archive.ReadUint32Vector("nums.bin")
	if err != nil {
		t.Fatalf("ReadUint32Vector: %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("len = %d, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], values[i])
		}
	}
}

func TestWriteReadUint32List(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	values := []uint32{10, 20, 30}
	if err := WriteUint32List(w, "list.bin", values); err != nil {
		t.Fatalf("WriteUint32List: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := Open(r)

	f, err := archive.Open("list.bin")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	got, err := f.ReadUint32List()
	if err != nil {
		t.Fatalf("ReadUint32List: %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("len = %d, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], values[i])
		}
	}
}

func TestReadAll(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if err := WriteAll(w, "blob.txt", []byte("hello world")); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := Open(r)

	f, err := archive.Open("blob.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	got, err := f.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello world" {
		t.Errorf("ReadAll = %q, want %q", got, "hello world")
	}
}

func TestWriteReadStringTable(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	strs := []string{"食べる", "", "飲む", "a longer entry"}
	if err := WriteStringTable(w, "strs.bin", strs); err != nil {
		t.Fatalf("WriteStringTable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := Open(r)

	got, err := archive.ReadStringTable("strs.bin")
	if err != nil {
		t.Fatalf("ReadStringTable: %v", err)
	}
	if len(got) != len(strs) {
		t.Fatalf("len = %d, want %d", len(got), len(strs))
	}
	for i := range strs {
		if got[i] != strs[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], strs[i])
		}
	}
}

func TestWriteReadUint32ListVector(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	lists := [][]uint32{{1, 2, 3}, nil, {42}}
	if err := WriteUint32ListVector(w, "lists.bin", lists); err != nil {
		t.Fatalf("WriteUint32ListVector: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := Open(r)

	got, err := archive.ReadUint32ListVector("lists.bin")
	if err != nil {
		t.Fatalf("ReadUint32ListVector: %v", err)
	}
	if len(got) != len(lists) {
		t.Fatalf("len = %d, want %d", len(got), len(lists))
	}
	for i := range lists {
		if len(got[i]) != len(lists[i]) {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], lists[i])
		}
		for j := range lists[i] {
			if got[i][j] != lists[i][j] {
				t.Errorf("got[%d][%d] = %d, want %d", i, j, got[i][j], lists[i][j])
			}
		}
	}
}

func TestWriteReadKeywordIndex(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entries := []KeywordEntry{
		{Key: "eat", Postings: []uint32{0, 2}},
		{Key: "food", Postings: []uint32{1}},
	}
	if err := WriteKeywordIndex(w, "kw.bin", entries); err != nil {
		t.Fatalf("WriteKeywordIndex: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := Open(r)

	got, err := archive.ReadKeywordIndex("kw.bin")
	if err != nil {
		t.Fatalf("ReadKeywordIndex: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("len = %d, want %d", len(got), len(entries))
	}
	for i, e := range entries {
		if got[i].Key != e.Key {
			t.Errorf("got[%d].Key = %q, want %q", i, got[i].Key, e.Key)
		}
		if len(got[i].Postings) != len(e.Postings) {
			t.Fatalf("got[%d].Postings = %v, want %v", i, got[i].Postings, e.Postings)
		}
		for j := range e.Postings {
			if got[i].Postings[j] != e.Postings[j] {
				t.Errorf("got[%d].Postings[%d] = %d, want %d", i, j, got[i].Postings[j], e.Postings[j])
			}
		}
	}
}

func TestOpenMissingEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	archive := Open(r)

	if _, err := archive.Open("missing.bin"); err == nil {
		t.Errorf("Open(missing) = nil error, want error")
	}
}
