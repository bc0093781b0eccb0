package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/kotobadb/kotobadb/pkg/builder"
)

// buildArchive packs files (name -> contents) into an in-memory zip.Reader,
// mirroring the Yomichan bank layout pkg/bank.Import expects.
func buildArchive(t *testing.T, files map[string]string) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	return r
}

func bankArchive(t *testing.T, title, expression, reading, gloss string) *zip.Reader {
	t.Helper()
	return buildArchive(t, map[string]string{
		"index.json": fmt.Sprintf(`{"title":%q,"format":3,"revision":"1"}`, title),
		"term_bank_1.json": fmt.Sprintf(
			`[[%q,%q,"","",0,[%q],0,""]]`, expression, reading, gloss,
		),
	})
}

func TestIngestMergesAllArchives(t *testing.T) {
	archives := []*zip.Reader{
		bankArchive(t, "dict-a", "食べる", "たべる", "to eat"),
		bankArchive(t, "dict-b", "飲む", "のむ", "to drink"),
	}

	b := builder.New()
	ig := NewIngester(b)
	ig.Workers = 2

	merged, err := ig.Ingest(context.Background(), archives)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if merged != 2 {
		t.Fatalf("merged = %d, want 2", merged)
	}
	if len(b.Root().Terms) != 2 {
		t.Fatalf("len(Terms) = %d, want 2", len(b.Root().Terms))
	}
	if len(b.Root().Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(b.Root().Sources))
	}
}

func TestIngestEmptyArchiveList(t *testing.T) {
	b := builder.New()
	ig := NewIngester(b)

	merged, err := ig.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if merged != 0 {
		t.Fatalf("merged = %d, want 0", merged)
	}
}

func TestIngestPropagatesParseError(t *testing.T) {
	badArchive := buildArchive(t, map[string]string{
		"index.json": `{"title":"bad", not valid json`,
	})

	b := builder.New()
	ig := NewIngester(b)

	_, err := ig.Ingest(context.Background(), []*zip.Reader{badArchive})
	if err == nil {
		t.Fatalf("expected an error for a malformed index.json")
	}
}

func TestIngestToleratesFormatMismatch(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"index.json":       `{"title":"old-format","format":1,"revision":"1"}`,
		"term_bank_1.json": `[["食べる","たべる","","",0,["to eat"],0,""]]`,
	})

	b := builder.New()
	ig := NewIngester(b)

	merged, err := ig.Ingest(context.Background(), []*zip.Reader{archive})
	if err != nil {
		t.Fatalf("Ingest: %v, want format mismatch to be a non-fatal warning", err)
	}
	if merged != 1 {
		t.Fatalf("merged = %d, want 1", merged)
	}
	if len(b.Root().Terms) != 1 {
		t.Fatalf("len(Terms) = %d, want 1", len(b.Root().Terms))
	}
}

func TestIngestAppliesFrequencyMeta(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"index.json": `{"title":"dict-a","format":3,"revision":"1"}`,
		"term_bank_1.json": `[["食べる","たべる","","",0,["to eat"],0,""]]`,
		"term_meta_bank_1.json": `[["食べる","freq",12]]`,
	})

	b := builder.New()
	ig := NewIngester(b)

	if _, err := ig.Ingest(context.Background(), []*zip.Reader{archive}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if len(b.Root().Terms) != 1 {
		t.Fatalf("len(Terms) = %d, want 1", len(b.Root().Terms))
	}
	freq := b.Root().Terms[0].Frequency
	if freq == nil || *freq != 12 {
		t.Fatalf("Frequency = %v, want 12", freq)
	}
}

func TestIngestReportsProgress(t *testing.T) {
	archives := []*zip.Reader{
		bankArchive(t, "dict-a", "食べる", "たべる", "to eat"),
		bankArchive(t, "dict-b", "飲む", "のむ", "to drink"),
		bankArchive(t, "dict-c", "話す", "はなす", "to speak"),
	}

	b := builder.New()
	ig := NewIngester(b)
	ig.BatchSize = 1

	var progress []int
	ig.OnProgress = func(current, total int) {
		progress = append(progress, current)
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	}

	if _, err := ig.Ingest(context.Background(), archives); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(progress) != 3 {
		t.Fatalf("len(progress) = %d, want 3 callbacks", len(progress))
	}
	if progress[len(progress)-1] != 3 {
		t.Errorf("final progress = %d, want 3", progress[len(progress)-1])
	}
}
