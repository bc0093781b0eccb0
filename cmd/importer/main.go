// Command importer reads one or more Yomichan-style bank archives and
// merges them into a single intermediate model.Root, gob-encoded to disk
// for cmd/builder to compile into the on-disk container format.
package main

import (
	"archive/zip"
	"context"
	"encoding/gob"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kotobadb/kotobadb/pkg/builder"
	"github.com/kotobadb/kotobadb/pkg/ingest"
)

func main() {
	inDir := flag.String("in", "build/imported", "directory of input bank .zip archives")
	out := flag.String("out", "build/intermediate.gob", "path to write the merged intermediate Root")
	workers := flag.Int("workers", 4, "number of concurrent parse workers")
	batch := flag.Int("batch", 4, "batch writer flush size")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	archives, closers, err := openArchives(*inDir)
	if err != nil {
		log.Fatalf("importer: %v", err)
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	if len(archives) == 0 {
		log.Fatalf("importer: no bank archives found in %s", *inDir)
	}
	fmt.Printf("Found %d bank archive(s) in %s\n", len(archives), *inDir)

	b := builder.New()
	ig := ingest.NewIngester(b)
	ig.Workers = *workers
	ig.BatchSize = *batch
	ig.Logger = log.Default()
	ig.OnProgress = func(current, total int) {
		fmt.Printf("\rMerging archive %d/%d", current, total)
	}

	merged, err := ig.Ingest(ctx, archives)
	fmt.Println()
	if err != nil {
		log.Fatalf("importer: ingest failed after merging %d archives: %v", merged, err)
	}
	fmt.Printf("Merged %d archives, %d terms, %d kanji\n", merged, len(b.Root().Terms), len(b.Root().Kanjis))

	if err := writeIntermediate(*out, b.Root()); err != nil {
		log.Fatalf("importer: %v", err)
	}
	fmt.Printf("Wrote intermediate root to %s\n", *out)
}

func openArchives(dir string) ([]*zip.Reader, []*zip.ReadCloser, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var archives []*zip.Reader
	var closers []*zip.ReadCloser
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".zip" {
			continue
		}
		rc, err := zip.OpenReader(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, closers, fmt.Errorf("opening %s: %w", e.Name(), err)
		}
		closers = append(closers, rc)
		archives = append(archives, &rc.Reader)
	}
	return archives, closers, nil
}

func writeIntermediate(path string, root interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(root); err != nil {
		return fmt.Errorf("encoding intermediate root: %w", err)
	}
	return nil
}
