// Command builder reads the merged intermediate model.Root produced by
// cmd/importer and compiles it into the five on-disk container archives:
// dict.zip, text.zip, chars.zip, meta.zip, kanji.zip.
package main

import (
	"archive/zip"
	"encoding/gob"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kotobadb/kotobadb/pkg/builder"
	"github.com/kotobadb/kotobadb/pkg/model"
)

func main() {
	in := flag.String("in", "build/intermediate.gob", "path to the intermediate Root written by cmd/importer")
	outDir := flag.String("out", "data/database", "output directory for the compiled container archives")
	flag.Parse()

	root, err := readIntermediate(*in)
	if err != nil {
		log.Fatalf("builder: %v", err)
	}
	fmt.Printf("Loaded %d terms, %d kanji from %s\n", len(root.Terms), len(root.Kanjis), *in)

	b := builder.New()
	*b.Root() = *root
	b.SortTerms()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("builder: creating %s: %v", *outDir, err)
	}

	dictZip, closeDict := createArchive(*outDir, "dict.zip")
	defer closeDict()
	textZip, closeText := createArchive(*outDir, "text.zip")
	defer closeText()
	charsZip, closeChars := createArchive(*outDir, "chars.zip")
	defer closeChars()
	metaZip, closeMeta := createArchive(*outDir, "meta.zip")
	defer closeMeta()
	kanjiZip, closeKanji := createArchive(*outDir, "kanji.zip")
	defer closeKanji()

	if err := builder.Emit(root, dictZip, textZip, charsZip, metaZip, kanjiZip); err != nil {
		log.Fatalf("builder: emit failed: %v", err)
	}

	fmt.Printf("Compiled database written to %s\n", *outDir)
}

// createArchive opens name under dir for writing and wraps it in a
// zip.Writer; the returned close func flushes and closes both.
func createArchive(dir, name string) (*zip.Writer, func()) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		log.Fatalf("builder: creating %s: %v", name, err)
	}
	w := zip.NewWriter(f)
	return w, func() {
		if err := w.Close(); err != nil {
			log.Fatalf("builder: closing %s: %v", name, err)
		}
		f.Close()
	}
}

func readIntermediate(path string) (*model.Root, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var root model.Root
	if err := gob.NewDecoder(f).Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding intermediate root: %w", err)
	}
	return &root, nil
}
