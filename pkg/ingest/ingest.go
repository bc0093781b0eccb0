// Package ingest runs the concurrent import pipeline: one WorkerPool worker
// parses and normalizes each input bank archive (CPU-bound zip/JSON work),
// while a single BatchWriter committer goroutine serializes the resulting
// AddBank calls against a shared builder.Builder.
package ingest

import (
	"archive/zip"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kotobadb/kotobadb/pkg/bank"
	"github.com/kotobadb/kotobadb/pkg/builder"
)

// Ingester drives the concurrent bank-import-and-merge pipeline.
type Ingester struct {
	Builder *builder.Builder

	// BatchSize controls how many parsed banks are merged per BatchWriter
	// flush.
	BatchSize int
	// Workers is the number of concurrent bank-parsing goroutines.
	Workers int

	// Logger is used for informational messages. nil means no logging.
	Logger *log.Logger
	// OnProgress is called periodically with the number of archives merged
	// so far and the total archive count.
	OnProgress func(current, total int)
}

// NewIngester creates an Ingester that merges every archive it imports into
// b.
func NewIngester(b *builder.Builder) *Ingester {
	return &Ingester{
		Builder:   b,
		BatchSize: 4,
		Workers:   4,
	}
}

// parsedArchive holds the result of parsing one bank archive before it is
// merged into the Builder.
type parsedArchive struct {
	Index int
	Dict  *bank.Dict
	Error error
}

// Ingest parses every archive concurrently and merges each resulting Dict
// into ig.Builder, in archive order, returning the number of archives merged.
func (ig *Ingester) Ingest(ctx context.Context, archives []*zip.Reader) (int, error) {
	total := len(archives)
	if total == 0 {
		return 0, nil
	}

	wp := NewWorkerPool(ig.Workers, ig.Workers*2)
	resultCh := make(chan parsedArchive, ig.Workers*2)

	bw := NewBatchWriter(ig.BatchSize, 100*time.Millisecond)
	var batchErr error
	bw.OnError = func(e error) {
		if batchErr == nil {
			batchErr = e
		}
	}
	defer bw.Close()
	defer wp.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wp.Start(ctx)

	doneCh := make(chan error, 1)
	merged := 0

	go func() {
		defer close(doneCh)
		buffer := make(map[int]parsedArchive)
		nextIdx := 0

		for i := 0; i < total; i++ {
			select {
			case <-ctx.Done():
				doneCh <- ctx.Err()
				return
			case res := <-resultCh:
				if res.Error != nil {
					doneCh <- res.Error
					return
				}
				buffer[res.Index] = res

				for {
					item, ok := buffer[nextIdx]
					if !ok {
						break
					}
					delete(buffer, nextIdx)

					dict := item.Dict
					if err := bw.Submit(func(ctx context.Context) error {
						ig.Builder.AddBank(dict)
						ig.Builder.ApplyFrequency(dict.MetaTerms, dict.MetaKanji)
						if ig.Logger != nil {
							ig.Logger.Printf("ingest: merged %q (%d terms, %d kanji)", dict.Title, len(dict.Terms), len(dict.Kanji))
						}
						return nil
					}); err != nil {
						doneCh <- err
						return
					}

					merged++
					nextIdx++
					if ig.OnProgress != nil {
						ig.OnProgress(merged, total)
					}
				}
			}
		}
		doneCh <- nil
	}()

Loop:
	for i, archive := range archives {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		idx := i
		r := archive
		if err := wp.Submit(func(ctx context.Context) error {
			dict, err := bank.Import(r)
			res := parsedArchive{Index: idx, Dict: dict}
			if err != nil {
				res.Error = fmt.Errorf("ingest: archive %d: %w", idx, err)
			}
			select {
			case resultCh <- res:
			case <-ctx.Done():
			}
			return nil
		}); err != nil {
			return merged, err
		}
	}

	consumerErr := <-doneCh
	if err := bw.Close(); err != nil && consumerErr == nil {
		consumerErr = err
	}
	if batchErr != nil && consumerErr == nil {
		consumerErr = batchErr
	}

	return merged, consumerErr
}
