package parser

import (
	"sync"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// ParseAll parses documents concurrently on a bounded worker pool. Parsing is
// independent per document; batches come back in document order so that
// Finalize's first-occurrence-wins and sequential-id invariants hold
// regardless of goroutine scheduling.
func ParseAll(docs []model.Document, workers int) [][]model.Event {
	if workers < 1 {
		workers = 1
	}

	batches := make([][]model.Event, len(docs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, doc := range docs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, doc model.Document) {
			defer wg.Done()
			defer func() { <-sem }()
			batches[i] = Parse(doc)
		}(i, doc)
	}

	wg.Wait()
	return batches
}
