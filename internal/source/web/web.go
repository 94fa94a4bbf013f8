// Package web provides a document source backed by an HTTP manifest: a JSON
// array of named document URLs, each pointing at one OCR text dump.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/source"
)

func init() {
	source.Register("web", func(location string) source.Source {
		return New(location)
	})
}

// manifestEntry names one remote document.
type manifestEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Source fetches documents listed in a remote manifest. Manifest order is
// preserved so id assignment stays deterministic.
type Source struct {
	manifestURL string
	client      *client
}

// New creates a web source over the given manifest URL.
func New(manifestURL string) *Source {
	return &Source{
		manifestURL: manifestURL,
		client:      newClient(30 * time.Second),
	}
}

// Documents fetches the manifest, then every document it lists. A document
// that cannot be fetched is logged and skipped; the rest of the batch
// proceeds.
func (s *Source) Documents(ctx context.Context) ([]model.Document, error) {
	var entries []manifestEntry
	if err := s.client.getJSON(ctx, s.manifestURL, &entries); err != nil {
		return nil, fmt.Errorf("web source: manifest %s: %w", s.manifestURL, err)
	}

	docs := make([]model.Document, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := s.client.getText(ctx, entry.URL)
		if err != nil {
			slog.Warn("skipping unfetchable document", "name", entry.Name, "url", entry.URL, "error", err)
			continue
		}
		docs = append(docs, model.Document{SourceFile: entry.Name, Raw: raw})
	}
	return docs, nil
}
