// Package fs provides a document source backed by a directory of OCR text
// dumps, one document per .txt file.
package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/source"
)

func init() {
	source.Register("fs", func(location string) source.Source {
		return &Source{dir: location}
	})
}

// Source reads every *.txt file under a directory, sorted by name so
// document order (and therefore id assignment) is deterministic.
type Source struct {
	dir string
}

// New creates a filesystem source over the given directory.
func New(dir string) *Source {
	return &Source{dir: dir}
}

// Documents reads all text dumps in the directory. An unreadable file is
// logged and skipped; the rest of the batch proceeds.
func (s *Source) Documents(ctx context.Context) ([]model.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]model.Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			slog.Warn("skipping unreadable document", "file", name, "error", err)
			continue
		}
		docs = append(docs, model.Document{SourceFile: name, Raw: string(raw)})
	}
	return docs, nil
}
