// Package source acquires raw OCR documents for the pipeline. Text
// acquisition itself (OCR, PDF rendering) is an external concern; a Source
// only hands over raw multi-line text plus a source identifier.
package source

import (
	"context"
	"fmt"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Source defines the interface all document sources must implement.
type Source interface {
	// Documents returns every available document in a stable order.
	// Implementations log and skip unreadable documents rather than
	// failing the whole batch.
	Documents(ctx context.Context) ([]model.Document, error)
}

// Constructor is a function that creates a new Source for a data location.
type Constructor func(location string) Source

var registry = map[string]Constructor{}

// Register adds a source constructor under the given provider name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the source constructor for the given provider name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown source provider: %s", name)
	}
	return ctor, nil
}

// Providers returns the names of all registered source providers.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
