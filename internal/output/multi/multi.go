// Package multi fans extracted events out to several destinations.
package multi

import (
	"context"
	"errors"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/output"
)

// Multi delivers each event to every wrapped output sequentially. A failing
// output does not prevent delivery to the rest.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers the event to every wrapped output, collecting errors.
func (m *Multi) Write(ctx context.Context, event model.Event) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
