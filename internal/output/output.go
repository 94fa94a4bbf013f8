package output

import (
	"context"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Output defines the interface for extracted-event destinations.
type Output interface {
	Write(ctx context.Context, event model.Event) error
	Close() error
}
