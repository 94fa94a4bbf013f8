// Package pipeline connects a document source, the extraction stages, and
// the event destinations into one batch run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/catalog"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/categorize"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/dates"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/output"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/parser"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/retrieval"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/source"
)

// Pipeline runs extraction end to end: read documents, parse them in
// parallel, finalize, enrich, then deliver to the configured destinations.
type Pipeline struct {
	source  source.Source
	workers int
	output  output.Output
	catalog *catalog.Catalog
	engine  *retrieval.Engine

	artifactDir string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets the parse worker count. Default: 4.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithOutput sets the event destination. Nil (default) skips delivery.
func WithOutput(out output.Output) Option {
	return func(p *Pipeline) { p.output = out }
}

// WithCatalog persists the event set to the given catalog after each run.
func WithCatalog(c *catalog.Catalog) Option {
	return func(p *Pipeline) { p.catalog = c }
}

// WithRetrieval rebuilds the given engine after each run and, when dir is
// non-empty, saves its artifacts there.
func WithRetrieval(e *retrieval.Engine, dir string) Option {
	return func(p *Pipeline) {
		p.engine = e
		p.artifactDir = dir
	}
}

// New creates a Pipeline reading from the given source.
func New(src source.Source, opts ...Option) *Pipeline {
	p := &Pipeline{source: src, workers: 4}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result summarizes one pipeline run.
type Result struct {
	Documents int
	Events    []model.Event
	ByType    map[string]int
}

// Run executes the pipeline once and returns the finalized event set.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	docs, err := p.source.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read documents: %w", err)
	}
	slog.Info("documents loaded", "count", len(docs))

	batches := parser.ParseAll(docs, p.workers)
	events := parser.Finalize(batches)
	slog.Info("events extracted", "count", len(events))

	byType := make(map[string]int)
	for i := range events {
		ev := &events[i]
		if start, end, ok := dates.Normalize(ev.RawDateText); ok {
			ev.DateStart = start
			ev.DateEnd = end
		}
		ev.EventType = categorize.Categorize(ev.DetailsText)
		byType[ev.EventType]++
	}

	if p.output != nil {
		for _, ev := range events {
			if err := p.output.Write(ctx, ev); err != nil {
				return nil, fmt.Errorf("pipeline: output: %w", err)
			}
		}
	}

	if p.catalog != nil {
		if err := p.catalog.Replace(ctx, events); err != nil {
			return nil, fmt.Errorf("pipeline: catalog: %w", err)
		}
	}

	if p.engine != nil {
		p.engine.Rebuild(events)
		if p.artifactDir != "" {
			if err := p.engine.SaveArtifacts(p.artifactDir); err != nil {
				return nil, fmt.Errorf("pipeline: save artifacts: %w", err)
			}
		}
	}

	return &Result{Documents: len(docs), Events: events, ByType: byType}, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	if p.output == nil {
		return nil
	}
	return p.output.Close()
}
