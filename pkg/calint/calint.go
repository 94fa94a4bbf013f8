package calint

import (
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/categorize"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/dates"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/parser"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/retrieval"
)

// Interpreter extracts structured events from OCR calendar text and answers
// search queries over them. Safe for concurrent searches; Extract replaces
// the event set atomically.
type Interpreter struct {
	engine  *retrieval.Engine
	workers int
}

// New creates an Interpreter. Cheap to create, but the search index is only
// available after a call to Extract.
func New(opts ...Option) *Interpreter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Interpreter{
		engine:  retrieval.NewEngine(o.retrieval),
		workers: o.workers,
	}
}

// Document is one raw OCR dump to extract events from.
type Document struct {
	Name string // identifier carried into Event.SourceFile
	Text string // raw multi-line OCR text
}

// Extract parses the given documents, normalizes and categorizes the
// resulting events, and rebuilds the search index over them. Events are
// returned in document order with sequential ids; exact duplicates across
// documents are dropped, first occurrence winning.
func (in *Interpreter) Extract(docs []Document) []Event {
	mdocs := make([]model.Document, len(docs))
	for i, d := range docs {
		mdocs[i] = model.Document{SourceFile: d.Name, Raw: d.Text}
	}

	events := parser.Finalize(parser.ParseAll(mdocs, in.workers))
	for i := range events {
		ev := &events[i]
		if start, end, ok := dates.Normalize(ev.RawDateText); ok {
			ev.DateStart = start
			ev.DateEnd = end
		}
		ev.EventType = categorize.Categorize(ev.DetailsText)
	}

	in.engine.Rebuild(events)

	out := make([]Event, len(events))
	for i, ev := range events {
		out[i] = eventFromModel(ev)
	}
	return out
}

// Search runs one query against the current event set. Returns ranked
// results; empty when no events have been extracted yet.
func (in *Interpreter) Search(query string) []Result {
	raw := in.engine.Search(query)
	results := make([]Result, len(raw))
	for i, r := range raw {
		results[i] = resultFromModel(r)
	}
	return results
}

// EventTypes returns the closed set of categories Extract assigns.
func EventTypes() []string {
	return categorize.Categories()
}
