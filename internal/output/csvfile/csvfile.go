// Package csvfile writes extracted events to the tabular interchange file
// and reads them back. The column order is fixed; readers tolerate files
// with extra trailing columns.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Header is the interchange column order.
var Header = []string{
	"id",
	"raw_date_text",
	"day_text",
	"details_text",
	"source_file",
	"normalized_date_start",
	"normalized_date_end",
	"event_type",
}

// Output writes events as CSV rows. The header row is written on creation.
type Output struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

// New creates (truncating) the interchange file at path and writes the
// header row.
func New(path string) (*Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv output: create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("csv output: header: %w", err)
	}
	return &Output{f: f, w: w}, nil
}

// Write appends the event as one CSV row.
func (o *Output) Write(_ context.Context, event model.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Write(record(event)); err != nil {
		return fmt.Errorf("csv output: write event %d: %w", event.ID, err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.w.Flush()
	if err := o.w.Error(); err != nil {
		o.f.Close()
		return fmt.Errorf("csv output: flush: %w", err)
	}
	return o.f.Close()
}

func record(e model.Event) []string {
	return []string{
		strconv.Itoa(e.ID),
		e.RawDateText,
		e.DayText,
		e.DetailsText,
		e.SourceFile,
		e.DateStart,
		e.DateEnd,
		e.EventType,
	}
}

// requiredColumns is the mandatory prefix of Header: id through source_file.
// The normalization and classification columns only exist once those stages
// have run, so Read treats them as optional.
const requiredColumns = 5

// Read loads events from an interchange file. Rows may carry extra trailing
// columns; those are ignored. The header row is required. The last three
// columns are optional; rows without them yield events with empty
// normalized dates and event type.
func Read(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv input: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv input: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv input: %s: missing header row", path)
	}

	var events []model.Event
	for i, row := range rows[1:] {
		if len(row) < requiredColumns {
			return nil, fmt.Errorf("csv input: %s: row %d has %d columns, want at least %d", path, i+2, len(row), requiredColumns)
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("csv input: %s: row %d: bad id %q", path, i+2, row[0])
		}
		e := model.Event{
			ID:          id,
			RawDateText: row[1],
			DayText:     row[2],
			DetailsText: row[3],
			SourceFile:  row[4],
		}
		if len(row) > 5 {
			e.DateStart = row[5]
		}
		if len(row) > 6 {
			e.DateEnd = row[6]
		}
		if len(row) > 7 {
			e.EventType = row[7]
		}
		events = append(events, e)
	}
	return events, nil
}
