package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

func TestWriteEncodesEventPerLine(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, false)

	events := []model.Event{
		{ID: 1, RawDateText: "13.01.2024 to 15.01.2024", DetailsText: "Pongal Holidays", EventType: "holiday"},
		{ID: 2, RawDateText: "26.01.2024", DetailsText: "Republic Day", EventType: "holiday"},
	}
	for _, ev := range events {
		if err := o.Write(context.Background(), ev); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := o.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var decoded model.Event
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("line 0 not valid JSON: %v", err)
	}
	if decoded.DetailsText != "Pongal Holidays" {
		t.Errorf("details = %q", decoded.DetailsText)
	}
}

func TestWriteJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, false)

	ev := model.Event{ID: 1, RawDateText: "26.01.2024", DetailsText: "Republic Day", DateStart: "2024-01-26", DateEnd: "2024-01-26", EventType: "holiday"}
	if err := o.Write(context.Background(), ev); err != nil {
		t.Fatalf("write: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "raw_date_text", "details_text", "normalized_date_start", "normalized_date_end", "event_type"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing field %q in %v", key, m)
		}
	}
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, true)

	if err := o.Write(context.Background(), model.Event{ID: 1, DetailsText: "Republic Day"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("pretty output not indented")
	}
}
