package calint_test

import (
	"testing"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/pkg/calint"
)

const fallDump = "13.01.2024 to 15.01.2024 Pongal Holidays\n" +
	"26.01.2024 Friday Republic Day\n" +
	"04.03.2024 to 06.03.2024 Course withdraw option for students\n"

func TestExtractAssignsSequentialIDs(t *testing.T) {
	in := calint.New()

	events := in.Extract([]calint.Document{{Name: "fall_2023.txt", Text: fallDump}})
	if len(events) != 3 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	for i, ev := range events {
		if ev.ID != i+1 {
			t.Errorf("event %d has id %d", i, ev.ID)
		}
		if ev.SourceFile != "fall_2023.txt" {
			t.Errorf("event %d source = %q", i, ev.SourceFile)
		}
	}
	if events[0].DateStart != "2024-01-13" || events[0].DateEnd != "2024-01-15" {
		t.Errorf("dates = %s, %s", events[0].DateStart, events[0].DateEnd)
	}
	if events[1].DayText != "Friday" {
		t.Errorf("day = %q", events[1].DayText)
	}
	if events[2].EventType != "withdrawal" {
		t.Errorf("type = %q", events[2].EventType)
	}
}

func TestExtractDeduplicatesAcrossDocuments(t *testing.T) {
	in := calint.New()

	events := in.Extract([]calint.Document{
		{Name: "a.txt", Text: "26.01.2024 Friday Republic Day\n"},
		{Name: "b.txt", Text: "26.01.2024 Friday Republic Day\n"},
	})
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].SourceFile != "a.txt" {
		t.Errorf("kept %q, first occurrence should win", events[0].SourceFile)
	}
}

func TestSearchBeforeExtract(t *testing.T) {
	in := calint.New()
	if got := in.Search("holiday"); len(got) != 0 {
		t.Errorf("search before extract returned %v", got)
	}
}

func TestSearchRespectsTopN(t *testing.T) {
	in := calint.New(calint.WithTopN(1))
	in.Extract([]calint.Document{{Name: "fall_2023.txt", Text: fallDump}})

	results := in.Search("holiday Republic Day course")
	if len(results) != 1 {
		t.Fatalf("got %d results with TopN=1", len(results))
	}
	if results[0].Rank != 1 {
		t.Errorf("rank = %d", results[0].Rank)
	}
}

func TestExtractReplacesEventSet(t *testing.T) {
	in := calint.New()

	in.Extract([]calint.Document{{Name: "a.txt", Text: "13.01.2024 to 15.01.2024 Pongal Holidays\n"}})
	in.Extract([]calint.Document{{Name: "b.txt", Text: "26.01.2024 Friday Republic Day\n"}})

	results := in.Search("pongal")
	for _, r := range results {
		if r.Event.SourceFile == "a.txt" {
			t.Errorf("stale event survived re-extract: %+v", r.Event)
		}
	}
}

func TestEventTypesClosedSet(t *testing.T) {
	types := calint.EventTypes()
	if len(types) == 0 {
		t.Fatal("no event types")
	}
	seen := make(map[string]bool)
	for _, typ := range types {
		if seen[typ] {
			t.Errorf("duplicate type %q", typ)
		}
		seen[typ] = true
	}
	for _, want := range []string{"holiday", "withdrawal", "exam", "other"} {
		if !seen[want] {
			t.Errorf("missing type %q", want)
		}
	}
}
