package calint

import "github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"

// Event is one structured calendar entry.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
type Event struct {
	ID          int    `json:"id"`
	RawDateText string `json:"raw_date_text"`                   // date cell as extracted from the OCR text
	DayText     string `json:"day_text,omitempty"`              // weekday cell, when present
	DetailsText string `json:"details_text"`                    // cleaned event description
	SourceFile  string `json:"source_file"`                     // document the event came from
	DateStart   string `json:"normalized_date_start,omitempty"` // ISO 8601, empty when unparseable
	DateEnd     string `json:"normalized_date_end,omitempty"`   // ISO 8601, empty when unparseable
	EventType   string `json:"event_type"`                      // closed category set, e.g. holiday, exam
}

// Result pairs an event with its relevance for one search call.
type Result struct {
	Event Event   `json:"event"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

func eventFromModel(e model.Event) Event {
	return Event{
		ID:          e.ID,
		RawDateText: e.RawDateText,
		DayText:     e.DayText,
		DetailsText: e.DetailsText,
		SourceFile:  e.SourceFile,
		DateStart:   e.DateStart,
		DateEnd:     e.DateEnd,
		EventType:   e.EventType,
	}
}

func resultFromModel(r model.SearchResult) Result {
	return Result{Event: eventFromModel(r.Event), Score: r.Score, Rank: r.Rank}
}
