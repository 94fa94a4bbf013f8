package model

// Event is one structured calendar entry extracted from an OCR document.
// Created partially filled by the parser, enriched in place by the date
// normalizer and categorizer, and immutable once the pipeline completes.
type Event struct {
	ID          int    `json:"id"`
	RawDateText string `json:"raw_date_text"`
	DayText     string `json:"day_text,omitempty"`
	DetailsText string `json:"details_text"`
	SourceFile  string `json:"source_file"`
	DateStart   string `json:"normalized_date_start,omitempty"` // ISO 8601, empty when unparseable
	DateEnd     string `json:"normalized_date_end,omitempty"`   // ISO 8601, empty when unparseable
	EventType   string `json:"event_type,omitempty"`
}

// DedupKey identifies exact-duplicate events produced by repeated-table
// OCR artifacts. First occurrence wins during finalization.
func (e Event) DedupKey() string {
	return e.RawDateText + "\x00" + e.DetailsText
}
