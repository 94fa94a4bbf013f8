// Package calint extracts structured events from OCR dumps of academic
// calendars and answers search queries over them.
//
// Quick start:
//
//	in := calint.New()
//	events := in.Extract([]calint.Document{
//	    {Name: "fall_2023.txt", Text: rawOCRText},
//	})
//
//	for _, r := range in.Search("when can I drop a course") {
//	    fmt.Println(r.Rank, r.Event.DetailsText)
//	}
//
// The Interpreter is safe for concurrent searches. Extract replaces the
// whole event set and index; there is no incremental update.
package calint
