package model

// SearchResult pairs an event with its relevance score for one search call.
// Ephemeral: produced per query, never persisted.
type SearchResult struct {
	Event Event   `json:"event"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}
