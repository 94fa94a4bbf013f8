package retrieval

import (
	"math"
	"sync"
	"testing"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

func calendarEvents() []model.Event {
	return []model.Event{
		{ID: 1, RawDateText: "06.10.2023 & 07.10.2023", DetailsText: "Course wish list registration by students"},
		{ID: 2, RawDateText: "03.01.2024 to 05.01.2024", DetailsText: "Course add/drop option to students"},
		{ID: 3, RawDateText: "13.01.2024 to 15.01.2024", DetailsText: "Pongal Holidays"},
		{ID: 4, RawDateText: "29.02.2024 to 03.03.2024", DetailsText: "Riviera 2024"},
		{ID: 5, RawDateText: "04.03.2024 to 06.03.2024", DetailsText: "Course withdraw option for students"},
		{ID: 6, RawDateText: "11.02.2024 to 17.02.2024", DetailsText: "Continuous Assessment Test -1"},
	}
}

func newTestEngine(t *testing.T, events []model.Event) *Engine {
	t.Helper()
	e := NewEngine(Options{})
	e.Rebuild(events)
	return e
}

func TestSearchRanksWithdrawAboveUnrelated(t *testing.T) {
	e := newTestEngine(t, calendarEvents())

	results := e.Search("when can I drop a course")
	if len(results) == 0 {
		t.Fatal("expected results for withdrawal query")
	}

	var withdrawRank, rivieraRank int
	for _, r := range results {
		switch r.Event.ID {
		case 5:
			withdrawRank = r.Rank
		case 4:
			rivieraRank = r.Rank
		}
	}
	if withdrawRank == 0 {
		t.Fatal("withdraw event not in results")
	}
	if rivieraRank != 0 && withdrawRank > rivieraRank {
		t.Errorf("withdraw event ranked %d below unrelated Riviera event ranked %d", withdrawRank, rivieraRank)
	}
}

func TestSearchEmptyQueryAndEmptyIndex(t *testing.T) {
	e := newTestEngine(t, calendarEvents())
	if got := e.Search(""); got != nil {
		t.Errorf("empty query: expected nil, got %v", got)
	}
	if got := e.Search("   "); got != nil {
		t.Errorf("blank query: expected nil, got %v", got)
	}

	empty := NewEngine(Options{})
	if got := empty.Search("registration"); got != nil {
		t.Errorf("uninitialized index: expected nil, got %v", got)
	}
}

func TestSearchRanksAndRoundedScores(t *testing.T) {
	e := newTestEngine(t, calendarEvents())

	results := e.Search("course registration")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("result %d has rank %d", i, r.Rank)
		}
		if i > 0 && r.Score > results[i-1].Score {
			t.Errorf("results not sorted by score: %v after %v", r.Score, results[i-1].Score)
		}
		if rounded := math.Round(r.Score*10000) / 10000; r.Score != rounded {
			t.Errorf("score %v not rounded to 4 decimals", r.Score)
		}
	}
}

func TestSearchFallbackWhenNothingClearsThreshold(t *testing.T) {
	events := calendarEvents()
	// An impossibly high threshold empties the thresholded set; the policy
	// must then return the top fallback results rather than nothing.
	e := NewEngine(Options{MinScore: 0.9999, FallbackN: 5})
	e.Rebuild(events)

	results := e.Search("something entirely unrelated zxqw")
	want := min(5, len(events))
	if len(results) != want {
		t.Fatalf("fallback returned %d results, want %d", len(results), want)
	}

	// With fewer candidates than the fallback size, all of them come back.
	e2 := NewEngine(Options{MinScore: 0.9999, FallbackN: 5})
	e2.Rebuild(events[:2])
	if got := len(e2.Search("zxqw")); got != 2 {
		t.Fatalf("fallback with 2 candidates returned %d results", got)
	}
}

func TestSearchTopNCap(t *testing.T) {
	// Twelve matching events among unrelated ones, so the matching terms
	// stay under the max document-frequency cutoff.
	var events []model.Event
	for i := 1; i <= 12; i++ {
		events = append(events, model.Event{ID: i, DetailsText: "Course registration window"})
	}
	events = append(events,
		model.Event{ID: 13, DetailsText: "Pongal Holidays"},
		model.Event{ID: 14, DetailsText: "Riviera 2024"},
		model.Event{ID: 15, DetailsText: "Winter vacation"},
	)
	e := newTestEngine(t, events)

	results := e.Search("course registration")
	if len(results) != 10 {
		t.Fatalf("expected top 10 cap, got %d", len(results))
	}
}

func TestSearchPhraseMatchIncreasesScore(t *testing.T) {
	query := "course wish list"

	before := calendarEvents()
	e1 := newTestEngine(t, before)
	var prior float64
	for _, r := range e1.Search(query) {
		if r.Event.ID == 4 {
			prior = r.Score
		}
	}

	// Same corpus, but the Riviera event now contains the exact phrase.
	after := calendarEvents()
	after[3].DetailsText = "Riviera 2024 course wish list"
	e2 := newTestEngine(t, after)

	var updated float64
	found := false
	for _, r := range e2.Search(query) {
		if r.Event.ID == 4 {
			updated = r.Score
			found = true
		}
	}
	if !found {
		t.Fatal("event with exact phrase missing from results")
	}
	if updated <= prior {
		t.Errorf("exact phrase match did not increase score: before %v, after %v", prior, updated)
	}
}

func TestRebuildSwapsSnapshotUnderConcurrentReaders(t *testing.T) {
	e := newTestEngine(t, calendarEvents())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				// Readers must always see a fully built index.
				for _, r := range e.Search("course registration") {
					if r.Event.ID == 0 {
						t.Error("observed partially built index entry")
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		e.Rebuild(calendarEvents())
	}
	close(stop)
	wg.Wait()
}
