package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// keywordEmbedder produces a fixed-dimension vector from keyword hits, enough
// to give related texts a higher cosine similarity than unrelated ones.
type keywordEmbedder struct {
	err   error
	calls int
}

var embedKeywords = []string{"course", "withdraw", "drop", "holiday", "registration", "riviera", "assessment", "semester"}

func (f *keywordEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	lower := strings.ToLower(text)
	vec := make([]float64, len(embedKeywords)+1)
	vec[0] = 0.1 // keeps every vector non-zero
	for i, kw := range embedKeywords {
		if strings.Contains(lower, kw) {
			vec[i+1] = 1
		}
	}
	return vec, nil
}

func TestDenseSearchRanking(t *testing.T) {
	d := NewDenseEngine(&keywordEmbedder{}, Options{})
	if err := d.Rebuild(context.Background(), calendarEvents()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	results := d.Search(context.Background(), "when can I drop a course")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Event.ID != 5 && results[0].Event.ID != 2 {
		t.Errorf("expected a drop/withdraw event first, got event %d (%q)",
			results[0].Event.ID, results[0].Event.DetailsText)
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("result %d has rank %d", i, r.Rank)
		}
	}
}

func TestDenseRebuildError(t *testing.T) {
	wantErr := errors.New("model not found")
	d := NewDenseEngine(&keywordEmbedder{err: wantErr}, Options{})
	if err := d.Rebuild(context.Background(), calendarEvents()); !errors.Is(err, wantErr) {
		t.Fatalf("expected embed error, got %v", err)
	}
	if got := d.Search(context.Background(), "holiday"); got != nil {
		t.Errorf("search after failed rebuild returned %v", got)
	}
}

func TestDenseSearchEmbedFailureDegrades(t *testing.T) {
	emb := &keywordEmbedder{}
	d := NewDenseEngine(emb, Options{})
	if err := d.Rebuild(context.Background(), calendarEvents()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	emb.err = errors.New("connection refused")
	if got := d.Search(context.Background(), "holiday"); got != nil {
		t.Errorf("expected empty results on embedding failure, got %v", got)
	}
}

func TestDenseSearchEmptyInputs(t *testing.T) {
	d := NewDenseEngine(&keywordEmbedder{}, Options{})
	if got := d.Search(context.Background(), "holiday"); got != nil {
		t.Errorf("search before rebuild returned %v", got)
	}

	if err := d.Rebuild(context.Background(), calendarEvents()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := d.Search(context.Background(), ""); got != nil {
		t.Errorf("empty query returned %v", got)
	}
}

func TestDenseArtifactsRoundtrip(t *testing.T) {
	dir := t.TempDir()
	events := calendarEvents()

	built := NewDenseEngine(&keywordEmbedder{}, Options{})
	if err := built.Rebuild(context.Background(), events); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if err := built.SaveArtifacts(dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := built.Search(context.Background(), "winter semester withdraw")

	emb := &keywordEmbedder{}
	loaded := NewDenseEngine(emb, Options{})
	if err := loaded.LoadArtifacts(dir); err != nil {
		t.Fatalf("load: %v", err)
	}
	if emb.calls != 0 {
		t.Errorf("load embedded %d texts, corpus vectors should come from the artifact", emb.calls)
	}
	if loaded.Stale(events) {
		t.Error("loaded artifacts reported stale for the same event set")
	}

	got := loaded.Search(context.Background(), "winter semester withdraw")
	if emb.calls != 1 {
		t.Errorf("search made %d embed calls, want 1 (the query)", emb.calls)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Event.ID != want[i].Event.ID || got[i].Score != want[i].Score {
			t.Errorf("result %d: got event %d score %v, want event %d score %v",
				i, got[i].Event.ID, got[i].Score, want[i].Event.ID, want[i].Score)
		}
	}
}

func TestDenseLoadArtifactsMissing(t *testing.T) {
	d := NewDenseEngine(&keywordEmbedder{}, Options{})
	if err := d.LoadArtifacts(t.TempDir()); !errors.Is(err, ErrArtifactsMissing) {
		t.Fatalf("expected ErrArtifactsMissing, got %v", err)
	}
}

func TestDenseStaleOnChangedEvents(t *testing.T) {
	events := calendarEvents()
	d := NewDenseEngine(&keywordEmbedder{}, Options{})
	if err := d.Rebuild(context.Background(), events); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if d.Stale(events) {
		t.Error("stale against the event set just embedded")
	}
	changed := calendarEvents()
	changed[0].DetailsText = "Course wish list registration reopened"
	if !d.Stale(changed) {
		t.Error("not stale against a modified event set")
	}
	if !d.Stale(events[:len(events)-1]) {
		t.Error("not stale against a shorter event set")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"dimension mismatch", []float64{1}, []float64{1, 1}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
