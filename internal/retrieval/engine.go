package retrieval

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Options control result selection. Zero values fall back to the defaults
// used in production.
type Options struct {
	Vectorizer VectorizerConfig
	MinScore   float64 // weak-match threshold on the [0,1] cosine scale
	TopN       int     // results per query
	FallbackN  int     // results when thresholding empties a non-empty pool
}

func (o *Options) fill() {
	if o.Vectorizer.NGramMax == 0 {
		o.Vectorizer = DefaultVectorizerConfig()
	}
	if o.MinScore == 0 {
		o.MinScore = 0.01
	}
	if o.TopN == 0 {
		o.TopN = 10
	}
	if o.FallbackN == 0 {
		o.FallbackN = 5
	}
}

// index is one immutable snapshot: the event set with its fitted model and
// document vectors. Rebuilds create a fresh index and publish it atomically,
// so concurrent readers never observe a partially-built one.
type index struct {
	Events     []model.Event
	Vectorizer *Vectorizer
	Vectors    []SparseVec
}

// Engine is the TF-IDF retrieval backend. Search is safe for concurrent use
// with Rebuild.
type Engine struct {
	opts     Options
	snapshot atomic.Pointer[index]
}

// NewEngine creates an empty engine; call Rebuild or LoadArtifacts before
// searching.
func NewEngine(opts Options) *Engine {
	opts.fill()
	return &Engine{opts: opts}
}

// Rebuild fits a new index over the full event set and swaps it in. There is
// no incremental update: any change to the event set invalidates the whole
// index.
func (e *Engine) Rebuild(events []model.Event) {
	snap := buildIndex(events, e.opts.Vectorizer)
	e.snapshot.Store(snap)
	slog.Info("retrieval index rebuilt", "events", len(events), "vocabulary", len(snap.Vectorizer.Vocab))
}

func buildIndex(events []model.Event, cfg VectorizerConfig) *index {
	corpus := make([]string, len(events))
	for i, ev := range events {
		corpus[i] = compositeText(ev)
	}
	vec := FitVectorizer(corpus, cfg)

	vectors := make([]SparseVec, len(corpus))
	for i, doc := range corpus {
		vectors[i] = vec.Transform(doc)
	}
	return &index{Events: events, Vectorizer: vec, Vectors: vectors}
}

// compositeText is the indexed representation of an event: details text
// weighted double, then the raw date text and weekday.
func compositeText(e model.Event) string {
	parts := []string{e.DetailsText, e.DetailsText}
	if e.RawDateText != "" {
		parts = append(parts, e.RawDateText)
	}
	if e.DayText != "" {
		parts = append(parts, e.DayText)
	}
	return strings.Join(parts, " ")
}

// Search expands the query, scores it against every indexed event, and
// returns ranked results. An empty query or an uninitialized index yields an
// empty result set, never an error.
func (e *Engine) Search(query string) []model.SearchResult {
	snap := e.snapshot.Load()
	if snap == nil || len(snap.Events) == 0 || strings.TrimSpace(query) == "" {
		return nil
	}

	qvec := snap.Vectorizer.Transform(ExpandQuery(query))
	scored := make([]model.SearchResult, len(snap.Events))
	for i, ev := range snap.Events {
		scored[i] = model.SearchResult{Event: ev, Score: Dot(qvec, snap.Vectors[i])}
	}
	return selectResults(scored, e.opts)
}

// Events returns the event set of the current snapshot.
func (e *Engine) Events() []model.Event {
	if snap := e.snapshot.Load(); snap != nil {
		return snap.Events
	}
	return nil
}

// selectResults applies the shared selection policy: sort by score
// descending, keep the top N above the weak-match threshold, and when the
// threshold empties a non-empty pool, fall back to the top FallbackN
// regardless of score.
func selectResults(scored []model.SearchResult, opts Options) []model.SearchResult {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Event.ID < scored[j].Event.ID
	})

	results := make([]model.SearchResult, 0, opts.TopN)
	for _, r := range scored {
		if r.Score > opts.MinScore {
			results = append(results, r)
		}
		if len(results) == opts.TopN {
			break
		}
	}

	if len(results) == 0 {
		n := min(opts.FallbackN, len(scored))
		results = append(results, scored[:n]...)
	}

	for i := range results {
		results[i].Rank = i + 1
		results[i].Score = math.Round(results[i].Score*10000) / 10000
	}
	return results
}
