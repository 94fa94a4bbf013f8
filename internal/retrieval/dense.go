package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Embedder generates dense vector embeddings from text. Long-running model
// calls carry no internal timeout; callers bound them via ctx.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// OllamaEmbedder generates embeddings through an Ollama server.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

// NewOllamaEmbedder creates an embedder against the given host (empty means
// the standard Ollama environment configuration).
func NewOllamaEmbedder(host, embmodel string) (*OllamaEmbedder, error) {
	base := envconfig.Host()
	if host != "" {
		parsed, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("retrieval: invalid ollama host %q: %w", host, err)
		}
		base = parsed
	}
	return &OllamaEmbedder{client: api.NewClient(base, http.DefaultClient), model: embmodel}, nil
}

// Embed requests one embedding vector for the given text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed: %w", err)
	}
	return resp.Embedding, nil
}

// DenseEngine is the embedding-backed retrieval backend. It honors the same
// query contract and selection policy as the TF-IDF engine; only the scoring
// space differs.
type DenseEngine struct {
	opts     Options
	embedder Embedder

	events  []model.Event
	vectors [][]float64
}

// NewDenseEngine creates an embedding-backed engine.
func NewDenseEngine(embedder Embedder, opts Options) *DenseEngine {
	opts.fill()
	return &DenseEngine{opts: opts, embedder: embedder}
}

// Rebuild embeds the composite text of every event. Blocking and one-shot,
// like the sparse rebuild.
func (d *DenseEngine) Rebuild(ctx context.Context, events []model.Event) error {
	vectors := make([][]float64, len(events))
	for i, ev := range events {
		vec, err := d.embedder.Embed(ctx, compositeText(ev))
		if err != nil {
			return fmt.Errorf("retrieval: embed event %d: %w", ev.ID, err)
		}
		vectors[i] = vec
	}
	d.events = events
	d.vectors = vectors
	return nil
}

// Search embeds the expanded query and ranks events by cosine similarity.
// Embedding failures degrade to an empty result set rather than surfacing to
// the caller.
func (d *DenseEngine) Search(ctx context.Context, query string) []model.SearchResult {
	if len(d.events) == 0 || query == "" {
		return nil
	}

	qvec, err := d.embedder.Embed(ctx, ExpandQuery(query))
	if err != nil {
		slog.Error("query embedding failed", "error", err)
		return nil
	}

	scored := make([]model.SearchResult, len(d.events))
	for i, ev := range d.events {
		scored[i] = model.SearchResult{Event: ev, Score: cosineSimilarity(qvec, d.vectors[i])}
	}
	return selectResults(scored, d.opts)
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
