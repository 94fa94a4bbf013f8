package calint

import "github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/retrieval"

type options struct {
	retrieval retrieval.Options
	workers   int
}

func defaultOptions() options {
	return options{workers: 4}
}

// Option configures an Interpreter.
type Option func(*options)

// WithWorkers sets the number of parallel parse workers. Default: 4.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithMinScore sets the minimum cosine score for a search result.
// Default: 0.01.
func WithMinScore(s float64) Option {
	return func(o *options) {
		o.retrieval.MinScore = s
	}
}

// WithTopN sets the number of results returned per query. Default: 10.
func WithTopN(n int) Option {
	return func(o *options) {
		o.retrieval.TopN = n
	}
}

// WithVocabLimit caps the vectorizer vocabulary. Default: 5000.
func WithVocabLimit(n int) Option {
	return func(o *options) {
		cfg := retrieval.DefaultVectorizerConfig()
		cfg.VocabLimit = n
		o.retrieval.Vectorizer = cfg
	}
}
