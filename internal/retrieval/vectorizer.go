// Package retrieval indexes event text and ranks events against free-text
// queries. The default backend is a TF-IDF vector space over word n-grams
// with cosine scoring; an embedding backend offers the same query contract.
package retrieval

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// VectorizerConfig controls TF-IDF fitting.
type VectorizerConfig struct {
	NGramMax   int     // n-gram lengths 1..NGramMax
	VocabLimit int     // vocabulary cap, most-frequent terms kept
	MinDocFreq int     // terms in fewer documents are dropped
	MaxDocFreq float64 // terms in more than this fraction of documents are dropped
}

// DefaultVectorizerConfig mirrors the fitting parameters the index is built
// with in production: unigrams through trigrams, a 5000-term vocabulary,
// and terms appearing in over 95% of documents treated as corpus noise.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{NGramMax: 3, VocabLimit: 5000, MinDocFreq: 1, MaxDocFreq: 0.95}
}

// SparseVec is an L2-normalized sparse term-weight vector keyed by
// vocabulary index. The dot product of two SparseVecs is their cosine
// similarity.
type SparseVec map[int]float64

// Vectorizer is a fitted TF-IDF model. Fields are exported for gob
// persistence; treat a fitted Vectorizer as immutable.
type Vectorizer struct {
	Config VectorizerConfig
	Vocab  map[string]int
	IDF    []float64
}

// FitVectorizer learns a vocabulary and IDF weights from the given corpus.
func FitVectorizer(corpus []string, cfg VectorizerConfig) *Vectorizer {
	if cfg.NGramMax < 1 {
		cfg.NGramMax = 1
	}

	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range ngrams(tokenize(doc), cfg.NGramMax) {
			seen[term] = struct{}{}
		}
		for term := range seen {
			docFreq[term]++
		}
	}

	maxDF := len(corpus)
	if cfg.MaxDocFreq > 0 && len(corpus) > 1 {
		if limit := int(cfg.MaxDocFreq * float64(len(corpus))); limit > 0 {
			maxDF = limit
		}
	}

	type termFreq struct {
		term string
		df   int
	}
	kept := make([]termFreq, 0, len(docFreq))
	for term, df := range docFreq {
		if df < cfg.MinDocFreq || df > maxDF {
			continue
		}
		kept = append(kept, termFreq{term, df})
	}

	// Highest document frequency first; lexicographic tiebreak keeps the
	// fitted vocabulary deterministic across runs.
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].df != kept[j].df {
			return kept[i].df > kept[j].df
		}
		return kept[i].term < kept[j].term
	})
	if cfg.VocabLimit > 0 && len(kept) > cfg.VocabLimit {
		kept = kept[:cfg.VocabLimit]
	}

	v := &Vectorizer{
		Config: cfg,
		Vocab:  make(map[string]int, len(kept)),
		IDF:    make([]float64, len(kept)),
	}
	n := float64(len(corpus))
	for i, tf := range kept {
		v.Vocab[tf.term] = i
		// Smoothed IDF; never zero, so every vocabulary term contributes.
		v.IDF[i] = math.Log((1+n)/(1+float64(tf.df))) + 1
	}
	return v
}

// Transform maps text onto the fitted vocabulary as an L2-normalized TF-IDF
// vector. Out-of-vocabulary terms are ignored; entirely out-of-vocabulary
// text yields an empty vector.
func (v *Vectorizer) Transform(text string) SparseVec {
	counts := make(map[int]float64)
	for _, term := range ngrams(tokenize(text), v.Config.NGramMax) {
		if idx, ok := v.Vocab[term]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, tf := range counts {
		w := tf * v.IDF[idx]
		counts[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return SparseVec{}
	}
	norm = math.Sqrt(norm)

	vec := make(SparseVec, len(counts))
	for idx, w := range counts {
		vec[idx] = w / norm
	}
	return vec
}

// Dot returns the dot product of two sparse vectors; for Transform output
// this is cosine similarity on a [0,1] scale.
func Dot(a, b SparseVec) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		sum += w * b[idx]
	}
	return sum
}

// tokenize lowercases, splits on non-alphanumeric runs (keeping "add/drop"
// as two tokens), and removes English stopwords.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := englishStopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// ngrams expands a token sequence into space-joined n-grams of length 1..max.
func ngrams(tokens []string, max int) []string {
	var out []string
	for n := 1; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
