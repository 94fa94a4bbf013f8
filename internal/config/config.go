package config

import (
	"os"
	"strconv"
)

// Config holds all calint configuration.
type Config struct {
	Source    SourceConfig
	Retrieval RetrievalConfig
	Catalog   CatalogConfig
	Answer    AnswerConfig
}

// SourceConfig holds document acquisition settings.
type SourceConfig struct {
	Provider string // document source provider (default "fs")
	DataDir  string // directory scanned for OCR text dumps
}

// RetrievalConfig holds index build and query-time settings.
type RetrievalConfig struct {
	ArtifactDir    string  // where fitted index artifacts are persisted
	Backend        string  // "tfidf" or "embedding"
	VocabLimit     int     // vectorizer vocabulary cap
	MinScore       float64 // minimum cosine score for a result
	TopN           int     // results returned per query
	FallbackN      int     // results returned when thresholding empties the set
	OllamaHost     string  // embedding backend endpoint
	EmbeddingModel string  // embedding model name
}

// CatalogConfig holds event catalog settings.
type CatalogConfig struct {
	Path string // sqlite database path
}

// AnswerConfig holds answer synthesis settings.
type AnswerConfig struct {
	Model string // generative model name, resolved by the Ollama host
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Source: SourceConfig{
			Provider: getenv("CALINT_SOURCE", "fs"),
			DataDir:  getenv("CALINT_DATA_DIR", "data"),
		},
		Retrieval: RetrievalConfig{
			ArtifactDir:    getenv("CALINT_ARTIFACT_DIR", "data"),
			Backend:        getenv("CALINT_RETRIEVAL_BACKEND", "tfidf"),
			VocabLimit:     getenvInt("CALINT_VOCAB_LIMIT", 5000),
			MinScore:       getenvFloat("CALINT_MIN_SCORE", 0.01),
			TopN:           getenvInt("CALINT_TOP_N", 10),
			FallbackN:      getenvInt("CALINT_FALLBACK_N", 5),
			OllamaHost:     getenv("CALINT_OLLAMA_HOST", ""),
			EmbeddingModel: getenv("CALINT_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Catalog: CatalogConfig{
			Path: getenv("CALINT_CATALOG_PATH", "data/calendar.db"),
		},
		Answer: AnswerConfig{
			Model: getenv("CALINT_ANSWER_MODEL", "llama3.2"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
