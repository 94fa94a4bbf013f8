// Package answer composes natural-language answers to calendar questions
// from retrieved events, using a local Ollama model.
package answer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Generator produces an answer from a prompt. Satisfied by the Ollama
// client; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Synthesizer turns a question plus ranked calendar events into a grounded
// answer.
type Synthesizer struct {
	gen Generator
}

// New creates a Synthesizer over the given generator.
func New(gen Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Response is a synthesized answer with the events it was grounded on.
type Response struct {
	Answer    string               `json:"answer"`
	Sources   []model.SearchResult `json:"sources"`
	Timestamp string               `json:"timestamp"`
}

// Answer builds the calendar prompt from the retrieved events and runs the
// generator.
func (s *Synthesizer) Answer(ctx context.Context, question string, results []model.SearchResult) (*Response, error) {
	text, err := s.gen.Generate(ctx, BuildPrompt(question, results))
	if err != nil {
		return nil, fmt.Errorf("answer: %w", err)
	}
	return &Response{
		Answer:    strings.TrimSpace(text),
		Sources:   results,
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

// BuildPrompt renders the question and the retrieved events into the model
// prompt. Events carry their normalized dates when available so the model
// answers with concrete dates rather than raw OCR text.
func BuildPrompt(question string, results []model.SearchResult) string {
	var b strings.Builder

	b.WriteString("You are an assistant for an academic calendar. ")
	b.WriteString("Answer the question using only the calendar entries below. ")
	b.WriteString("Quote dates exactly as given. ")
	b.WriteString("If the entries do not contain the answer, say the calendar has no matching entry.\n\n")

	b.WriteString("Calendar entries:\n")
	for i, r := range results {
		ev := r.Event
		b.WriteString(fmt.Sprintf("Entry %d: %s", i+1, ev.DetailsText))
		switch {
		case ev.DateStart != "" && ev.DateEnd != "" && ev.DateStart != ev.DateEnd:
			b.WriteString(fmt.Sprintf(" (from %s to %s)", ev.DateStart, ev.DateEnd))
		case ev.DateStart != "":
			b.WriteString(fmt.Sprintf(" (on %s)", ev.DateStart))
		case ev.RawDateText != "":
			b.WriteString(fmt.Sprintf(" (dated %s)", ev.RawDateText))
		}
		if ev.EventType != "" {
			b.WriteString(fmt.Sprintf(" [%s]", ev.EventType))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nQuestion: " + question + "\n\n")
	b.WriteString("Answer: ")
	return b.String()
}

// OllamaGenerator runs prompts through an Ollama server.
type OllamaGenerator struct {
	client *api.Client
	model  string
}

// NewOllamaGenerator creates a generator against the given host (empty means
// the standard Ollama environment configuration).
func NewOllamaGenerator(host, genmodel string) (*OllamaGenerator, error) {
	base := envconfig.Host()
	if host != "" {
		parsed, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("answer: invalid ollama host %q: %w", host, err)
		}
		base = parsed
	}
	return &OllamaGenerator{client: api.NewClient(base, http.DefaultClient), model: genmodel}, nil
}

// Generate streams one completion and returns the concatenated response.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Options: map[string]any{
			"temperature": 0.1,
			"num_predict": 1024,
		},
	}

	var b strings.Builder
	err := g.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := b.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("answer: generate: %w", err)
	}
	return b.String(), nil
}
