// Command calint extracts structured events from OCR dumps of academic
// calendars and answers questions about them.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/answer"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/catalog"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/config"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/logging"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/output"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/output/csvfile"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/output/file"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/output/multi"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/output/stdout"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/pipeline"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/retrieval"
	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/source"

	// Register source implementations.
	_ "github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/source/fs"
	_ "github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/source/web"
)

const version = "1.0.0"

// CLI defines the command-line interface for calint.
var CLI struct {
	LogLevel string `name:"log-level" default:"info" help:"Log level (debug, info, warn, error)"`
	LogJSON  bool   `name:"log-json" help:"Emit logs as JSON"`

	Pipeline PipelineCmd `cmd:"" help:"Extract events from OCR dumps and build the search index"`
	Search   SearchCmd   `cmd:"" help:"Search the extracted events"`
	Ask      AskCmd      `cmd:"" help:"Ask a calendar question and synthesize an answer"`
	Events   EventsCmd   `cmd:"" help:"List cataloged events"`
	Stats    StatsCmd    `cmd:"" help:"Show catalog statistics"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// PipelineCmd runs the extraction pipeline end to end.
type PipelineCmd struct {
	DataDir string `help:"Directory of OCR text dumps (overrides CALINT_DATA_DIR)"`
	CSV     string `name:"csv" help:"Interchange CSV path (default {data-dir}/events.csv)"`
	NDJSON  string `name:"ndjson" help:"Also append extracted events to this NDJSON file"`
	Print   bool   `help:"Also print extracted events to stdout as JSON lines"`
	Workers int    `default:"4" help:"Parallel parse workers"`
}

func (c *PipelineCmd) Run(cfg config.Config) error {
	dataDir := cfg.Source.DataDir
	if c.DataDir != "" {
		dataDir = c.DataDir
	}
	csvPath := c.CSV
	if csvPath == "" {
		csvPath = dataDir + "/events.csv"
	}

	ctor, err := source.Get(cfg.Source.Provider)
	if err != nil {
		return err
	}

	csvOut, err := csvfile.New(csvPath)
	if err != nil {
		return err
	}
	outs := []output.Output{csvOut}
	if c.NDJSON != "" {
		ndjsonOut, err := file.New(c.NDJSON)
		if err != nil {
			return err
		}
		outs = append(outs, ndjsonOut)
	}
	if c.Print {
		outs = append(outs, stdout.New(false))
	}

	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer cat.Close()

	engine := retrieval.NewEngine(engineOptions(cfg))

	p := pipeline.New(ctor(dataDir),
		pipeline.WithWorkers(c.Workers),
		pipeline.WithOutput(multi.New(outs...)),
		pipeline.WithCatalog(cat),
		pipeline.WithRetrieval(engine, cfg.Retrieval.ArtifactDir),
	)
	defer p.Close()

	res, err := p.Run(signalContext())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "calint: %d documents, %d events, interchange file %s\n",
		res.Documents, len(res.Events), csvPath)
	return nil
}

// SearchCmd queries the persisted index.
type SearchCmd struct {
	Query   []string `arg:"" help:"Search query"`
	Backend string   `help:"Retrieval backend (tfidf, embedding; overrides CALINT_RETRIEVAL_BACKEND)"`
	JSON    bool     `help:"Emit results as JSON"`
}

func (c *SearchCmd) Run(cfg config.Config) error {
	query := strings.Join(c.Query, " ")
	results, err := runSearch(signalContext(), cfg, c.Backend, query)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("no matching events")
		return nil
	}
	for _, r := range results {
		printResult(r)
	}
	return nil
}

// AskCmd retrieves relevant events and synthesizes an answer.
type AskCmd struct {
	Question []string `arg:"" help:"Calendar question"`
	Backend  string   `help:"Retrieval backend (tfidf, embedding)"`
	Sources  bool     `help:"Print the events the answer was grounded on"`
}

func (c *AskCmd) Run(cfg config.Config) error {
	ctx := signalContext()
	question := strings.Join(c.Question, " ")

	results, err := runSearch(ctx, cfg, c.Backend, question)
	if err != nil {
		return err
	}

	gen, err := answer.NewOllamaGenerator(cfg.Retrieval.OllamaHost, cfg.Answer.Model)
	if err != nil {
		return err
	}
	resp, err := answer.New(gen).Answer(ctx, question, results)
	if err != nil {
		return err
	}

	fmt.Println(resp.Answer)
	if c.Sources {
		fmt.Println()
		for _, r := range resp.Sources {
			printResult(r)
		}
	}
	return nil
}

// EventsCmd lists cataloged events.
type EventsCmd struct {
	Type string `help:"Filter by event type"`
	JSON bool   `help:"Emit events as JSON"`
}

func (c *EventsCmd) Run(cfg config.Config) error {
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer cat.Close()

	events, err := cat.Events(signalContext(), c.Type)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}
	for _, ev := range events {
		date := ev.DateStart
		if ev.DateEnd != "" && ev.DateEnd != ev.DateStart {
			date += " to " + ev.DateEnd
		}
		if date == "" {
			date = ev.RawDateText
		}
		fmt.Printf("%4d  %-24s %-18s %s\n", ev.ID, date, ev.EventType, ev.DetailsText)
	}
	return nil
}

// StatsCmd shows catalog statistics.
type StatsCmd struct{}

func (c *StatsCmd) Run(cfg config.Config) error {
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := signalContext()
	total, err := cat.Count(ctx)
	if err != nil {
		return err
	}
	counts, err := cat.CountByType(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("events: %d\n", total)
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %-18s %d\n", t, counts[t])
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(config.Config) error {
	fmt.Printf("calint %s\n", version)
	return nil
}

// runSearch loads the persisted index for the selected backend and runs one
// query against it.
func runSearch(ctx context.Context, cfg config.Config, backend, query string) ([]model.SearchResult, error) {
	if backend == "" {
		backend = cfg.Retrieval.Backend
	}

	sparse := retrieval.NewEngine(engineOptions(cfg))
	if err := sparse.LoadArtifacts(cfg.Retrieval.ArtifactDir); err != nil {
		if errors.Is(err, retrieval.ErrArtifactsMissing) {
			return nil, fmt.Errorf("no index found in %s, run `calint pipeline` first", cfg.Retrieval.ArtifactDir)
		}
		return nil, err
	}

	switch backend {
	case "tfidf":
		return sparse.Search(query), nil
	case "embedding":
		emb, err := retrieval.NewOllamaEmbedder(cfg.Retrieval.OllamaHost, cfg.Retrieval.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		dense := retrieval.NewDenseEngine(emb, engineOptions(cfg))
		// Corpus embeddings are persisted next to the TF-IDF artifacts;
		// re-embed only when absent or built from a different event set.
		err = dense.LoadArtifacts(cfg.Retrieval.ArtifactDir)
		if err != nil && !errors.Is(err, retrieval.ErrArtifactsMissing) {
			return nil, err
		}
		if err != nil || dense.Stale(sparse.Events()) {
			if err := dense.Rebuild(ctx, sparse.Events()); err != nil {
				return nil, err
			}
			if err := dense.SaveArtifacts(cfg.Retrieval.ArtifactDir); err != nil {
				return nil, err
			}
		}
		return dense.Search(ctx, query), nil
	default:
		return nil, fmt.Errorf("unknown retrieval backend: %s", backend)
	}
}

func engineOptions(cfg config.Config) retrieval.Options {
	vec := retrieval.DefaultVectorizerConfig()
	vec.VocabLimit = cfg.Retrieval.VocabLimit
	return retrieval.Options{
		Vectorizer: vec,
		MinScore:   cfg.Retrieval.MinScore,
		TopN:       cfg.Retrieval.TopN,
		FallbackN:  cfg.Retrieval.FallbackN,
	}
}

func printResult(r model.SearchResult) {
	ev := r.Event
	date := ev.DateStart
	if ev.DateEnd != "" && ev.DateEnd != ev.DateStart {
		date += " to " + ev.DateEnd
	}
	if date == "" {
		date = ev.RawDateText
	}
	fmt.Printf("%2d. [%.4f] %s (%s, %s)\n", r.Rank, r.Score, ev.DetailsText, date, ev.EventType)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("calint"),
		kong.Description("Academic calendar interpretation - OCR event extraction and retrieval"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg := config.Load()
	logging.Init(CLI.LogJSON, logging.ParseLevel(CLI.LogLevel))

	err := ctx.Run(cfg)
	ctx.FatalIfErrorf(err)
}
