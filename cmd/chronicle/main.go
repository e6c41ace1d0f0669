// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/chronicle"
	"github.com/poiesic/chronicle/ai"
	"github.com/poiesic/chronicle/ingestion"
	"github.com/poiesic/chronicle/reindex"
	"github.com/poiesic/chronicle/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "chronicle",
		Usage: "Summarize document archives and answer questions from them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Extract, chunk, and summarize documents into the corpus",
				ArgsUsage: "<document> [document ...]",
				Action:    ingestCommand,
				Flags: append(generatorFlags(),
					&cli.StringFlag{
						Name:    "corpus",
						Aliases: []string{"c"},
						Usage:   "Path to the corpus JSON file",
						Value:   "summary_chunks.json",
					},
					&cli.IntFlag{
						Name:  "chunk-words",
						Usage: "Chunk size in words",
						Value: ingestion.DefaultChunkWords,
					},
					&cli.IntFlag{
						Name:  "max-chunks",
						Usage: "Cap chunks per document (0 = no cap, useful for smoke tests)",
					},
					&cli.IntFlag{
						Name:  "retries",
						Usage: "Extra summarization attempts per chunk after the first",
						Value: ingestion.DefaultRetryBudget,
					},
				),
			},
			{
				Name:      "query",
				Usage:     "Search the corpus and print ranked summaries",
				ArgsUsage: "<query terms>",
				Action:    queryCommand,
				Flags: append(searchFlags(),
					&cli.StringFlag{
						Name:    "corpus",
						Aliases: []string{"c"},
						Usage:   "Path to the corpus JSON file",
						Value:   "summary_chunks.json",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Search the corpus and synthesize a cited answer",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append(append(searchFlags(), generatorFlags()...),
					&cli.StringFlag{
						Name:    "corpus",
						Aliases: []string{"c"},
						Usage:   "Path to the corpus JSON file",
						Value:   "summary_chunks.json",
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the embedding vector cache from the corpus",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "corpus",
						Aliases: []string{"c"},
						Usage:   "Path to the corpus JSON file",
						Value:   "summary_chunks.json",
					},
					&cli.StringFlag{
						Name:     "vector-cache",
						Usage:    "Path to the vector cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "all-minilm",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of summaries to embed per batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N units",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per embedding call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent embedding batches (0 = half the CPUs)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// generatorFlags are shared by commands that invoke text generation.
func generatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "generator",
			Usage: "Generation backend: exec (local ollama executable) or openai (OpenAI-compatible API)",
			Value: "exec",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Generation model name",
			Value: "llama3.1:8b",
		},
		&cli.StringFlag{
			Name:  "executable",
			Usage: "Generation executable for the exec backend",
			Value: "ollama",
		},
		&cli.StringFlag{
			Name:  "generator-host",
			Usage: "Generation service host URL for the openai backend",
			Value: "http://localhost:11434/v1",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-call generation timeout",
			Value: 300 * time.Second,
		},
	}
}

// searchFlags are shared by commands that run retrieval.
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "mode",
			Usage: "Retrieval strategy: lexical, temporal, or semantic",
			Value: string(search.ModeLexical),
		},
		&cli.IntFlag{
			Name:    "top-k",
			Aliases: []string{"k"},
			Usage:   "Number of results to return",
			Value:   search.DefaultTopK,
		},
		&cli.StringFlag{
			Name:  "source",
			Usage: "Restrict to sources whose name contains this string",
		},
		&cli.IntFlag{
			Name:  "before",
			Usage: "Exclude results mentioning years at or after this year (temporal mode)",
		},
		&cli.IntFlag{
			Name:  "after",
			Usage: "Exclude results mentioning years at or before this year (temporal mode)",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (semantic mode)",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name (semantic mode)",
			Value: "all-minilm",
		},
		&cli.StringFlag{
			Name:  "vector-cache",
			Usage: "Path to the vector cache directory (semantic mode, optional)",
		},
	}
}

func openArchive(c *cli.Context) (*chronicle.Archive, error) {
	// Commands define only the AI flags they use; absent flags read as
	// zero values and must not clobber the defaults.
	var configOpts []ai.ConfigOption
	if host := c.String("generator-host"); host != "" {
		configOpts = append(configOpts, ai.WithGeneratorHost(host))
	}
	if host := c.String("embedding-host"); host != "" {
		configOpts = append(configOpts, ai.WithEmbeddingHost(host))
	}
	if model := c.String("model"); model != "" {
		configOpts = append(configOpts, ai.WithGeneratorModel(model))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if timeout := c.Duration("timeout"); timeout > 0 {
		configOpts = append(configOpts, ai.WithTimeout(timeout))
	}
	if executable := c.String("executable"); executable != "" {
		configOpts = append(configOpts, ai.WithExecutable(executable))
	}
	config := ai.NewConfig(configOpts...)

	opts := []chronicle.ArchiveOption{chronicle.WithAIConfig(config)}
	if path := c.String("vector-cache"); path != "" {
		opts = append(opts, chronicle.WithVectorCachePath(path))
	}
	if c.String("generator") == "openai" {
		opts = append(opts, chronicle.WithHTTPGenerator())
	}

	return chronicle.NewArchive(c.String("corpus"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("at least one document path is required")
	}
	if c.String("generator") != "exec" && c.String("generator") != "openai" {
		return fmt.Errorf("generator must be exec or openai, got %q", c.String("generator"))
	}

	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	report, err := archive.Ingest(context.Background(), c.Args().Slice(), c.Int("retries"),
		ingestion.WithChunkSize(c.Int("chunk-words")),
		ingestion.WithMaxChunks(c.Int("max-chunks")))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Processed %d document(s), %d skipped\n", report.SourcesProcessed, report.SourcesSkipped)
	fmt.Printf("Units added: %d (%d failed)\n", report.UnitsAdded, report.UnitsFailed)
	fmt.Printf("Corpus total: %d units at %s\n", report.TotalUnits, c.String("corpus"))
	return nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("query terms are required")
	}

	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	query := strings.Join(c.Args().Slice(), " ")
	results, err := archive.Query(context.Background(), searchMode(c), query, searchOptions(c))
	if err != nil {
		return err
	}

	printResults(results, query)
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("a question is required")
	}
	if c.String("generator") != "exec" && c.String("generator") != "openai" {
		return fmt.Errorf("generator must be exec or openai, got %q", c.String("generator"))
	}

	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	question := strings.Join(c.Args().Slice(), " ")
	answer, err := archive.Ask(context.Background(), searchMode(c), question, searchOptions(c))
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	if len(answer.References) > 0 {
		fmt.Println("\nReferences:")
		for _, ref := range answer.References {
			fmt.Printf("  [%d] %s, chunk %d\n", ref.Number, ref.SourceID, ref.Position)
		}
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		PoolSize:       c.Int("pool-size"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	fmt.Fprintf(os.Stderr, "Corpus: %s\n", c.String("corpus"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if _, err := archive.Reindex(context.Background(), config, os.Stderr); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	return nil
}

func searchMode(c *cli.Context) search.Mode {
	mode := search.Mode(c.String("mode"))
	// Year bounds imply the temporal strategy.
	if mode == search.ModeLexical && (c.Int("before") > 0 || c.Int("after") > 0) {
		mode = search.ModeTemporal
	}
	return mode
}

func searchOptions(c *cli.Context) *search.Options {
	return &search.Options{
		TopK:         c.Int("top-k"),
		SourceFilter: c.String("source"),
		Before:       c.Int("before"),
		After:        c.Int("after"),
	}
}

func printResults(results []*search.Result, query string) {
	if len(results) == 0 {
		fmt.Println("No matching results found.")
		return
	}

	fmt.Printf("\nQuery: %s\n\n", query)
	for rank, result := range results {
		fmt.Printf("Result %d (score=%.3f)\n", rank+1, result.Score)
		fmt.Printf("Chunk #%d from %s\n", result.Unit.Position, result.Unit.SourceID)
		if len(result.Years) > 0 {
			fmt.Printf("Years: %v\n", result.Years)
		}
		fmt.Println(result.Unit.Summary)
		fmt.Println(strings.Repeat("-", 60))
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
