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
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/assessrec"
	"github.com/poiesic/assessrec/ai"
	"github.com/poiesic/assessrec/ai/openai"
	"github.com/poiesic/assessrec/catalog"
	"github.com/poiesic/assessrec/index"
	"github.com/poiesic/assessrec/server"
	"github.com/poiesic/assessrec/storage/badger"
)

func main() {
	// Optional .env for the embedding service settings; absence is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "assessrec",
		Usage: "Assessment retrieval and recommendation engine",
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
				Name:   "build",
				Usage:  "Embed a crawled assessment catalog and write the index artifact",
				Action: buildCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB artifact directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the crawler-produced assessments JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "api-token",
						Usage:   "API token for the embedding service",
						EnvVars: []string{"EMBEDDING_API_TOKEN"},
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed per request",
						Value: 32,
					},
					&cli.BoolFlag{
						Name:  "skip-embed",
						Usage: "Write the catalog without vectors (lexical-only artifact)",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Run a recommendation query against a built artifact",
				Action:    queryCommand,
				ArgsUsage: "<query text>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB artifact directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of recommendations to return",
						Value:   10,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL (omit for lexical mode)",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "api-token",
						Usage:   "API token for the embedding service",
						EnvVars: []string{"EMBEDDING_API_TOKEN"},
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve recommendations over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB artifact directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8080",
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL (omit for lexical mode)",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "api-token",
						Usage:   "API token for the embedding service",
						EnvVars: []string{"EMBEDDING_API_TOKEN"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	records, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	store, err := badger.OpenStore(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open artifact store: %w", err)
	}
	defer store.Close()

	model := "none"
	if c.Bool("skip-embed") {
		fmt.Fprintf(os.Stderr, "Skipping embedding: writing %d records without vectors\n", len(records))
	} else {
		aiConfig := aiConfigFromFlags(c)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}
		model = aiConfig.EmbeddingModel

		embedder, err := openai.NewEmbedder(aiConfig)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}

		builder, err := index.NewBuilder(embedder, index.WithBatchSize(c.Int("batch-size")))
		if err != nil {
			return fmt.Errorf("failed to create builder: %w", err)
		}
		defer builder.Release()

		fmt.Fprintf(os.Stderr, "Embedding %d records with %s\n", len(records), model)
		if _, err := builder.Build(ctx, records); err != nil {
			return fmt.Errorf("embedding failed: %w", err)
		}
	}

	if err := store.WriteArtifact(ctx, model, records); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote artifact: %d records\n", len(records))
	return nil
}

func queryCommand(c *cli.Context) error {
	queryText := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if queryText == "" {
		return fmt.Errorf("query text is required")
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	results, err := svc.Recommend(context.Background(), queryText, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching assessments.")
		return nil
	}
	for i, result := range results {
		fmt.Printf("%2d. %s (score %.4f)\n", i+1, result.Name, result.Score)
		fmt.Printf("    %s\n", result.URL)
		if result.Duration > 0 {
			fmt.Printf("    Duration: %d minutes\n", result.Duration)
		}
		if len(result.TestType) > 0 {
			fmt.Printf("    Test types: %s\n", strings.Join(result.TestType, ", "))
		}
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(svc)
	if err := srv.ListenAndServe(ctx, c.String("addr")); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newService builds the service facade from CLI flags. An embedding host
// plus model selects semantic mode; omitting them selects lexical mode.
func newService(c *cli.Context) (*assessrec.Service, error) {
	var opts []assessrec.ServiceOption
	if c.String("embedding-host") != "" && c.String("embedding-model") != "" {
		aiConfig := aiConfigFromFlags(c)
		if err := aiConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		opts = append(opts, assessrec.WithAIConfig(aiConfig))
	} else {
		slog.Info("no embedding service configured, running in lexical mode")
	}

	svc, err := assessrec.NewService(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIToken(c.String("api-token")),
	)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
