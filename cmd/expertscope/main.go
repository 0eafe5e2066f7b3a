// Copyright 2025 Candor Labs
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/candorlabs/expertscope"
	"github.com/candorlabs/expertscope/aggregate"
	"github.com/candorlabs/expertscope/ai"
	"github.com/candorlabs/expertscope/core"
	"github.com/candorlabs/expertscope/notify"
	"github.com/candorlabs/expertscope/retrieve"
	"github.com/candorlabs/expertscope/storage"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const apiTokenEnv = "EXPERTSCOPE_API_TOKEN"

func main() {
	// Best-effort: a missing .env file is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "expertscope",
		Usage:  "Query interpretation and retrieval over expert profiles and interviews",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search-experts",
				Usage:     "Interpret a people query and rank matching expert profiles",
				ArgsUsage: "QUERY",
				Action:    searchExpertsCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "company",
						Usage: "Explicit company filter",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Explicit title filter",
					},
					&cli.BoolFlag{
						Name:  "dedup-companies",
						Usage: "Deduplicate criteria companies before searching",
					},
					&cli.BoolFlag{
						Name:  "variant-fallthrough",
						Usage: "Try remaining criteria variants when the primary matches nothing",
					},
				),
			},
			{
				Name:      "search-interviews",
				Usage:     "Search interview records by topic and summarize by meeting",
				ArgsUsage: "TOPIC",
				Action:    searchInterviewsCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "expert",
						Usage: "Restrict to records from experts whose name contains this value",
					},
					&cli.DurationFlag{
						Name:  "since",
						Usage: "Restrict to records newer than this age (e.g. 720h)",
					},
					&cli.Float64Flag{
						Name:  "min-credibility",
						Usage: "Drop records below this credibility score",
					},
					&cli.Float64Flag{
						Name:  "min-consensus",
						Usage: "Drop records below this consensus score",
					},
					&cli.BoolFlag{
						Name:  "synthesize",
						Usage: "Produce an AI narrative summary of the findings",
					},
				),
			},
			{
				Name:   "seed",
				Usage:  "Load profile and interview records from JSON files",
				Action: seedCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "profiles",
						Usage: "Path to a JSON array of profile records",
					},
					&cli.StringFlag{
						Name:  "interviews",
						Usage: "Path to a JSON array of interview records",
					},
					&cli.StringFlag{
						Name:  "webhook",
						Usage: "URL to notify when loading completes",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(),
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of results",
			Value: 25,
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Model name for interpretation and synthesis",
		},
		&cli.BoolFlag{
			Name:  "no-ai",
			Usage: "Disable AI interpretation, deterministic strategies only",
		},
		&cli.StringFlag{
			Name:  "webhook",
			Usage: "URL to notify when the search completes",
		},
	}
}

// openEngine builds an engine from the shared flags. The API token comes
// from the environment, never from a flag.
func openEngine(c *cli.Context) (*expertscope.Engine, error) {
	var opts []expertscope.EngineOption
	if url := c.String("webhook"); url != "" {
		notifier, err := notify.NewWebhookNotifier(url)
		if err != nil {
			return nil, err
		}
		opts = append(opts, expertscope.WithNotifier(notifier))
	}
	if !c.Bool("no-ai") {
		aiOpts := []ai.ConfigOption{
			ai.WithHost(c.String("ai-host")),
			ai.WithToken(os.Getenv(apiTokenEnv)),
		}
		if model := c.String("model"); model != "" {
			aiOpts = append(aiOpts, ai.WithModel(model))
		}
		opts = append(opts, expertscope.WithAIConfig(ai.NewConfig(aiOpts...)))
	}

	engine, err := expertscope.NewEngine(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func searchExpertsCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	retriever, err := engine.NewRetriever(
		retrieve.WithCompanyDedup(c.Bool("dedup-companies")),
		retrieve.WithVariantFallthrough(c.Bool("variant-fallthrough")),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, err := retriever.SearchExperts(ctx, query, c.String("company"), c.String("title"), c.Int("limit"))
	if err != nil {
		return err
	}
	notifyEvent(ctx, engine.Notifier(), notify.EventSearchCompleted, len(results.Matches))

	primary := results.Criteria.Primary()
	fmt.Printf("Criteria (%s): companies=%s roles=%s status=%s\n",
		results.Criteria.Source,
		strings.Join(primary.Companies, ", "),
		strings.Join(primary.RoleKeywords, ", "),
		primary.EmploymentStatus)
	if primary.Reasoning != "" {
		fmt.Printf("Reasoning: %s\n", primary.Reasoning)
	}
	fmt.Println()

	if len(results.Matches) == 0 {
		fmt.Println("No matching experts.")
		return nil
	}
	for i, match := range results.Matches {
		record := match.Record
		fmt.Printf("%2d. [%6.1f] %s - %s, %s\n", i+1, match.Score, record.Name, record.CurrentTitle, record.CurrentCompany)
		for _, emp := range record.History {
			fmt.Printf("      prev: %s, %s\n", emp.Title, emp.Company)
		}
	}
	return nil
}

func searchInterviewsCommand(c *cli.Context) error {
	rawTopic := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if rawTopic == "" {
		return fmt.Errorf("topic is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	retriever, err := engine.NewRetriever()
	if err != nil {
		return err
	}

	filter := storage.InterviewFilter{
		ExpertName:     c.String("expert"),
		MinCredibility: c.Float64("min-credibility"),
		MinConsensus:   c.Float64("min-consensus"),
	}
	if since := c.Duration("since"); since > 0 {
		filter.From = time.Now().UTC().Add(-since)
	}

	ctx := context.Background()
	records, err := retriever.SearchInterviews(ctx, rawTopic, filter, c.Int("limit"))
	if err != nil {
		return err
	}
	notifyEvent(ctx, engine.Notifier(), notify.EventSearchCompleted, len(records))

	// Synthesis is opt-in; without the flag the aggregator runs
	// stats-only even when an AI provider is configured.
	aggregator := aggregate.NewAggregator(nil)
	if c.Bool("synthesize") {
		aggregator = engine.NewAggregator()
	}

	summary, err := aggregator.Summarize(ctx, rawTopic, records)
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

func printSummary(summary *aggregate.Summary) {
	if len(summary.Transcripts) == 0 {
		fmt.Println("No matching interview records.")
		return
	}

	fmt.Printf("Topic: %s\n", summary.Topic)
	fmt.Printf("Records: %d across %d meetings\n", summary.Stats.RecordCount, len(summary.Transcripts))
	printStats(summary.Stats, "")
	fmt.Println()

	for _, transcript := range summary.Transcripts {
		fmt.Printf("Meeting %d (%d records)\n", transcript.MeetingId, transcript.Stats.RecordCount)
		printStats(transcript.Stats, "  ")
		for _, record := range transcript.Records {
			fmt.Printf("  [%s] %s\n", record.Timestamp.Format(time.RFC3339), record.ExpertName)
			fmt.Printf("    Q: %s\n", record.Question)
			fmt.Printf("    A: %s\n", record.Answer)
		}
		fmt.Println()
	}

	if summary.Synthesis != "" {
		fmt.Printf("Synthesis:\n%s\n", summary.Synthesis)
	}
}

func printStats(stats core.TranscriptStats, indent string) {
	if stats.MeanCredibility != nil {
		fmt.Printf("%sMean credibility: %.1f\n", indent, *stats.MeanCredibility)
	}
	if stats.MeanConsensus != nil {
		fmt.Printf("%sMean consensus: %.1f\n", indent, *stats.MeanConsensus)
	}
	if stats.MeanCompletion != nil {
		fmt.Printf("%sMean completion: %.1f\n", indent, *stats.MeanCompletion)
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

func seedCommand(c *cli.Context) error {
	profilesPath := c.String("profiles")
	interviewsPath := c.String("interviews")
	if profilesPath == "" && interviewsPath == "" {
		return fmt.Errorf("at least one of --profiles or --interviews is required")
	}

	var opts []expertscope.EngineOption
	if url := c.String("webhook"); url != "" {
		notifier, err := notify.NewWebhookNotifier(url)
		if err != nil {
			return err
		}
		opts = append(opts, expertscope.WithNotifier(notifier))
	}

	engine, err := expertscope.NewEngine(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	pipeline, err := engine.NewLoadPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	notifier := engine.Notifier()
	ctx := context.Background()

	if profilesPath != "" {
		var records []*core.ProfileRecord
		if err := readJSONFile(profilesPath, &records); err != nil {
			return fmt.Errorf("failed to read profiles: %w", err)
		}
		loaded, err := pipeline.LoadProfiles(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Loaded %d of %d profile records\n", loaded, len(records))
		notifyEvent(ctx, notifier, notify.EventProfilesLoaded, loaded)
	}

	if interviewsPath != "" {
		var records []*core.InterviewRecord
		if err := readJSONFile(interviewsPath, &records); err != nil {
			return fmt.Errorf("failed to read interviews: %w", err)
		}
		loaded, err := pipeline.LoadInterviews(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to load interviews: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Loaded %d of %d interview records\n", loaded, len(records))
		notifyEvent(ctx, notifier, notify.EventInterviewsLoaded, loaded)
	}

	return nil
}

func notifyEvent(ctx context.Context, notifier notify.Notifier, eventType string, count int) {
	event := notify.Event{
		Type:    eventType,
		Details: map[string]any{"count": count},
	}
	if err := notifier.Notify(ctx, event); err != nil {
		slog.Warn("webhook notification failed", "event", eventType, "err", err)
	}
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
