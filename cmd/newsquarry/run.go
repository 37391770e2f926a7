package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newsquarry/internal/config"
	"newsquarry/internal/embed"
	"newsquarry/internal/pipeline"
)

var (
	phrase         string
	category       string
	months         int
	articleLimit   int
	outputPath     string
	outputType     string
	useBrowser     bool
	checkpointPath string
)

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&phrase, "phrase", "p", "", "text phrase to search for")
	cmd.Flags().StringVar(&category, "category", "", "news category for relevance ranking")
	cmd.Flags().IntVarP(&months, "months", "m", -1, "keep articles from the last N months (0 = no window)")
	cmd.Flags().IntVarP(&articleLimit, "limit", "l", 0, "max articles fetched per source (0 = config default)")
	cmd.Flags().BoolVar(&useBrowser, "browser", false, "use the headless browser for JS-rendered sources")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output directory")
	cmd.Flags().StringVarP(&outputType, "format", "f", "", "output format: xlsx, csv, mongodb")
}

// runCmd chains fetch and process in one invocation.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch, extract, rank, and store in one pass",
		RunE:  runRun,
	}
	addSearchFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

// fetchCmd runs only the fetch phase, writing a checkpoint.
func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch search listings and article pages into a checkpoint",
		RunE:  runFetch,
	}
	addSearchFlags(cmd)
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "./output/checkpoint.json", "checkpoint file path")
	return cmd
}

// processCmd runs only the processing phase from a checkpoint.
func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Extract, normalize, rank, and store from a checkpoint",
		RunE:  runProcess,
	}
	addOutputFlags(cmd)
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", "./output/checkpoint.json", "checkpoint file path")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if phrase != "" {
		cfg.Search.TextPhrase = phrase
	}
	if category != "" {
		cfg.Search.NewsCategory = category
	}
	if months >= 0 {
		cfg.Search.MaxMonths = months
	}
	if articleLimit > 0 {
		cfg.Scrape.ArticleLimit = articleLimit
	}
	if useBrowser {
		cfg.Fetcher.Browser = true
	}
	if outputPath != "" {
		cfg.Storage.OutputPath = outputPath
	}
	if outputType != "" {
		cfg.Storage.Type = strings.ToLower(outputType)
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, stop := signalContext()
	defer stop()

	client := embed.NewClient(cfg.Embedding, logger)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Embedding.Timeout)
	err = client.Ping(pingCtx)
	cancel()
	if err != nil {
		return err
	}

	pipe, err := pipeline.New(cfg, client, logger)
	if err != nil {
		return err
	}
	defer pipe.Close()

	start := time.Now()
	if err := pipe.Run(ctx); err != nil {
		return err
	}

	fmt.Printf("Run complete in %s — output in %s\n",
		time.Since(start).Round(time.Millisecond), cfg.Storage.OutputPath)
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, stop := signalContext()
	defer stop()

	// The fetch phase needs no embedder; a nil one is never reached.
	pipe, err := pipeline.New(cfg, nil, logger)
	if err != nil {
		return err
	}
	defer pipe.Close()

	cp, err := pipe.Fetch(ctx)
	if err != nil {
		return err
	}
	if err := cp.Save(checkpointPath); err != nil {
		return err
	}

	var articles int
	for _, batch := range cp.Sources {
		articles += len(batch.Articles)
	}
	fmt.Printf("Checkpoint written: %s (%d sources, %d articles)\n",
		checkpointPath, len(cp.Sources), articles)
	return nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx, stop := signalContext()
	defer stop()

	cp, err := pipeline.LoadCheckpoint(checkpointPath)
	if err != nil {
		return err
	}

	client := embed.NewClient(cfg.Embedding, logger)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Embedding.Timeout)
	err = client.Ping(pingCtx)
	cancel()
	if err != nil {
		return err
	}

	pipe, err := pipeline.New(cfg, client, logger)
	if err != nil {
		return err
	}
	defer pipe.Close()

	rows, err := pipe.Process(ctx, cp)
	if err != nil {
		return err
	}
	if err := pipe.Store(rows); err != nil {
		return err
	}

	fmt.Printf("Processed checkpoint from %s — %d rows stored in %s\n",
		cp.CreatedAt.Format(time.RFC3339), len(rows), cfg.Storage.OutputPath)
	return nil
}
