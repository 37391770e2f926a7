package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"newsquarry/internal/config"
	"newsquarry/internal/sources"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newsquarry",
		Short: "newsquarry — cross-outlet news search, extraction, and ranking",
		Long: `newsquarry searches a fixed set of news outlets for a text phrase,
extracts the resulting articles with per-outlet scraping rules, and
ranks them by semantic similarity to the query before writing the
final table.

The run is split into two phases:
  fetch    — fetch search listings and article pages into a checkpoint
  process  — extract, normalize, rank, and store from a checkpoint
  run      — both phases back to back`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(sourcesCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sourcesCmd lists the source table.
func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured news sources",
		Run: func(cmd *cobra.Command, args []string) {
			table := sources.List(false)
			ids := make([]string, 0, len(table))
			for id := range table {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				src := table[id]
				status := "active"
				if !src.Enabled {
					status = "disabled"
					if src.Captcha {
						status = "disabled (captcha)"
					}
				}
				mode := "http"
				if src.RenderJS {
					mode = "browser"
				}
				fmt.Printf("%-12s %-20s %s  %s\n", id, status, mode, src.SearchURL)
			}
		},
	}
}

// configCmd shows the effective configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Search:\n")
			fmt.Printf("  Text Phrase:     %s\n", cfg.Search.TextPhrase)
			fmt.Printf("  News Category:   %s\n", cfg.Search.NewsCategory)
			fmt.Printf("  Max Months:      %d\n", cfg.Search.MaxMonths)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Request Timeout: %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Printf("  Max Body Size:   %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("  Browser:         %v\n", cfg.Fetcher.Browser)
			fmt.Printf("  User Agents:     %d configured\n", len(cfg.Fetcher.UserAgents))
			fmt.Printf("\nScrape:\n")
			fmt.Printf("  Article Limit:   %d\n", cfg.Scrape.ArticleLimit)
			fmt.Printf("  Exclusions:      %s\n", strings.Join(cfg.Scrape.ExcludeURLText, ", "))
			fmt.Printf("\nEmbedding:\n")
			fmt.Printf("  Provider:        %s\n", cfg.Embedding.Provider)
			fmt.Printf("  Endpoint:        %s\n", cfg.Embedding.Endpoint)
			fmt.Printf("  Model:           %s\n", cfg.Embedding.Model)
			fmt.Printf("\nFilter:\n")
			fmt.Printf("  Category Slack:  %.2f\n", cfg.Filter.CategorySlack)
			fmt.Printf("  Phrase Slack:    %.2f\n", cfg.Filter.PhraseSlack)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:            %s\n", cfg.Storage.Type)
			fmt.Printf("  Output Path:     %s\n", cfg.Storage.OutputPath)
			return nil
		},
	}
}

// versionCmd prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("newsquarry %s\n", config.Version)
		},
	}
}

// setupLogger creates a structured logger per the logging config.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	out := os.Stderr
	if cfg.Logging.Output == "stdout" {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}
