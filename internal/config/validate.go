package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Search.TextPhrase == "" {
		return fmt.Errorf("search.text_phrase is required")
	}
	if cfg.Search.MaxMonths < 0 {
		return fmt.Errorf("search.max_months must be >= 0, got %d", cfg.Search.MaxMonths)
	}

	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	if cfg.Scrape.ArticleLimit < 1 {
		return fmt.Errorf("scrape.article_limit must be >= 1, got %d", cfg.Scrape.ArticleLimit)
	}

	if cfg.Normalize.MaxTextLength < 0 {
		return fmt.Errorf("normalize.max_text_length must be >= 0")
	}

	switch cfg.Embedding.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("embedding.provider must be 'ollama' or 'openai', got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Endpoint != "" {
		if _, err := url.Parse(cfg.Embedding.Endpoint); err != nil {
			return fmt.Errorf("invalid embedding.endpoint %q: %w", cfg.Embedding.Endpoint, err)
		}
	}
	if cfg.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required")
	}

	if cfg.Filter.CategorySlack < 0 || cfg.Filter.CategorySlack > 1 {
		return fmt.Errorf("filter.category_slack must be in [0,1], got %v", cfg.Filter.CategorySlack)
	}
	if cfg.Filter.PhraseSlack < 0 || cfg.Filter.PhraseSlack > 1 {
		return fmt.Errorf("filter.phrase_slack must be in [0,1], got %v", cfg.Filter.PhraseSlack)
	}

	validStorageTypes := map[string]bool{
		"xlsx": true, "csv": true, "mongodb": true,
	}
	if !validStorageTypes[cfg.Storage.Type] {
		return fmt.Errorf("storage.type %q is not supported (valid: xlsx, csv, mongodb)", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required for mongodb storage")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}
