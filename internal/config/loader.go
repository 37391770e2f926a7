package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("NEWSQUARRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("newsquarry")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".newsquarry"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("search.text_phrase", cfg.Search.TextPhrase)
	v.SetDefault("search.news_category", cfg.Search.NewsCategory)
	v.SetDefault("search.max_months", cfg.Search.MaxMonths)

	v.SetDefault("fetcher.request_timeout", cfg.Fetcher.RequestTimeout)
	v.SetDefault("fetcher.follow_redirects", cfg.Fetcher.FollowRedirects)
	v.SetDefault("fetcher.max_redirects", cfg.Fetcher.MaxRedirects)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)
	v.SetDefault("fetcher.idle_conn_timeout", cfg.Fetcher.IdleConnTimeout)
	v.SetDefault("fetcher.max_idle_conns", cfg.Fetcher.MaxIdleConns)
	v.SetDefault("fetcher.user_agents", cfg.Fetcher.UserAgents)
	v.SetDefault("fetcher.browser", cfg.Fetcher.Browser)

	v.SetDefault("scrape.article_limit", cfg.Scrape.ArticleLimit)
	v.SetDefault("scrape.exclude_url_text", cfg.Scrape.ExcludeURLText)

	v.SetDefault("normalize.image_dir", cfg.Normalize.ImageDir)
	v.SetDefault("normalize.max_text_length", cfg.Normalize.MaxTextLength)

	v.SetDefault("embedding.provider", cfg.Embedding.Provider)
	v.SetDefault("embedding.endpoint", cfg.Embedding.Endpoint)
	v.SetDefault("embedding.model", cfg.Embedding.Model)
	v.SetDefault("embedding.timeout", cfg.Embedding.Timeout)

	v.SetDefault("filter.category_slack", cfg.Filter.CategorySlack)
	v.SetDefault("filter.phrase_slack", cfg.Filter.PhraseSlack)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.output_path", cfg.Storage.OutputPath)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)
}
