package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for newsquarry.
type Config struct {
	Search    SearchConfig    `mapstructure:"search"    yaml:"search"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"   yaml:"fetcher"`
	Scrape    ScrapeConfig    `mapstructure:"scrape"    yaml:"scrape"`
	Normalize NormalizeConfig `mapstructure:"normalize" yaml:"normalize"`
	Embedding EmbeddingConfig `mapstructure:"embedding" yaml:"embedding"`
	Filter    FilterConfig    `mapstructure:"filter"    yaml:"filter"`
	Storage   StorageConfig   `mapstructure:"storage"   yaml:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// SearchConfig holds the user's query. TextPhrase is required; the
// category and month window only affect the ranking stage, never the
// search requests themselves.
type SearchConfig struct {
	TextPhrase   string `mapstructure:"text_phrase"   yaml:"text_phrase"`
	NewsCategory string `mapstructure:"news_category" yaml:"news_category"`
	MaxMonths    int    `mapstructure:"max_months"    yaml:"max_months"`
}

// FetcherConfig controls the request fetchers.
type FetcherConfig struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"   yaml:"request_timeout"`
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	UserAgents      []string      `mapstructure:"user_agents"       yaml:"user_agents"`
	// Browser enables the headless-browser fetcher for sources whose
	// search pages need JavaScript rendering.
	Browser bool `mapstructure:"browser" yaml:"browser"`
}

// ScrapeConfig controls listing and article collection.
type ScrapeConfig struct {
	// ArticleLimit caps how many listing URLs are fetched per source.
	// Deliberate rate-limiting policy inherited from the source system.
	ArticleLimit   int      `mapstructure:"article_limit"    yaml:"article_limit"`
	ExcludeURLText []string `mapstructure:"exclude_url_text" yaml:"exclude_url_text"`
}

// NormalizeConfig controls the normalization stage.
type NormalizeConfig struct {
	ImageDir string `mapstructure:"image_dir" yaml:"image_dir"`
	// MaxTextLength truncates full_text after cleanup; 0 keeps it whole.
	MaxTextLength int `mapstructure:"max_text_length" yaml:"max_text_length"`
}

// EmbeddingConfig controls the text-embedding backend. The embedding
// model is the one dependency the pipeline cannot degrade without: an
// unreachable endpoint is fatal at startup.
type EmbeddingConfig struct {
	Provider string        `mapstructure:"provider" yaml:"provider"`
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Model    string        `mapstructure:"model"    yaml:"model"`
	APIKey   string        `mapstructure:"api_key"  yaml:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"  yaml:"timeout"`
}

// FilterConfig controls the relevance-filter cutoffs. A slack of 0.6
// keeps rows within 60% of the top similarity score.
type FilterConfig struct {
	CategorySlack float64 `mapstructure:"category_slack" yaml:"category_slack"`
	PhraseSlack   float64 `mapstructure:"phrase_slack"   yaml:"phrase_slack"`
}

// StorageConfig controls output/storage.
type StorageConfig struct {
	Type            string `mapstructure:"type"             yaml:"type"`
	OutputPath      string `mapstructure:"output_path"      yaml:"output_path"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			TextPhrase: "Olympic Paris",
			MaxMonths:  2,
		},
		Fetcher: FetcherConfig{
			RequestTimeout:  30 * time.Second,
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
		},
		Scrape: ScrapeConfig{
			ArticleLimit:   2,
			ExcludeURLText: []string{"/staff/"},
		},
		Normalize: NormalizeConfig{
			ImageDir: "./output/images",
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Endpoint: "http://localhost:11434",
			Model:    "nomic-embed-text",
			Timeout:  60 * time.Second,
		},
		Filter: FilterConfig{
			CategorySlack: 0.6,
			PhraseSlack:   0.1,
		},
		Storage: StorageConfig{
			Type:       "xlsx",
			OutputPath: "./output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
