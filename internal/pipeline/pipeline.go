package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"newsquarry/internal/config"
	"newsquarry/internal/embed"
	"newsquarry/internal/fetcher"
	"newsquarry/internal/media"
	"newsquarry/internal/normalize"
	"newsquarry/internal/rank"
	"newsquarry/internal/scrape"
	"newsquarry/internal/sources"
	"newsquarry/internal/storage"
	"newsquarry/internal/types"
)

// Pipeline drives the two-phase run: fetch search listings and article
// pages into a checkpoint, then extract, normalize, rank, and store.
// The phases are independently runnable; `run` chains them.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger

	httpFetcher    fetcher.Fetcher
	browserFetcher fetcher.Fetcher

	listing    *scrape.ListingParser
	extractor  *scrape.Extractor
	normalizer *normalize.Normalizer
	filter     *rank.Filter
	store      storage.Storage

	sources map[string]sources.Profile
}

// New assembles a pipeline from configuration. The embedder is shared
// by the normalizer and the relevance filter; callers verify it is
// reachable before starting a processing phase.
func New(cfg *config.Config, embedder embed.Embedder, logger *slog.Logger) (*Pipeline, error) {
	httpFetcher, err := fetcher.NewHTTPFetcher(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create http fetcher: %w", err)
	}

	images := media.NewDownloader(cfg.Normalize.ImageDir, logger)

	return &Pipeline{
		cfg:         cfg,
		logger:      logger.With("component", "pipeline"),
		httpFetcher: httpFetcher,
		listing:     scrape.NewListingParser(cfg.Scrape.ExcludeURLText, logger),
		extractor:   scrape.NewExtractor(logger),
		normalizer:  normalize.New(cfg.Normalize, images, embedder, logger),
		filter:      rank.NewFilter(embedder, cfg.Filter, logger),
		sources:     sources.List(true),
	}, nil
}

// SetFetcher replaces the HTTP fetcher. Used by tests.
func (p *Pipeline) SetFetcher(f fetcher.Fetcher) { p.httpFetcher = f }

// SetStorage replaces the storage backend the Store phase would
// otherwise build from configuration.
func (p *Pipeline) SetStorage(s storage.Storage) { p.store = s }

// SetSources replaces the source table. Used by tests.
func (p *Pipeline) SetSources(table map[string]sources.Profile) { p.sources = table }

// fetcherFor routes a source to the right fetcher. Profiles that need
// JavaScript rendering get the headless browser when it is enabled;
// everything else, including the fallback, uses plain HTTP.
func (p *Pipeline) fetcherFor(src sources.Profile) fetcher.Fetcher {
	if !src.RenderJS || !p.cfg.Fetcher.Browser {
		return p.httpFetcher
	}
	if p.browserFetcher == nil {
		bf, err := fetcher.NewBrowserFetcher(p.cfg, p.logger)
		if err != nil {
			p.logger.Warn("browser fetcher unavailable, falling back to http",
				"source", src.ID, "error", err)
			return p.httpFetcher
		}
		p.browserFetcher = bf
	}
	return p.browserFetcher
}

// Fetch runs phase A: for every active source, fetch the search page,
// parse its listing, and fetch up to the configured number of article
// pages. Failed fetches are recorded in the checkpoint as 500-status
// results, never dropped.
func (p *Pipeline) Fetch(ctx context.Context) (*Checkpoint, error) {
	cp := &Checkpoint{
		CreatedAt: time.Now().UTC(),
		Search:    p.cfg.Search,
	}

	ids := make([]string, 0, len(p.sources))
	for id := range p.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := p.sources[id]
		f := p.fetcherFor(src)

		searchURL := src.SearchURL + url.QueryEscape(p.cfg.Search.TextPhrase)
		p.logger.Info("fetching search page", "source", id, "fetcher", f.Type())
		listing := f.Fetch(ctx, searchURL)

		urls := p.listing.Parse(src, listing)
		if limit := p.cfg.Scrape.ArticleLimit; limit > 0 && len(urls) > limit {
			urls = urls[:limit]
		}

		batch := SourceBatch{SourceID: id}
		for _, u := range urls {
			batch.Articles = append(batch.Articles, f.Fetch(ctx, u))
		}
		cp.Sources = append(cp.Sources, batch)

		p.logger.Info("source fetched", "source", id, "articles", len(batch.Articles))
	}

	return cp, nil
}

// Process runs phase B on a checkpoint: extract fields per source
// rules, normalize, then rank and prune with the checkpoint's own
// search parameters.
func (p *Pipeline) Process(ctx context.Context, cp *Checkpoint) ([]*types.NormalizedArticle, error) {
	table := sources.List(false)

	var raw []*types.RawArticle
	for _, batch := range cp.Sources {
		src, ok := p.sources[batch.SourceID]
		if !ok {
			src, ok = table[batch.SourceID]
		}
		if !ok {
			p.logger.Warn("checkpoint references unknown source, skipping", "source", batch.SourceID)
			continue
		}
		for _, res := range batch.Articles {
			if article, ok := p.extractor.Extract(src, res); ok {
				raw = append(raw, article)
			}
		}
	}

	rows := p.normalizer.Run(ctx, raw)

	rows, err := p.filter.Apply(ctx, rows, cp.Search)
	if err != nil {
		return nil, fmt.Errorf("relevance filter: %w", err)
	}

	p.logger.Info("processing complete", "raw", len(raw), "final", len(rows))
	return rows, nil
}

// Store writes the final rows to the configured backend.
func (p *Pipeline) Store(rows []*types.NormalizedArticle) error {
	store := p.store
	if store == nil {
		s, err := storage.New(p.cfg.Storage, p.logger)
		if err != nil {
			return err
		}
		store = s
	}

	if err := store.Store(rows); err != nil {
		store.Close()
		return fmt.Errorf("store rows: %w", err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}

	p.logger.Info("rows stored", "backend", store.Name(), "rows", len(rows))
	return nil
}

// Run chains both phases and stores the result.
func (p *Pipeline) Run(ctx context.Context) error {
	cp, err := p.Fetch(ctx)
	if err != nil {
		return err
	}

	rows, err := p.Process(ctx, cp)
	if err != nil {
		return err
	}

	return p.Store(rows)
}

// Close releases the fetchers.
func (p *Pipeline) Close() error {
	var firstErr error
	if p.httpFetcher != nil {
		if err := p.httpFetcher.Close(); err != nil {
			firstErr = err
		}
	}
	if p.browserFetcher != nil {
		if err := p.browserFetcher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
