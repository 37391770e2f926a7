package normalize

import (
	"context"
	"log/slog"

	"newsquarry/internal/config"
	"newsquarry/internal/embed"
	"newsquarry/internal/media"
	"newsquarry/internal/types"
)

// Normalizer turns raw extracted records into the normalized table:
// cleaned text, parsed dates, monetary flags, downloaded images, and
// an embedding per row.
type Normalizer struct {
	cfg      config.NormalizeConfig
	images   *media.Downloader
	embedder embed.Embedder
	logger   *slog.Logger
}

// New creates a Normalizer. The embedder is injected; its lifecycle is
// owned by the pipeline driver.
func New(cfg config.NormalizeConfig, images *media.Downloader, embedder embed.Embedder, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		cfg:      cfg,
		images:   images,
		embedder: embedder,
		logger:   logger.With("component", "normalizer"),
	}
}

// Run normalizes the combined raw-article sequence. Records without a
// title are silently excluded — title presence gates the whole row.
// Every other enrichment degrades per item: an unparseable date, a
// failed image download, or a failed embedding leaves that column
// absent and keeps the row.
func (n *Normalizer) Run(ctx context.Context, articles []*types.RawArticle) []*types.NormalizedArticle {
	rows := make([]*types.NormalizedArticle, 0, len(articles))

	for _, a := range articles {
		if !a.Has("title") {
			n.logger.Debug("row dropped, no title", "source", a.Source, "url", a.URL)
			continue
		}

		row := &types.NormalizedArticle{
			Source:         a.Source,
			URL:            a.URL,
			Title:          CleanText(a.Fields["title"]),
			Description:    CleanText(a.Fields["description"]),
			FullText:       CleanText(a.Fields["full_text"]),
			Authors:        CleanText(a.Fields["authors"]),
			PictureCaption: CleanText(a.Fields["picture_caption"]),
			PictureURL:     a.Fields["picture_url"],
		}

		if n.cfg.MaxTextLength > 0 && len(row.FullText) > n.cfg.MaxTextLength {
			row.FullText = row.FullText[:n.cfg.MaxTextLength]
		}

		if raw, ok := a.Get("date"); ok {
			if t, parsed := ParseDate(CleanDate(raw)); parsed {
				row.Date = &t
			} else {
				n.logger.Debug("date not parsed", "source", a.Source, "value", raw)
			}
		}

		monetary := ContainsMonetaryInfo(row.Title)
		if !monetary {
			monetary = ContainsMonetaryInfo(row.Description)
		}
		row.ContainsMonetary = monetary

		if row.PictureURL != "" && n.images != nil {
			path, err := n.images.Download(ctx, row.PictureURL)
			if err != nil {
				n.logger.Debug("image download failed", "url", row.PictureURL, "error", err)
			} else {
				row.PicturePath = path
			}
		}

		emb, err := n.embedder.Embed(ctx, row.Title+" "+row.FullText)
		if err != nil {
			n.logger.Warn("embedding failed", "source", a.Source, "url", a.URL, "error", err)
		} else {
			row.Embedding = emb
		}

		rows = append(rows, row)
	}

	n.logger.Info("normalization complete", "input", len(articles), "rows", len(rows))
	return rows
}
