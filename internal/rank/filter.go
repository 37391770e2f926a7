package rank

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"newsquarry/internal/config"
	"newsquarry/internal/embed"
	"newsquarry/internal/types"
)

// CosineSimilarity returns dot(a,b) / (‖a‖·‖b‖) in [-1, 1]. Vectors of
// different lengths or zero magnitude yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Filter ranks rows by semantic closeness to the query and prunes by a
// similarity cutoff and a recency window.
type Filter struct {
	embedder embed.Embedder
	cfg      config.FilterConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewFilter creates a relevance filter using the shared embedder.
func NewFilter(embedder embed.Embedder, cfg config.FilterConfig, logger *slog.Logger) *Filter {
	return &Filter{
		embedder: embedder,
		cfg:      cfg,
		logger:   logger.With("component", "relevance_filter"),
		now:      time.Now,
	}
}

// Apply ranks and prunes the normalized table. With a category the rows
// are ranked against the category embedding and kept within
// CategorySlack of the top score; without one the phrase is used with
// the tighter PhraseSlack. A configured month window then keeps only
// rows dated on/after its first day; rows without a parsed date cannot
// prove recency and are dropped with it.
//
// Rows are sorted ascending by similarity — the most similar rows end
// up last. This matches the long-observed output ordering and is kept
// deliberately; see DESIGN.md.
func (f *Filter) Apply(ctx context.Context, rows []*types.NormalizedArticle, search config.SearchConfig) ([]*types.NormalizedArticle, error) {
	if len(rows) == 0 {
		return rows, nil
	}

	var (
		ranked []*types.NormalizedArticle
		err    error
	)
	if search.NewsCategory != "" {
		ranked, err = f.rank(ctx, rows, search.NewsCategory)
		if err != nil {
			return nil, err
		}
		ranked = pruneByClosest(ranked, f.cfg.CategorySlack)
	} else {
		ranked, err = f.rank(ctx, rows, search.TextPhrase)
		if err != nil {
			return nil, err
		}
		ranked = pruneByClosest(ranked, f.cfg.PhraseSlack)
	}

	if search.MaxMonths > 0 {
		ranked = FilterByDate(ranked, search.MaxMonths, f.now())
	}

	f.logger.Info("relevance filter applied",
		"input", len(rows),
		"kept", len(ranked),
		"category", search.NewsCategory,
		"max_months", search.MaxMonths,
	)
	return ranked, nil
}

// rank computes each row's similarity to text and sorts ascending.
func (f *Filter) rank(ctx context.Context, rows []*types.NormalizedArticle, text string) ([]*types.NormalizedArticle, error) {
	target, err := f.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query %q: %w", text, err)
	}

	ranked := make([]*types.NormalizedArticle, len(rows))
	copy(ranked, rows)
	for _, row := range ranked {
		row.Similarity = CosineSimilarity(target, row.Embedding)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity < ranked[j].Similarity
	})
	return ranked, nil
}

// pruneByClosest keeps rows within slack of the maximum similarity:
// cutoff = max × (1 − slack).
func pruneByClosest(rows []*types.NormalizedArticle, slack float64) []*types.NormalizedArticle {
	if len(rows) == 0 {
		return rows
	}
	maxSim := rows[0].Similarity
	for _, row := range rows {
		if row.Similarity > maxSim {
			maxSim = row.Similarity
		}
	}
	cutoff := maxSim * (1 - slack)

	kept := make([]*types.NormalizedArticle, 0, len(rows))
	for _, row := range rows {
		if row.Similarity >= cutoff {
			kept = append(kept, row)
		}
	}
	return kept
}

// FilterByDate keeps rows dated on/after the first day of the month
// monthsBack−1 months before now's month; monthsBack <= 1 clamps to the
// first day of the current month. Rows with no parsed date are dropped.
func FilterByDate(rows []*types.NormalizedArticle, monthsBack int, now time.Time) []*types.NormalizedArticle {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if monthsBack > 1 {
		start = start.AddDate(0, -(monthsBack - 1), 0)
	}

	kept := make([]*types.NormalizedArticle, 0, len(rows))
	for _, row := range rows {
		if row.Date == nil {
			continue
		}
		if !row.Date.Before(start) {
			kept = append(kept, row)
		}
	}
	return kept
}
