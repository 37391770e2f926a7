package rank

import (
	"context"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"newsquarry/internal/config"
	"newsquarry/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// stubEmbedder returns a fixed vector for every text.
type stubEmbedder struct {
	vec []float32
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vec, nil
}

func TestCosineSimilarity(t *testing.T) {
	v := []float32{1, 2, 3}

	if got := CosineSimilarity(v, v); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical vectors: got %v, want 1", got)
	}

	neg := []float32{-1, -2, -3}
	if got := CosineSimilarity(v, neg); math.Abs(got+1) > 1e-9 {
		t.Errorf("opposite vectors: got %v, want -1", got)
	}

	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal vectors: got %v, want 0", got)
	}

	if got := CosineSimilarity(v, []float32{1, 2}); got != 0 {
		t.Errorf("mismatched lengths: got %v, want 0", got)
	}
	if got := CosineSimilarity(v, []float32{0, 0, 0}); got != 0 {
		t.Errorf("zero magnitude: got %v, want 0", got)
	}
	if got := CosineSimilarity(nil, nil); got != 0 {
		t.Errorf("empty vectors: got %v, want 0", got)
	}
}

func datePtr(t time.Time) *time.Time { return &t }

func TestApplyAscendingOrderAndCutoff(t *testing.T) {
	now := time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)
	f := NewFilter(
		&stubEmbedder{vec: []float32{1, 0}},
		config.FilterConfig{CategorySlack: 0.6, PhraseSlack: 0.1},
		testLogger,
	)
	f.now = func() time.Time { return now }

	rows := []*types.NormalizedArticle{
		{Title: "close", Embedding: []float32{1, 0.1}, Date: datePtr(now)},
		{Title: "far", Embedding: []float32{0.1, 1}, Date: datePtr(now)},
		{Title: "exact", Embedding: []float32{1, 0}, Date: datePtr(now)},
	}

	out, err := f.Apply(context.Background(), rows, config.SearchConfig{TextPhrase: "q", MaxMonths: 1})
	if err != nil {
		t.Fatal(err)
	}

	// PhraseSlack 0.1 prunes the orthogonal-ish row; survivors are in
	// ascending similarity order with the best match last.
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(out), out)
	}
	if out[0].Title != "close" || out[1].Title != "exact" {
		t.Errorf("order = [%s %s], want [close exact]", out[0].Title, out[1].Title)
	}
	if out[0].Similarity > out[1].Similarity {
		t.Error("rows not in ascending similarity order")
	}
}

func TestApplyCategoryBranchKeepsMore(t *testing.T) {
	now := time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)
	f := NewFilter(
		&stubEmbedder{vec: []float32{1, 0}},
		config.FilterConfig{CategorySlack: 0.6, PhraseSlack: 0.1},
		testLogger,
	)
	f.now = func() time.Time { return now }

	rows := []*types.NormalizedArticle{
		{Title: "close", Embedding: []float32{1, 0.1}, Date: datePtr(now)},
		{Title: "half", Embedding: []float32{1, 1.5}, Date: datePtr(now)},
		{Title: "exact", Embedding: []float32{1, 0}, Date: datePtr(now)},
	}

	out, err := f.Apply(context.Background(), rows,
		config.SearchConfig{TextPhrase: "q", NewsCategory: "sports", MaxMonths: 1})
	if err != nil {
		t.Fatal(err)
	}

	// The looser category slack (0.6) keeps the mid-similarity row the
	// phrase slack would have pruned.
	if len(out) != 3 {
		t.Fatalf("got %d rows, want 3", len(out))
	}
}

func TestApplyEmptyInput(t *testing.T) {
	f := NewFilter(&stubEmbedder{vec: []float32{1}}, config.FilterConfig{}, testLogger)

	out, err := f.Apply(context.Background(), nil, config.SearchConfig{TextPhrase: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("got %d rows, want 0", len(out))
	}
}

func TestFilterByDate(t *testing.T) {
	now := time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)

	rows := []*types.NormalizedArticle{
		{Title: "this-month", Date: datePtr(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))},
		{Title: "last-month", Date: datePtr(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC))},
		{Title: "too-old", Date: datePtr(time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC))},
		{Title: "undated"},
	}

	// monthsBack 2 keeps July 1 onward.
	out := FilterByDate(rows, 2, now)
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	if out[0].Title != "this-month" || out[1].Title != "last-month" {
		t.Errorf("kept %v %v", out[0].Title, out[1].Title)
	}
}

func TestFilterByDateClampsToCurrentMonth(t *testing.T) {
	now := time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)

	rows := []*types.NormalizedArticle{
		{Title: "kept", Date: datePtr(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))},
		{Title: "dropped", Date: datePtr(time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC))},
	}

	for _, monthsBack := range []int{0, 1} {
		out := FilterByDate(rows, monthsBack, now)
		if len(out) != 1 || out[0].Title != "kept" {
			t.Errorf("monthsBack=%d: got %v", monthsBack, out)
		}
	}
}
