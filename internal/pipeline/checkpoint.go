package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"newsquarry/internal/config"
	"newsquarry/internal/types"
)

// SourceBatch is one source's share of a fetch checkpoint: the listing
// result expanded into the article fetches that came from it.
type SourceBatch struct {
	SourceID string               `json:"source_id"`
	Articles []*types.FetchResult `json:"articles"`
}

// Checkpoint captures the fetch phase's output so the processing phase
// can run later, offline, or repeatedly without re-fetching. The search
// parameters travel with it; processing a checkpoint against different
// parameters than it was fetched with would silently skew the ranking.
type Checkpoint struct {
	CreatedAt time.Time           `json:"created_at"`
	Search    config.SearchConfig `json:"search"`
	Sources   []SourceBatch       `json:"sources"`
}

// Save writes the checkpoint atomically: temp file first, then rename.
// A crash mid-write leaves the previous checkpoint intact.
func (cp *Checkpoint) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint written by Save.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("parse checkpoint: %w", err)
	}
	return &cp, nil
}
