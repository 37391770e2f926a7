package storage

import (
	"fmt"
	"log/slog"
	"strconv"

	"newsquarry/internal/config"
	"newsquarry/internal/types"
)

// Storage is the interface for all output backends.
type Storage interface {
	// Store persists a batch of rows.
	Store(rows []*types.NormalizedArticle) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// columns is the fixed output column order. Embedding and similarity
// are transient ranking state and never appear here.
var columns = []string{
	"url",
	"source",
	"title",
	"description",
	"full_text",
	"date",
	"picture_url",
	"picture_caption",
	"authors",
	"contains_monetary",
	"picture_path",
}

// rowValues flattens one article into the fixed column order.
func rowValues(a *types.NormalizedArticle) []string {
	date := ""
	if a.Date != nil {
		date = a.Date.Format("2006-01-02 15:04:05")
	}
	return []string{
		a.URL,
		a.Source,
		a.Title,
		a.Description,
		a.FullText,
		date,
		a.PictureURL,
		a.PictureCaption,
		a.Authors,
		strconv.FormatBool(a.ContainsMonetary),
		a.PicturePath,
	}
}

// New creates the storage backend named by cfg.Type.
func New(cfg config.StorageConfig, logger *slog.Logger) (Storage, error) {
	switch cfg.Type {
	case "xlsx", "csv":
		return NewFileStorage(cfg.Type, cfg.OutputPath, logger)
	case "mongodb":
		return NewMongoStorage(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
