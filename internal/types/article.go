package types

import (
	"time"
)

// FetchResult records the outcome of a single HTTP fetch. Transport
// failures are data, not errors: they carry StatusCode 500 and an empty
// body so the pipeline can keep moving.
type FetchResult struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body,omitempty"`
}

// OK reports whether the fetch produced a usable HTML body.
func (r *FetchResult) OK() bool {
	return r.StatusCode == 200 && len(r.Body) > 0
}

// RawArticle holds the field values extracted from one article page.
// A field that no rule matched is simply absent from Fields.
type RawArticle struct {
	Source string            `json:"source"`
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// NewRawArticle creates an empty RawArticle for a source page.
func NewRawArticle(source, url string) *RawArticle {
	return &RawArticle{
		Source: source,
		URL:    url,
		Fields: make(map[string]string),
	}
}

// Set stores a field value.
func (a *RawArticle) Set(column, value string) {
	a.Fields[column] = value
}

// Get retrieves a field value and whether it was extracted.
func (a *RawArticle) Get(column string) (string, bool) {
	v, ok := a.Fields[column]
	return v, ok
}

// Has reports whether a field was extracted.
func (a *RawArticle) Has(column string) bool {
	_, ok := a.Fields[column]
	return ok
}

// NormalizedArticle is one row of the normalized table: cleaned text
// fields, a parsed date when one of the known formats matched, and the
// enrichments computed by the normalizer. Embedding and Similarity are
// transient — they exist only between normalization and ranking and are
// never persisted.
type NormalizedArticle struct {
	Source           string     `json:"source"`
	URL              string     `json:"url"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	FullText         string     `json:"full_text"`
	Authors          string     `json:"authors"`
	PictureURL       string     `json:"picture_url"`
	PictureCaption   string     `json:"picture_caption"`
	PicturePath      string     `json:"picture_path"`
	Date             *time.Time `json:"date,omitempty"`
	ContainsMonetary bool       `json:"contains_monetary"`

	Embedding  []float32 `json:"-"`
	Similarity float64   `json:"-"`
}
