package scrape

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"newsquarry/internal/sources"
	"newsquarry/internal/types"
)

// Extractor interprets a source's ordered extraction rules against a
// fetched article page to produce one RawArticle record.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a field extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		logger: logger.With("component", "extractor"),
	}
}

// strategy turns a located element into a field value. A false return
// means the field stays absent.
type strategy func(sel *goquery.Selection) (string, bool)

// strategies is the closed dispatch table over field kinds. Every rule
// resolves to exactly one of these.
var strategies = map[sources.FieldKind]strategy{
	sources.FieldTitle:       extractText,
	sources.FieldGeneric:     extractText,
	sources.FieldDescription: extractDescription,
	sources.FieldFullText:    extractFullText,
	sources.FieldDate:        extractDate,
	sources.FieldPictureURL:  extractPictureURL,
}

// Extract runs every extraction rule of src against the article body.
// Rules that match nothing leave their field absent; only a non-OK
// fetch yields no record at all.
func (e *Extractor) Extract(src sources.Profile, res *types.FetchResult) (*types.RawArticle, bool) {
	if !res.OK() {
		return nil, false
	}

	root, err := html.Parse(bytes.NewReader(res.Body))
	if err != nil {
		e.logger.Warn("article parse failed", "source", src.ID, "url", res.URL, "error", err)
		return nil, false
	}
	doc := goquery.NewDocumentFromNode(root)

	article := types.NewRawArticle(src.ID, res.URL)
	for _, rule := range src.Extraction {
		sel := e.locate(doc, root, rule)
		if sel == nil {
			continue
		}
		extract, ok := strategies[rule.Kind]
		if !ok {
			extract = extractText
		}
		if value, ok := extract(sel); ok {
			article.Set(rule.Column, value)
		}
	}

	e.logger.Debug("article extracted",
		"source", src.ID,
		"url", res.URL,
		"fields", len(article.Fields),
	)
	return article, true
}

// locate resolves a rule to its first matching element, trying the
// strict tag+attribute lookup, then class-prefix, then id-prefix, then
// the rule's XPath if it has one. Short-circuits on first success.
func (e *Extractor) locate(doc *goquery.Document, root *html.Node, rule sources.ExtractionRule) *goquery.Selection {
	if sel := byTagAttrs(doc, rule.Tag, rule.Attrs).First(); sel.Length() > 0 {
		return sel
	}
	if sel := byClassPrefix(doc, rule.Attrs["class"]).First(); sel.Length() > 0 {
		return sel
	}
	if sel := byIDPrefix(doc, rule.Attrs["id"]).First(); sel.Length() > 0 {
		return sel
	}
	if rule.XPath != "" {
		if node, err := htmlquery.Query(root, rule.XPath); err == nil && node != nil {
			return doc.FindNodes(node)
		}
	}
	return nil
}

func extractText(sel *goquery.Selection) (string, bool) {
	return sel.Text(), true
}

// extractDescription takes the first paragraph after the element in
// document order: the element is the article body container, so its
// own paragraph descendants come before any following siblings.
func extractDescription(sel *goquery.Selection) (string, bool) {
	if p := sel.Find("p").First(); p.Length() > 0 {
		return p.Text(), true
	}
	if p := sel.NextAllFiltered("p").First(); p.Length() > 0 {
		return p.Text(), true
	}
	return "", false
}

// extractFullText concatenates every paragraph descendant in document
// order, newline separated, falling back to the element's own text.
// Truncation, if any, is the normalizer's decision.
func extractFullText(sel *goquery.Selection) (string, bool) {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		parts = append(parts, p.Text())
	})
	if len(parts) == 0 {
		return sel.Text(), true
	}
	return strings.Join(parts, "\n"), true
}

// extractDate prefers the datetime attribute, then data-timestamp, then
// the element's text. Each tier falls through, never errors.
func extractDate(sel *goquery.Selection) (string, bool) {
	if v, ok := sel.Attr("datetime"); ok && v != "" {
		return v, true
	}
	if v, ok := sel.Attr("data-timestamp"); ok && v != "" {
		return v, true
	}
	return sel.Text(), true
}

func extractPictureURL(sel *goquery.Selection) (string, bool) {
	if v, ok := sel.Attr("src"); ok {
		return v, true
	}
	return "", false
}
