package scrape

import (
	"bytes"
	"log/slog"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsquarry/internal/sources"
	"newsquarry/internal/types"
)

// ListingParser extracts candidate article URLs from a search-results
// page using a source's listing rules.
type ListingParser struct {
	exclude []string
	logger  *slog.Logger
}

// NewListingParser creates a listing parser. URLs containing any of the
// exclude substrings (staff-bio pages and the like) are dropped.
func NewListingParser(exclude []string, logger *slog.Logger) *ListingParser {
	return &ListingParser{
		exclude: exclude,
		logger:  logger.With("component", "listing_parser"),
	}
}

// Parse returns the deduplicated article URLs found in a listing fetch.
// Card elements are located by class prefix first, then by the strict
// tag+attribute rule. Anchors with an https href are taken as-is; cards
// without one fall back to domain-prefixed relative hrefs. URLs that do
// not contain the source ID, or that match an exclusion substring, are
// discarded. Output order is sorted for determinism; downstream stages
// do not depend on it.
func (p *ListingParser) Parse(src sources.Profile, res *types.FetchResult) []string {
	if !res.OK() {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		p.logger.Warn("listing parse failed", "source", src.ID, "error", err)
		return nil
	}

	found := make(map[string]struct{})
	for _, rule := range src.Listing {
		cards := byClassPrefix(doc, rule.Attrs["class"])
		if cards.Length() == 0 {
			cards = byTagAttrs(doc, rule.Tag, rule.Attrs)
		}
		if cards.Length() == 0 {
			continue
		}
		cards.Each(func(_ int, card *goquery.Selection) {
			for _, u := range cardURLs(card, src.Domain) {
				found[u] = struct{}{}
			}
		})
		break // first rule that matches cards wins
	}

	valid := make([]string, 0, len(found))
	for u := range found {
		if !strings.Contains(u, src.ID) {
			continue
		}
		if p.excluded(u) {
			continue
		}
		valid = append(valid, u)
	}
	sort.Strings(valid)

	p.logger.Info("listing parsed", "source", src.ID, "found", len(found), "valid", len(valid))
	return valid
}

// cardURLs collects anchor hrefs from one card. Secure absolute URLs
// are preferred; if the card has none, every href is treated as
// relative-or-absolute and rebuilt against the source domain.
func cardURLs(card *goquery.Selection, domain string) []string {
	var secure []string
	var all []string

	card.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		all = append(all, href)
		if strings.HasPrefix(href, "https") {
			secure = append(secure, href)
		}
	})

	if len(secure) > 0 {
		return secure
	}

	rebuilt := make([]string, 0, len(all))
	for _, href := range all {
		divider := "/"
		if strings.HasPrefix(href, "/") {
			divider = ""
		}
		rebuilt = append(rebuilt, domain+divider+href)
	}
	return rebuilt
}

func (p *ListingParser) excluded(u string) bool {
	for _, text := range p.exclude {
		if strings.Contains(u, text) {
			return true
		}
	}
	return false
}
