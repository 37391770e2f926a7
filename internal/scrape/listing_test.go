package scrape

import (
	"log/slog"
	"os"
	"reflect"
	"testing"

	"newsquarry/internal/sources"
	"newsquarry/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const listingHTML = `<!DOCTYPE html>
<html>
<body>
  <div class="PageList-items-item extra">
    <a href="https://apnews.com/article/olympics-one">Olympics one</a>
  </div>
  <div class="PageList-items-item">
    <a href="https://apnews.com/article/olympics-two">Olympics two</a>
    <a href="https://apnews.com/article/olympics-two">duplicate</a>
  </div>
  <div class="PageList-items-item">
    <a href="https://apnews.com/staff/jane-doe">staff bio</a>
  </div>
  <div class="PageList-items-item">
    <a href="https://elsewhere.example.com/article/offsite">offsite</a>
  </div>
  <div class="unrelated-card">
    <a href="https://apnews.com/article/should-not-appear">hidden</a>
  </div>
</body>
</html>`

func listingProfile() sources.Profile {
	return sources.Profile{
		ID:     "apnews",
		Domain: "https://apnews.com",
		Listing: []sources.ListingRule{
			{Tag: "div", Attrs: map[string]string{"class": "PageList-items-item"}},
		},
	}
}

func fetchOK(url, body string) *types.FetchResult {
	return &types.FetchResult{URL: url, StatusCode: 200, Body: []byte(body)}
}

func TestListingParse(t *testing.T) {
	p := NewListingParser([]string{"/staff/"}, testLogger)

	urls := p.Parse(listingProfile(), fetchOK("https://apnews.com/search?q=x", listingHTML))

	want := []string{
		"https://apnews.com/article/olympics-one",
		"https://apnews.com/article/olympics-two",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("got %v, want %v", urls, want)
	}
}

func TestListingParseIdempotent(t *testing.T) {
	p := NewListingParser([]string{"/staff/"}, testLogger)
	res := fetchOK("https://apnews.com/search?q=x", listingHTML)

	first := p.Parse(listingProfile(), res)
	second := p.Parse(listingProfile(), res)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parse not idempotent: %v vs %v", first, second)
	}
}

func TestListingParseFailedFetch(t *testing.T) {
	p := NewListingParser(nil, testLogger)

	if urls := p.Parse(listingProfile(), &types.FetchResult{URL: "x", StatusCode: 500}); urls != nil {
		t.Errorf("expected nil for failed fetch, got %v", urls)
	}
}

func TestListingParseRelativeHrefs(t *testing.T) {
	html := `<div class="PageList-items-item">
	  <a href="/article/relative-one">one</a>
	  <a href="article/relative-two">two</a>
	</div>`

	src := listingProfile()
	src.ID = "apnews.com"
	p := NewListingParser(nil, testLogger)

	urls := p.Parse(src, fetchOK("https://apnews.com/search", html))
	want := []string{
		"https://apnews.com/article/relative-one",
		"https://apnews.com/article/relative-two",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("got %v, want %v", urls, want)
	}
}

func TestListingParseTagAttrsFallback(t *testing.T) {
	// No class-prefix match; the strict tag+attrs rule locates the cards.
	html := `<article data-kind="result"><a href="https://apnews.com/article/x1">x</a></article>`

	src := sources.Profile{
		ID:     "apnews",
		Domain: "https://apnews.com",
		Listing: []sources.ListingRule{
			{Tag: "article", Attrs: map[string]string{"data-kind": "result"}},
		},
	}
	p := NewListingParser(nil, testLogger)

	urls := p.Parse(src, fetchOK("https://apnews.com/search", html))
	if len(urls) != 1 || urls[0] != "https://apnews.com/article/x1" {
		t.Errorf("got %v", urls)
	}
}
