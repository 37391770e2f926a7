package scrape

import (
	"testing"

	"newsquarry/internal/sources"
	"newsquarry/internal/types"
)

const articleHTML = `<!DOCTYPE html>
<html>
<body>
  <h1 class="Page-headline">Olympic Paris opens</h1>
  <div class="RichTextStoryBody RichTextBody">
    <p>The opening ceremony drew record crowds.</p>
    <p>Organizers called it a success.</p>
  </div>
  <bsp-timestamp data-timestamp="1723900980000"></bsp-timestamp>
  <img class="Image" alt="Image" src="https://example.com/photo.jpg">
  <figcaption class="Figure-caption-v2">Crowds at the ceremony</figcaption>
  <div class="Page-authors">By Jane Smith</div>
  <span class="caas-author-byline-v2">Jane Smith</span>
</body>
</html>`

func articleProfile() sources.Profile {
	return sources.Profile{
		ID: "apnews",
		Extraction: []sources.ExtractionRule{
			{Column: "title", Kind: sources.FieldTitle, Tag: "h1", Attrs: map[string]string{"class": "Page-headline"}},
			{Column: "description", Kind: sources.FieldDescription, Tag: "div", Attrs: map[string]string{"class": "RichTextStoryBody RichTextBody"}},
			{Column: "full_text", Kind: sources.FieldFullText, Tag: "div", Attrs: map[string]string{"class": "RichTextStoryBody RichTextBody"}},
			{Column: "date", Kind: sources.FieldDate, Tag: "bsp-timestamp", Attrs: map[string]string{}},
			{Column: "picture_url", Kind: sources.FieldPictureURL, Tag: "img", Attrs: map[string]string{"class": "Image", "alt": "Image"}},
			{Column: "picture_caption", Kind: sources.FieldGeneric, Tag: "figcaption", Attrs: map[string]string{"class": "Figure-caption"}},
			{Column: "authors", Kind: sources.FieldGeneric, Tag: "div", Attrs: map[string]string{"class": "Page-authors"}},
			{Column: "missing", Kind: sources.FieldGeneric, Tag: "aside", Attrs: map[string]string{"class": "does-not-exist"}},
		},
	}
}

func TestExtract(t *testing.T) {
	e := NewExtractor(testLogger)
	res := fetchOK("https://apnews.com/article/x", articleHTML)

	article, ok := e.Extract(articleProfile(), res)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}

	if got, _ := article.Get("title"); got != "Olympic Paris opens" {
		t.Errorf("title = %q", got)
	}
	if got, _ := article.Get("description"); got != "The opening ceremony drew record crowds." {
		t.Errorf("description = %q", got)
	}
	if got, _ := article.Get("full_text"); got != "The opening ceremony drew record crowds.\nOrganizers called it a success." {
		t.Errorf("full_text = %q", got)
	}
	if got, _ := article.Get("date"); got != "1723900980000" {
		t.Errorf("date = %q", got)
	}
	if got, _ := article.Get("picture_url"); got != "https://example.com/photo.jpg" {
		t.Errorf("picture_url = %q", got)
	}
	// class-prefix tier: markup carries a suffixed caption class
	if got, _ := article.Get("picture_caption"); got != "Crowds at the ceremony" {
		t.Errorf("picture_caption = %q", got)
	}
	if got, _ := article.Get("authors"); got != "By Jane Smith" {
		t.Errorf("authors = %q", got)
	}
	if article.Has("missing") {
		t.Error("expected missing field to stay absent")
	}
}

func TestExtractXPathFallback(t *testing.T) {
	e := NewExtractor(testLogger)
	rule := sources.ExtractionRule{
		Column: "authors",
		Kind:   sources.FieldGeneric,
		Tag:    "span",
		Attrs:  map[string]string{"class": "caas-author-byline-collapse"},
		XPath:  "//span[starts-with(@class,'caas-author-byline')]",
	}
	src := sources.Profile{ID: "yahoo", Extraction: []sources.ExtractionRule{rule}}

	article, ok := e.Extract(src, fetchOK("https://yahoo.test/a", articleHTML))
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got, _ := article.Get("authors"); got != "Jane Smith" {
		t.Errorf("authors = %q", got)
	}
}

func TestExtractDatetimeAttribute(t *testing.T) {
	e := NewExtractor(testLogger)
	html := `<time class="date-published" datetime="2024-08-17">Aug 17</time>`
	src := sources.Profile{ID: "t", Extraction: []sources.ExtractionRule{
		{Column: "date", Kind: sources.FieldDate, Tag: "time", Attrs: map[string]string{"class": "date-published"}},
	}}

	article, _ := e.Extract(src, fetchOK("https://t.test/a", html))
	if got, _ := article.Get("date"); got != "2024-08-17" {
		t.Errorf("date = %q", got)
	}
}

func TestExtractFailedFetch(t *testing.T) {
	e := NewExtractor(testLogger)
	if _, ok := e.Extract(articleProfile(), &types.FetchResult{URL: "x", StatusCode: 500}); ok {
		t.Error("expected no record for failed fetch")
	}
}
