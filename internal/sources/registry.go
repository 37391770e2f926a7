package sources

// FieldKind selects the extraction strategy for a rule. Each kind has
// its own contract for turning a located element into a value; see
// internal/scrape.
type FieldKind int

const (
	// FieldGeneric takes the element's text (captions, bylines, ...).
	FieldGeneric FieldKind = iota
	// FieldTitle takes the element's full inner text.
	FieldTitle
	// FieldDescription takes the first paragraph after the element in
	// document order; the element itself is the body container.
	FieldDescription
	// FieldFullText joins every paragraph descendant with newlines.
	FieldFullText
	// FieldDate prefers the datetime attribute, then data-timestamp,
	// then the element's text.
	FieldDate
	// FieldPictureURL takes the element's src attribute.
	FieldPictureURL
)

// ListingRule locates the repeated article "card" elements in a
// search-results page. The class value is matched as a prefix first,
// tolerating suffix variation in minified or versioned markup.
type ListingRule struct {
	Tag   string
	Attrs map[string]string
}

// ExtractionRule describes how to pull one output column from an
// article page: a locator (tag + attributes, with an optional XPath
// fallback) and a kind-driven extraction strategy.
type ExtractionRule struct {
	Column string
	Kind   FieldKind
	Tag    string
	Attrs  map[string]string
	XPath  string
}

// Profile is the static descriptor of one news outlet: its search
// endpoint and the rules for reading its listing and article markup.
// Profiles are immutable; adding a source means adding one entry to the
// table below and nothing else.
type Profile struct {
	ID        string
	SearchURL string
	Domain    string
	Enabled   bool
	Captcha   bool
	RenderJS  bool

	Listing    []ListingRule
	Extraction []ExtractionRule
}

// List returns the source table keyed by source ID. With onlyActive it
// keeps profiles whose Enabled flag is set. Pure function of
// compile-time data; no I/O.
func List(onlyActive bool) map[string]Profile {
	all := registry()
	if !onlyActive {
		return all
	}
	active := make(map[string]Profile, len(all))
	for id, p := range all {
		if p.Enabled {
			active[id] = p
		}
	}
	return active
}

func registry() map[string]Profile {
	return map[string]Profile{
		"apnews": {
			ID:        "apnews",
			SearchURL: "https://apnews.com/search?q=",
			Domain:    "https://apnews.com",
			Enabled:   true,
			Listing: []ListingRule{
				{Tag: "div", Attrs: map[string]string{"class": "PageList-items-item"}},
			},
			Extraction: []ExtractionRule{
				{Column: "title", Kind: FieldTitle, Tag: "h1", Attrs: map[string]string{"class": "Page-headline"}},
				{Column: "description", Kind: FieldDescription, Tag: "div", Attrs: map[string]string{"class": "RichTextStoryBody RichTextBody"}},
				{Column: "full_text", Kind: FieldFullText, Tag: "div", Attrs: map[string]string{"class": "RichTextStoryBody RichTextBody"}},
				{Column: "date", Kind: FieldDate, Tag: "bsp-timestamp", Attrs: map[string]string{}},
				{Column: "picture_url", Kind: FieldPictureURL, Tag: "img", Attrs: map[string]string{"class": "Image", "alt": "Image"}},
				{Column: "picture_caption", Kind: FieldGeneric, Tag: "figcaption", Attrs: map[string]string{"class": "Figure-caption"}},
				{Column: "authors", Kind: FieldGeneric, Tag: "div", Attrs: map[string]string{"class": "Page-authors"}},
			},
		},

		"aljazeera": {
			ID:        "aljazeera",
			SearchURL: "https://www.aljazeera.com/search/",
			Domain:    "https://www.aljazeera.com",
			Enabled:   true,
			RenderJS:  true,
			Listing: []ListingRule{
				{Tag: "article", Attrs: map[string]string{"class": "gc u-clickable-card gc--type-customsearch#result gc--list gc--with-image"}},
			},
		},

		"reuters": {
			ID:        "reuters",
			SearchURL: "https://www.reuters.com/site-search/?query=",
			Domain:    "https://www.reuters.com",
			Enabled:   false,
			Captcha:   true,
		},

		"latimes": {
			ID:        "latimes",
			SearchURL: "https://www.latimes.com/search?q=",
			Domain:    "https://www.latimes.com",
			Enabled:   false,
			Captcha:   true,
		},

		"gothamist": {
			ID:        "gothamist",
			SearchURL: "https://gothamist.com/search?q=",
			Domain:    "https://gothamist.com",
			Enabled:   true,
			Listing: []ListingRule{
				{Tag: "div", Attrs: map[string]string{"class": "v-card gothamist-card mod-horizontal"}},
			},
			Extraction: []ExtractionRule{
				{Column: "title", Kind: FieldTitle, Tag: "h1", Attrs: map[string]string{"class": "mt-4 mb-3 h2"}},
				{Column: "description", Kind: FieldDescription, Tag: "div", Attrs: map[string]string{"class": "streamfield-paragraph rte-text"}},
				{Column: "full_text", Kind: FieldFullText, Tag: "div", Attrs: map[string]string{"class": "streamfield-paragraph rte-text"}},
				{Column: "date", Kind: FieldDate, Tag: "div", Attrs: map[string]string{"class": "date-published"}},
				{Column: "picture_url", Kind: FieldPictureURL, Tag: "img", Attrs: map[string]string{"class": "image native-image prime-img-class"}},
				{Column: "picture_caption", Kind: FieldGeneric, Tag: "figcaption", Attrs: map[string]string{"class": "flexible-link null image-with-caption-credit-link image-with-caption-credit-link"}},
				{Column: "authors", Kind: FieldGeneric, Tag: "a", Attrs: map[string]string{"class": "flexible-link internal v-byline-author-name v-byline-author-name"}},
			},
		},

		"yahoo": {
			ID:        "yahoo",
			SearchURL: "https://news.search.yahoo.com/search;?p=",
			Domain:    "https://news.search.yahoo.com",
			Enabled:   true,
			Listing: []ListingRule{
				{Tag: "div", Attrs: map[string]string{"class": "dd NewsArticle"}},
			},
			Extraction: []ExtractionRule{
				{Column: "title", Kind: FieldTitle, Tag: "div", Attrs: map[string]string{"class": "caas-title-wrapper"}},
				{Column: "description", Kind: FieldDescription, Tag: "div", Attrs: map[string]string{"class": "caas-body"}},
				{Column: "full_text", Kind: FieldFullText, Tag: "div", Attrs: map[string]string{"class": "caas-body"}},
				{Column: "date", Kind: FieldDate, Tag: "div", Attrs: map[string]string{"class": "caas-attr-time-style"}},
				{Column: "picture_url", Kind: FieldPictureURL, Tag: "img", Attrs: map[string]string{"class": "caas-img"}},
				{Column: "picture_caption", Kind: FieldGeneric, Tag: "figcaption", Attrs: map[string]string{"class": "caption-collapse"}},
				{Column: "authors", Kind: FieldGeneric, Tag: "span", Attrs: map[string]string{"class": "caas-author-byline-collapse"},
					XPath: "//span[starts-with(@class,'caas-author-byline')]"},
			},
		},
	}
}
