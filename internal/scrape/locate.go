package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// byClassPrefix returns every element whose class attribute starts with
// prefix. Minified and versioned markup often appends suffixes to the
// class names a rule was written against, so prefix matching is the
// tolerant primary lookup.
func byClassPrefix(doc *goquery.Document, prefix string) *goquery.Selection {
	if prefix == "" {
		return doc.Find("")
	}
	return doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return strings.HasPrefix(class, prefix)
	})
}

// byIDPrefix returns every element whose id attribute starts with prefix.
func byIDPrefix(doc *goquery.Document, prefix string) *goquery.Selection {
	if prefix == "" {
		return doc.Find("")
	}
	return doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return strings.HasPrefix(id, prefix)
	})
}

// byTagAttrs returns every tag element whose attributes exactly match
// all entries of attrs (the strict lookup).
func byTagAttrs(doc *goquery.Document, tag string, attrs map[string]string) *goquery.Selection {
	if tag == "" {
		return doc.Find("")
	}
	return doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		for key, want := range attrs {
			got, ok := s.Attr(key)
			if !ok || got != want {
				return false
			}
		}
		return true
	})
}
