package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanText strips embedded markup by parsing the value as HTML and
// taking its text content, then collapses whitespace runs to single
// spaces and trims.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		text = doc.Text()
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// monetaryPattern matches currency symbols adjacent to digits and
// written currency words adjacent to digits.
var monetaryPattern = regexp.MustCompile(`(?i)` + strings.Join([]string{
	`\$\d+`,                              // $100
	`€\d+`,                               // €100
	`£\d+`,                               // £100
	`\d+\s?(dollars|USD|euros|pounds)`,   // 100 dollars
	`\d+\s?(cents|pennies)`,              // 50 cents
	`\d+\s?₹`,                            // 100₹
	`¥\d+`,                               // ¥100
	`\d+\s?(yen|RMB|yuan)`,               // 100 yen
}, "|"))

// ContainsMonetaryInfo reports whether text mentions a monetary amount.
func ContainsMonetaryInfo(text string) bool {
	return monetaryPattern.MatchString(text)
}
