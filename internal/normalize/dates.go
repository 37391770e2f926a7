package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// dateLayouts are the known site date formats, tried in order. The last
// one handles a malformed concatenated "Modified" string as it appears
// in the wild (e.g. "Jul 18, 2024Modified Jul 19, 2024").
var dateLayouts = []string{
	"January 2, 2006 at 3:04 PM",         // August 17, 2024 at 6:23 PM
	"2006-01-02",                         // 2024-08-17
	"Monday, January 2, 2006, 3:04 PM",   // Saturday, August 17, 2024, 6:47 PM
	"Jan 2, 2006",                        // Aug 8, 2024
	"January 2, 2006",                    // August 17, 2024
	"Jan 2, 2006Modified Jan 2, 2006",    // Jul 18, 2024Modified Jul 19, 2024
}

var weekdayPrefixes = []string{"SAT,", "MON,", "WED,", "THU,", "FRI", "TUE,", "SUN,"}

var keywordPattern = regexp.MustCompile(`(Published|Modified)\s*`)

// CleanDate strips the site-specific decorations seen around dates
// before generic parsing: a middle-dot separator truncates everything
// after it, a Published…Modified… pair brackets the real date, and a
// weekday-abbreviation prefix is cut at the first comma.
func CleanDate(raw string) string {
	s := strings.TrimSpace(raw)

	if before, _, found := strings.Cut(s, "·"); found {
		s = strings.TrimSpace(before)
	} else if _, after, found := strings.Cut(s, "Published"); found {
		s = strings.TrimSpace(after)
		if before, _, found := strings.Cut(s, "Modified"); found {
			s = strings.TrimSpace(before)
		}
	}

	upper := strings.ToUpper(s)
	for _, wd := range weekdayPrefixes {
		if strings.Contains(upper, wd) {
			if _, after, found := strings.Cut(s, ","); found {
				s = strings.TrimSpace(after)
			}
			break
		}
	}

	return s
}

// ParseDate is the lenient best-effort date parser: a pure-digit string
// is a millisecond Unix timestamp; otherwise each known layout is tried
// in order; otherwise bare Published/Modified keywords are stripped and
// the parse retried. Exhaustion yields false, never an error.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if isDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if strings.Contains(s, "Published") || strings.Contains(s, "Modified") {
		return ParseDate(keywordPattern.ReplaceAllString(s, ""))
	}

	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
