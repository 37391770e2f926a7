package normalize

import (
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-08-17", time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)},
		{"August 17, 2024", time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)},
		{"Aug 8, 2024", time.Date(2024, 8, 8, 0, 0, 0, 0, time.UTC)},
		{"August 17, 2024 at 6:23 PM", time.Date(2024, 8, 17, 18, 23, 0, 0, time.UTC)},
		{"Saturday, August 17, 2024, 6:47 PM", time.Date(2024, 8, 17, 18, 47, 0, 0, time.UTC)},
		// repeated components in a layout: the last occurrence wins
		{"Jul 18, 2024Modified Jul 19, 2024", time.Date(2024, 7, 19, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		if !ok {
			t.Errorf("ParseDate(%q) failed, want %v", tc.in, tc.want)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDateMilliseconds(t *testing.T) {
	got, ok := ParseDate("1723900980000")
	if !ok {
		t.Fatal("expected millisecond timestamp to parse")
	}
	want := time.UnixMilli(1723900980000)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDateKeywordStrip(t *testing.T) {
	got, ok := ParseDate("Published August 17, 2024")
	if !ok {
		t.Fatal("expected keyword-decorated date to parse")
	}
	want := time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDateGarbage(t *testing.T) {
	for _, in := range []string{"", "not a date", "tomorrow", "17/08/2024"} {
		if _, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) unexpectedly succeeded", in)
		}
	}
}

func TestCleanDateMiddleDot(t *testing.T) {
	got := CleanDate("August 17, 2024 · 5 min read")
	if got != "August 17, 2024" {
		t.Errorf("got %q", got)
	}
}

func TestCleanDatePublishedModified(t *testing.T) {
	got := CleanDate("Published August 17, 2024 Modified August 18, 2024")
	if got != "August 17, 2024" {
		t.Errorf("got %q", got)
	}
}

func TestCleanDateWeekdayPrefix(t *testing.T) {
	got := CleanDate("Sat, August 17, 2024")
	if got != "August 17, 2024" {
		t.Errorf("got %q", got)
	}
}

func TestCleanDatePassthrough(t *testing.T) {
	got := CleanDate("  2024-08-17  ")
	if got != "2024-08-17" {
		t.Errorf("got %q", got)
	}
}
