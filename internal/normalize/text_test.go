package normalize

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  plain   text  ", "plain text"},
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"line one\n\n\tline two", "line one line two"},
	}

	for _, tc := range cases {
		if got := CleanText(tc.in); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainsMonetaryInfo(t *testing.T) {
	positive := []string{
		"The deal was worth $40 million",
		"tickets cost €50 each",
		"a £3 levy",
		"paid 100 dollars for it",
		"just 50 cents",
		"around ¥1000",
		"nearly 500 yen",
	}
	for _, s := range positive {
		if !ContainsMonetaryInfo(s) {
			t.Errorf("expected monetary match for %q", s)
		}
	}

	negative := []string{
		"",
		"the dollar weakened on Tuesday",
		"a million reasons",
		"pound for pound the best",
	}
	for _, s := range negative {
		if ContainsMonetaryInfo(s) {
			t.Errorf("unexpected monetary match for %q", s)
		}
	}
}
