package clean

import (
	"strings"
	"testing"
)

func TestNormalizeBasics(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapse whitespace", "In  the \t beginning\n God", "In the beginning God"},
		{"trim", "  text  ", "text"},
		{"curly double quotes", "He said, “Let there be light”", `He said, "Let there be light"`},
		{"curly single quotes", "the LORD’s anointed", "the LORD's anointed"},
		{"footnote markers", "the word† was with God*", "the word was with God"},
		{"bracketed span", "Jesus wept [or: cried aloud] there", "Jesus wept there"},
		{"empty input", "", ""},
		{"unmatched patterns are no-ops", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeNFKC(t *testing.T) {
	n := NewNormalizer(nil)

	// Fullwidth forms fold to ASCII under NFKC.
	if got := n.Normalize("Ｇｏｄ"); got != "God" {
		t.Errorf("Normalize(fullwidth) = %q, want %q", got, "God")
	}
	// Ligature fi decomposes.
	if got := n.Normalize("ﬁrstborn"); got != "firstborn" {
		t.Errorf("Normalize(ligature) = %q, want %q", got, "firstborn")
	}
}

func TestProtectedTerms(t *testing.T) {
	n := NewNormalizer(DefaultProtectedTerms)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"canonical casing kept", "YHWH spoke", "YHWH spoke"},
		{"lowercase restored to canonical", "yhwh spoke", "YHWH spoke"},
		{"mixed casing restored", "the Lord said", "the LORD said"},
		{"multi-word term", "the son of man came", "the Son of Man came"},
		{"term inside word untouched", "lordship", "lordship"},
		{"multiple occurrences", "LORD, lord, LoRd", "LORD, LORD, LORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProtectedTermSurvivesLossySteps(t *testing.T) {
	// A custom term containing a footnote rune must come through intact even
	// though footnote stripping would otherwise eat the rune.
	n := NewNormalizer([]string{"Alpha"})
	got := n.Normalize("alpha† and omega")
	if !strings.Contains(got, "Alpha") {
		t.Errorf("Normalize = %q, protected term lost", got)
	}
}

func TestStrayMaskRunesStripped(t *testing.T) {
	n := NewNormalizer(DefaultProtectedTerms)
	got := n.Normalize("forged " + maskOpen + "t0" + maskClose + " placeholder")
	if strings.Contains(got, maskOpen) || strings.Contains(got, maskClose) {
		t.Errorf("Normalize = %q, mask delimiters leaked", got)
	}
	if strings.Contains(got, "YHWH") {
		t.Errorf("Normalize = %q, forged placeholder resolved to a term", got)
	}
}

func TestScriptureCleanerVerseMarkers(t *testing.T) {
	c := NewScriptureCleaner(NewNormalizer(DefaultProtectedTerms))

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"colon marker", "1:1 In the beginning", "[1:1] In the beginning"},
		{"dot marker", "3.16 For God so loved", "[3:16] For God so loved"},
		{"marker mid-text", "light 1:4 and God saw", "light [1:4] and God saw"},
		{"spaced colon marker", "12 :34 and it was so", "[12:34] and it was so"},
		{"spaced dot marker", "verse 3 .16 for God", "verse [3:16] for God"},
		{"marker before comma", "light 1:4 , and God saw", "light [1:4], and God saw"},
		{"punctuation spacing", "good ; and God divided", "good; and God divided"},
		{"space before period", "the earth .", "the earth."},
		{"plain text unchanged", "And God said", "And God said"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScriptureCleanerIdempotent(t *testing.T) {
	c := NewScriptureCleaner(NewNormalizer(DefaultProtectedTerms))

	inputs := []string{
		"1:1 In the beginning God created",
		"[1:1] In the beginning God created",
		"the lord said 3.16 unto him ,",
		"plain verse text",
		// Spacing fixes must not mint a bare marker for the next pass.
		"12 :34 and it was so",
		"verse 3 .16 for God",
		"light 1:4 , and God saw",
		"1:2 :3 and more",
	}

	for _, input := range inputs {
		once := c.Clean(input)
		twice := c.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestScriptureCleanerProtectedTerms(t *testing.T) {
	c := NewScriptureCleaner(NewNormalizer(DefaultProtectedTerms))
	got := c.Clean("1:1 the lord God made the earth")
	want := "[1:1] the LORD God made the earth"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestCommentaryCleaner(t *testing.T) {
	c := NewCommentaryCleaner(NewNormalizer(DefaultProtectedTerms))

	got := c.Clean("  The  name yhwh appears† here [editor's note]  ")
	want := "The name YHWH appears here"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}
