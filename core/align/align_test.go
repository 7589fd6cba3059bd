package align

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/FocuswithJustin/VerseLoom/core/ir"
)

func buildCorpus(t *testing.T, id string, verses map[ir.VerseKey]string, order []ir.VerseKey) *ir.Corpus {
	t.Helper()
	c := ir.NewCorpus(id)
	for _, k := range order {
		c.Set(k, verses[k])
	}
	return c
}

func TestAlignUnionAndMisses(t *testing.T) {
	gen11 := ir.VerseKey{Book: "Genesis", Chapter: 1, Verse: 1}
	gen12 := ir.VerseKey{Book: "Genesis", Chapter: 1, Verse: 2}
	john316 := ir.VerseKey{Book: "John", Chapter: 3, Verse: 16}

	kjv := buildCorpus(t, "KJV", map[ir.VerseKey]string{
		gen11: "In the beginning",
		gen12: "And the earth was without form",
	}, []ir.VerseKey{gen11, gen12})

	niv := buildCorpus(t, "NIV", map[ir.VerseKey]string{
		gen11:   "In the beginning God created",
		john316: "For God so loved the world",
	}, []ir.VerseKey{gen11, john316})

	table := Align([]*ir.Corpus{kjv, niv}, nil)

	if len(table.Rows) != 3 {
		t.Fatalf("row count = %d, want 3 (union of keys)", len(table.Rows))
	}

	// First-encounter order: KJV's keys first, then NIV's new key.
	wantOrder := []ir.VerseKey{gen11, gen12, john316}
	for i, key := range wantOrder {
		if table.Rows[i].Key != key {
			t.Errorf("Rows[%d].Key = %v, want %v", i, table.Rows[i].Key, key)
		}
	}

	// A translation with no text for a key contributes an empty string.
	if got := table.Rows[1].Texts[1]; got != "" {
		t.Errorf("NIV text for Genesis 1:2 = %q, want empty", got)
	}
	if got := table.Rows[2].Texts[0]; got != "" {
		t.Errorf("KJV text for John 3:16 = %q, want empty", got)
	}
	if got := table.Rows[2].Texts[1]; got != "For God so loved the world" {
		t.Errorf("NIV text for John 3:16 = %q", got)
	}
	if got := table.Rows[0].Reference; got != "Genesis 1:1" {
		t.Errorf("Reference = %q, want %q", got, "Genesis 1:1")
	}
}

func TestAlignCommentary(t *testing.T) {
	john316 := ir.VerseKey{Book: "John", Chapter: 3, Verse: 16}
	john317 := ir.VerseKey{Book: "John", Chapter: 3, Verse: 17}
	john318 := ir.VerseKey{Book: "John", Chapter: 3, Verse: 18}

	kjv := buildCorpus(t, "KJV", map[ir.VerseKey]string{
		john316: "a", john317: "b", john318: "c",
	}, []ir.VerseKey{john316, john317, john318})

	commentaries := []ir.CommentarySet{
		{
			SourceID: "matthew_henry",
			Records: []ir.CommentaryRecord{
				// A range record lands on every verse it covers.
				{Source: "matthew_henry", Book: "John", Chapter: 3, VerseStart: 16, VerseEnd: 17, Content: "God's love"},
				{Source: "matthew_henry", Book: "John", Chapter: 3, VerseStart: 16, Content: "eternal life"},
				// Unresolvable records never reach the table.
				{Source: "matthew_henry", Content: "general preface"},
			},
		},
	}

	table := Align([]*ir.Corpus{kjv}, commentaries)

	tests := []struct {
		row      int
		expected string
	}{
		{0, "God's love; eternal life"},
		{1, "God's love"},
		{2, ""},
	}
	for _, tt := range tests {
		if got := table.Rows[tt.row].Commentary[0]; got != tt.expected {
			t.Errorf("Rows[%d].Commentary = %q, want %q", tt.row, got, tt.expected)
		}
	}
}

func TestAlignDeterministic(t *testing.T) {
	gen11 := ir.VerseKey{Book: "Genesis", Chapter: 1, Verse: 1}
	kjv := buildCorpus(t, "KJV", map[ir.VerseKey]string{gen11: "text"}, []ir.VerseKey{gen11})

	var first bytes.Buffer
	if err := Align([]*ir.Corpus{kjv}, nil).WriteCSV(&first); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	var second bytes.Buffer
	if err := Align([]*ir.Corpus{kjv}, nil).WriteCSV(&second); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if first.String() != second.String() {
		t.Error("identical inputs produced different CSV output")
	}
}

func TestHeader(t *testing.T) {
	table := &Table{
		Translations: []string{"KJV", "NIV"},
		Sources:      []string{"matthew_henry"},
	}
	want := []string{"book", "chapter", "verse", "reference", "text_KJV", "text_NIV", "commentary_matthew_henry"}
	got := table.Header()
	if len(got) != len(want) {
		t.Fatalf("Header length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Header[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteCSV(t *testing.T) {
	gen11 := ir.VerseKey{Book: "Genesis", Chapter: 1, Verse: 1}
	kjv := buildCorpus(t, "KJV", map[ir.VerseKey]string{
		gen11: `He said, "Let there be light"`,
	}, []ir.VerseKey{gen11})

	commentaries := []ir.CommentarySet{
		{SourceID: "henry", Records: []ir.CommentaryRecord{
			{Source: "henry", Book: "Genesis", Chapter: 1, VerseStart: 1, Content: "creation begins"},
		}},
	}

	var buf bytes.Buffer
	if err := Align([]*ir.Corpus{kjv}, commentaries).WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want header plus one row", len(rows))
	}

	header := rows[0]
	if header[4] != "text_KJV" || header[5] != "commentary_henry" {
		t.Errorf("header = %v", header)
	}

	row := rows[1]
	if row[0] != "Genesis" || row[1] != "1" || row[2] != "1" || row[3] != "Genesis 1:1" {
		t.Errorf("fixed columns = %v", row[:4])
	}
	// Quoting round-trips through the CSV layer.
	if row[4] != `He said, "Let there be light"` {
		t.Errorf("text column = %q", row[4])
	}
	if row[5] != "creation begins" {
		t.Errorf("commentary column = %q", row[5])
	}
}
