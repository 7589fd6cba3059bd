package ir

// CommentaryRecord is one commentary entry from one source. Source and
// Content are mandatory; the reference fields are optional. A record whose
// reference does not resolve is still valid: it is retained as unattached
// content in the commentary store but excluded from verse alignment.
type CommentaryRecord struct {
	// Source identifies the commentary source this record came from.
	Source string `json:"source"`

	// Content is the normalized commentary text.
	Content string `json:"content"`

	// Book, Chapter and VerseStart together form a resolvable reference.
	// Partial reference data (e.g. chapter without book) is treated as
	// "no reference" rather than a malformed one.
	Book       string `json:"book,omitempty"`
	Chapter    int    `json:"chapter,omitempty"`
	VerseStart int    `json:"verse_start,omitempty"`

	// VerseEnd is the last verse of a range. Zero means the record covers
	// VerseStart only.
	VerseEnd int `json:"verse_end,omitempty"`

	// Author and Year identify the commentator, when known.
	Author string `json:"author,omitempty"`
	Year   int    `json:"year,omitempty"`

	// Tradition is the theological tradition of the source.
	Tradition string `json:"tradition,omitempty"`

	// RawReference holds a reference-like substring that was found but
	// failed structured parsing.
	RawReference string `json:"reference,omitempty"`
}

// Resolvable reports whether the record carries a complete reference that
// can participate in verse alignment.
func (r *CommentaryRecord) Resolvable() bool {
	return r.Book != "" && r.Chapter > 0 && r.VerseStart > 0
}

// End returns the effective last verse covered by the record.
func (r *CommentaryRecord) End() int {
	if r.VerseEnd > 0 {
		return r.VerseEnd
	}
	return r.VerseStart
}

// Covers returns true if the record's reference range contains the key.
func (r *CommentaryRecord) Covers(k VerseKey) bool {
	if !r.Resolvable() {
		return false
	}
	if r.Book != k.Book || r.Chapter != k.Chapter {
		return false
	}
	return k.Verse >= r.VerseStart && k.Verse <= r.End()
}

// CommentarySet pairs a source identifier with its parsed records. Sets are
// passed to the alignment engine as ordered slices so the output is
// deterministic for a fixed input order.
type CommentarySet struct {
	SourceID string
	Records  []CommentaryRecord
}
