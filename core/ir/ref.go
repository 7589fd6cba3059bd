package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// VerseKey uniquely identifies one scripture unit across all translations.
// It is a comparable value and is used directly as a map key; the
// human-readable reference string is derived, never stored as identity.
type VerseKey struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// Reference returns the display form "Book Chapter:Verse".
func (k VerseKey) Reference() string {
	return fmt.Sprintf("%s %d:%d", k.Book, k.Chapter, k.Verse)
}

// IsValid reports whether the key names a concrete verse.
func (k VerseKey) IsValid() bool {
	return k.Book != "" && k.Chapter > 0 && k.Verse > 0
}

// Ref is a parsed human-readable scripture reference, possibly spanning a
// verse range (e.g. "1 John 3:16-18").
type Ref struct {
	// Book is the book name, numeral prefix included (e.g. "1 John").
	Book string `json:"book"`

	// Chapter is the chapter number (1-indexed).
	Chapter int `json:"chapter"`

	// VerseStart is the first verse of the reference.
	VerseStart int `json:"verse_start"`

	// VerseEnd is the last verse of the reference. Zero means the
	// reference names a single verse.
	VerseEnd int `json:"verse_end,omitempty"`
}

// refGrammar is the participle grammar for human-readable references.
// Examples: "Genesis 1:1", "John 3:16", "1 John 3:16-18", "2 Kings 4:1"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string `parser:"@Int?"`
	BookName   string `parser:"@Ident"`
	Chapter    int    `parser:"@Int ':'"`
	VerseStart int    `parser:"@Int"`
	VerseEnd   *int   `parser:"( '-' @Int )?"`
}

// refLexer defines the lexer for human-readable references.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// refParser is the participle parser for human-readable references.
var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseRef parses a human-readable reference string.
// Supported formats:
//   - "Genesis 1:1" (single verse)
//   - "1 John 3:16" (book with numeral prefix)
//   - "John 3:16-18" (verse range)
func ParseRef(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid reference format: %q: %w", s, err)
	}

	ref := &Ref{
		Book:       NormalizeBookName(parsed.BookPrefix + " " + parsed.BookName),
		Chapter:    parsed.Chapter,
		VerseStart: parsed.VerseStart,
	}
	if parsed.VerseEnd != nil {
		ref.VerseEnd = *parsed.VerseEnd
	}

	return ref, nil
}

// NormalizeBookName collapses internal whitespace and trims the book name so
// "1   John " and "1 John" compare equal as join keys.
func NormalizeBookName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// String returns the reference in display form.
func (r *Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.Chapter))
	sb.WriteString(":")
	sb.WriteString(strconv.Itoa(r.VerseStart))
	if r.IsRange() {
		sb.WriteString("-")
		sb.WriteString(strconv.Itoa(r.VerseEnd))
	}
	return sb.String()
}

// IsRange returns true if this reference spans multiple verses.
func (r *Ref) IsRange() bool {
	return r.VerseEnd > 0 && r.VerseEnd > r.VerseStart
}

// End returns the effective last verse of the reference.
func (r *Ref) End() int {
	if r.VerseEnd > 0 {
		return r.VerseEnd
	}
	return r.VerseStart
}

// Contains returns true if the reference covers the given key.
func (r *Ref) Contains(k VerseKey) bool {
	if r.Book != k.Book || r.Chapter != k.Chapter {
		return false
	}
	return k.Verse >= r.VerseStart && k.Verse <= r.End()
}
