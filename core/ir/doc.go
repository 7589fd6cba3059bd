// Package ir defines the canonical intermediate representation shared by all
// format parsers, the persistence layer, and the alignment engine: VerseKey,
// per-translation Corpus, and CommentaryRecord. Format handlers should import
// these types rather than defining their own.
package ir
