// Package formats defines the parser contracts shared by every file format
// and the registry that maps a detected FileFormat to its parser
// implementations. Format handlers live in subpackages and register
// themselves at init time; importers pull in the "all" subpackage to get
// every embedded handler.
package formats

import (
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/VerseLoom/core/clean"
	"github.com/FocuswithJustin/VerseLoom/core/ir"
)

// FileFormat identifies a raw input file format. It is resolved once per
// file from the extension; parser selection is a capability lookup, never
// content sniffing.
type FileFormat string

// File format constants.
const (
	FormatXML     FileFormat = "xml"
	FormatJSON    FileFormat = "json"
	FormatTXT     FileFormat = "txt"
	FormatCSV     FileFormat = "csv"
	FormatUnknown FileFormat = ""
)

// DetectFormat resolves the format for a file path by extension.
func DetectFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML
	case ".json":
		return FormatJSON
	case ".txt", ".text":
		return FormatTXT
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// Cleaners carries the text cleaners a parser needs. The protected-term
// configuration lives in the cleaners, so parsers stay configuration-free.
type Cleaners struct {
	Scripture  *clean.ScriptureCleaner
	Commentary *clean.CommentaryCleaner
}

// NewCleaners builds the cleaner pair from a protected-term list.
func NewCleaners(protectedTerms []string) Cleaners {
	n := clean.NewNormalizer(protectedTerms)
	return Cleaners{
		Scripture:  clean.NewScriptureCleaner(n),
		Commentary: clean.NewCommentaryCleaner(n),
	}
}

// ScriptureParser converts raw file content for one translation into a
// canonical corpus. Implementations return a best-effort (possibly empty)
// corpus together with any error; they never panic and never abort sibling
// elements because one element is defective.
type ScriptureParser interface {
	Parse(data []byte, translationID string) (*ir.Corpus, error)
}

// CommentaryParser converts raw file content for one commentary source into
// a sequence of records. Same best-effort contract as ScriptureParser.
type CommentaryParser interface {
	Parse(data []byte, sourceID string) ([]ir.CommentaryRecord, error)
}

var (
	scriptureFactories  = make(map[FileFormat]func(Cleaners) ScriptureParser)
	commentaryFactories = make(map[FileFormat]func(Cleaners) CommentaryParser)
)

// RegisterScripture registers a scripture parser factory for a format.
// Called from format subpackage init functions.
func RegisterScripture(f FileFormat, factory func(Cleaners) ScriptureParser) {
	scriptureFactories[f] = factory
}

// RegisterCommentary registers a commentary parser factory for a format.
func RegisterCommentary(f FileFormat, factory func(Cleaners) CommentaryParser) {
	commentaryFactories[f] = factory
}

// ScriptureParserFor returns a scripture parser for the format, or false
// when the format has no scripture capability.
func ScriptureParserFor(f FileFormat, c Cleaners) (ScriptureParser, bool) {
	factory, ok := scriptureFactories[f]
	if !ok {
		return nil, false
	}
	return factory(c), true
}

// CommentaryParserFor returns a commentary parser for the format, or false
// when the format has no commentary capability.
func CommentaryParserFor(f FileFormat, c Cleaners) (CommentaryParser, bool) {
	factory, ok := commentaryFactories[f]
	if !ok {
		return nil, false
	}
	return factory(c), true
}
