// Package txt provides the embedded plain-text parsers for scripture and
// commentary files. Scripture files carry inline "Book C:V" references;
// commentary files are blank-line-delimited sections with an optional
// embedded reference.
package txt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/VerseLoom/core/ir"
	"github.com/FocuswithJustin/VerseLoom/internal/formats"
)

func init() {
	formats.RegisterScripture(formats.FormatTXT, func(c formats.Cleaners) formats.ScriptureParser {
		return &ScriptureParser{cleaners: c}
	})
	formats.RegisterCommentary(formats.FormatTXT, func(c formats.Cleaners) formats.CommentaryParser {
		return &CommentaryParser{cleaners: c}
	})
}

var (
	// verseRefRe matches "<book> <chapter>:<verse>" where the book name is
	// alphabetic with an optional leading 1-3 numeral prefix ("1 John").
	verseRefRe = regexp.MustCompile(`([1-3]?\s*[A-Za-z]+)\s+(\d+):(\d+)\s*`)

	// commentRefRe matches an embedded reference with an optional verse
	// range ("John 3:16-18").
	commentRefRe = regexp.MustCompile(`[1-3]?\s*[A-Za-z]+\s+\d+:\d+(?:-\d+)?`)

	// sectionSplitRe splits commentary content on blank-line boundaries.
	sectionSplitRe = regexp.MustCompile(`\r?\n\s*\r?\n`)
)

// ScriptureParser parses plain-text scripture with inline references.
type ScriptureParser struct {
	cleaners formats.Cleaners
}

// Parse scans the whole file for verse references. The text of each verse
// runs from its reference to the next reference or end of file (RE2 has no
// lookahead, so the scan slices between match positions). Duplicate keys
// follow last-write-wins.
func (p *ScriptureParser) Parse(data []byte, translationID string) (*ir.Corpus, error) {
	corpus := ir.NewCorpus(translationID)
	content := string(data)

	matches := verseRefRe.FindAllStringSubmatchIndex(content, -1)
	for i, m := range matches {
		book := ir.NormalizeBookName(content[m[2]:m[3]])
		chapter, _ := strconv.Atoi(content[m[4]:m[5]])
		verse, _ := strconv.Atoi(content[m[6]:m[7]])
		if book == "" || chapter <= 0 || verse <= 0 {
			continue
		}

		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		text := content[m[1]:end]

		key := ir.VerseKey{Book: book, Chapter: chapter, Verse: verse}
		corpus.Set(key, p.cleaners.Scripture.Clean(text))
	}

	return corpus, nil
}

// CommentaryParser parses plain-text commentary split into blank-line
// delimited sections.
type CommentaryParser struct {
	cleaners formats.Cleaners
}

// Parse splits the content into sections and extracts one record per
// section. When a section contains a reference substring, the substring is
// removed from the content and its parsed fields populate the record; when
// the substring fails structured parsing the record keeps it as a raw
// reference; sections with no reference become content-only records.
func (p *CommentaryParser) Parse(data []byte, sourceID string) ([]ir.CommentaryRecord, error) {
	records := []ir.CommentaryRecord{}

	for _, section := range sectionSplitRe.Split(string(data), -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}

		reference := commentRefRe.FindString(section)
		if reference == "" {
			records = append(records, ir.CommentaryRecord{
				Source:  sourceID,
				Content: p.cleaners.Commentary.Clean(section),
			})
			continue
		}

		ref, err := ir.ParseRef(reference)
		if err != nil {
			// Reference-like substring that does not parse: keep it raw.
			records = append(records, ir.CommentaryRecord{
				Source:       sourceID,
				Content:      p.cleaners.Commentary.Clean(section),
				RawReference: reference,
			})
			continue
		}

		remaining := strings.Replace(section, reference, "", 1)
		records = append(records, ir.CommentaryRecord{
			Source:     sourceID,
			Content:    p.cleaners.Commentary.Clean(remaining),
			Book:       ref.Book,
			Chapter:    ref.Chapter,
			VerseStart: ref.VerseStart,
			VerseEnd:   ref.End(),
		})
	}

	return records, nil
}
