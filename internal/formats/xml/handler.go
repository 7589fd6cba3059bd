// Package xml provides the embedded markup parsers for scripture and
// commentary files. Documents are walked with XPath via core/xml.
package xml

import (
	"strconv"

	"github.com/FocuswithJustin/VerseLoom/core/errors"
	"github.com/FocuswithJustin/VerseLoom/core/ir"
	corexml "github.com/FocuswithJustin/VerseLoom/core/xml"
	"github.com/FocuswithJustin/VerseLoom/internal/formats"
	"github.com/FocuswithJustin/VerseLoom/internal/logging"
)

func init() {
	formats.RegisterScripture(formats.FormatXML, func(c formats.Cleaners) formats.ScriptureParser {
		return &ScriptureParser{cleaners: c}
	})
	formats.RegisterCommentary(formats.FormatXML, func(c formats.Cleaners) formats.CommentaryParser {
		return &CommentaryParser{cleaners: c}
	})
}

// ScriptureParser parses markup scripture files shaped as
// book/chapter/verse elements with name and number attributes.
type ScriptureParser struct {
	cleaners formats.Cleaners
}

// Parse walks book > chapter > verse elements. A missing or non-numeric
// attribute is fatal for that element only: the element is skipped and its
// siblings still parse.
func (p *ScriptureParser) Parse(data []byte, translationID string) (*ir.Corpus, error) {
	corpus := ir.NewCorpus(translationID)

	doc, err := corexml.Parse(data)
	if err != nil {
		return corpus, errors.NewParse("XML", translationID, err.Error())
	}

	books, err := doc.XPath("//book")
	if err != nil {
		return corpus, errors.NewParse("XML", translationID, err.Error())
	}

	for _, book := range books {
		name := ir.NormalizeBookName(book.Attr("name"))
		if name == "" {
			logging.ParseIssue("XML", translationID, errors.NewValidation("book/@name", "missing"))
			continue
		}

		chapters, _ := book.XPath("chapter")
		for _, chapter := range chapters {
			chapterNum, err := strconv.Atoi(chapter.Attr("number"))
			if err != nil || chapterNum <= 0 {
				logging.ParseIssue("XML", translationID, errors.NewValidation("chapter/@number", "missing or not a positive integer"))
				continue
			}

			verses, _ := chapter.XPath("verse")
			for _, verse := range verses {
				verseNum, err := strconv.Atoi(verse.Attr("number"))
				if err != nil || verseNum <= 0 {
					logging.ParseIssue("XML", translationID, errors.NewValidation("verse/@number", "missing or not a positive integer"))
					continue
				}

				key := ir.VerseKey{Book: name, Chapter: chapterNum, Verse: verseNum}
				corpus.Set(key, p.cleaners.Scripture.Clean(verse.Text()))
			}
		}
	}

	return corpus, nil
}

// CommentaryParser parses markup commentary files: one record per entry
// element.
type CommentaryParser struct {
	cleaners formats.Cleaners
}

// Parse builds one record per entry element. A missing content sub-element
// skips that entry only. The tradition attribute defaults to "unknown"; the
// optional reference sub-element supplies book/chapter/verse_start/verse_end
// (verse_end defaults to verse_start); the optional author sub-element
// supplies the author name and a year attribute.
func (p *CommentaryParser) Parse(data []byte, sourceID string) ([]ir.CommentaryRecord, error) {
	records := []ir.CommentaryRecord{}

	doc, err := corexml.Parse(data)
	if err != nil {
		return records, errors.NewParse("XML", sourceID, err.Error())
	}

	entries, err := doc.XPath("//entry")
	if err != nil {
		return records, errors.NewParse("XML", sourceID, err.Error())
	}

	for _, entry := range entries {
		content, _ := entry.XPathFirst("content")
		if content == nil {
			logging.ParseIssue("XML", sourceID, errors.NewValidation("entry/content", "missing"))
			continue
		}

		record := ir.CommentaryRecord{
			Source:    sourceID,
			Content:   p.cleaners.Commentary.Clean(content.Text()),
			Tradition: entry.Attr("tradition"),
		}
		if record.Tradition == "" {
			record.Tradition = "unknown"
		}

		if ref, _ := entry.XPathFirst("reference"); ref != nil {
			record.Book = ir.NormalizeBookName(ref.Attr("book"))
			record.Chapter = atoiOrZero(ref.Attr("chapter"))
			record.VerseStart = atoiOrZero(ref.Attr("verse_start"))
			record.VerseEnd = atoiOrZero(ref.Attr("verse_end"))
			if record.VerseEnd == 0 {
				record.VerseEnd = record.VerseStart
			}
		}

		if author, _ := entry.XPathFirst("author"); author != nil {
			record.Author = author.Text()
			record.Year = atoiOrZero(author.Attr("year"))
		}

		records = append(records, record)
	}

	return records, nil
}

// atoiOrZero parses a numeric attribute, zero when absent or malformed.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
