// Package json provides the embedded JSON parsers for scripture and
// commentary files. Two scripture shapes are accepted: an object with a
// "books" array of nested book/chapter/verse objects, or a bare three-level
// {book: {chapter: {verse: text}}} mapping. Shape is auto-detected by the
// presence of a "books" key.
package json

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/FocuswithJustin/VerseLoom/core/errors"
	"github.com/FocuswithJustin/VerseLoom/core/ir"
	"github.com/FocuswithJustin/VerseLoom/internal/formats"
	"github.com/FocuswithJustin/VerseLoom/internal/logging"
)

func init() {
	formats.RegisterScripture(formats.FormatJSON, func(c formats.Cleaners) formats.ScriptureParser {
		return &ScriptureParser{cleaners: c}
	})
	formats.RegisterCommentary(formats.FormatJSON, func(c formats.Cleaners) formats.CommentaryParser {
		return &CommentaryParser{cleaners: c}
	})
}

type jsonBook struct {
	Name     string        `json:"name"`
	Chapters []jsonChapter `json:"chapters"`
}

type jsonChapter struct {
	Number int         `json:"number"`
	Verses []jsonVerse `json:"verses"`
}

type jsonVerse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// ScriptureParser parses JSON scripture files.
type ScriptureParser struct {
	cleaners formats.Cleaners
}

// Parse decodes either supported shape into a corpus. Malformed JSON yields
// an empty corpus plus a reported error; the run continues.
func (p *ScriptureParser) Parse(data []byte, translationID string) (*ir.Corpus, error) {
	corpus := ir.NewCorpus(translationID)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return corpus, errors.NewParse("JSON", translationID, err.Error())
	}

	if booksRaw, ok := raw["books"]; ok {
		var books []jsonBook
		if err := json.Unmarshal(booksRaw, &books); err != nil {
			return corpus, errors.NewParse("JSON", translationID, err.Error())
		}
		p.fromBooks(corpus, books, translationID)
		return corpus, nil
	}

	p.fromNested(corpus, raw, translationID)
	return corpus, nil
}

// fromBooks handles the {"books": [...]} shape.
func (p *ScriptureParser) fromBooks(corpus *ir.Corpus, books []jsonBook, translationID string) {
	for _, book := range books {
		name := ir.NormalizeBookName(book.Name)
		if name == "" {
			logging.ParseIssue("JSON", translationID, errors.NewValidation("book.name", "missing"))
			continue
		}
		for _, chapter := range book.Chapters {
			if chapter.Number <= 0 {
				logging.ParseIssue("JSON", translationID, errors.NewValidation("chapter.number", "not a positive integer"))
				continue
			}
			for _, verse := range chapter.Verses {
				if verse.Number <= 0 {
					logging.ParseIssue("JSON", translationID, errors.NewValidation("verse.number", "not a positive integer"))
					continue
				}
				key := ir.VerseKey{Book: name, Chapter: chapter.Number, Verse: verse.Number}
				corpus.Set(key, p.cleaners.Scripture.Clean(verse.Text))
			}
		}
	}
}

// fromNested handles the bare {book: {chapter: {verse: text}}} shape.
func (p *ScriptureParser) fromNested(corpus *ir.Corpus, raw map[string]json.RawMessage, translationID string) {
	for bookName, chaptersRaw := range raw {
		var chapters map[string]map[string]string
		if err := json.Unmarshal(chaptersRaw, &chapters); err != nil {
			logging.ParseIssue("JSON", translationID, errors.NewParse("JSON", translationID, "book "+bookName+": "+err.Error()))
			continue
		}

		name := ir.NormalizeBookName(bookName)
		for chapterKey, verses := range chapters {
			chapterNum, err := strconv.Atoi(chapterKey)
			if err != nil || chapterNum <= 0 {
				logging.ParseIssue("JSON", translationID, errors.NewValidation("chapter", "key "+chapterKey+" is not a positive integer"))
				continue
			}
			for verseKey, text := range verses {
				verseNum, err := strconv.Atoi(verseKey)
				if err != nil || verseNum <= 0 {
					logging.ParseIssue("JSON", translationID, errors.NewValidation("verse", "key "+verseKey+" is not a positive integer"))
					continue
				}
				key := ir.VerseKey{Book: name, Chapter: chapterNum, Verse: verseNum}
				corpus.Set(key, p.cleaners.Scripture.Clean(text))
			}
		}
	}
}

// CommentaryParser parses JSON commentary files: a bare array of record
// objects or an object with an "entries" array.
type CommentaryParser struct {
	cleaners formats.Cleaners
}

// Parse decodes the records, stamps each with the source identifier, and
// cleans content. Malformed JSON yields an empty list plus a reported error.
func (p *CommentaryParser) Parse(data []byte, sourceID string) ([]ir.CommentaryRecord, error) {
	records := []ir.CommentaryRecord{}

	var items []ir.CommentaryRecord
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return records, errors.NewParse("JSON", sourceID, err.Error())
		}
	} else {
		var wrapper struct {
			Entries []ir.CommentaryRecord `json:"entries"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return records, errors.NewParse("JSON", sourceID, err.Error())
		}
		items = wrapper.Entries
	}

	for _, item := range items {
		item.Source = sourceID
		item.Book = ir.NormalizeBookName(item.Book)
		if item.Content != "" {
			item.Content = p.cleaners.Commentary.Clean(item.Content)
		}
		if item.VerseEnd == 0 {
			item.VerseEnd = item.VerseStart
		}
		records = append(records, item)
	}

	return records, nil
}
