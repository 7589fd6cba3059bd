// Package csv provides the embedded tabular commentary parser. The first
// row is a header mapping field names to columns; every data row becomes
// one record stamped with the source identifier.
package csv

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/VerseLoom/core/errors"
	"github.com/FocuswithJustin/VerseLoom/core/ir"
	"github.com/FocuswithJustin/VerseLoom/internal/formats"
)

func init() {
	formats.RegisterCommentary(formats.FormatCSV, func(c formats.Cleaners) formats.CommentaryParser {
		return &CommentaryParser{cleaners: c}
	})
}

// CommentaryParser parses tabular commentary files.
type CommentaryParser struct {
	cleaners formats.Cleaners
}

// Parse reads rows as field-name-to-value records. A content field, when
// present, is cleaned. Unparseable files yield an empty list plus a
// reported error.
func (p *CommentaryParser) Parse(data []byte, sourceID string) ([]ir.CommentaryRecord, error) {
	records := []ir.CommentaryRecord{}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return records, errors.NewParse("CSV", sourceID, err.Error())
	}
	if len(rows) < 2 {
		return records, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, row := range rows[1:] {
		field := func(name string) string {
			i, ok := header[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		record := ir.CommentaryRecord{
			Source:       sourceID,
			Book:         ir.NormalizeBookName(field("book")),
			Chapter:      atoiOrZero(field("chapter")),
			VerseStart:   atoiOrZero(field("verse_start")),
			VerseEnd:     atoiOrZero(field("verse_end")),
			Author:       field("author"),
			Year:         atoiOrZero(field("year")),
			Tradition:    field("tradition"),
			RawReference: field("reference"),
		}
		if record.VerseEnd == 0 {
			record.VerseEnd = record.VerseStart
		}
		if content := field("content"); content != "" {
			record.Content = p.cleaners.Commentary.Clean(content)
		}

		records = append(records, record)
	}

	return records, nil
}

// atoiOrZero parses a numeric field, zero when absent or malformed.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
