// Package align implements the alignment engine: the join of all scripture
// corpora and commentary sources into one table keyed by VerseKey.
package align

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/VerseLoom/core/ir"
)

// Row is one aligned verse: the key, its display reference, one text per
// translation and one concatenated commentary string per source, both
// parallel to the Table's column slices.
type Row struct {
	Key        ir.VerseKey
	Reference  string
	Texts      []string
	Commentary []string
}

// Table is the verse-aligned dataset. Column order follows the input order
// of corpora and commentary sets, so the output is deterministic for a
// fixed input order.
type Table struct {
	Translations []string
	Sources      []string
	Rows         []Row
}

// Align joins the corpora and commentary sets on the union of all verse
// keys. Inputs are read-only: the engine never mutates a corpus or a record
// set and owns the table it returns.
//
// Keys appear in insertion order of first encounter across the corpora. A
// translation with no text for a key contributes an empty string, never an
// error. Commentary lookup uses a pre-built per-source index expanded from
// record ranges, so the join is O(total verses x number of sources) rather
// than a rescan of every record list per row.
func Align(corpora []*ir.Corpus, commentaries []ir.CommentarySet) *Table {
	table := &Table{}
	for _, corpus := range corpora {
		table.Translations = append(table.Translations, corpus.TranslationID)
	}
	for _, set := range commentaries {
		table.Sources = append(table.Sources, set.SourceID)
	}

	// Union of all verse keys, first encounter wins the position.
	seen := make(map[ir.VerseKey]bool)
	var keys []ir.VerseKey
	for _, corpus := range corpora {
		for _, key := range corpus.Keys() {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	indices := make([]map[ir.VerseKey][]string, len(commentaries))
	for i, set := range commentaries {
		indices[i] = indexRecords(set.Records)
	}

	table.Rows = make([]Row, 0, len(keys))
	for _, key := range keys {
		row := Row{
			Key:        key,
			Reference:  key.Reference(),
			Texts:      make([]string, len(corpora)),
			Commentary: make([]string, len(commentaries)),
		}
		for i, corpus := range corpora {
			text, ok := corpus.Get(key)
			if ok {
				row.Texts[i] = text
			}
		}
		for i := range commentaries {
			row.Commentary[i] = strings.Join(indices[i][key], "; ")
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// indexRecords expands each resolvable record's [VerseStart, VerseEnd]
// range into per-key content lists, in record order. Records without a
// resolvable reference are excluded from the index; the caller's record
// store still retains them.
func indexRecords(records []ir.CommentaryRecord) map[ir.VerseKey][]string {
	index := make(map[ir.VerseKey][]string)
	for _, record := range records {
		if !record.Resolvable() {
			continue
		}
		for verse := record.VerseStart; verse <= record.End(); verse++ {
			key := ir.VerseKey{Book: record.Book, Chapter: record.Chapter, Verse: verse}
			index[key] = append(index[key], record.Content)
		}
	}
	return index
}

// Header returns the CSV header row: the fixed columns followed by one
// text column per translation and one commentary column per source.
func (t *Table) Header() []string {
	header := []string{"book", "chapter", "verse", "reference"}
	for _, translation := range t.Translations {
		header = append(header, "text_"+translation)
	}
	for _, source := range t.Sources {
		header = append(header, "commentary_"+source)
	}
	return header
}

// WriteCSV writes the table as a delimited file with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, 0, len(t.Header()))
	for _, row := range t.Rows {
		record = record[:0]
		record = append(record,
			row.Key.Book,
			strconv.Itoa(row.Key.Chapter),
			strconv.Itoa(row.Key.Verse),
			row.Reference,
		)
		record = append(record, row.Texts...)
		record = append(record, row.Commentary...)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row %s: %w", row.Reference, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
