package store

import (
	"database/sql"

	"github.com/FocuswithJustin/VerseLoom/core/errors"
	"github.com/FocuswithJustin/VerseLoom/core/ir"
)

// SQLiteStore is an optional queryable processed store: verses and
// commentary records land in two tables keyed the same way as the JSON
// artifacts. The driver is selected at build time (pure Go by default,
// mattn/go-sqlite3 with -tags cgo_sqlite).
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS verses (
	translation TEXT NOT NULL,
	book        TEXT NOT NULL,
	chapter     INTEGER NOT NULL,
	verse       INTEGER NOT NULL,
	text        TEXT NOT NULL,
	PRIMARY KEY (translation, book, chapter, verse)
);
CREATE TABLE IF NOT EXISTS commentary (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source      TEXT NOT NULL,
	book        TEXT,
	chapter     INTEGER,
	verse_start INTEGER,
	verse_end   INTEGER,
	author      TEXT,
	year        INTEGER,
	tradition   TEXT,
	reference   TEXT,
	content     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS commentary_ref ON commentary (source, book, chapter, verse_start);
`

// DriverType returns "purego" or "cgo" depending on the build.
func DriverType() string {
	return driverType
}

// OpenSQLite opens (or creates) the SQLite processed store at path and
// ensures the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &SQLiteStore{db: db}, nil
}

// PutCorpus upserts every verse of one translation.
func (s *SQLiteStore) PutCorpus(corpus *ir.Corpus) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO verses (translation, book, chapter, verse, text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for _, key := range corpus.Keys() {
		text, _ := corpus.Get(key)
		if _, err := stmt.Exec(corpus.TranslationID, key.Book, key.Chapter, key.Verse, text); err != nil {
			return errors.Wrapf(err, "inserting %s", key.Reference())
		}
	}

	return tx.Commit()
}

// PutCommentary replaces one source's records. Unresolvable records are
// stored too; nullable columns stay NULL for absent reference fields.
func (s *SQLiteStore) PutCommentary(sourceID string, records []ir.CommentaryRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM commentary WHERE source = ?`, sourceID); err != nil {
		return errors.Wrap(err, "clearing source")
	}

	stmt, err := tx.Prepare(`INSERT INTO commentary (source, book, chapter, verse_start, verse_end, author, year, tradition, reference, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(sourceID,
			nullString(r.Book), nullInt(r.Chapter), nullInt(r.VerseStart), nullInt(r.VerseEnd),
			nullString(r.Author), nullInt(r.Year), nullString(r.Tradition), nullString(r.RawReference),
			r.Content); err != nil {
			return errors.Wrap(err, "inserting record")
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
