// Package pipeline is the batch driver: it discovers raw scripture and
// commentary files, dispatches each to its format parser, aligns the
// results, and persists every artifact through the store.
package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FocuswithJustin/VerseLoom/core/align"
	"github.com/FocuswithJustin/VerseLoom/core/errors"
	"github.com/FocuswithJustin/VerseLoom/core/ir"
	"github.com/FocuswithJustin/VerseLoom/internal/config"
	"github.com/FocuswithJustin/VerseLoom/internal/formats"
	_ "github.com/FocuswithJustin/VerseLoom/internal/formats/all"
	"github.com/FocuswithJustin/VerseLoom/internal/logging"
	"github.com/FocuswithJustin/VerseLoom/internal/store"
)

// Result summarizes one pipeline run.
type Result struct {
	RunID        string
	Translations []string
	Sources      []string
	Verses       int
	Artifacts    []string
}

// Pipeline drives one run over a raw-data directory.
type Pipeline struct {
	cfg      config.Config
	cleaners formats.Cleaners
}

// New builds a pipeline from configuration. The cleaner pair is built once
// and shared by every parser in the run.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		cleaners: formats.NewCleaners(cfg.Terms()),
	}
}

// Run executes the full pipeline: ingest, align, persist. A defective input
// file is logged and skipped; it never aborts the run. Run fails only when
// the store itself cannot be written.
func (p *Pipeline) Run() (*Result, error) {
	corpora := p.ingestScripture(filepath.Join(p.cfg.RawDataDir, "bibles"))
	commentaries := p.ingestCommentary(filepath.Join(p.cfg.RawDataDir, "commentaries"))

	table := align.Align(corpora, commentaries)

	st, err := store.NewStore(p.cfg.ProcessedDataDir, p.cfg.Compress)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:        st.RunID(),
		Translations: table.Translations,
		Sources:      table.Sources,
		Verses:       len(table.Rows),
	}

	for _, corpus := range corpora {
		path, err := st.SaveScripture(corpus)
		if err != nil {
			return nil, errors.Wrapf(err, "saving scripture %s", corpus.TranslationID)
		}
		result.Artifacts = append(result.Artifacts, path)
	}
	for _, set := range commentaries {
		path, err := st.SaveCommentary(set.SourceID, set.Records)
		if err != nil {
			return nil, errors.Wrapf(err, "saving commentary %s", set.SourceID)
		}
		result.Artifacts = append(result.Artifacts, path)
	}

	path, err := st.SaveAligned(table)
	if err != nil {
		return nil, errors.Wrap(err, "saving aligned dataset")
	}
	result.Artifacts = append(result.Artifacts, path)

	if p.cfg.SQLitePath != "" {
		if err := p.exportSQLite(corpora, commentaries); err != nil {
			return nil, errors.Wrap(err, "exporting sqlite")
		}
		result.Artifacts = append(result.Artifacts, p.cfg.SQLitePath)
	}

	manifestPath, err := st.WriteManifest()
	if err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}
	result.Artifacts = append(result.Artifacts, manifestPath)

	return result, nil
}

// RunAlign executes ingest and align only: it writes the aligned dataset
// and its manifest, skipping the per-source artifacts and the SQLite export.
func (p *Pipeline) RunAlign() (*Result, error) {
	corpora := p.ingestScripture(filepath.Join(p.cfg.RawDataDir, "bibles"))
	commentaries := p.ingestCommentary(filepath.Join(p.cfg.RawDataDir, "commentaries"))

	table := align.Align(corpora, commentaries)

	st, err := store.NewStore(p.cfg.ProcessedDataDir, p.cfg.Compress)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:        st.RunID(),
		Translations: table.Translations,
		Sources:      table.Sources,
		Verses:       len(table.Rows),
	}

	path, err := st.SaveAligned(table)
	if err != nil {
		return nil, errors.Wrap(err, "saving aligned dataset")
	}
	result.Artifacts = append(result.Artifacts, path)

	manifestPath, err := st.WriteManifest()
	if err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}
	result.Artifacts = append(result.Artifacts, manifestPath)

	return result, nil
}

// ingestScripture parses every recognizable file under dir into a corpus,
// one per file, in sorted path order. The translation identifier is the
// uppercased file stem.
func (p *Pipeline) ingestScripture(dir string) []*ir.Corpus {
	var corpora []*ir.Corpus
	for _, path := range listFiles(dir) {
		format := formats.DetectFormat(path)
		parser, ok := formats.ScriptureParserFor(format, p.cleaners)
		if !ok {
			logging.FileSkipped(path, "no scripture parser for format")
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logging.FileSkipped(path, err.Error())
			continue
		}

		id := strings.ToUpper(stem(path))
		corpus, err := parser.Parse(data, id)
		if err != nil {
			logging.ParseIssue(string(format), id, err)
		}
		if corpus == nil {
			logging.FileSkipped(path, "no corpus parsed")
			continue
		}

		// A zero-verse parse still keeps its translation: the empty
		// artifact and table column are part of the record of the run.
		logging.FileProcessed(path, "scripture", id, corpus.Len())
		corpora = append(corpora, corpus)
	}
	return corpora
}

// ingestCommentary parses every recognizable file under dir into a record
// set, one per file, in sorted path order. The source identifier is the
// file stem as-is.
func (p *Pipeline) ingestCommentary(dir string) []ir.CommentarySet {
	var sets []ir.CommentarySet
	for _, path := range listFiles(dir) {
		format := formats.DetectFormat(path)
		parser, ok := formats.CommentaryParserFor(format, p.cleaners)
		if !ok {
			logging.FileSkipped(path, "no commentary parser for format")
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logging.FileSkipped(path, err.Error())
			continue
		}

		id := stem(path)
		records, err := parser.Parse(data, id)
		if err != nil {
			logging.ParseIssue(string(format), id, err)
		}

		logging.FileProcessed(path, "commentary", id, len(records))
		sets = append(sets, ir.CommentarySet{SourceID: id, Records: records})
	}
	return sets
}

func (p *Pipeline) exportSQLite(corpora []*ir.Corpus, commentaries []ir.CommentarySet) error {
	db, err := store.OpenSQLite(p.cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, corpus := range corpora {
		if err := db.PutCorpus(corpus); err != nil {
			return err
		}
	}
	for _, set := range commentaries {
		if err := db.PutCommentary(set.SourceID, set.Records); err != nil {
			return err
		}
	}
	return nil
}

// listFiles returns the regular files directly under dir in sorted order.
// A missing directory is not an error; it just yields nothing.
func listFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("read_dir_failed", "path", dir, "error", err.Error())
		}
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths
}

// stem returns the file name without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
