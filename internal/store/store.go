// Package store is the persistence layer: it writes canonical scripture and
// commentary structures and the aligned dataset to the processed-data
// directory, keyed by translation/source identifier. It is purely a
// serialization boundary; nothing here owns pipeline logic.
package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/VerseLoom/core/align"
	"github.com/FocuswithJustin/VerseLoom/core/errors"
	"github.com/FocuswithJustin/VerseLoom/core/ir"
	"github.com/FocuswithJustin/VerseLoom/internal/logging"
)

// Artifact records one file written to the processed store, with hashes for
// later integrity verification.
type Artifact struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	SHA256     string `json:"sha256"`
	BLAKE3     string `json:"blake3"`
	SizeBytes  int64  `json:"size_bytes"`
	Compressed bool   `json:"compressed,omitempty"`
}

// Manifest describes one pipeline run's processed artifacts.
type Manifest struct {
	RunID     string     `json:"run_id"`
	CreatedAt time.Time  `json:"created_at"`
	Artifacts []Artifact `json:"artifacts"`
}

// Store writes processed artifacts under a single root directory.
type Store struct {
	root      string
	compress  bool
	runID     string
	artifacts []Artifact
}

// NewStore creates the processed-data directory and a store rooted there.
// With compress set, JSON and CSV payloads are written xz-compressed.
func NewStore(root string, compress bool) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.NewIO("create", root, err)
	}
	return &Store{
		root:     root,
		compress: compress,
		runID:    uuid.NewString(),
	}, nil
}

// RunID returns the unique identifier of this store's run.
func (s *Store) RunID() string {
	return s.runID
}

// SaveScripture writes one translation's corpus as canonical
// {book: {chapter: {verse: text}}} JSON named by translation identifier.
func (s *Store) SaveScripture(corpus *ir.Corpus) (string, error) {
	payload, err := json.MarshalIndent(corpus.Nested(), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding scripture")
	}
	name := "bible_" + strings.ToLower(corpus.TranslationID) + ".json"
	return s.writeArtifact(name, "scripture", payload)
}

// SaveCommentary writes one source's records as a JSON array named by
// source identifier.
func (s *Store) SaveCommentary(sourceID string, records []ir.CommentaryRecord) (string, error) {
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding commentary")
	}
	name := "commentary_" + strings.ReplaceAll(strings.ToLower(sourceID), " ", "_") + ".json"
	return s.writeArtifact(name, "commentary", payload)
}

// SaveAligned writes the verse-aligned dataset as a delimited file.
func (s *Store) SaveAligned(table *align.Table) (string, error) {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		return "", errors.Wrap(err, "encoding aligned dataset")
	}
	return s.writeArtifact("verse_aligned_dataset.csv", "aligned", buf.Bytes())
}

// WriteManifest writes the run manifest listing every artifact written so
// far, with SHA-256 and BLAKE3 hashes of the on-disk bytes.
func (s *Store) WriteManifest() (string, error) {
	manifest := Manifest{
		RunID:     s.runID,
		CreatedAt: time.Now().UTC(),
		Artifacts: s.artifacts,
	}
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding manifest")
	}

	path := filepath.Join(s.root, "manifest.json")
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", errors.NewIO("write", path, err)
	}
	return path, nil
}

// writeArtifact writes one payload, compressing when configured, and
// records its hashes in the manifest list.
func (s *Store) writeArtifact(name, kind string, payload []byte) (string, error) {
	if s.compress {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return "", errors.Wrap(err, "creating xz writer")
		}
		if _, err := w.Write(payload); err != nil {
			return "", errors.Wrap(err, "compressing artifact")
		}
		if err := w.Close(); err != nil {
			return "", errors.Wrap(err, "finishing xz stream")
		}
		payload = buf.Bytes()
		name += ".xz"
	}

	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", errors.NewIO("write", path, err)
	}

	sum := sha256.Sum256(payload)
	b3 := blake3.Sum256(payload)
	s.artifacts = append(s.artifacts, Artifact{
		Name:       name,
		Kind:       kind,
		SHA256:     hex.EncodeToString(sum[:]),
		BLAKE3:     hex.EncodeToString(b3[:]),
		SizeBytes:  int64(len(payload)),
		Compressed: s.compress,
	})

	logging.ArtifactWritten(path, int64(len(payload)), "kind", kind)
	return path, nil
}
