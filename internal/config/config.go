// Package config holds the explicit runtime configuration for a pipeline
// run. Every knob the pipeline honors lives here; nothing reads ambient
// state at processing time.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/VerseLoom/core/clean"
	"github.com/FocuswithJustin/VerseLoom/core/errors"
)

// Config is the full pipeline configuration.
type Config struct {
	// RawDataDir is the input root, expected to contain bibles/ and
	// commentaries/ subdirectories.
	RawDataDir string `yaml:"raw_data_dir" json:"raw_data_dir"`

	// ProcessedDataDir is where all artifacts are written.
	ProcessedDataDir string `yaml:"processed_data_dir" json:"processed_data_dir"`

	// ProtectedTerms are preserved verbatim through normalization.
	// When empty the default set is used; set NoProtectedTerms to run
	// with none at all.
	ProtectedTerms   []string `yaml:"protected_terms" json:"protected_terms"`
	NoProtectedTerms bool     `yaml:"no_protected_terms" json:"no_protected_terms"`

	// Compress writes artifacts xz-compressed.
	Compress bool `yaml:"compress" json:"compress"`

	// SQLitePath, when set, additionally exports verses and commentary
	// to a SQLite database at this path.
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		RawDataDir:       filepath.Join("data", "raw"),
		ProcessedDataDir: filepath.Join("data", "processed"),
		LogLevel:         "info",
		LogFormat:        "json",
	}
}

// Load reads a configuration file, YAML by default, JSON for .json paths,
// applying defaults for unset fields.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.NewIO("read", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, errors.NewValidation(path, err.Error())
	}

	return cfg, nil
}

// Terms resolves the effective protected-term set.
func (c Config) Terms() []string {
	if c.NoProtectedTerms {
		return nil
	}
	if len(c.ProtectedTerms) > 0 {
		return c.ProtectedTerms
	}
	return clean.DefaultProtectedTerms
}
