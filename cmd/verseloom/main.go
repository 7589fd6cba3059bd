// Command verseloom is the CLI for the scripture preprocessing pipeline.
// It ingests raw bible and commentary files, normalizes the text, and
// writes canonical JSON artifacts plus a verse-aligned dataset.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/VerseLoom/internal/config"
	"github.com/FocuswithJustin/VerseLoom/internal/logging"
	"github.com/FocuswithJustin/VerseLoom/internal/pipeline"
	"github.com/FocuswithJustin/VerseLoom/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for verseloom.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Configuration file (YAML or JSON)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (json, text)"`

	Run     RunCmd     `cmd:"" help:"Run the full pipeline (ingest, align, persist)"`
	Align   AlignCmd   `cmd:"" help:"Ingest and write only the verse-aligned dataset"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// RunCmd runs the full pipeline over a raw-data directory.
type RunCmd struct {
	RawDir       string   `name:"raw-dir" help:"Raw data directory (contains bibles/ and commentaries/)" type:"path"`
	ProcessedDir string   `name:"processed-dir" help:"Output directory for artifacts" type:"path"`
	Terms        []string `name:"term" help:"Protected term, repeatable (overrides defaults)"`
	NoTerms      bool     `name:"no-terms" help:"Disable protected-term preservation"`
	Compress     bool     `name:"compress" help:"Write artifacts xz-compressed"`
	SQLite       string   `name:"sqlite" help:"Also export to a SQLite database at this path" type:"path"`
}

func (c *RunCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override the file.
	if c.RawDir != "" {
		cfg.RawDataDir = c.RawDir
	}
	if c.ProcessedDir != "" {
		cfg.ProcessedDataDir = c.ProcessedDir
	}
	if len(c.Terms) > 0 {
		cfg.ProtectedTerms = c.Terms
	}
	if c.NoTerms {
		cfg.NoProtectedTerms = true
	}
	if c.Compress {
		cfg.Compress = true
	}
	if c.SQLite != "" {
		cfg.SQLitePath = c.SQLite
	}

	initLogging(cfg)

	result, err := pipeline.New(cfg).Run()
	if err != nil {
		return err
	}

	logging.Info("run_complete",
		"run_id", result.RunID,
		"translations", len(result.Translations),
		"sources", len(result.Sources),
		"verses", result.Verses,
		"artifacts", len(result.Artifacts))

	fmt.Printf("Run %s complete: %d translations, %d sources, %d aligned verses\n",
		result.RunID, len(result.Translations), len(result.Sources), result.Verses)
	for _, path := range result.Artifacts {
		fmt.Printf("  %s\n", path)
	}
	return nil
}

// AlignCmd runs ingest and align only, without the per-source artifacts.
type AlignCmd struct {
	RawDir       string `name:"raw-dir" help:"Raw data directory (contains bibles/ and commentaries/)" type:"path"`
	ProcessedDir string `name:"processed-dir" help:"Output directory for the aligned dataset" type:"path"`
	Compress     bool   `name:"compress" help:"Write the dataset xz-compressed"`
}

func (c *AlignCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.RawDir != "" {
		cfg.RawDataDir = c.RawDir
	}
	if c.ProcessedDir != "" {
		cfg.ProcessedDataDir = c.ProcessedDir
	}
	if c.Compress {
		cfg.Compress = true
	}

	initLogging(cfg)

	result, err := pipeline.New(cfg).RunAlign()
	if err != nil {
		return err
	}

	fmt.Printf("Aligned %d verses across %d translations and %d sources\n",
		result.Verses, len(result.Translations), len(result.Sources))
	for _, path := range result.Artifacts {
		fmt.Printf("  %s\n", path)
	}
	return nil
}

// VersionCmd prints version and build information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("verseloom version %s (sqlite driver: %s)\n", version, store.DriverType())
	return nil
}

// loadConfig reads the config file if one was given, otherwise defaults.
func loadConfig() (config.Config, error) {
	if CLI.Config == "" {
		return config.Default(), nil
	}
	return config.Load(CLI.Config)
}

// initLogging applies the effective logging settings, global flags winning
// over the config file.
func initLogging(cfg config.Config) {
	level := cfg.LogLevel
	if CLI.LogLevel != "" {
		level = CLI.LogLevel
	}
	format := cfg.LogFormat
	if CLI.LogFormat != "" {
		format = CLI.LogFormat
	}
	logging.InitLogger(logging.ParseLevel(level), logging.ParseFormat(format))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("verseloom"),
		kong.Description("VerseLoom - Scripture and commentary preprocessing pipeline"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
