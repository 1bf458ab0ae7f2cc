// Package cli implements the tally command-line interface.
//
// This package provides commands for building grid compositions, normalizing
// them into layered diagrams, binding parameterized circuits, and rendering
// any saved artifact. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compose: Build a grid composition from notation, a file, or a random generator
//   - diagram: Normalize a composition into a layered diagram
//   - circuit: Run the full pipeline and bind a parameterized circuit
//   - render: Render a saved artifact (composition, diagram, or circuit) to DOT/SVG/PNG
//   - cache: Manage the local artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// shared with the pipeline runner, so stage timings appear alongside CLI
// output.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/toumix/tally/pkg/buildinfo"
	"github.com/toumix/tally/pkg/cache"
	"github.com/toumix/tally/pkg/errors"
	"github.com/toumix/tally/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tally"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tally",
		Short:        "Tally composes grids into quantum circuits",
		Long:         `Tally is a CLI tool for composing 2-D grids, normalizing them into layered string diagrams, and binding the diagrams to parameterized quantum circuits.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.composeCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.circuitCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tally/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Source Flags
// =============================================================================

// sourceFlags holds the flags shared by every command that builds a
// composition: compose, diagram, and circuit all accept the same three
// sources (notation, JSON file, random generator).
type sourceFlags struct {
	expression string
	random     bool
	seed       uint64
	minDepth   int
	maxDepth   int
}

// addSourceFlags registers the shared source flags on cmd.
func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVarP(&f.expression, "expression", "e", "", `grid notation, e.g. "((e|e)&(e|e))"`)
	cmd.Flags().BoolVar(&f.random, "random", false, "generate a random grid")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "seed for --random and --random-params")
	cmd.Flags().IntVar(&f.minDepth, "min-depth", 0, "minimum nesting depth for --random")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth for --random")
}

// options translates the flags and an optional positional file argument into
// pipeline options. Source validation happens in the pipeline.
func (f *sourceFlags) options(args []string) pipeline.Options {
	opts := pipeline.Options{
		Expression: f.expression,
		Random:     f.random,
		Seed:       f.seed,
		MinDepth:   f.minDepth,
		MaxDepth:   f.maxDepth,
	}
	if len(args) > 0 {
		opts.InputPath = args[0]
	}
	return opts
}

// =============================================================================
// Format Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice,
// defaulting to fallback when empty.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	return strings.Split(s, ",")
}

// validateFormats checks the requested formats against the set a command
// supports. Commands differ: compose has no QASM, render has no JSON.
func validateFormats(formats []string, allowed ...string) error {
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// artifactBase derives the base path for artifact files. An explicit output
// path wins, with any known format extension stripped so multiple formats
// can share it. Otherwise the base derives from the input file, suffixed
// with the artifact kind so outputs never clobber their input. An empty
// kind leaves the input base bare, for commands whose outputs cannot
// collide with their input. With no input the kind alone is the base.
func artifactBase(output, input, kind string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if kind != "" {
			base += "." + kind
		}
		return base
	}
	return kind
}

// writeArtifact writes one artifact file and prints its path.
func writeArtifact(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
