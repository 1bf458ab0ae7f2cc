// Package pipeline provides the core circuit-generation pipeline for tally.
//
// This package implements the complete compose → normalize → bind → export
// pipeline used by the CLI. By centralizing this logic, every entry point
// gets the same staging, caching, and accounting behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Compose: Build a composition from notation, a JSON file, or a seed
//  2. Normalize: Serialize the composition tree into a layered diagram
//  3. Bind: Apply an ansatz functor, turning boxes into gates
//  4. Export: Encode the circuit in the requested output formats
//
// Normalization and binding are pure, so their results are memoized through
// a [cache.Cache] keyed by content hashes. Each stage can also be run
// independently.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Expression: "((e|e)&(e|e))",
//	    Formats:    []string{"qasm"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	qasm := result.Artifacts["qasm"]
//
// Run individual stages:
//
//	cell, err := runner.Compose(ctx, opts)
//	d, err := runner.Normalize(ctx, cell, opts)
//	c, err := runner.Bind(ctx, d, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/errors"
	"github.com/toumix/tally/pkg/functor"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

// DefaultSeed is the default random seed for reproducibility.
const DefaultSeed = uint64(42)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatQASM = "qasm"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatQASM: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the circuit pipeline.
// This struct supports JSON serialization for recorded runs.
type Options struct {
	// Compose options: exactly one source must be set.
	Expression string `json:"expression,omitempty"` // grid notation, e.g. ((e|e)&(e|e))
	InputPath  string `json:"input_path,omitempty"` // composition JSON file
	Random     bool   `json:"random,omitempty"`     // generate a seeded random grid

	// Random-generation knobs. Seed also feeds RandomParams.
	Seed     uint64 `json:"seed,omitempty"`
	MinDepth int    `json:"min_depth,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty"`

	// Bind options. Zeros are bound when neither Params nor RandomParams
	// is set.
	Profile      string    `json:"profile,omitempty"` // ansatz profile TOML path
	Params       []float64 `json:"params,omitempty"`
	RandomParams bool      `json:"random_params,omitempty"` // uniform draws from [0, 2π)

	// Export options
	Formats []string `json:"formats,omitempty"`

	// Refresh skips cache reads so every stage recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Ansatz functor.Ansatz `json:"-"` // overrides Profile when set; bypasses the circuit cache

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Composition is the grid the run started from.
	Composition *composition.Cell

	// Diagram is the normalized form.
	Diagram *diagram.Diagram

	// DiagramHash is the content hash of the diagram.
	DiagramHash string

	// Circuit is the bound output.
	Circuit *circuit.Circuit

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width         int
	Height        int
	Layers        int
	Gates         int
	NParams       int
	ComposeTime   time.Duration
	NormalizeTime time.Duration
	BindTime      time.Duration
	ExportTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DiagramHit  bool // Whether the normalized diagram came from cache
	CircuitHit  bool // Whether the bound circuit came from cache
	ArtifactHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, qasm, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCompose(); err != nil {
		return err
	}
	if err := o.ValidateForBind(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCompose checks required fields for the compose stage.
func (o *Options) ValidateForCompose() error {
	sources := 0
	for _, set := range []bool{o.Expression != "", o.InputPath != "", o.Random} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"an expression, an input path, or random generation is required")
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"expression, input path, and random generation are mutually exclusive")
	}
	if o.MinDepth < 0 || o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"depth bounds must not be negative, got min %d max %d", o.MinDepth, o.MaxDepth)
	}
	if o.MaxDepth > 0 && o.MinDepth > o.MaxDepth {
		return errors.New(errors.ErrCodeInvalidInput,
			"min depth %d exceeds max depth %d", o.MinDepth, o.MaxDepth)
	}

	// Compose defaults
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// ValidateForBind checks required fields for the bind stage.
func (o *Options) ValidateForBind() error {
	if o.Params != nil && o.RandomParams {
		return errors.New(errors.ErrCodeInvalidInput,
			"params and random params are mutually exclusive")
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetExportDefaults sets default values for the export stage.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatQASM}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for the export stage.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	return ValidateFormats(o.Formats)
}

// Source names where the composition comes from: "expression", "json", or
// "random".
func (o *Options) Source() string {
	switch {
	case o.Expression != "":
		return "expression"
	case o.InputPath != "":
		return "json"
	default:
		return "random"
	}
}

// randomOptions translates the depth knobs for composition.Random. Zero
// knobs mean library defaults.
func (o *Options) randomOptions() *composition.RandomOptions {
	if o.MinDepth == 0 && o.MaxDepth == 0 {
		return nil
	}
	return &composition.RandomOptions{MinDepth: o.MinDepth, MaxDepth: o.MaxDepth}
}
