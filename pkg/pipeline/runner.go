package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toumix/tally/pkg/cache"
	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete compose → normalize → bind → export pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Compose
	composeStart := time.Now()
	cell, err := r.Compose(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Composition = cell
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.Width = cell.Width()
	result.Stats.Height = cell.Height()

	r.Logger.Info("composed grid",
		"source", opts.Source(),
		"width", cell.Width(),
		"height", cell.Height(),
		"duration", result.Stats.ComposeTime)

	// Stage 2: Normalize
	normalizeStart := time.Now()
	d, diagramHit, err := r.NormalizeWithCacheInfo(ctx, cell, opts)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	result.Diagram = d
	result.Stats.NormalizeTime = time.Since(normalizeStart)
	result.Stats.Layers = d.LayerCount()
	result.CacheInfo.DiagramHit = diagramHit

	// Compute the diagram hash for downstream cache keys
	if data, err := json.Marshal(d); err == nil {
		result.DiagramHash = cache.Hash(data)
	}

	r.Logger.Info("normalized diagram",
		"layers", d.LayerCount(),
		"boxes", d.BoxCount(),
		"duration", result.Stats.NormalizeTime)

	// Stage 3: Bind
	bindStart := time.Now()
	c, circuitHit, err := r.BindWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	result.Circuit = c
	result.Stats.BindTime = time.Since(bindStart)
	result.Stats.Gates = c.GateCount()
	result.Stats.NParams = len(c.Params())
	result.CacheInfo.CircuitHit = circuitHit

	r.Logger.Info("bound circuit",
		"gates", c.GateCount(),
		"qubits", c.Qubits(),
		"duration", result.Stats.BindTime)

	// Stage 4: Export
	exportStart := time.Now()
	artifacts, artifactHit, err := r.ExportWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ArtifactHit = artifactHit

	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Compose builds the source composition from the configured input.
func (r *Runner) Compose(ctx context.Context, opts Options) (*composition.Cell, error) {
	if err := opts.ValidateForCompose(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnComposeStart(ctx, opts.Source())

	cell, err := compose(opts)

	var w, h int
	if cell != nil {
		w, h = cell.Width(), cell.Height()
	}
	observability.Pipeline().OnComposeComplete(ctx, opts.Source(), w, h, time.Since(start), err)
	return cell, err
}

// NormalizeWithCacheInfo serializes a composition into a diagram with
// caching and returns cache hit info.
func (r *Runner) NormalizeWithCacheInfo(ctx context.Context, cell *composition.Cell, opts Options) (*diagram.Diagram, bool, error) {
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnNormalizeStart(ctx, cell.Width(), cell.Height())

	d, hit, err := r.normalize(ctx, cell, opts)

	layers := 0
	if d != nil {
		layers = d.LayerCount()
	}
	observability.Pipeline().OnNormalizeComplete(ctx, layers, time.Since(start), err)
	return d, hit, err
}

func (r *Runner) normalize(ctx context.Context, cell *composition.Cell, opts Options) (*diagram.Diagram, bool, error) {
	cacheKey := r.Keyer.DiagramKey(cell.Key())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var d diagram.Diagram
			if err := json.Unmarshal(data, &d); err == nil {
				return &d, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	d, err := diagram.FromComposition(cell)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(d); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDiagram)
	}

	return d, false, nil // Cache miss
}

// Normalize is a convenience wrapper that calls NormalizeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Normalize(ctx context.Context, cell *composition.Cell, opts Options) (*diagram.Diagram, error) {
	d, _, err := r.NormalizeWithCacheInfo(ctx, cell, opts)
	return d, err
}

// BindWithCacheInfo applies the configured ansatz with caching and returns
// cache hit info.
func (r *Runner) BindWithCacheInfo(ctx context.Context, d *diagram.Diagram, opts Options) (*circuit.Circuit, bool, error) {
	if err := opts.ValidateForBind(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	b, err := newBinding(opts)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnBindStart(ctx, b.name, b.functor.NParams(d))

	c, hit, err := r.bind(ctx, d, b, opts)

	gates := 0
	if c != nil {
		gates = c.GateCount()
	}
	observability.Pipeline().OnBindComplete(ctx, b.name, gates, time.Since(start), err)
	return c, hit, err
}

func (r *Runner) bind(ctx context.Context, d *diagram.Diagram, b *binding, opts Options) (*circuit.Circuit, bool, error) {
	params, err := b.resolveParams(d, opts)
	if err != nil {
		return nil, false, err
	}

	// A runtime ansatz has no serializable identity, so its circuits are
	// never cached.
	cacheable := b.cacheable()

	var cacheKey string
	if cacheable {
		data, err := json.Marshal(d)
		if err != nil {
			return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
		}
		cacheKey = r.Keyer.CircuitKey(cache.Hash(data), b.keyOpts(params))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				var c circuit.Circuit
				if err := json.Unmarshal(data, &c); err == nil {
					return &c, true, nil // Cache hit
				}
			}
		}
	}

	c, err := b.functor.Apply(d, params)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		if data, err := json.Marshal(c); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLCircuit)
		}
	}

	return c, false, nil // Cache miss
}

// Bind is a convenience wrapper that calls BindWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Bind(ctx context.Context, d *diagram.Diagram, opts Options) (*circuit.Circuit, error) {
	c, _, err := r.BindWithCacheInfo(ctx, d, opts)
	return c, err
}

// ExportWithCacheInfo encodes the circuit in each requested format with
// caching and returns cache hit info.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, c *circuit.Circuit, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, opts.Formats)

	artifacts, hit, err := r.export(ctx, c, opts)

	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) export(ctx context.Context, c *circuit.Circuit, opts Options) (map[string][]byte, bool, error) {
	// Compute the cache key source from circuit content
	data, err := json.Marshal(c)
	if err != nil {
		return nil, false, fmt.Errorf("serialize circuit for cache key: %w", err)
	}
	circuitHash := cache.Hash(data)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(circuitHash, cache.ArtifactKeyOpts{Format: format})
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Export all formats
	exported, err := Export(ctx, c, opts.Formats)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range exported {
		cacheKey := r.Keyer.ArtifactKey(circuitHash, cache.ArtifactKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return exported, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
