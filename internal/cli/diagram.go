package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/pipeline"
	"github.com/toumix/tally/pkg/render"
)

// diagramCommand creates the diagram command for normalizing compositions.
func (c *CLI) diagramCommand() *cobra.Command {
	var (
		source     sourceFlags
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "diagram [composition.json]",
		Short: "Normalize a composition into a layered diagram",
		Long: `Normalize a grid composition into a layered string diagram.

Every row of the grid becomes one layer of width-many boxes, so a grid of
extent w x h normalizes to h layers of w boxes each. Normalization is pure
and its result is cached locally keyed by the composition, so repeated
runs are instant.

Examples:
  tally diagram -e "((e | e) & (e | e))"     # two layers of two boxes
  tally diagram grid.json -f json,svg        # normalize a saved composition
  tally diagram --random --seed 7 --refresh  # recompute, ignoring the cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, pipeline.FormatJSON)
			if err := validateFormats(formats,
				pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG); err != nil {
				return err
			}
			opts := source.options(args)
			opts.Refresh = refresh
			return c.runDiagram(cmd.Context(), opts, formats, output, noCache)
		},
	}

	addSourceFlags(cmd, &source)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runDiagram composes, normalizes with caching, and writes artifacts.
func (c *CLI) runDiagram(ctx context.Context, opts pipeline.Options, formats []string, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	cell, err := runner.Compose(ctx, opts)
	if err != nil {
		return err
	}
	c.Logger.Infof("Normalizing %d x %d grid", cell.Width(), cell.Height())

	prog := newProgress(c.Logger)
	d, cacheHit, err := runner.NormalizeWithCacheInfo(ctx, cell, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Normalized %d layers, %d boxes", d.LayerCount(), d.BoxCount()))

	base := artifactBase(output, opts.InputPath, "diagram")
	printSuccess("Diagram complete")

	var jsonPath string
	for _, format := range formats {
		data, err := diagramArtifact(ctx, d, format)
		if err != nil {
			return err
		}
		path := base + "." + format
		if err := writeArtifact(path, data); err != nil {
			return err
		}
		if format == pipeline.FormatJSON {
			jsonPath = path
		}
	}

	printStats(
		fmt.Sprintf("%d wires", d.Width()),
		fmt.Sprintf("%d layers", d.LayerCount()),
		fmt.Sprintf("%d boxes", d.BoxCount()),
		cachedLabel(cacheHit),
	)
	if jsonPath != "" {
		printNewline()
		printNextStep("Render", "tally render "+jsonPath)
	}
	return nil
}

// diagramArtifact encodes the diagram in one format.
func diagramArtifact(ctx context.Context, d *diagram.Diagram, format string) ([]byte, error) {
	if format == pipeline.FormatJSON {
		var buf bytes.Buffer
		if err := diagram.WriteJSON(d, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return renderFormat(ctx, render.DiagramDOT(d), format)
}
