package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/pipeline"
	"github.com/toumix/tally/pkg/plane"
	"github.com/toumix/tally/pkg/render"
)

// composeCommand creates the compose command for building grid compositions.
func (c *CLI) composeCommand() *cobra.Command {
	var (
		source     sourceFlags
		formatsStr string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "compose [composition.json]",
		Short: "Build a grid composition from notation, a file, or a seed",
		Long: `Build a grid composition and write it as an artifact.

The composition comes from exactly one source: grid notation (-e), a
composition JSON file, or seeded random generation (--random). Beside (|)
joins cells left to right and requires equal heights; below (&) stacks
them top to bottom and requires equal widths.

Examples:
  tally compose -e "((e | e) & (e | e))"        # 2x2 grid from notation
  tally compose grid.json -f dot                # re-encode a saved composition
  tally compose --random --seed 7 -f json,svg   # reproducible random grid`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, pipeline.FormatJSON)
			if err := validateFormats(formats,
				pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG); err != nil {
				return err
			}
			return c.runCompose(cmd.Context(), source.options(args), formats, output)
		},
	}

	addSourceFlags(cmd, &source)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")

	return cmd
}

// runCompose builds the composition and writes one artifact per format.
func (c *CLI) runCompose(ctx context.Context, opts pipeline.Options, formats []string, output string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	cell, err := runner.Compose(ctx, opts)
	if err != nil {
		return err
	}

	base := artifactBase(output, opts.InputPath, "composition")
	printSuccess("Composition complete")

	var jsonPath string
	for _, format := range formats {
		data, err := compositionArtifact(ctx, cell, format)
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
		fmt.Sprintf("%d x %d", cell.Width(), cell.Height()),
		fmt.Sprintf("%d atoms", cell.Size()),
		fmt.Sprintf("depth %d", cell.Depth()),
	)
	if jsonPath != "" {
		printNewline()
		printNextStep("Normalize", "tally diagram "+jsonPath)
	}
	return nil
}

// compositionArtifact encodes the cell in one format. DOT and the raster
// formats go through the plane-graph layout.
func compositionArtifact(ctx context.Context, cell *composition.Cell, format string) ([]byte, error) {
	if format == pipeline.FormatJSON {
		var buf bytes.Buffer
		if err := composition.WriteJSON(cell, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	g, err := plane.FromComposition(cell)
	if err != nil {
		return nil, err
	}
	return renderFormat(ctx, render.CompositionDOT(g), format)
}
