package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/errors"
	"github.com/toumix/tally/pkg/pipeline"
	"github.com/toumix/tally/pkg/plane"
	"github.com/toumix/tally/pkg/render"
)

// Artifact kinds the render command understands.
const (
	kindComposition = "composition"
	kindDiagram     = "diagram"
	kindCircuit     = "circuit"
)

// renderCommand creates the render command for rasterizing saved artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		kind       string
	)

	cmd := &cobra.Command{
		Use:   "render [artifact.json]",
		Short: "Render a saved artifact to SVG or PNG",
		Long: `Render a saved JSON artifact to a visual format.

The artifact kind (composition, diagram, or circuit) is detected from the
JSON shape; --kind overrides the detection. The output path derives from
the input file name, so grid.diagram.json renders to grid.diagram.svg.

Examples:
  tally render grid.diagram.json              # diagram to SVG
  tally render grid.circuit.json -f png       # circuit to PNG
  tally render grid.json --kind composition   # force the artifact kind`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, pipeline.FormatSVG)
			if err := validateFormats(formats,
				pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatDOT); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], kind, formats, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVar(&kind, "kind", "", "artifact kind: composition, diagram, circuit (default: detect)")

	return cmd
}

// runRender loads the artifact, builds its DOT form, and rasterizes it.
func (c *CLI) runRender(ctx context.Context, input, kind string, formats []string, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read artifact %s", input)
	}

	if kind == "" {
		kind, err = detectKind(data)
		if err != nil {
			return err
		}
	}
	dot, err := artifactDOT(kind, data)
	if err != nil {
		return err
	}
	c.Logger.Info("rendering artifact", "kind", kind, "input", input)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", kind))
	spinner.Start()

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		out, err := renderFormat(ctx, dot, format)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		artifacts[format] = out
	}
	spinner.Stop()

	base := artifactBase(output, input, "")
	printSuccess("Render complete")
	for _, format := range formats {
		if err := writeArtifact(base+"."+format, artifacts[format]); err != nil {
			return err
		}
	}
	printStats(kind)
	return nil
}

// detectKind infers the artifact kind from its JSON shape: compositions
// carry "label", circuits carry "qubits_per_wire", diagrams carry
// "layers" without it.
func detectKind(data []byte) (string, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse artifact")
	}
	switch {
	case probe["label"] != nil:
		return kindComposition, nil
	case probe["qubits_per_wire"] != nil:
		return kindCircuit, nil
	case probe["layers"] != nil:
		return kindDiagram, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unrecognized artifact shape, expected a composition, diagram, or circuit")
}

// artifactDOT decodes the artifact as its kind and produces the DOT text.
func artifactDOT(kind string, data []byte) (string, error) {
	switch kind {
	case kindComposition:
		cell, err := composition.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		g, err := plane.FromComposition(cell)
		if err != nil {
			return "", err
		}
		return render.CompositionDOT(g), nil
	case kindDiagram:
		d, err := diagram.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		return render.DiagramDOT(d), nil
	case kindCircuit:
		ct, err := circuit.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		return render.CircuitDOT(ct), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unknown artifact kind: %q (must be composition, diagram, or circuit)", kind)
}

// renderFormat encodes prepared DOT text in one visual format.
func renderFormat(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case pipeline.FormatDOT:
		return []byte(dot), nil
	case pipeline.FormatSVG:
		return render.SVG(ctx, dot)
	case pipeline.FormatPNG:
		return render.PNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}
