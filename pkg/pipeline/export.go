package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/errors"
	"github.com/toumix/tally/pkg/render"
)

// Export encodes a circuit in each requested format and returns the
// artifacts keyed by format.
func Export(ctx context.Context, c *circuit.Circuit, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := exportFormat(ctx, c, format)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func exportFormat(ctx context.Context, c *circuit.Circuit, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := circuit.WriteJSON(c, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatQASM:
		qasm, err := c.QASM()
		if err != nil {
			return nil, err
		}
		return []byte(qasm), nil
	case FormatDOT:
		return []byte(render.CircuitDOT(c)), nil
	case FormatSVG:
		return render.SVG(ctx, render.CircuitDOT(c))
	case FormatPNG:
		return render.PNG(ctx, render.CircuitDOT(c))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
