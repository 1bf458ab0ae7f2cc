package pipeline

import (
	"github.com/toumix/tally/pkg/composition"
)

// compose builds a cell from the single configured source. Options must
// already be validated, so exactly one source is set.
func compose(opts Options) (*composition.Cell, error) {
	switch {
	case opts.Expression != "":
		return composition.Parse(opts.Expression)
	case opts.InputPath != "":
		return composition.ImportJSON(opts.InputPath)
	default:
		return composition.Random(opts.Seed, opts.randomOptions()), nil
	}
}
