package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toumix/tally/pkg/errors"
	"github.com/toumix/tally/pkg/pipeline"
)

// circuitCommand creates the circuit command for the full pipeline.
func (c *CLI) circuitCommand() *cobra.Command {
	var (
		source       sourceFlags
		formatsStr   string
		output       string
		profile      string
		paramsStr    string
		zeros        bool
		randomParams bool
		noCache      bool
		refresh      bool
	)

	cmd := &cobra.Command{
		Use:   "circuit [composition.json]",
		Short: "Run the full pipeline from composition to circuit",
		Long: `Run the full compose, normalize, bind, export pipeline.

The diagram's boxes are bound to parameterized gates by an ansatz. The
default rotation ansatz spends one parameter per box; --profile selects
an ansatz profile written in TOML. Parameters come from --params, from
seeded uniform draws in [0, 2pi) (--random-params), or default to the
all-zeros baseline (--zeros).

Examples:
  tally circuit -e "((e | e) & (e | e))"                 # zeros, QASM out
  tally circuit grid.json --params 0.1,0.2,0.3,0.4       # explicit binding
  tally circuit --random --profile iqp.toml -f qasm,json # IQP ansatz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, pipeline.FormatQASM)
			if err := validateFormats(formats,
				pipeline.FormatQASM, pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG); err != nil {
				return err
			}
			params, err := parseParams(paramsStr)
			if err != nil {
				return err
			}
			if zeros && (params != nil || randomParams) {
				return errors.New(errors.ErrCodeInvalidInput,
					"--zeros excludes --params and --random-params")
			}

			opts := source.options(args)
			opts.Profile = profile
			opts.Params = params
			opts.RandomParams = randomParams
			opts.Formats = formats
			opts.Refresh = refresh
			return c.runCircuit(cmd.Context(), opts, output, noCache)
		},
	}

	addSourceFlags(cmd, &source)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): qasm (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&profile, "profile", "", "ansatz profile TOML file (default: rotation around rx)")
	cmd.Flags().StringVar(&paramsStr, "params", "", "comma-separated parameter values, e.g. 0.1,0.2")
	cmd.Flags().BoolVar(&zeros, "zeros", false, "bind the all-zeros baseline vector (the default)")
	cmd.Flags().BoolVar(&randomParams, "random-params", false, "draw parameters uniformly from [0, 2pi)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runCircuit executes the pipeline and writes the exported artifacts.
func (c *CLI) runCircuit(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Synthesizing circuit...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Circuit failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := artifactBase(output, opts.InputPath, "circuit")
	printSuccess("Circuit complete")

	var jsonPath string
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		if format == pipeline.FormatJSON {
			jsonPath = path
		}
	}

	printStats(
		fmt.Sprintf("%d qubits", result.Circuit.Qubits()),
		fmt.Sprintf("%d gates", result.Stats.Gates),
		fmt.Sprintf("%d params", result.Stats.NParams),
		cachedLabel(result.CacheInfo.CircuitHit),
	)
	if jsonPath != "" {
		printNewline()
		printNextStep("Render", "tally render "+jsonPath)
	}
	return nil
}

// parseParams parses the --params flag: comma-separated floats, nil when
// unset so the bind stage falls back to zeros.
func parseParams(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	params := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid parameter %q", field)
		}
		params[i] = v
	}
	return params, nil
}
