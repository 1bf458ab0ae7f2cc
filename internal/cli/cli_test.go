package cli

import (
	"io"
	"slices"
	"testing"

	"github.com/toumix/tally/pkg/buildinfo"
	"github.com/toumix/tally/pkg/errors"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if root.Version != buildinfo.Version {
		t.Errorf("root.Version = %q, want %q", root.Version, buildinfo.Version)
	}

	want := []string{"compose", "diagram", "circuit", "render", "cache", "version", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats("", "json"); !slices.Equal(got, []string{"json"}) {
		t.Errorf(`parseFormats("", "json") = %v, want [json]`, got)
	}
	if got := parseFormats("svg,png", "json"); !slices.Equal(got, []string{"svg", "png"}) {
		t.Errorf(`parseFormats("svg,png", "json") = %v, want [svg png]`, got)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"json", "svg"}, "json", "dot", "svg"); err != nil {
		t.Errorf("validateFormats() error: %v", err)
	}

	err := validateFormats([]string{"qasm"}, "json", "dot", "svg")
	if err == nil {
		t.Fatal("validateFormats() should reject a format outside the allowed set")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestArtifactBase(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		kind   string
		want   string
	}{
		{"output strips known format ext", "out/grid.svg", "grid.json", "diagram", "out/grid"},
		{"output keeps unknown ext", "out/grid.data", "", "diagram", "out/grid.data"},
		{"input plus kind", "", "grid.json", "diagram", "grid.diagram"},
		{"input bare when kind empty", "", "grid.diagram.json", "", "grid.diagram"},
		{"kind alone", "", "", "circuit", "circuit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactBase(tt.output, tt.input, tt.kind); got != tt.want {
				t.Errorf("artifactBase(%q, %q, %q) = %q, want %q",
					tt.output, tt.input, tt.kind, got, tt.want)
			}
		})
	}
}

func TestSourceFlagsOptions(t *testing.T) {
	f := sourceFlags{expression: "(e | e)", seed: 7}
	opts := f.options(nil)
	if opts.Expression != "(e | e)" {
		t.Errorf("Expression = %q, want %q", opts.Expression, "(e | e)")
	}
	if opts.InputPath != "" {
		t.Errorf("InputPath = %q, want empty", opts.InputPath)
	}

	f = sourceFlags{random: true, seed: 7, minDepth: 2, maxDepth: 4}
	opts = f.options([]string{"grid.json"})
	if opts.InputPath != "grid.json" {
		t.Errorf("InputPath = %q, want %q", opts.InputPath, "grid.json")
	}
	if !opts.Random || opts.Seed != 7 || opts.MinDepth != 2 || opts.MaxDepth != 4 {
		t.Errorf("options = %+v, want random knobs carried through", opts)
	}
}

func TestWriteArtifactRejectsBadPath(t *testing.T) {
	err := writeArtifact("bad\x00path.json", []byte("data"))
	if err == nil {
		t.Fatal("writeArtifact() should reject a path with a null byte")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}
