package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/toumix/tally/pkg/diagram"
)

func TestDiagramCommandWritesJSON(t *testing.T) {
	base := filepath.Join(t.TempDir(), "grid")

	c := New(io.Discard, LogInfo)
	cmd := c.diagramCommand()
	cmd.SetArgs([]string{"-e", "((e | e) & (e | e))", "-o", base, "--no-cache"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("diagram failed: %v", err)
	}

	d, err := diagram.ImportJSON(base + ".json")
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if d.Width() != 2 {
		t.Errorf("Width() = %d, want 2", d.Width())
	}
	if d.LayerCount() != 2 {
		t.Errorf("LayerCount() = %d, want 2", d.LayerCount())
	}
	if d.BoxCount() != 4 {
		t.Errorf("BoxCount() = %d, want 4", d.BoxCount())
	}
}

func TestDiagramCommandPopulatesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	base := filepath.Join(t.TempDir(), "grid")

	c := New(io.Discard, LogInfo)
	for _, out := range []string{base, base + "2"} {
		cmd := c.diagramCommand()
		cmd.SetArgs([]string{"-e", "(e | e)", "-o", out})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("diagram failed: %v", err)
		}
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	entries, _, err := cacheUsage(dir)
	if err != nil {
		t.Fatalf("cacheUsage() error: %v", err)
	}
	if entries == 0 {
		t.Error("normalization should leave a cache entry behind")
	}
}

func TestDiagramCommandRandomSeedIsReproducible(t *testing.T) {
	dir := t.TempDir()

	c := New(io.Discard, LogInfo)
	for _, out := range []string{"a", "b"} {
		cmd := c.diagramCommand()
		cmd.SetArgs([]string{
			"--random", "--seed", "7", "--no-cache",
			"-o", filepath.Join(dir, out),
		})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("diagram failed: %v", err)
		}
	}

	a, err := diagram.ImportJSON(filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	b, err := diagram.ImportJSON(filepath.Join(dir, "b.json"))
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if !a.Equal(b) {
		t.Error("same seed should normalize to the same diagram")
	}
}
