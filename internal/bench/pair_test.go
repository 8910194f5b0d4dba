package bench

import (
	"os"
	"path/filepath"
	"testing"

	"lpstitch/internal/feature"
	"lpstitch/internal/imaging"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverPairs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "zebra", "reference.jpg"))
	touch(t, filepath.Join(root, "zebra", "registered.jpg"))
	touch(t, filepath.Join(root, "alpha", "reference.png"))
	touch(t, filepath.Join(root, "alpha", "registered.tif"))
	// Incomplete set, skipped.
	touch(t, filepath.Join(root, "broken", "reference.jpg"))
	// Stray file at root, ignored.
	touch(t, filepath.Join(root, "notes.txt"))

	pairs, err := DiscoverPairs(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].Set != "alpha" || pairs[1].Set != "zebra" {
		t.Errorf("pairs not sorted by set: %s, %s", pairs[0].Set, pairs[1].Set)
	}
	if filepath.Ext(pairs[0].RegPath) != ".tif" {
		t.Errorf("extension fallback failed: %s", pairs[0].RegPath)
	}
}

func TestDiscoverPairsMissingRoot(t *testing.T) {
	if _, err := DiscoverPairs(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestPairCategory(t *testing.T) {
	p := &Pair{Ref: &feature.Image{W: 2000, H: 1000}}
	if got := p.Category(); got != imaging.SizeMedium {
		t.Errorf("Category = %v, want medium", got)
	}
	empty := &Pair{}
	if got := empty.Category(); got != imaging.SizeSmall {
		t.Errorf("unloaded pair Category = %v, want small default", got)
	}
}
