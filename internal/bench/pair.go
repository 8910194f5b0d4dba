package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lpstitch/internal/feature"
	"lpstitch/internal/imaging"
)

// Pair is one benchmark input: a reference image and a registered
// image of the same scene, plus the window sizes local-peak detection
// should use for this pair.
type Pair struct {
	Set     string
	RefPath string
	RegPath string

	Ref *feature.Image
	Reg *feature.Image

	WindowSizes []int
}

// Close releases both images.
func (p *Pair) Close() {
	p.Ref.Close()
	p.Reg.Close()
}

// Category classifies the pair by the reference image's megapixels.
func (p *Pair) Category() imaging.SizeCategory {
	if p.Ref == nil {
		return imaging.SizeSmall
	}
	return imaging.Categorize(p.Ref.W, p.Ref.H)
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp"}

// findImage looks for base.<ext> in dir across the supported
// extensions, returning the first hit.
func findImage(dir, base string) (string, bool) {
	for _, ext := range imageExtensions {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// DiscoverPairs scans root for subdirectories holding a
// reference/registered image pair. Directories missing either image
// are skipped. Results are ordered by set name so sweeps are
// reproducible.
func DiscoverPairs(root string) ([]*Pair, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan dataset root %s: %w", root, err)
	}

	var pairs []*Pair
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, e.Name())
		refPath, ok := findImage(dir, "reference")
		if !ok {
			continue
		}
		regPath, ok := findImage(dir, "registered")
		if !ok {
			continue
		}
		pairs = append(pairs, &Pair{
			Set:     e.Name(),
			RefPath: refPath,
			RegPath: regPath,
		})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Set < pairs[j].Set })
	return pairs, nil
}

// Load reads both images from disk. The caller owns the result and
// must Close the pair.
func (p *Pair) Load() error {
	ref, err := feature.LoadImage(p.RefPath)
	if err != nil {
		return fmt.Errorf("set %s: %w", p.Set, err)
	}
	reg, err := feature.LoadImage(p.RegPath)
	if err != nil {
		ref.Close()
		return fmt.Errorf("set %s: %w", p.Set, err)
	}
	p.Ref, p.Reg = ref, reg
	return nil
}
