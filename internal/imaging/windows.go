package imaging

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeCategory buckets an image by megapixel count. The benchmark reports
// results grouped by category so small snapshots and multi-megapixel
// frames are not averaged together.
type SizeCategory int

const (
	// SizeSmall is anything under 1 MP (e.g. 602x400).
	SizeSmall SizeCategory = iota
	// SizeMedium is 1-3 MP (e.g. 1024x768, 1080x1920).
	SizeMedium
	// SizeLarge is over 3 MP (e.g. 3072x4096).
	SizeLarge
)

// String returns the category name used in reports.
func (c SizeCategory) String() string {
	switch c {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	}
	return "Unknown"
}

// Categorize classifies a resolution by total pixel count.
func Categorize(width, height int) SizeCategory {
	pixels := int64(width) * int64(height)
	switch {
	case pixels < 1_000_000:
		return SizeSmall
	case pixels < 3_000_000:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// DefaultWindowSizes is the interrogation window size set used when no
// per-category override is configured. One detection pass runs per size.
var DefaultWindowSizes = []int{16, 32, 64, 128, 256}

// WindowSizesFor picks the window size set for a resolution. The table
// maps size categories to overrides; categories without an entry fall
// back to DefaultWindowSizes. The returned slice is always a copy.
func WindowSizesFor(width, height int, table map[SizeCategory][]int) []int {
	if sizes, ok := table[Categorize(width, height)]; ok && len(sizes) > 0 {
		return append([]int(nil), sizes...)
	}
	return append([]int(nil), DefaultWindowSizes...)
}

// ValidateWindowSizes checks the window size set invariant: non-empty and
// every size greater than 1.
func ValidateWindowSizes(sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("window size set is empty")
	}
	for _, l := range sizes {
		if l <= 1 {
			return fmt.Errorf("window size %d: must be greater than 1", l)
		}
	}
	return nil
}

// ParseWindowSizes parses a comma-separated size list such as "16,32,64".
func ParseWindowSizes(s string) ([]int, error) {
	var sizes []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("window size %q: %w", tok, err)
		}
		sizes = append(sizes, v)
	}
	if err := ValidateWindowSizes(sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}

// FormatWindowSizes renders a size set the way reports print it, e.g.
// "16,32,64".
func FormatWindowSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, l := range sizes {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}
