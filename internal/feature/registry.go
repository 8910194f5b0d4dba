package feature

import (
	"fmt"

	"lpstitch/internal/detection"
)

// AllNames lists every algorithm the sweep knows, in the order runs
// are reported.
var AllNames = []string{"SIFT", "ORB", "BRISK", "AKAZE", "LP-SIFT64", "LP-SIFT", "LP-ORB"}

// ByName constructs the named algorithm. Local-peak variants take the
// window sizes and peak options; baselines ignore them.
func ByName(name string, windows []int, opts detection.PeakOptions) (Algorithm, error) {
	switch name {
	case "SIFT":
		return NewSIFT(), nil
	case "ORB":
		return NewORB(), nil
	case "BRISK":
		return NewBRISK(), nil
	case "AKAZE":
		return NewAKAZE(), nil
	case "LP-SIFT64":
		return NewLocalPeak(BackendCustom, windows, opts), nil
	case "LP-SIFT":
		return NewLocalPeak(BackendSIFT, windows, opts), nil
	case "LP-ORB":
		return NewLocalPeak(BackendORB, windows, opts), nil
	}
	return nil, fmt.Errorf("unknown algorithm %q", name)
}
