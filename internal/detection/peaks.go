package detection

import (
	"lpstitch/internal/imaging"
)

// PeakOptions configures one windowed peak detection pass.
type PeakOptions struct {
	// Alpha is the tie-breaking ramp slope. Zero disables the ramp, in
	// which case ties resolve to the first pixel in raster order.
	Alpha float64

	// Unique3x3 enables the neighborhood uniqueness filter: a candidate
	// whose unramped intensity is shared by another pixel in its 3x3
	// neighborhood is rejected. This guards against spurious points
	// inside flat regions that the ramp only partially perturbs near
	// image borders.
	Unique3x3 bool
}

// DefaultPeakOptions returns the options used by the benchmark's
// local-peak configurations.
func DefaultPeakOptions() PeakOptions {
	return PeakOptions{Alpha: imaging.DefaultRampAlpha}
}

// DetectPeaks runs the windowed extremum scan over the plane for every
// window size and returns the resulting keypoints. For each size L the
// plane is partitioned into L x L tiles, with boundary tiles clipped to
// the image edges rather than skipped; each tile contributes its minimum
// and maximum pixel as keypoints (one keypoint if they coincide), both
// carrying the tile's contrast as response.
//
// The caller's plane is never modified; the ramp is superimposed in
// float64 during the scan rather than written into the float32 samples,
// where a 1e-6 increment would round away against typical intensities.
// Scales are independent passes, so the cost is
// O(pixels * len(windows)).
func DetectPeaks(p *imaging.Plane, windows []int, opts PeakOptions) []Keypoint {
	if p.Empty() || len(windows) == 0 {
		return nil
	}

	var kps []Keypoint
	for class, l := range windows {
		if l <= 1 {
			continue
		}
		for y0 := 0; y0 < p.H; y0 += l {
			th := min(l, p.H-y0)
			for x0 := 0; x0 < p.W; x0 += l {
				tw := min(l, p.W-x0)
				kps = appendTilePeaks(kps, p, x0, y0, tw, th, l, class, opts)
			}
		}
	}
	return kps
}

// appendTilePeaks scans one tile for its extrema and appends the
// resulting keypoint candidates.
func appendTilePeaks(kps []Keypoint, p *imaging.Plane, x0, y0, tw, th, l, class int, opts PeakOptions) []Keypoint {
	minX, minY := x0, y0
	maxX, maxY := x0, y0
	minVal := p.RampedAt(x0, y0, opts.Alpha)
	maxVal := minVal

	// Strict comparisons: with alpha=0 the first raster occurrence of a
	// tied value wins, keeping the unramped path deterministic too.
	for y := y0; y < y0+th; y++ {
		for x := x0; x < x0+tw; x++ {
			v := p.RampedAt(x, y, opts.Alpha)
			if v < minVal {
				minVal, minX, minY = v, x, y
			}
			if v > maxVal {
				maxVal, maxX, maxY = v, x, y
			}
		}
	}

	response := maxVal - minVal
	if keepCandidate(p, maxX, maxY, opts) {
		kps = append(kps, newPeak(maxX, maxY, l, class, response))
	}
	if (minX != maxX || minY != maxY) && keepCandidate(p, minX, minY, opts) {
		kps = append(kps, newPeak(minX, minY, l, class, response))
	}
	return kps
}

func newPeak(x, y, l, class int, response float64) Keypoint {
	return Keypoint{
		X:        float64(x),
		Y:        float64(y),
		Size:     float64(l),
		Response: response,
		Class:    class,
		Angle:    -1,
		Octave:   class,
	}
}

// keepCandidate applies the optional 3x3 uniqueness filter on the
// unramped plane.
func keepCandidate(p *imaging.Plane, x, y int, opts PeakOptions) bool {
	if !opts.Unique3x3 {
		return true
	}
	v := p.At(x, y)
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= p.W || ny >= p.H {
				continue
			}
			if p.At(nx, ny) == v {
				count++
			}
		}
	}
	return count <= 1
}
