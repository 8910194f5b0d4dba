package imaging

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectrumPeak is one dominant frequency component found while suggesting
// interrogation window sizes.
type SpectrumPeak struct {
	// Axis is "row" or "col" depending on which mean profile held the peak.
	Axis string
	// Bin is the FFT bin index (DC excluded).
	Bin int
	// Magnitude of the component.
	Magnitude float64
	// Period is the spatial period in pixels implied by the bin.
	Period float64
	// Window is Period rounded and clamped to a usable window size.
	Window int
}

// SuggestWindowSizes analyzes the image spectrum and proposes up to
// maxPeaks interrogation window sizes matched to the strongest spatial
// periods. Texture that repeats every P pixels is captured best by
// windows of roughly that extent, so each dominant frequency component
// votes for one window size.
//
// The analysis runs a 1-D FFT over the row-mean and column-mean
// intensity profiles rather than a full 2-D transform; the suggester
// only needs dominant axis-aligned periods, and the two profiles carry
// those at a fraction of the cost. Suggested sizes are deduplicated,
// sorted ascending, and clamped to [2, min(W, H)]. An image with no
// usable component (flat, or smaller than 4 px per side) yields nil.
func SuggestWindowSizes(p *Plane, maxPeaks int) ([]int, []SpectrumPeak) {
	if p.Empty() || p.W < 4 || p.H < 4 || maxPeaks <= 0 {
		return nil, nil
	}

	rowMeans := make([]float64, p.H) // mean intensity of each row
	colMeans := make([]float64, p.W)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			v := float64(p.At(x, y))
			rowMeans[y] += v
			colMeans[x] += v
		}
	}
	for y := range rowMeans {
		rowMeans[y] /= float64(p.W)
	}
	for x := range colMeans {
		colMeans[x] /= float64(p.H)
	}

	maxWindow := p.W
	if p.H < maxWindow {
		maxWindow = p.H
	}

	peaks := profilePeaks("col", colMeans, maxWindow)
	peaks = append(peaks, profilePeaks("row", rowMeans, maxWindow)...)
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Magnitude > peaks[j].Magnitude
	})
	if len(peaks) > maxPeaks {
		peaks = peaks[:maxPeaks]
	}

	seen := make(map[int]bool)
	var sizes []int
	for _, pk := range peaks {
		if pk.Window > 1 && !seen[pk.Window] {
			seen[pk.Window] = true
			sizes = append(sizes, pk.Window)
		}
	}
	sort.Ints(sizes)
	return sizes, peaks
}

// profilePeaks finds local maxima of the FFT magnitude of one mean
// profile, skipping DC and its immediate neighbor so the overall
// brightness trend does not dominate.
func profilePeaks(axis string, profile []float64, maxWindow int) []SpectrumPeak {
	n := len(profile)
	mean := 0.0
	for _, v := range profile {
		mean += v
	}
	mean /= float64(n)
	seq := make([]float64, n)
	for i, v := range profile {
		seq[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, seq)

	var peaks []SpectrumPeak
	for bin := 2; bin < len(coeff)-1; bin++ {
		mag := cmplx.Abs(coeff[bin])
		if mag <= 0 {
			continue
		}
		// Keep only bins that dominate both neighbors.
		if mag <= cmplx.Abs(coeff[bin-1]) || mag < cmplx.Abs(coeff[bin+1]) {
			continue
		}
		period := float64(n) / float64(bin)
		window := int(math.Round(period))
		if window < 2 {
			window = 2
		}
		if window > maxWindow {
			window = maxWindow
		}
		peaks = append(peaks, SpectrumPeak{
			Axis:      axis,
			Bin:       bin,
			Magnitude: mag,
			Period:    period,
			Window:    window,
		})
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Magnitude > peaks[j].Magnitude
	})
	// At most a handful per axis; the caller merges and trims.
	if len(peaks) > 8 {
		peaks = peaks[:8]
	}
	return peaks
}
