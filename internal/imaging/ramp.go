package imaging

// DefaultRampAlpha is the canonical tie-breaking ramp slope. At 1e-6
// the ramp span across any configured window (up to 256x256 samples)
// stays well under one 8-bit intensity step, so the ramp never changes
// which pixels are genuine extrema within a window; it only resolves
// ties.
const DefaultRampAlpha = 1e-6

// RampedAt returns the intensity at (x, y) with the tie-breaking ramp
// alpha*(y*W + x) superimposed. The sum is formed in float64: a 1e-6
// increment is below one ulp of a float32 intensity at typical 8-bit
// levels, so accumulating the ramp into the float32 samples would round
// away on plateaus and leave runs of raster-adjacent pixels tied.
//
// A non-positive alpha returns the plain intensity.
func (p *Plane) RampedAt(x, y int, alpha float64) float64 {
	i := y*p.W + x
	v := float64(p.Pix[i])
	if alpha <= 0 {
		return v
	}
	return v + alpha*float64(i)
}
