package detection

import (
	"math"

	"lpstitch/internal/imaging"
)

const (
	// DescriptorLength is the custom descriptor dimension: 4x4 spatial
	// cells times 4 signed-gradient orientation bins.
	DescriptorLength = spatialBins * spatialBins * gradientBins

	spatialBins  = 4
	gradientBins = 4

	// clipFraction is the contrast-invariance clip applied between the
	// two normalization passes, as in SIFT.
	clipFraction = 0.2

	normEpsilon = 1e-12
)

// ComputeDescriptors builds the 64-dimensional gradient-histogram
// descriptor for every keypoint. The plane must hold plain 8-bit
// intensities (no ramp); gradients are central differences on it.
//
// Each keypoint is described inside the interrogation window block that
// produced it: the patch radius is 3*sqrt(log2 L)*4, clamped to stay
// within the block and to be at least the spatial bin count. Sample
// positions within a 1-pixel border of the image are skipped. An empty
// keypoint list yields an empty result, and degenerate keypoints (block
// under 2 px a side, or a flat patch) yield zero vectors rather than
// errors.
func ComputeDescriptors(gray *imaging.Plane, kps []Keypoint) [][]float32 {
	if len(kps) == 0 {
		return nil
	}
	out := make([][]float32, len(kps))
	for i, kp := range kps {
		out[i] = describe(gray, kp)
	}
	return out
}

func describe(gray *imaging.Plane, kp Keypoint) []float32 {
	vec := make([]float32, DescriptorLength)
	l := int(kp.Size)
	if gray.Empty() || l <= 0 || !kp.InBounds(gray.W, gray.H) {
		return vec
	}

	cx, cy := int(kp.X), int(kp.Y)

	// The containing window block, clipped at the image edges the same
	// way the detector clips boundary tiles.
	bx0 := (cx / l) * l
	by0 := (cy / l) * l
	bw := min(l, gray.W-bx0)
	bh := min(l, gray.H-by0)
	if bw < 2 || bh < 2 {
		return vec
	}

	radius := int(math.Round(3 * math.Sqrt(math.Log2(float64(l))) * spatialBins))
	radius = min(radius, cx-bx0)
	radius = min(radius, bx0+bw-1-cx)
	radius = min(radius, cy-by0)
	radius = min(radius, by0+bh-1-cy)
	if radius < spatialBins {
		radius = spatialBins
	}

	span := 2*radius + 1
	acc := make([]float64, DescriptorLength)
	for sy := cy - radius; sy <= cy+radius; sy++ {
		if sy < 1 || sy >= gray.H-1 {
			continue
		}
		cellY := clampBin((sy - (cy - radius)) * spatialBins / span)
		for sx := cx - radius; sx <= cx+radius; sx++ {
			if sx < 1 || sx >= gray.W-1 {
				continue
			}
			cellX := clampBin((sx - (cx - radius)) * spatialBins / span)
			base := (cellY*spatialBins + cellX) * gradientBins

			dx := float64(gray.At(sx+1, sy) - gray.At(sx-1, sy))
			dy := float64(gray.At(sx, sy-1) - gray.At(sx, sy+1))
			if dx > 0 {
				acc[base] += dx
			} else {
				acc[base+2] -= dx
			}
			if dy > 0 {
				acc[base+1] += dy
			} else {
				acc[base+3] -= dy
			}
		}
	}

	for i, v := range acc {
		vec[i] = float32(v)
	}
	NormalizeDescriptor(vec)
	return vec
}

// NormalizeDescriptor applies the two-pass contrast normalization in
// place: L2-normalize, clip every component at clipFraction of the
// (now unit) norm, and L2-normalize again. Vectors with a near-zero
// initial norm are left untouched, as is the clipped vector if its norm
// collapses, so the function never divides by zero.
func NormalizeDescriptor(vec []float32) {
	n := l2norm(vec)
	if n < normEpsilon {
		return
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / n)
		if vec[i] > clipFraction {
			vec[i] = clipFraction
		}
		if vec[i] < -clipFraction {
			vec[i] = -clipFraction
		}
	}
	n = l2norm(vec)
	if n < normEpsilon {
		return
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / n)
	}
}

func l2norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func clampBin(b int) int {
	if b < 0 {
		return 0
	}
	if b >= spatialBins {
		return spatialBins - 1
	}
	return b
}
