// Package homography wraps the 3x3 projective transform the benchmark
// estimates for every image pair. The matrix itself is a plain gonum
// value so the orchestrator, the reporter, and their tests can project
// points and compare transforms without touching the OpenCV binding;
// only the RANSAC fit crosses into gocv.
package homography

import (
	"fmt"
	"math"
	"strings"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// Default RANSAC parameters, shared by every fit in a sweep so repeated
// runs on identical input are bit-reproducible.
const (
	// DefaultSeed seeds OpenCV's RNG before each fit.
	DefaultSeed = 12345
	// DefaultThreshold is the RANSAC reprojection threshold in pixels.
	DefaultThreshold = 3.0

	ransacMaxIters   = 2000
	ransacConfidence = 0.995
)

// Point is a 2-D point in pixel coordinates.
type Point struct {
	X, Y float64
}

// Homography is a 3x3 projective transform mapping reference-image
// coordinates onto registered-image coordinates.
type Homography struct {
	m *mat.Dense
}

// New builds a homography from row-major coefficients.
func New(vals [9]float64) *Homography {
	return &Homography{m: mat.NewDense(3, 3, vals[:])}
}

// Identity returns the identity transform.
func Identity() *Homography {
	return New([9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

// Translation returns a pure pixel shift, used to move a warp into a
// canvas whose origin differs from the reference frame.
func Translation(dx, dy float64) *Homography {
	return New([9]float64{1, 0, dx, 0, 1, dy, 0, 0, 1})
}

// At returns the coefficient at row r, column c.
func (h *Homography) At(r, c int) float64 {
	return h.m.At(r, c)
}

// Apply projects a point through the homography, including the
// perspective division.
func (h *Homography) Apply(p Point) Point {
	w := h.m.At(2, 0)*p.X + h.m.At(2, 1)*p.Y + h.m.At(2, 2)
	if w == 0 {
		return Point{}
	}
	return Point{
		X: (h.m.At(0, 0)*p.X + h.m.At(0, 1)*p.Y + h.m.At(0, 2)) / w,
		Y: (h.m.At(1, 0)*p.X + h.m.At(1, 1)*p.Y + h.m.At(1, 2)) / w,
	}
}

// Mul returns h * g (g applied first).
func (h *Homography) Mul(g *Homography) *Homography {
	var out mat.Dense
	out.Mul(h.m, g.m)
	return &Homography{m: &out}
}

// Delta returns the elementwise difference h - baseline, the comparison
// matrix reports print next to each run's estimate.
func (h *Homography) Delta(baseline *Homography) *Homography {
	if baseline == nil {
		return nil
	}
	var out mat.Dense
	out.Sub(h.m, baseline.m)
	return &Homography{m: &out}
}

// Norm returns the Frobenius norm of the matrix; on a Delta result it
// summarizes how far a run strayed from the baseline.
func (h *Homography) Norm() float64 {
	return mat.Norm(h.m, 2)
}

// String renders the matrix as nested rows with 4-decimal coefficients,
// e.g. [[1.0000, 0.0000, 12.5000], ...].
func (h *Homography) String() string {
	if h == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("[")
	for r := 0; r < 3; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		for c := 0; c < 3; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%.4f", h.m.At(r, c))
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

// ReprojectionError returns the mean Euclidean distance between
// h(src[i]) and dst[i] over the points marked as inliers. A nil or
// all-false mask yields 0.
func (h *Homography) ReprojectionError(src, dst []Point, inliers []bool) float64 {
	var sum float64
	n := 0
	for i := range src {
		if i >= len(dst) || (inliers != nil && (i >= len(inliers) || !inliers[i])) {
			continue
		}
		p := h.Apply(src[i])
		sum += math.Hypot(p.X-dst[i].X, p.Y-dst[i].Y)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Fit estimates a homography from point correspondences with RANSAC.
// The RNG is reseeded before every call so the estimate is reproducible.
// It returns a nil homography (and no error) when the solver cannot
// produce a matrix, mirroring OpenCV's empty-matrix convention; the
// orchestrator turns that into a labeled failure.
func Fit(src, dst []Point, seed int, threshold float64) (*Homography, []bool, error) {
	if len(src) != len(dst) {
		return nil, nil, fmt.Errorf("correspondence count mismatch: %d vs %d", len(src), len(dst))
	}
	if len(src) < 4 {
		return nil, nil, fmt.Errorf("need at least 4 correspondences, have %d", len(src))
	}

	srcMat := pointMat(src)
	defer srcMat.Close()
	dstMat := pointMat(dst)
	defer dstMat.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	gocv.SetRNGSeed(seed)
	hm := gocv.FindHomography(srcMat, &dstMat, gocv.HomographyMethodRANSAC,
		threshold, &mask, ransacMaxIters, ransacConfidence)
	defer hm.Close()

	if hm.Empty() || hm.Rows() != 3 || hm.Cols() != 3 {
		return nil, nil, nil
	}

	var vals [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			vals[r*3+c] = hm.GetDoubleAt(r, c)
		}
	}

	inliers := make([]bool, len(src))
	for i := 0; i < mask.Rows() && i < len(inliers); i++ {
		inliers[i] = mask.GetUCharAt(i, 0) != 0
	}
	return New(vals), inliers, nil
}

// ToMat converts the homography to a 3x3 CV64F matrix for gocv warp
// calls. The caller owns the returned Mat.
func (h *Homography) ToMat() gocv.Mat {
	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.SetDoubleAt(r, c, h.m.At(r, c))
		}
	}
	return m
}

// pointMat packs points into the Nx1 two-channel matrix layout
// FindHomography expects.
func pointMat(pts []Point) gocv.Mat {
	m := gocv.NewMatWithSize(len(pts), 1, gocv.MatTypeCV64FC2)
	for i, p := range pts {
		m.SetDoubleAt(i, 0, p.X)
		m.SetDoubleAt(i, 1, p.Y)
	}
	return m
}
