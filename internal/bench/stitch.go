package bench

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"lpstitch/internal/homography"
)

// Stitch warps the reference image into the registered image's frame
// with h and composites the two onto a canvas large enough for both.
// An empty outPath composes and discards the result, which still
// exercises and times the warp; otherwise the composite is written to
// outPath.
func Stitch(pair *Pair, h *homography.Homography, outPath string) error {
	if pair.Ref == nil || pair.Reg == nil {
		return fmt.Errorf("stitch %s: pair not loaded", pair.Set)
	}

	// Project the reference corners to find the canvas bounds in the
	// registered frame.
	corners := []homography.Point{
		{X: 0, Y: 0},
		{X: float64(pair.Ref.W), Y: 0},
		{X: 0, Y: float64(pair.Ref.H)},
		{X: float64(pair.Ref.W), Y: float64(pair.Ref.H)},
	}
	minX, minY := 0.0, 0.0
	maxX, maxY := float64(pair.Reg.W), float64(pair.Reg.H)
	for _, c := range corners {
		p := h.Apply(c)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	canvasW := int(math.Ceil(maxX - minX))
	canvasH := int(math.Ceil(maxY - minY))
	if canvasW <= 0 || canvasH <= 0 || canvasW > 40000 || canvasH > 40000 {
		return fmt.Errorf("stitch %s: degenerate canvas %dx%d", pair.Set, canvasW, canvasH)
	}

	// Shift the transform so the canvas origin is at (minX, minY).
	shift := homography.Translation(-minX, -minY).Mul(h)
	shiftMat := shift.ToMat()
	defer shiftMat.Close()

	canvas := gocv.NewMat()
	defer canvas.Close()
	gocv.WarpPerspective(pair.Ref.Color, &canvas, shiftMat, image.Pt(canvasW, canvasH))

	// Overlay the registered image at its shifted origin.
	ox, oy := int(math.Round(-minX)), int(math.Round(-minY))
	roi := canvas.Region(image.Rect(ox, oy, ox+pair.Reg.W, oy+pair.Reg.H))
	defer roi.Close()
	pair.Reg.Color.CopyTo(&roi)

	if outPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("stitch %s: %w", pair.Set, err)
	}
	if ok := gocv.IMWrite(outPath, canvas); !ok {
		return fmt.Errorf("stitch %s: write %s failed", pair.Set, outPath)
	}
	return nil
}
