// Package viz renders diagnostic overlays for benchmark runs: keypoint
// maps colored by window class and side-by-side match visualizations.
package viz

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"lpstitch/internal/detection"
	"lpstitch/internal/feature"
)

// ClassPalette returns n well-separated colors, one per window class,
// by walking the hue circle at fixed saturation and value.
func ClassPalette(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = colorful.Hsv(float64(i)*360/float64(n), 0.85, 0.9)
	}
	return out
}

// KeypointOverlay draws each keypoint as a circle sized by its window
// scale and colored by its window class.
func KeypointOverlay(base image.Image, kps []detection.Keypoint, classes int) image.Image {
	dc := gg.NewContextForImage(base)
	palette := ClassPalette(classes)
	dc.SetLineWidth(1.5)
	for _, kp := range kps {
		c := colorful.Hsv(0, 0, 1)
		if kp.Class >= 0 && kp.Class < len(palette) {
			c = palette[kp.Class]
		}
		dc.SetRGB(c.R, c.G, c.B)
		r := kp.Size / 4
		if r < 2 {
			r = 2
		}
		dc.DrawCircle(kp.X, kp.Y, r)
		dc.Stroke()
	}
	return dc.Image()
}

// MatchOverlay places the two images side by side and draws one line
// per correspondence, green for inliers and red for the rest. inliers
// may be nil, which draws everything green.
func MatchOverlay(ref, reg image.Image, refKps, regKps []detection.Keypoint, matches []feature.Match, inliers []bool) image.Image {
	rb, gb := ref.Bounds(), reg.Bounds()
	h := rb.Dy()
	if gb.Dy() > h {
		h = gb.Dy()
	}
	dc := gg.NewContext(rb.Dx()+gb.Dx(), h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.DrawImage(ref, 0, 0)
	dc.DrawImage(reg, rb.Dx(), 0)

	off := float64(rb.Dx())
	dc.SetLineWidth(1)
	for i, m := range matches {
		if m.QueryIdx >= len(refKps) || m.TrainIdx >= len(regKps) {
			continue
		}
		if inliers != nil && (i >= len(inliers) || !inliers[i]) {
			dc.SetRGB(0.9, 0.2, 0.2)
		} else {
			dc.SetRGB(0.2, 0.9, 0.2)
		}
		a, b := refKps[m.QueryIdx], regKps[m.TrainIdx]
		dc.DrawLine(a.X, a.Y, b.X+off, b.Y)
		dc.Stroke()
	}
	return dc.Image()
}

// SavePNG writes an overlay to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save overlay: %w", err)
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save overlay %s: %w", path, err)
	}
	return nil
}
