package imaging

import (
	"image"
	"image/color"
	"testing"
)

// uniformImage builds an in-memory RGBA image filled with one color.
func uniformImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPlaneFromImage_Grayscale(t *testing.T) {
	img := uniformImage(8, 4, color.RGBA{200, 200, 200, 255})
	p := PlaneFromImage(img)

	if p.W != 8 || p.H != 4 {
		t.Fatalf("dimensions: got %dx%d, want 8x4", p.W, p.H)
	}
	for i, v := range p.Pix {
		if v != 200 {
			t.Fatalf("pixel %d: got %v, want 200", i, v)
		}
	}
}

func TestPlaneFromImage_Luminance(t *testing.T) {
	// Pure red should convert using BT.601 weights, not a channel copy.
	img := uniformImage(2, 2, color.RGBA{255, 0, 0, 255})
	p := PlaneFromImage(img)

	got := p.At(0, 0)
	if got < 50 || got > 90 {
		t.Errorf("red luminance: got %v, want roughly 0.299*255=76", got)
	}
}

func TestPlaneFromBytes(t *testing.T) {
	p := PlaneFromBytes(3, 2, []byte{0, 1, 2, 3, 4, 5})
	if p.At(2, 1) != 5 {
		t.Errorf("At(2,1): got %v, want 5", p.At(2, 1))
	}
	if p.At(1, 0) != 1 {
		t.Errorf("At(1,0): got %v, want 1", p.At(1, 0))
	}

	short := PlaneFromBytes(3, 2, []byte{0})
	for i, v := range short.Pix {
		if v != 0 {
			t.Errorf("short data pixel %d: got %v, want 0", i, v)
		}
	}
}

func TestPlaneClone_Independent(t *testing.T) {
	p := PlaneFromBytes(2, 2, []byte{1, 2, 3, 4})
	q := p.Clone()
	q.Pix[0] = 99
	if p.Pix[0] != 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestRampedAt_StrictlyIncreasingOnFlat(t *testing.T) {
	p := NewPlane(16, 16)

	prev := -1.0
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			v := p.RampedAt(x, y, DefaultRampAlpha)
			if v <= prev {
				t.Fatalf("(%d,%d): ramp not strictly increasing (%v <= %v)", x, y, v, prev)
			}
			prev = v
		}
	}
}

func TestRampedAt_BreaksTiesAtFullIntensityRange(t *testing.T) {
	// At intensities like 128 or 255 the per-pixel increment is below
	// one float32 ulp; the float64 read must still order raster
	// neighbors strictly.
	for _, level := range []byte{128, 255} {
		p := NewPlane(256, 2)
		for i := range p.Pix {
			p.Pix[i] = float32(level)
		}
		prev := -1.0
		for y := 0; y < p.H; y++ {
			for x := 0; x < p.W; x++ {
				v := p.RampedAt(x, y, DefaultRampAlpha)
				if v <= prev {
					t.Fatalf("level %d (%d,%d): plateau not broken (%v <= %v)", level, x, y, v, prev)
				}
				prev = v
			}
		}
	}
}

func TestRampedAt_TinyRelativeToIntensityStep(t *testing.T) {
	p := NewPlane(256, 256)
	span := p.RampedAt(p.W-1, p.H-1, DefaultRampAlpha) - p.RampedAt(0, 0, DefaultRampAlpha)
	if span >= 1.0 {
		t.Errorf("ramp span %v exceeds one intensity step across a 256x256 window", span)
	}
}

func TestRampedAt_NonPositiveAlpha(t *testing.T) {
	p := PlaneFromBytes(2, 2, []byte{5, 5, 5, 5})
	for _, alpha := range []float64{0, -1} {
		if v := p.RampedAt(1, 1, alpha); v != 5 {
			t.Errorf("alpha %v: got %v, want plain intensity 5", alpha, v)
		}
	}
}
