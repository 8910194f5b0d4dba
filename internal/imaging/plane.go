package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Plane is a single-channel floating-point intensity image in row-major
// order. Intensities are 8-bit values (0-255) promoted to float32 so the
// tie-breaking ramp can be added without quantization.
//
// A Plane owns its pixel slice. Functions in this module that need to
// mutate intensities (the ramp, most prominently) operate on a Clone, so
// a Plane handed to the detector is never written through.
type Plane struct {
	W, H int
	Pix  []float32
}

// NewPlane allocates a zeroed w x h plane. Non-positive dimensions yield
// an empty plane.
func NewPlane(w, h int) *Plane {
	if w <= 0 || h <= 0 {
		return &Plane{}
	}
	return &Plane{W: w, H: h, Pix: make([]float32, w*h)}
}

// PlaneFromImage converts any image to an intensity plane. Color inputs
// are reduced to grayscale first using ITU-R BT.601 luminance weights.
func PlaneFromImage(img image.Image) *Plane {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	p := NewPlane(b.Dx(), b.Dy())
	if p.Empty() {
		return p
	}
	// Grayscale output is NRGBA with R==G==B; read the red channel.
	for y := 0; y < p.H; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < p.W; x++ {
			p.Pix[y*p.W+x] = float32(row[x*4])
		}
	}
	return p
}

// PlaneFromBytes wraps raw 8-bit grayscale samples (row-major, len w*h)
// as an intensity plane. The bytes are copied, not aliased.
func PlaneFromBytes(w, h int, data []byte) *Plane {
	p := NewPlane(w, h)
	if p.Empty() || len(data) < w*h {
		return p
	}
	for i := 0; i < w*h; i++ {
		p.Pix[i] = float32(data[i])
	}
	return p
}

// Empty reports whether the plane has no pixels.
func (p *Plane) Empty() bool {
	return p.W <= 0 || p.H <= 0 || len(p.Pix) == 0
}

// At returns the intensity at (x, y). The caller is responsible for
// bounds; this is the hot path of the per-tile extremum scan.
func (p *Plane) At(x, y int) float32 {
	return p.Pix[y*p.W+x]
}

// Clone returns an independent copy of the plane.
func (p *Plane) Clone() *Plane {
	out := &Plane{W: p.W, H: p.H}
	if len(p.Pix) > 0 {
		out.Pix = make([]float32, len(p.Pix))
		copy(out.Pix, p.Pix)
	}
	return out
}

// Megapixels returns the pixel count in millions.
func (p *Plane) Megapixels() float64 {
	return float64(p.W) * float64(p.H) / 1e6
}
