package imaging

import (
	"math"
	"testing"
)

// stripes builds a plane with vertical stripes repeating every period
// pixels, the cleanest possible single-frequency texture.
func stripes(w, h, period int) *Plane {
	p := NewPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.Pix[y*w+x] = float32(128 + 100*math.Sin(2*math.Pi*float64(x)/float64(period)))
		}
	}
	return p
}

func TestSuggestWindowSizes_FindsStripePeriod(t *testing.T) {
	p := stripes(256, 128, 32)

	sizes, peaks := SuggestWindowSizes(p, 2)
	if len(sizes) == 0 {
		t.Fatal("expected at least one suggested window size")
	}
	if len(peaks) == 0 {
		t.Fatal("expected at least one spectrum peak")
	}

	found := false
	for _, l := range sizes {
		if l >= 28 && l <= 36 {
			found = true
		}
	}
	if !found {
		t.Errorf("suggested sizes %v do not include the 32 px stripe period", sizes)
	}

	if peaks[0].Axis != "col" {
		t.Errorf("dominant peak axis = %q, want col for vertical stripes", peaks[0].Axis)
	}
}

func TestSuggestWindowSizes_FlatImage(t *testing.T) {
	p := NewPlane(64, 64)
	sizes, _ := SuggestWindowSizes(p, 3)
	if len(sizes) != 0 {
		t.Errorf("flat image suggested %v, want none", sizes)
	}
}

func TestSuggestWindowSizes_DegenerateInputs(t *testing.T) {
	if sizes, _ := SuggestWindowSizes(&Plane{}, 2); sizes != nil {
		t.Errorf("empty plane: got %v", sizes)
	}
	if sizes, _ := SuggestWindowSizes(NewPlane(2, 2), 2); sizes != nil {
		t.Errorf("2x2 plane: got %v", sizes)
	}
	if sizes, _ := SuggestWindowSizes(stripes(64, 64, 8), 0); sizes != nil {
		t.Errorf("maxPeaks=0: got %v", sizes)
	}
}
