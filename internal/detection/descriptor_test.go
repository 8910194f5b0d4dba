package detection

import (
	"math"
	"reflect"
	"testing"

	"lpstitch/internal/imaging"
)

func TestComputeDescriptors_EmptyKeypoints(t *testing.T) {
	p := indexPlane(32, 32)
	if got := ComputeDescriptors(p, nil); got != nil {
		t.Errorf("empty keypoint list: got %v, want nil", got)
	}
}

func TestComputeDescriptors_Length(t *testing.T) {
	p := indexPlane(64, 64)
	kps := DetectPeaks(p, []int{32}, DefaultPeakOptions())
	descs := ComputeDescriptors(p, kps)

	if len(descs) != len(kps) {
		t.Fatalf("descriptor count %d != keypoint count %d", len(descs), len(kps))
	}
	for i, d := range descs {
		if len(d) != DescriptorLength {
			t.Errorf("descriptor %d has length %d, want %d", i, len(d), DescriptorLength)
		}
	}
}

func TestComputeDescriptors_FlatPatchIsZero(t *testing.T) {
	p := uniformPlane(64, 64, 128)
	kps := []Keypoint{{X: 32, Y: 32, Size: 32}}
	d := ComputeDescriptors(p, kps)[0]

	for i, v := range d {
		if v != 0 {
			t.Fatalf("component %d of flat-patch descriptor is %v, want 0", i, v)
		}
	}
}

func TestComputeDescriptors_DegenerateBlock(t *testing.T) {
	// A 1-pixel-wide image cannot host a 2 px block; the descriptor
	// must come back zero instead of dividing by anything.
	p := indexPlane(1, 64)
	kps := []Keypoint{{X: 0, Y: 10, Size: 16}}
	d := ComputeDescriptors(p, kps)[0]
	for i, v := range d {
		if v != 0 {
			t.Fatalf("component %d is %v, want 0 for degenerate block", i, v)
		}
	}

	// Out-of-bounds or sizeless keypoints are equally inert.
	bad := []Keypoint{{X: -3, Y: 1, Size: 16}, {X: 5, Y: 5, Size: 0}}
	for _, d := range ComputeDescriptors(indexPlane(32, 32), bad) {
		for _, v := range d {
			if v != 0 {
				t.Fatal("malformed keypoint produced a non-zero descriptor")
			}
		}
	}
}

func TestComputeDescriptors_UnitNormAndClip(t *testing.T) {
	// Diagonal gradient gives a rich, non-flat patch.
	p := imaging.NewPlane(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			p.Pix[y*64+x] = float32((x*3 + y*5) % 256)
		}
	}
	kps := []Keypoint{{X: 30, Y: 30, Size: 64}}
	d := ComputeDescriptors(p, kps)[0]

	var sum float64
	for _, v := range d {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if math.Abs(norm-1) > 1e-4 {
		t.Errorf("descriptor norm %v, want 1", norm)
	}
}

func TestComputeDescriptors_Deterministic(t *testing.T) {
	p := indexPlane(48, 48)
	kps := DetectPeaks(p, []int{16}, DefaultPeakOptions())

	a := ComputeDescriptors(p, kps)
	b := ComputeDescriptors(p, kps)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated descriptor computation differed")
	}
}

func TestNormalizeDescriptor_Idempotent(t *testing.T) {
	// A vector whose normalized components sit below the clip threshold
	// is a fixed point of the normalization, up to rounding.
	vec := make([]float32, DescriptorLength)
	for i := range vec {
		vec[i] = 3 // uniform: normalizes to 1/8 per component, under 0.2
	}
	NormalizeDescriptor(vec)

	again := make([]float32, DescriptorLength)
	copy(again, vec)
	NormalizeDescriptor(again)

	for i := range vec {
		if diff := math.Abs(float64(vec[i] - again[i])); diff > 1e-6 {
			t.Fatalf("component %d moved by %v on renormalization", i, diff)
		}
	}
}

func TestNormalizeDescriptor_ClipsDominantComponent(t *testing.T) {
	vec := make([]float32, DescriptorLength)
	vec[0] = 1000
	for i := 1; i < 10; i++ {
		vec[i] = 100
	}
	NormalizeDescriptor(vec)

	// Without the clip the dominant component would normalize to ~0.96;
	// clipping it at 0.2 before the second pass redistributes weight to
	// the rest.
	if vec[0] > 0.7 {
		t.Errorf("component 0 is %v; clipping had no effect", vec[0])
	}
	if vec[1] < 0.2 {
		t.Errorf("component 1 is %v, want at least 0.2 after redistribution", vec[1])
	}
}

func TestNormalizeDescriptor_ZeroVectorUntouched(t *testing.T) {
	vec := make([]float32, DescriptorLength)
	NormalizeDescriptor(vec)
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("component %d is %v, want 0", i, v)
		}
	}
}
