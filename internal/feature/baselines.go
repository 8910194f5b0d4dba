package feature

import (
	"fmt"

	"gocv.io/x/gocv"

	"lpstitch/internal/detection"
)

// orbMaxFeatures is deliberately huge so ORB's internal cap never
// truncates a detection pass; the benchmark applies its own capacity
// guard before brute-force matching instead.
const orbMaxFeatures = 250000

// feature2D is the slice of the gocv detector API the wrappers need.
type feature2D interface {
	Detect(src gocv.Mat) []gocv.KeyPoint
	Compute(src gocv.Mat, mask *gocv.Mat, kps []gocv.KeyPoint) ([]gocv.KeyPoint, gocv.Mat)
	Close() error
}

// baseline wraps one OpenCV detector/descriptor pair.
type baseline struct {
	name string
	norm gocv.NormType
	f2d  feature2D
}

// NewSIFT returns the SIFT baseline.
func NewSIFT() Algorithm {
	d := gocv.NewSIFT()
	return &baseline{name: "SIFT", norm: gocv.NormL2, f2d: &d}
}

// NewORB returns the ORB baseline with its feature cap raised.
func NewORB() Algorithm {
	d := gocv.NewORBWithParams(orbMaxFeatures, 1.2, 8, 31, 0, 2,
		gocv.ORBScoreTypeHarris, 31, 20)
	return &baseline{name: "ORB", norm: gocv.NormHamming, f2d: &d}
}

// NewBRISK returns the BRISK baseline.
func NewBRISK() Algorithm {
	d := gocv.NewBRISK()
	return &baseline{name: "BRISK", norm: gocv.NormHamming, f2d: &d}
}

// NewAKAZE returns the AKAZE baseline.
func NewAKAZE() Algorithm {
	d := gocv.NewAKAZE()
	return &baseline{name: "AKAZE", norm: gocv.NormHamming, f2d: &d}
}

func (b *baseline) Name() string        { return b.name }
func (b *baseline) Norm() gocv.NormType { return b.norm }

func (b *baseline) Detect(im *Image) ([]detection.Keypoint, error) {
	if im == nil || im.Gray.Empty() {
		return nil, fmt.Errorf("%s: detect on empty image", b.name)
	}
	return toGo(b.f2d.Detect(im.Gray)), nil
}

func (b *baseline) Compute(im *Image, kps []detection.Keypoint) ([]detection.Keypoint, DescriptorSet, error) {
	if len(kps) == 0 {
		return nil, NewDescriptorSet(gocv.NewMat()), nil
	}
	mask := gocv.NewMat()
	defer mask.Close()
	kept, desc := b.f2d.Compute(im.Gray, &mask, toCV(kps))
	return toGo(kept), NewDescriptorSet(desc), nil
}

func (b *baseline) Close() error {
	return b.f2d.Close()
}
