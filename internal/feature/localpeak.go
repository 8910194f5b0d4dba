package feature

import (
	"fmt"

	"gocv.io/x/gocv"

	"lpstitch/internal/detection"
)

// LocalPeakBackend selects how local-peak keypoints are described.
type LocalPeakBackend int

const (
	// BackendCustom uses the 64-element signed-gradient descriptor.
	BackendCustom LocalPeakBackend = iota
	// BackendSIFT describes local-peak keypoints with SIFT.
	BackendSIFT
	// BackendORB describes local-peak keypoints with ORB.
	BackendORB
)

// LocalPeak runs windowed min/max detection and describes the peaks
// with the configured backend.
type LocalPeak struct {
	name    string
	backend LocalPeakBackend
	windows []int
	opts    detection.PeakOptions
	norm    gocv.NormType
	f2d     feature2D
}

// NewLocalPeak builds a local-peak algorithm over the given window
// sizes. Windows must already be validated by the caller.
func NewLocalPeak(backend LocalPeakBackend, windows []int, opts detection.PeakOptions) Algorithm {
	lp := &LocalPeak{
		backend: backend,
		windows: append([]int(nil), windows...),
		opts:    opts,
	}
	switch backend {
	case BackendSIFT:
		d := gocv.NewSIFT()
		lp.name, lp.norm, lp.f2d = "LP-SIFT", gocv.NormL2, &d
	case BackendORB:
		d := gocv.NewORBWithParams(orbMaxFeatures, 1.2, 8, 31, 0, 2,
			gocv.ORBScoreTypeHarris, 31, 20)
		lp.name, lp.norm, lp.f2d = "LP-ORB", gocv.NormHamming, &d
	default:
		lp.name, lp.norm = "LP-SIFT64", gocv.NormL2
	}
	return lp
}

func (lp *LocalPeak) Name() string        { return lp.name }
func (lp *LocalPeak) Norm() gocv.NormType { return lp.norm }

// WindowSizes returns a copy of the window sizes in use.
func (lp *LocalPeak) WindowSizes() []int {
	return append([]int(nil), lp.windows...)
}

func (lp *LocalPeak) Detect(im *Image) ([]detection.Keypoint, error) {
	if im == nil || im.Gray.Empty() {
		return nil, fmt.Errorf("%s: detect on empty image", lp.name)
	}
	plane, err := im.GrayPlane()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lp.name, err)
	}
	return detection.DetectPeaks(plane, lp.windows, lp.opts), nil
}

func (lp *LocalPeak) Compute(im *Image, kps []detection.Keypoint) ([]detection.Keypoint, DescriptorSet, error) {
	if len(kps) == 0 {
		return nil, NewDescriptorSet(gocv.NewMat()), nil
	}
	if lp.backend != BackendCustom {
		kept := detection.Wellformed(kps, im.W, im.H)
		if len(kept) == 0 {
			return nil, NewDescriptorSet(gocv.NewMat()), nil
		}
		mask := gocv.NewMat()
		defer mask.Close()
		out, desc := lp.f2d.Compute(im.Gray, &mask, toCV(kept))
		return toGo(out), NewDescriptorSet(desc), nil
	}

	plane, err := im.GrayPlane()
	if err != nil {
		return nil, DescriptorSet{}, fmt.Errorf("%s: %w", lp.name, err)
	}
	vecs := detection.ComputeDescriptors(plane, kps)
	return kps, descriptorMat(vecs), nil
}

func (lp *LocalPeak) Close() error {
	if lp.f2d != nil {
		return lp.f2d.Close()
	}
	return nil
}

// descriptorMat packs float32 descriptor vectors into a CV32F matrix.
func descriptorMat(vecs [][]float32) DescriptorSet {
	if len(vecs) == 0 {
		return NewDescriptorSet(gocv.NewMat())
	}
	cols := len(vecs[0])
	m := gocv.NewMatWithSize(len(vecs), cols, gocv.MatTypeCV32F)
	for r, vec := range vecs {
		for c, v := range vec {
			m.SetFloatAt(r, c, v)
		}
	}
	return NewDescriptorSet(m)
}
