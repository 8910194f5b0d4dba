package feature

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"lpstitch/internal/detection"
	"lpstitch/internal/imaging"
)

// Image bundles the color and grayscale views of one benchmark input.
// Detection and description run on Gray; warping and overlays use Color.
type Image struct {
	Path  string
	Color gocv.Mat
	Gray  gocv.Mat
	W, H  int
}

// LoadImage reads an image from disk and derives its grayscale view.
func LoadImage(path string) (*Image, error) {
	color := gocv.IMRead(path, gocv.IMReadColor)
	if color.Empty() {
		color.Close()
		return nil, fmt.Errorf("read image %s: empty or unreadable", path)
	}
	gray := gocv.NewMat()
	gocv.CvtColor(color, &gray, gocv.ColorBGRToGray)
	return &Image{
		Path:  path,
		Color: color,
		Gray:  gray,
		W:     color.Cols(),
		H:     color.Rows(),
	}, nil
}

// Close releases both underlying matrices.
func (im *Image) Close() {
	if im == nil {
		return
	}
	im.Color.Close()
	im.Gray.Close()
}

// Bounds returns the pixel bounds of the image.
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.W, im.H)
}

// Megapixels returns the image area in megapixels.
func (im *Image) Megapixels() float64 {
	return float64(im.W) * float64(im.H) / 1e6
}

// GrayPlane copies the grayscale pixels into a detection plane.
func (im *Image) GrayPlane() (*imaging.Plane, error) {
	data, err := im.Gray.DataPtrUint8()
	if err != nil {
		// Non-continuous Mat; fall back to a byte copy.
		data = im.Gray.ToBytes()
	}
	if len(data) < im.W*im.H {
		return nil, fmt.Errorf("grayscale buffer too short: %d for %dx%d", len(data), im.W, im.H)
	}
	return imaging.PlaneFromBytes(im.W, im.H, data[:im.W*im.H]), nil
}

// DescriptorSet is a descriptor matrix plus its dimensions. Rows and
// Cols duplicate the Mat header so callers that never dereference the
// Mat (size checks, fakes in tests) stay independent of the binding.
type DescriptorSet struct {
	Mat  gocv.Mat
	Rows int
	Cols int
}

// NewDescriptorSet wraps a Mat, capturing its dimensions.
func NewDescriptorSet(m gocv.Mat) DescriptorSet {
	return DescriptorSet{Mat: m, Rows: m.Rows(), Cols: m.Cols()}
}

// Empty reports whether the set holds no descriptors.
func (d DescriptorSet) Empty() bool {
	return d.Rows == 0
}

// Close releases the underlying matrix.
func (d *DescriptorSet) Close() {
	d.Mat.Close()
	d.Rows, d.Cols = 0, 0
}

// MatcherKind selects the matching strategy for an algorithm.
type MatcherKind int

const (
	// MatcherBruteForce exhaustively compares every descriptor pair.
	MatcherBruteForce MatcherKind = iota
	// MatcherFlann uses approximate index-based matching.
	MatcherFlann
)

func (k MatcherKind) String() string {
	if k == MatcherFlann {
		return "flann"
	}
	return "brute-force"
}

// Algorithm is one detector/descriptor configuration in a sweep.
type Algorithm interface {
	// Name identifies the configuration in reports and file names.
	Name() string
	// Detect finds keypoints in the image.
	Detect(im *Image) ([]detection.Keypoint, error)
	// Compute describes previously detected keypoints. Implementations
	// may drop keypoints they cannot describe; the returned slice is
	// the surviving set, row-aligned with the descriptor matrix.
	Compute(im *Image, kps []detection.Keypoint) ([]detection.Keypoint, DescriptorSet, error)
	// Norm is the distance norm its descriptors are matched under.
	Norm() gocv.NormType
	// Close releases backend resources.
	Close() error
}

// DetectAndCompute runs detection and description in one step. A
// non-nil provided list skips detection and describes those keypoints
// instead.
func DetectAndCompute(alg Algorithm, im *Image, provided []detection.Keypoint) ([]detection.Keypoint, DescriptorSet, error) {
	kps := provided
	if kps == nil {
		var err error
		kps, err = alg.Detect(im)
		if err != nil {
			return nil, DescriptorSet{}, err
		}
	}
	return alg.Compute(im, kps)
}

// toGo converts gocv keypoints into the benchmark's keypoint type.
func toGo(kps []gocv.KeyPoint) []detection.Keypoint {
	out := make([]detection.Keypoint, len(kps))
	for i, kp := range kps {
		out[i] = detection.Keypoint{
			X:        kp.X,
			Y:        kp.Y,
			Size:     kp.Size,
			Angle:    kp.Angle,
			Response: kp.Response,
			Octave:   kp.Octave,
			Class:    kp.ClassID,
		}
	}
	return out
}

// toCV converts benchmark keypoints into gocv keypoints.
func toCV(kps []detection.Keypoint) []gocv.KeyPoint {
	out := make([]gocv.KeyPoint, len(kps))
	for i, kp := range kps {
		out[i] = gocv.KeyPoint{
			X:        kp.X,
			Y:        kp.Y,
			Size:     kp.Size,
			Angle:    kp.Angle,
			Response: kp.Response,
			Octave:   kp.Octave,
			ClassID:  kp.Class,
		}
	}
	return out
}
