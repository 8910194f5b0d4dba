package detection

import "sort"

// Keypoint is the canonical feature record shared by every detector
// variant in the benchmark, local-peak and baseline alike.
type Keypoint struct {
	// X, Y is the keypoint position in pixels, sub-pixel capable.
	X, Y float64

	// Size is the interrogation window size L that produced the point.
	// The descriptor stage uses it as the support radius scale.
	Size float64

	// Response is the contrast (max-min) of the producing window. The
	// min and max keypoint drawn from one window share it.
	Response float64

	// Class is the index of Size in the configured window size set,
	// kept for provenance analysis and visualization.
	Class int

	// Angle is the orientation in degrees. Local-peak detection is
	// orientation-agnostic; -1 signals "unset" and lets a delegated
	// descriptor algorithm assign one during compute.
	Angle float64

	// Octave is the scale-pass index, mirroring Class for local-peak
	// keypoints.
	Octave int
}

// InBounds reports whether the keypoint lies strictly within a w x h
// image and has a positive size, the well-formedness invariant every
// consumer relies on.
func (k Keypoint) InBounds(w, h int) bool {
	return k.X >= 0 && k.Y >= 0 && k.X < float64(w) && k.Y < float64(h) && k.Size > 0
}

// Wellformed filters a keypoint list down to the entries satisfying
// InBounds. Delegating adapters call this before handing keypoints to an
// external descriptor so malformed entries never cross the boundary.
func Wellformed(kps []Keypoint, w, h int) []Keypoint {
	out := kps[:0:0]
	for _, k := range kps {
		if k.InBounds(w, h) {
			out = append(out, k)
		}
	}
	return out
}

// SortByResponse orders keypoints by descending response, stably, for
// callers that keep only the strongest K candidates. Detection output
// order itself is raster-within-scale and carries no significance.
func SortByResponse(kps []Keypoint) {
	sort.SliceStable(kps, func(i, j int) bool {
		return kps[i].Response > kps[j].Response
	})
}
