// Package feature adapts the detectors, descriptor extractors, and
// matchers the benchmark sweeps over behind a single Algorithm
// interface.
//
// Two families live here. The established baselines (SIFT, ORB, BRISK,
// AKAZE) are thin wrappers over their OpenCV implementations. The
// LocalPeak family runs the windowed min/max detector from package
// detection and pairs it with one of three descriptor backends: the
// custom signed-gradient descriptor computed in pure Go, or SIFT/ORB
// description over the local-peak keypoints.
//
// Descriptor matrices stay inside gocv Mats, but DescriptorSet carries
// the row and column counts alongside so orchestration code (and its
// tests) can reason about emptiness and capacity without the binding.
package feature
