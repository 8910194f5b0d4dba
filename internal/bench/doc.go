// Package bench orchestrates detector benchmark sweeps over image
// pairs and reports the results.
//
// One run is a single (image pair, algorithm) execution stepping
// through detect, describe, match, homography fit, and warp. Every
// stage after detection is guarded: an empty keypoint set, an
// oversized keypoint set, empty descriptors, too few matches, or a
// failed fit finalizes the run with a labeled failure instead of
// proceeding, and a panic in any collaborator is captured at the run
// boundary so one failing algorithm never aborts the sweep.
//
// The matcher, the robust fit, and the warp are injected through a
// Collaborators value. Production sweeps use the OpenCV-backed
// defaults; tests substitute pure Go fakes and drive the guard
// transitions directly.
package bench
