// Package detection implements the windowed local-peak keypoint detector
// and its fixed-length gradient-histogram descriptor.
//
// # Algorithm Overview
//
// The detector partitions the image into square interrogation windows of
// several configured sizes L. Within each window it locates the pixel of
// minimum and of maximum intensity; both become keypoints carrying the
// window's contrast (max-min) as their response. Flat regions are made
// tie-free beforehand by the imaging package's linear ramp, which pins
// extremum locations to raster order deterministically.
//
// Boundary windows are clipped to the image edges rather than skipped,
// so for each L exactly ceil(W/L)*ceil(H/L) tiles are visited and every
// pixel belongs to one tile per scale.
//
// # Descriptor
//
// The 64-dimensional descriptor divides a patch around the keypoint into
// 4x4 spatial cells and accumulates four signed central-difference
// gradient bins (+dx, -dx, +dy, -dy) per cell. The concatenated
// histogram is L2-normalized, clipped at 0.2 of its norm, and
// renormalized, mirroring SIFT's contrast-invariance step. The patch
// radius grows with the window size that produced the keypoint, so
// larger-scale peaks describe proportionally larger support regions.
//
// # Determinism
//
// Given the same plane, window sizes, and ramp alpha, both the keypoint
// list and every descriptor vector are byte-identical across runs. The
// package holds no state and uses no randomness.
package detection
