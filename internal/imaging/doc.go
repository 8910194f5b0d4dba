// Package imaging provides the image-side groundwork for the local-peak
// feature benchmark: a float32 intensity plane, grayscale conversion, the
// deterministic tie-breaking ramp, interrogation window size selection,
// and a small loader cache for the CLI inspection commands.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner;
// X increases rightward and Y increases downward. A Plane stores samples in
// row-major (raster) order, so index = y*W + x.
//
// # The Plane
//
// Detection never operates on a caller's image directly. Callers build a
// Plane (an owned float32 copy of 8-bit grayscale intensities) and the
// peak extractor only reads it. This keeps the original image buffer
// immutable across a whole benchmark sweep, which is what allows one
// image pair to be shared by many detector runs.
//
// # Determinism
//
// RampedAt superimposes a strictly monotonic gradient, alpha*(y*W + x)
// with alpha much smaller than one intensity step, so no two samples in
// any interrogation window compare equal. The sum is formed in float64 at
// read time; written into the float32 samples the increment would round
// away on constant-intensity plateaus. Extremum locations then resolve in
// raster order on every run rather than depending on scan order accidents.
package imaging
