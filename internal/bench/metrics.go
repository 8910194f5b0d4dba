package bench

import (
	"fmt"
	"time"

	"lpstitch/internal/homography"
	"lpstitch/internal/imaging"
)

// Metrics accumulates everything one (image pair, algorithm) run
// produced. A record is created at run start, filled in as stages
// complete, finalized exactly once, and then only read.
type Metrics struct {
	Set       string
	Algorithm string

	// WindowSizes is the window size set used by local-peak detection,
	// rendered as a comma-joined list; empty for baseline algorithms.
	WindowSizes string

	RefResolution string
	RegResolution string
	Category      imaging.SizeCategory

	RefKeypoints   int
	RegKeypoints   int
	RefDescriptors int
	RegDescriptors int
	Matches        int
	Inliers        int

	// Stage durations in seconds.
	DetectRefTime   float64
	DetectRegTime   float64
	DescribeRefTime float64
	DescribeRegTime float64
	MatchTime       float64
	FitTime         float64
	WarpTime        float64
	TotalTime       float64

	// H is the estimated reference-to-registered homography; nil until
	// a fit succeeds. BaselineDelta is H minus the sweep's baseline
	// homography, present only when a baseline was available.
	H             *homography.Homography
	BaselineDelta *homography.Homography

	// ReprojError is the mean inlier reprojection error in pixels.
	ReprojError float64

	Success       bool
	FailureReason string
}

// fail finalizes the record with a failure reason.
func (m *Metrics) fail(reason string) *Metrics {
	m.Success = false
	m.FailureReason = reason
	return m
}

// Resolution renders image dimensions the way reports print them.
func Resolution(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// FormatSeconds renders a stage duration with 2-decimal precision.
func FormatSeconds(s float64) string {
	return fmt.Sprintf("%.2f", s)
}

// seconds converts an elapsed duration to the float seconds the
// record stores.
func seconds(since time.Time) float64 {
	return time.Since(since).Seconds()
}
