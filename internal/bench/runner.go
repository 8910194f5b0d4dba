package bench

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"lpstitch/internal/detection"
	"lpstitch/internal/feature"
	"lpstitch/internal/homography"
	"lpstitch/internal/imaging"
)

// MinMatches is the minimum correspondence count a homography solve
// needs.
const MinMatches = 4

// Collaborators are the external operations a run delegates: descriptor
// matching, robust homography estimation, and perspective warping.
// Tests substitute fakes here to drive the guard transitions without
// the vision backend.
type Collaborators struct {
	Match   func(alg feature.Algorithm, ref, reg feature.DescriptorSet) ([]feature.Match, error)
	Fit     func(src, dst []homography.Point, seed int, threshold float64) (*homography.Homography, []bool, error)
	Warp    func(pair *Pair, h *homography.Homography, outPath string) error
	Overlay func(pair *Pair, refKps, regKps []detection.Keypoint, matches []feature.Match, inliers []bool, outPath string) error
}

// DefaultCollaborators wires the OpenCV-backed implementations.
func DefaultCollaborators(kind feature.MatcherKind, crossCheck bool) Collaborators {
	return Collaborators{
		Match: func(alg feature.Algorithm, ref, reg feature.DescriptorSet) ([]feature.Match, error) {
			m := feature.NewMatcher(kind, alg.Norm(), crossCheck)
			defer m.Close()
			return m.Match(ref, reg)
		},
		Fit:     homography.Fit,
		Warp:    Stitch,
		Overlay: SaveMatchOverlay,
	}
}

// Runner executes benchmark runs and sweeps.
type Runner struct {
	// Seed and Threshold parameterize the RANSAC fit.
	Seed      int
	Threshold float64

	// MaxKeypoints caps per-image keypoint counts before brute-force
	// matching. Zero disables the guard.
	MaxKeypoints int

	// BruteForce reports whether the configured matcher is exhaustive;
	// the capacity guard applies only then.
	BruteForce bool

	// ReferenceAlgorithm names the run whose homography becomes the
	// baseline for the rest of the pair's sweep.
	ReferenceAlgorithm string

	// OutputDir receives stitched composites and overlays. The warp
	// stage always runs; SaveStitched only controls whether the
	// composite is written to disk.
	OutputDir    string
	SaveStitched bool
	SaveOverlays bool

	Log    *slog.Logger
	Collab Collaborators
}

// NewRunner returns a runner with the standard deterministic
// parameters and OpenCV collaborators.
func NewRunner(log *slog.Logger) *Runner {
	return &Runner{
		Seed:               homography.DefaultSeed,
		Threshold:          homography.DefaultThreshold,
		MaxKeypoints:       feature.MaxKeypointsBF,
		BruteForce:         true,
		ReferenceAlgorithm: "SIFT",
		Log:                log,
		Collab:             DefaultCollaborators(feature.MatcherBruteForce, false),
	}
}

// RunSingle executes one (pair, algorithm) run. baseline may be nil;
// when present the record carries the delta against it. The returned
// record is always finalized, success or failure.
func (r *Runner) RunSingle(pair *Pair, alg feature.Algorithm, baseline *homography.Homography) (m *Metrics) {
	m = &Metrics{
		Set:       pair.Set,
		Algorithm: alg.Name(),
		Category:  pair.Category(),
	}
	if pair.Ref != nil {
		m.RefResolution = Resolution(pair.Ref.W, pair.Ref.H)
	}
	if pair.Reg != nil {
		m.RegResolution = Resolution(pair.Reg.W, pair.Reg.H)
	}
	if lp, ok := alg.(*feature.LocalPeak); ok {
		m.WindowSizes = imaging.FormatWindowSizes(lp.WindowSizes())
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			m.fail(fmt.Sprintf("Exception: %v", p))
			if r.Log != nil {
				r.Log.Error("run panicked", "set", pair.Set, "algorithm", alg.Name(), "panic", p)
			}
		}
		m.TotalTime = seconds(start)
	}()

	// Detect.
	t := time.Now()
	refKps, err := alg.Detect(pair.Ref)
	m.DetectRefTime = seconds(t)
	if err != nil {
		return m.fail(fmt.Sprintf("Exception: %v", err))
	}
	t = time.Now()
	regKps, err := alg.Detect(pair.Reg)
	m.DetectRegTime = seconds(t)
	if err != nil {
		return m.fail(fmt.Sprintf("Exception: %v", err))
	}
	m.RefKeypoints = len(refKps)
	m.RegKeypoints = len(regKps)

	if len(refKps) == 0 || len(regKps) == 0 {
		return m.fail("Empty keypoints")
	}
	if r.BruteForce && r.MaxKeypoints > 0 &&
		(len(refKps) > r.MaxKeypoints || len(regKps) > r.MaxKeypoints) {
		return m.fail(fmt.Sprintf("Too many keypoints (ref=%d, reg=%d, limit=%d)",
			len(refKps), len(regKps), r.MaxKeypoints))
	}

	// Describe.
	t = time.Now()
	refKps, refDesc, err := alg.Compute(pair.Ref, refKps)
	m.DescribeRefTime = seconds(t)
	if err != nil {
		return m.fail(fmt.Sprintf("Exception: %v", err))
	}
	defer refDesc.Close()
	t = time.Now()
	regKps, regDesc, err := alg.Compute(pair.Reg, regKps)
	m.DescribeRegTime = seconds(t)
	if err != nil {
		return m.fail(fmt.Sprintf("Exception: %v", err))
	}
	defer regDesc.Close()
	m.RefDescriptors = refDesc.Rows
	m.RegDescriptors = regDesc.Rows

	if refDesc.Empty() || regDesc.Empty() {
		return m.fail("Empty descriptors")
	}

	// Match.
	t = time.Now()
	matches, err := r.Collab.Match(alg, refDesc, regDesc)
	m.MatchTime = seconds(t)
	if err != nil {
		return m.fail(fmt.Sprintf("Exception: %v", err))
	}
	m.Matches = len(matches)
	if len(matches) < MinMatches {
		return m.fail(fmt.Sprintf("Insufficient matches (<%d)", MinMatches))
	}

	// Fit. kept stays index-aligned with src, dst, and the inlier mask.
	src := make([]homography.Point, 0, len(matches))
	dst := make([]homography.Point, 0, len(matches))
	kept := make([]feature.Match, 0, len(matches))
	for _, match := range matches {
		if match.QueryIdx >= len(refKps) || match.TrainIdx >= len(regKps) {
			continue
		}
		rk := refKps[match.QueryIdx]
		gk := regKps[match.TrainIdx]
		src = append(src, homography.Point{X: rk.X, Y: rk.Y})
		dst = append(dst, homography.Point{X: gk.X, Y: gk.Y})
		kept = append(kept, match)
	}
	t = time.Now()
	h, inliers, err := r.Collab.Fit(src, dst, r.Seed, r.Threshold)
	m.FitTime = seconds(t)
	if err != nil {
		return m.fail(fmt.Sprintf("Exception: %v", err))
	}
	if h == nil {
		return m.fail("Homography computation failed")
	}
	m.H = h
	for _, in := range inliers {
		if in {
			m.Inliers++
		}
	}
	m.ReprojError = h.ReprojectionError(src, dst, inliers)
	if baseline != nil {
		m.BaselineDelta = h.Delta(baseline)
	}

	// Overlays are diagnostics; a failure to render one is logged, not
	// counted against the run.
	if r.SaveOverlays && r.Collab.Overlay != nil {
		out := filepath.Join(r.OutputDir,
			fmt.Sprintf("%s_%s_matches.png", pair.Set, alg.Name()))
		if err := r.Collab.Overlay(pair, refKps, regKps, kept, inliers, out); err != nil && r.Log != nil {
			r.Log.Warn("overlay failed", "set", pair.Set, "algorithm", alg.Name(), "error", err)
		}
	}

	// Warp. The composite is always produced and timed; an empty
	// outPath tells the collaborator to skip the disk write.
	if r.Collab.Warp != nil {
		out := ""
		if r.SaveStitched {
			out = filepath.Join(r.OutputDir,
				fmt.Sprintf("%s_%s_stitched.jpg", pair.Set, alg.Name()))
		}
		t = time.Now()
		err = r.Collab.Warp(pair, h, out)
		m.WarpTime = seconds(t)
		if err != nil {
			return m.fail(fmt.Sprintf("Exception: %v", err))
		}
	}

	m.Success = true
	return m
}

// RunPair sweeps every algorithm over one pair. The reference
// algorithm, when present, runs first so its homography can serve as
// the baseline for the others.
func (r *Runner) RunPair(pair *Pair, algs []feature.Algorithm) []*Metrics {
	ordered := make([]feature.Algorithm, 0, len(algs))
	for _, a := range algs {
		if a.Name() == r.ReferenceAlgorithm {
			ordered = append(ordered, a)
		}
	}
	for _, a := range algs {
		if a.Name() != r.ReferenceAlgorithm {
			ordered = append(ordered, a)
		}
	}

	var baseline *homography.Homography
	records := make([]*Metrics, 0, len(ordered))
	for _, alg := range ordered {
		if r.Log != nil {
			r.Log.Info("running", "set", pair.Set, "algorithm", alg.Name())
		}
		rec := r.RunSingle(pair, alg, baseline)
		if rec.Success && baseline == nil && alg.Name() == r.ReferenceAlgorithm {
			baseline = rec.H
		}
		records = append(records, rec)
	}
	return records
}

// AlgorithmFactory builds the algorithm set for one pair, letting
// window sizes vary with the pair's resolution.
type AlgorithmFactory func(pair *Pair) []feature.Algorithm

// RunDirectory discovers pairs under root, loads each, and sweeps the
// factory's algorithms over it. Pairs that fail to load are logged and
// skipped, not fatal.
func (r *Runner) RunDirectory(root string, windows map[imaging.SizeCategory][]int, factory AlgorithmFactory) ([]*Metrics, error) {
	pairs, err := DiscoverPairs(root)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no image pairs found under %s", root)
	}

	var records []*Metrics
	for _, pair := range pairs {
		if err := pair.Load(); err != nil {
			if r.Log != nil {
				r.Log.Warn("skipping pair", "set", pair.Set, "error", err)
			}
			continue
		}
		pair.WindowSizes = imaging.WindowSizesFor(pair.Ref.W, pair.Ref.H, windows)

		algs := factory(pair)
		records = append(records, r.RunPair(pair, algs)...)
		for _, alg := range algs {
			alg.Close()
		}
		pair.Close()
	}
	return records, nil
}
