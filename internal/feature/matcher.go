package feature

import (
	"gocv.io/x/gocv"
)

// MaxKeypointsBF caps the keypoint count per image for brute-force
// matching. Beyond it the O(n*m) distance matrix becomes the dominant
// cost of a run, so the benchmark fails the pair instead of thrashing.
const MaxKeypointsBF = 50000

// Match is one descriptor correspondence: row indices into the
// reference (Query) and registered (Train) descriptor matrices.
type Match struct {
	QueryIdx int
	TrainIdx int
	Distance float64
}

// Matcher produces correspondences between two descriptor sets.
type Matcher interface {
	Match(query, train DescriptorSet) ([]Match, error)
	Kind() MatcherKind
	Close() error
}

// NewMatcher builds a matcher of the requested kind for descriptors
// compared under the given norm. FLANN indexes float descriptors only,
// so a FLANN request for a Hamming-norm algorithm falls back to
// brute force.
func NewMatcher(kind MatcherKind, norm gocv.NormType, crossCheck bool) Matcher {
	if kind == MatcherFlann && norm != gocv.NormHamming {
		fm := gocv.NewFlannBasedMatcher()
		return &flannMatcher{m: fm}
	}
	bm := gocv.NewBFMatcherWithParams(norm, crossCheck)
	return &bfMatcher{m: bm}
}

type bfMatcher struct {
	m gocv.BFMatcher
}

func (b *bfMatcher) Kind() MatcherKind { return MatcherBruteForce }

func (b *bfMatcher) Match(query, train DescriptorSet) ([]Match, error) {
	return fromDMatches(b.m.Match(query.Mat, train.Mat)), nil
}

func (b *bfMatcher) Close() error {
	return b.m.Close()
}

type flannMatcher struct {
	m gocv.FlannBasedMatcher
}

func (f *flannMatcher) Kind() MatcherKind { return MatcherFlann }

func (f *flannMatcher) Match(query, train DescriptorSet) ([]Match, error) {
	knn := f.m.KnnMatch(query.Mat, train.Mat, 1)
	out := make([]Match, 0, len(knn))
	for _, row := range knn {
		if len(row) == 0 {
			continue
		}
		out = append(out, Match{
			QueryIdx: row[0].QueryIdx,
			TrainIdx: row[0].TrainIdx,
			Distance: row[0].Distance,
		})
	}
	return out, nil
}

func (f *flannMatcher) Close() error {
	return f.m.Close()
}

func fromDMatches(dm []gocv.DMatch) []Match {
	out := make([]Match, len(dm))
	for i, m := range dm {
		out[i] = Match{QueryIdx: m.QueryIdx, TrainIdx: m.TrainIdx, Distance: m.Distance}
	}
	return out
}
