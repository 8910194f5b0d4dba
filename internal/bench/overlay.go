package bench

import (
	"fmt"

	"lpstitch/internal/detection"
	"lpstitch/internal/feature"
	"lpstitch/internal/viz"
)

// SaveMatchOverlay renders the pair side by side with correspondence
// lines, inliers in green, and writes it to outPath.
func SaveMatchOverlay(pair *Pair, refKps, regKps []detection.Keypoint, matches []feature.Match, inliers []bool, outPath string) error {
	if pair.Ref == nil || pair.Reg == nil {
		return fmt.Errorf("overlay %s: pair not loaded", pair.Set)
	}
	refImg, err := pair.Ref.Color.ToImage()
	if err != nil {
		return fmt.Errorf("overlay %s: %w", pair.Set, err)
	}
	regImg, err := pair.Reg.Color.ToImage()
	if err != nil {
		return fmt.Errorf("overlay %s: %w", pair.Set, err)
	}
	return viz.SavePNG(outPath, viz.MatchOverlay(refImg, regImg, refKps, regKps, matches, inliers))
}
