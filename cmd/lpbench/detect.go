package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lpstitch/internal/detection"
	"lpstitch/internal/imaging"
	"lpstitch/internal/viz"
)

func detectCmd() *cobra.Command {
	var overlayPath string
	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Run local-peak detection on one image and report keypoints per window size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cache := imaging.NewImageCache()
			plane, err := cache.LoadPlane(args[0])
			if err != nil {
				return err
			}

			windows := imaging.WindowSizesFor(plane.W, plane.H, cfg.WindowTable())
			opts := detection.PeakOptions{Alpha: cfg.Alpha, Unique3x3: cfg.Unique3x3}
			kps := detection.DetectPeaks(plane, windows, opts)

			fmt.Printf("%s: %dx%d (%s), windows %s\n", args[0], plane.W, plane.H,
				imaging.Categorize(plane.W, plane.H), imaging.FormatWindowSizes(windows))
			perClass := make([]int, len(windows))
			for _, kp := range kps {
				if kp.Class >= 0 && kp.Class < len(perClass) {
					perClass[kp.Class]++
				}
			}
			for i, l := range windows {
				fmt.Printf("  L=%d: %d keypoints\n", l, perClass[i])
			}
			fmt.Printf("  total: %d\n", len(kps))

			if overlayPath != "" || cfg.SaveOverlays {
				if overlayPath == "" {
					base := filepath.Base(args[0])
					overlayPath = filepath.Join(cfg.OutputDir, base+".keypoints.png")
				}
				img, err := cache.Load(args[0])
				if err != nil {
					return err
				}
				if err := viz.SavePNG(overlayPath, viz.KeypointOverlay(img, kps, len(windows))); err != nil {
					return err
				}
				fmt.Printf("  overlay: %s\n", overlayPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&overlayPath, "overlay", "", "write a keypoint overlay PNG to this path")
	return cmd
}
