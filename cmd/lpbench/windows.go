package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lpstitch/internal/imaging"
)

func windowsCmd() *cobra.Command {
	var maxPeaks int
	cmd := &cobra.Command{
		Use:   "windows <image>",
		Short: "Suggest window sizes from the image's dominant spatial frequencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plane, err := imaging.NewImageCache().LoadPlane(args[0])
			if err != nil {
				return err
			}

			sizes, peaks := imaging.SuggestWindowSizes(plane, maxPeaks)
			if len(sizes) == 0 {
				fmt.Println("no dominant frequencies found; use the defaults:",
					imaging.FormatWindowSizes(imaging.DefaultWindowSizes))
				return nil
			}
			for _, p := range peaks {
				fmt.Printf("  %s bin %d: period %.1f px, magnitude %.1f, window %d\n",
					p.Axis, p.Bin, p.Period, p.Magnitude, p.Window)
			}
			fmt.Println("suggested window sizes:", imaging.FormatWindowSizes(sizes))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxPeaks, "peaks", 4, "maximum spectral peaks to keep per axis")
	return cmd
}
