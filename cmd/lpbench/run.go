package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lpstitch/internal/bench"
	"lpstitch/internal/detection"
	"lpstitch/internal/feature"
	"lpstitch/internal/imaging"
)

func runCmd() *cobra.Command {
	var (
		dataDir    string
		outputDir  string
		csvName    string
		windowSpec string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full benchmark sweep over a dataset directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			windows := cfg.WindowTable()
			if windowSpec != "" {
				sizes, err := imaging.ParseWindowSizes(windowSpec)
				if err != nil {
					return err
				}
				windows = map[imaging.SizeCategory][]int{
					imaging.SizeSmall:  sizes,
					imaging.SizeMedium: sizes,
					imaging.SizeLarge:  sizes,
				}
			}

			kind := feature.MatcherBruteForce
			if cfg.Matcher == "flann" {
				kind = feature.MatcherFlann
			}
			runner := &bench.Runner{
				Seed:               cfg.Seed,
				Threshold:          cfg.RansacThreshold,
				MaxKeypoints:       cfg.MaxKeypoints,
				BruteForce:         kind == feature.MatcherBruteForce,
				ReferenceAlgorithm: cfg.ReferenceAlgorithm,
				OutputDir:          cfg.OutputDir,
				SaveStitched:       cfg.SaveStitched,
				SaveOverlays:       cfg.SaveOverlays,
				Log:                log,
				Collab:             bench.DefaultCollaborators(kind, cfg.CrossCheck),
			}

			opts := detection.PeakOptions{Alpha: cfg.Alpha, Unique3x3: cfg.Unique3x3}
			factory := func(pair *bench.Pair) []feature.Algorithm {
				if !cfg.WantsSet(pair.Set) {
					return nil
				}
				var algs []feature.Algorithm
				for _, name := range feature.AllNames {
					if !cfg.WantsDetector(name) {
						continue
					}
					alg, err := feature.ByName(name, pair.WindowSizes, opts)
					if err != nil {
						continue
					}
					algs = append(algs, alg)
				}
				return algs
			}

			records, err := runner.RunDirectory(dataDir, windows, factory)
			if err != nil {
				return err
			}

			bench.PrintReport(os.Stdout, records)
			csvPath := filepath.Join(cfg.OutputDir, csvName)
			if err := bench.SaveCSV(csvPath, records); err != nil {
				return err
			}
			log.Info("sweep complete", "runs", len(records), "csv", csvPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataDir, "data", "d", "data", "dataset root directory")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	cmd.Flags().StringVar(&csvName, "csv", "benchmark.csv", "CSV report file name")
	cmd.Flags().StringVarP(&windowSpec, "windows", "w", "", "comma-separated window sizes overriding the config (e.g. 16,32,64)")
	return cmd
}
