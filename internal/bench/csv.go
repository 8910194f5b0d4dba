package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// csvHeader is the column order of the sweep report.
var csvHeader = []string{
	"Set", "Algorithm", "Window Sizes", "Size Category",
	"Ref Resolution", "Reg Resolution",
	"Ref Keypoints", "Reg Keypoints",
	"Ref Descriptors", "Reg Descriptors",
	"Matches", "Inliers",
	"Detect Ref (s)", "Detect Reg (s)",
	"Describe Ref (s)", "Describe Reg (s)",
	"Match (s)", "Fit (s)", "Warp (s)", "Total (s)",
	"Success", "Failure Reason",
	"Homography", "Baseline Delta", "Reprojection Error",
}

// WriteCSV writes one row per record in csvHeader order.
func WriteCSV(w io.Writer, records []*Metrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Set, rec.Algorithm, rec.WindowSizes, rec.Category.String(),
			rec.RefResolution, rec.RegResolution,
			strconv.Itoa(rec.RefKeypoints), strconv.Itoa(rec.RegKeypoints),
			strconv.Itoa(rec.RefDescriptors), strconv.Itoa(rec.RegDescriptors),
			strconv.Itoa(rec.Matches), strconv.Itoa(rec.Inliers),
			FormatSeconds(rec.DetectRefTime), FormatSeconds(rec.DetectRegTime),
			FormatSeconds(rec.DescribeRefTime), FormatSeconds(rec.DescribeRegTime),
			FormatSeconds(rec.MatchTime), FormatSeconds(rec.FitTime),
			FormatSeconds(rec.WarpTime), FormatSeconds(rec.TotalTime),
			strconv.FormatBool(rec.Success), rec.FailureReason,
			rec.H.String(), rec.BaselineDelta.String(),
			fmt.Sprintf("%.4f", rec.ReprojError),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the report to path, creating parent directories.
func SaveCSV(path string, records []*Metrics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save csv: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save csv: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}
