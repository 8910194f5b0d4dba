package bench

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"lpstitch/internal/homography"
	"lpstitch/internal/imaging"
)

func sampleRecords() []*Metrics {
	ok := &Metrics{
		Set: "set01", Algorithm: "SIFT", Category: imaging.SizeSmall,
		RefResolution: "640x480", RegResolution: "640x480",
		RefKeypoints: 100, RegKeypoints: 90,
		RefDescriptors: 100, RegDescriptors: 90,
		Matches: 80, Inliers: 60,
		TotalTime: 1.234, Success: true,
		H: homography.Translation(10, 5),
	}
	slow := &Metrics{
		Set: "set02", Algorithm: "SIFT", Category: imaging.SizeMedium,
		TotalTime: 3.456, Success: true,
		H: homography.Identity(),
	}
	failed := &Metrics{
		Set: "set01", Algorithm: "LP-SIFT64", Category: imaging.SizeSmall,
		WindowSizes: "16,32,64",
		TotalTime:   0.5, Success: false,
		FailureReason: "Empty descriptors",
	}
	return []*Metrics{ok, slow, failed}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, sampleRecords())
	out := buf.String()

	for _, want := range []string{
		"set01", "SIFT", "Empty descriptors",
		"[[1.0000, 0.0000, 10.0000]",
		"Per-algorithm summary:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaryAggregates(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleRecords())
	out := buf.String()

	// SIFT: 2/2 successes, avg 2.34, min 1.23, max 3.46.
	if !strings.Contains(out, "2/2") {
		t.Errorf("missing SIFT success rate in:\n%s", out)
	}
	for _, want := range []string{"2.34", "1.23", "3.46"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing timing %q in:\n%s", want, out)
		}
	}
	// LP-SIFT64 never succeeded; times are dashed.
	if !strings.Contains(out, "0/1") {
		t.Errorf("missing LP-SIFT64 success rate in:\n%s", out)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "Set" || rows[0][len(rows[0])-1] != "Reprojection Error" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			t.Errorf("row %d has %d columns, want %d", i, len(row), len(csvHeader))
		}
	}
	if rows[1][1] != "SIFT" || rows[1][20] != "true" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[3][21] != "Empty descriptors" {
		t.Errorf("failure reason column = %q", rows[3][21])
	}
	if rows[3][2] != "16,32,64" {
		t.Errorf("window sizes column = %q", rows[3][2])
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := FormatSeconds(1.239); got != "1.24" {
		t.Errorf("FormatSeconds = %q", got)
	}
	if got := Resolution(1920, 1080); got != "1920x1080" {
		t.Errorf("Resolution = %q", got)
	}
}
