package bench

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"
)

// PrintReport writes one row per record followed by the per-algorithm
// aggregate summary. Records are not mutated.
func PrintReport(w io.Writer, records []*Metrics) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SET\tALGORITHM\tSIZE\tKP(REF/REG)\tMATCHES\tINLIERS\tTOTAL(S)\tSTATUS")
	for _, rec := range records {
		status := "OK"
		if !rec.Success {
			status = rec.FailureReason
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d\t%d\t%s\t%s\n",
			rec.Set, rec.Algorithm, rec.Category,
			rec.RefKeypoints, rec.RegKeypoints,
			rec.Matches, rec.Inliers,
			FormatSeconds(rec.TotalTime), status)
	}
	tw.Flush()

	for _, rec := range records {
		if rec.H == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s / %s homography: %s\n", rec.Set, rec.Algorithm, rec.H)
		if rec.BaselineDelta != nil {
			fmt.Fprintf(w, "%s / %s baseline delta: %s (norm %.4f)\n",
				rec.Set, rec.Algorithm, rec.BaselineDelta, rec.BaselineDelta.Norm())
		}
	}

	PrintSummary(w, records)
}

// summary is the per-algorithm aggregate over a sweep.
type summary struct {
	runs      int
	successes int
	total     float64
	min       float64
	max       float64
}

// PrintSummary groups records by algorithm and prints success rate and
// average/min/max total time over the successful runs.
func PrintSummary(w io.Writer, records []*Metrics) {
	byAlg := map[string]*summary{}
	var names []string
	for _, rec := range records {
		s, ok := byAlg[rec.Algorithm]
		if !ok {
			s = &summary{min: math.Inf(1), max: math.Inf(-1)}
			byAlg[rec.Algorithm] = s
			names = append(names, rec.Algorithm)
		}
		s.runs++
		if !rec.Success {
			continue
		}
		s.successes++
		s.total += rec.TotalTime
		s.min = math.Min(s.min, rec.TotalTime)
		s.max = math.Max(s.max, rec.TotalTime)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nPer-algorithm summary:")
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tSUCCESS\tAVG(S)\tMIN(S)\tMAX(S)")
	for _, name := range names {
		s := byAlg[name]
		rate := fmt.Sprintf("%d/%d", s.successes, s.runs)
		if s.successes == 0 {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\n", name, rate)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, rate,
			FormatSeconds(s.total/float64(s.successes)),
			FormatSeconds(s.min), FormatSeconds(s.max))
	}
	tw.Flush()
}
