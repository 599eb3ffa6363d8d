package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// WriteTable renders the human-readable comparison summary.
func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Vector Store Benchmark ===\n")
	fmt.Fprintf(tw, "Trials: %d\tK: %d\tDims: %d\tPricing: %s\n\n",
		r.Meta.TrialsRequested, r.Meta.K, r.Meta.Dimensions, r.Meta.PricingVersion)

	writePerformanceTable(tw, r)
	writeCostTable(tw, r)

	tw.Flush()
}

func writePerformanceTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Performance\n\n")

	header := []string{"Backend", "Kind", "Trials", "Errors", "Mean", "p50", "p95", "p99", "QPS", "Status"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, e := range r.Backends {
		s := e.Summary

		row := []string{e.Name, string(e.Kind), fmt.Sprintf("%d", s.TrialCount)}
		row = append(row, fmt.Sprintf("%.0f%%", s.ErrorRate*100))

		if s.Latency != nil {
			row = append(row,
				fmtDuration(s.Latency.Mean),
				fmtDuration(s.Latency.P50()),
				fmtDuration(s.Latency.P95()),
				fmtDuration(s.Latency.P99()),
				fmt.Sprintf("%.1f", s.ThroughputQPS),
			)
		} else {
			row = append(row, "n/a", "n/a", "n/a", "n/a", "n/a")
		}

		status := "ok"
		switch {
		case s.SetupFailed:
			status = "setup failed"
		case s.TrialCount > 0 && s.SuccessCount == 0:
			status = "all trials failed"
		}
		row = append(row, status)

		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeCostTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Cost (monthly, USD)\n\n")

	header := []string{"Backend", "Fixed", "Variable", "Storage", "Total", "Per 1k queries", "Assumed volume"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, e := range r.Backends {
		c := e.Cost
		row := []string{
			e.Name,
			fmt.Sprintf("%.2f", c.MonthlyFixed),
			fmt.Sprintf("%.2f", c.VariableMonthly),
			fmt.Sprintf("%.2f", c.StorageMonthly),
			fmt.Sprintf("%.2f", c.TotalMonthly),
			fmt.Sprintf("%.4f", c.PerThousandQueries),
			fmt.Sprintf("%d", c.AssumedQueries),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func separator(cols int) string {
	sep := make([]string, cols)
	for i := range sep {
		sep[i] = "---"
	}
	return strings.Join(sep, "\t")
}

func fmtDuration(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
