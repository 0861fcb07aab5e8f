package analysis

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 80)

// FprintMethodSummaries prints the runtime summary table, grouped by platform.
func FprintMethodSummaries(w io.Writer, rows []MethodSummary) {
	fmt.Fprintf(w, "\n%s\nSTATISTICAL SUMMARY (Runtime) - Consolidated vs Vectorized\n%s\n", rule, rule)

	current := ""
	for i, r := range rows {
		if i == 0 || r.Platform != current {
			current = r.Platform
			fmt.Fprintf(w, "\n%s\n%s\n", strings.ToUpper(r.Platform), strings.Repeat("-", len(r.Platform)))
		}
		fmt.Fprintf(w, "%-12s | Mean: %7.1f | Median: %7.1f | Std: %7.1f | Min: %7.1f | Max: %7.1f\n",
			r.Method, r.Mean, r.Median, r.Std, r.Min, r.Max)
	}
}

// FprintRatioSummaries prints the ratio summary of every platform.
func FprintRatioSummaries(w io.Writer, rows []RatioSummary) {
	fmt.Fprintf(w, "\n%s\nVECTORIZED vs CONSOLIDATED PERFORMANCE RATIOS\n", rule)
	fmt.Fprintf(w, "Ratio < 1.0 = vectorized faster, > 1.0 = consolidated faster\n%s\n", rule)

	for _, r := range rows {
		fmt.Fprintf(w, "\n%s\n%s\n", strings.ToUpper(r.Platform), strings.Repeat("-", len(r.Platform)))
		fmt.Fprintf(w, "Mean ratio:    %5.2fx (%+5.1f%%)\n", r.MeanRatio, r.MeanPctChange)
		fmt.Fprintf(w, "Median ratio:  %5.2fx (%+5.1f%%)\n", r.MedianRatio, r.MedianPctChange)
		fmt.Fprintf(w, "Std deviation: %5.2f\n", r.Std)
		fmt.Fprintf(w, "Min ratio:     %5.2fx (best vectorized performance)\n", r.MinRatio)
		fmt.Fprintf(w, "Max ratio:     %5.2fx (worst vectorized performance)\n", r.MaxRatio)
	}
}
