// internal/metrics/report.go
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// PhaseSummary is the exported aggregate for one phase, used for both the
// console summary and the JSON export.
type PhaseSummary struct {
	Phase        string  `json:"phase"`
	Count        int64   `json:"count"`
	UserTimeMs   float64 `json:"user_time_ms"`
	SystemTimeMs float64 `json:"system_time_ms"`
	CPUPercent   float64 `json:"cpu_percent"`
	WallClockMs  float64 `json:"wallclock_ms"`
	MaxRSSKB     int64   `json:"max_rss_kb"`
}

// Summaries returns the per-phase mean aggregates in first-seen order.
func (a *Aggregator) Summaries() []PhaseSummary {
	out := make([]PhaseSummary, 0, len(a.order))

	for _, name := range a.order {
		stats := a.phases[name]
		out = append(out, PhaseSummary{
			Phase:        name,
			Count:        stats.Count,
			UserTimeMs:   stats.UserTime.Mean,
			SystemTimeMs: stats.SystemTime.Mean,
			CPUPercent:   stats.CPUUsage.Mean,
			WallClockMs:  stats.WallClock.Mean,
			MaxRSSKB:     int64(math.Round(stats.MaxRSS.Mean)),
		})
	}

	return out
}

var phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)

// WriteSummary renders the per-phase averages as a console table.
func WriteSummary(w io.Writer, agg *Aggregator) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintln(w, "Benchmark Summary (averages per phase)")

	summaries := agg.Summaries()
	if len(summaries) == 0 {
		fmt.Fprintln(w, "  no valid records were parsed")
		return
	}

	fmt.Fprintf(w, "  %-16s %6s %12s %12s %9s %12s %10s\n",
		"phase", "runs", "user(ms)", "sys(ms)", "cpu", "wall(ms)", "rss(kB)")

	for _, s := range summaries {
		fmt.Fprintf(w, "  %s %6d %12.3f %12.3f %8.2f%% %12.3f %10d\n",
			phaseStyle.Render(fmt.Sprintf("%-16s", s.Phase)),
			s.Count, s.UserTimeMs, s.SystemTimeMs, s.CPUPercent,
			s.WallClockMs, s.MaxRSSKB)
	}
}

// WriteJSON writes the per-phase aggregates as an indented JSON array.
func WriteJSON(w io.Writer, agg *Aggregator) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(agg.Summaries())
}
