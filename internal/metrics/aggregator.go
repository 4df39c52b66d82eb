// internal/metrics/aggregator.go
package metrics

// Aggregator keeps one PhaseStats per phase, updated incrementally as
// records arrive. Memory stays O(number of phases) regardless of how many
// iterations run. The campaign is single-threaded, so no locking is needed.
type Aggregator struct {
	phases map[string]*PhaseStats
	order  []string
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		phases: make(map[string]*PhaseStats),
	}
}

// Update folds rec into the running aggregate for phase. Each phase carries
// its own count, taken at the moment of update, so phases whose blocks fail
// to parse at different rates never skew each other's means.
func (a *Aggregator) Update(phase string, rec Record) {
	stats, ok := a.phases[phase]
	if !ok {
		stats = &PhaseStats{}
		a.phases[phase] = stats
		a.order = append(a.order, phase)
	}

	stats.Count++
	n := stats.Count

	updateField(&stats.UserTime, rec.UserTime, n)
	updateField(&stats.SystemTime, rec.SystemTime, n)
	updateField(&stats.CPUUsage, rec.CPUUsage, n)
	updateField(&stats.WallClock, rec.WallClock, n)
	updateField(&stats.MaxRSS, float64(rec.MaxRSS), n)
}

// updateField applies one value to a running field statistic. The mean uses
// the incremental form mean += (v-mean)/n, equivalent to
// (old*(n-1)+v)/n without the intermediate product.
func updateField(fs *FieldStat, v float64, n int64) {
	if n == 1 {
		fs.Min = v
		fs.Max = v
	} else {
		if v < fs.Min {
			fs.Min = v
		}
		if v > fs.Max {
			fs.Max = v
		}
	}

	fs.Mean += (v - fs.Mean) / float64(n)
}

// Phase returns a copy of the stats for the named phase and whether any
// record has been recorded for it.
func (a *Aggregator) Phase(name string) (PhaseStats, bool) {
	stats, ok := a.phases[name]
	if !ok {
		return PhaseStats{}, false
	}
	return *stats, true
}

// Phases lists phase names in first-seen order.
func (a *Aggregator) Phases() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}
