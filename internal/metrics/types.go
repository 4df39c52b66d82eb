// internal/metrics/types.go
// Package metrics parses the phase-delimited measurement blocks emitted by
// the inference workload and maintains per-phase running aggregates.
package metrics

// Record holds the five measured fields of one phase block. Times are
// milliseconds, CPUUsage is a percentage and MaxRSS is the kilobyte count
// reported by getrusage on the workload side.
type Record struct {
	UserTime   float64
	SystemTime float64
	CPUUsage   float64
	WallClock  float64
	MaxRSS     int64
}

// FieldStat is the running aggregate of a single record field.
type FieldStat struct {
	Mean float64
	Min  float64
	Max  float64
}

// PhaseStats accumulates the running aggregates for one phase. Count is the
// number of valid records folded in so far; it only ever grows.
type PhaseStats struct {
	Count      int64
	UserTime   FieldStat
	SystemTime FieldStat
	CPUUsage   FieldStat
	WallClock  FieldStat
	MaxRSS     FieldStat
}

// Marker associates a phase name with the literal substring that introduces
// its block in the workload output.
type Marker struct {
	Name  string
	Match string
}
