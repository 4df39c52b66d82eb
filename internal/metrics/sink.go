// internal/metrics/sink.go
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
)

// csvHeader matches the column order consumed by the offline analysis
// scripts; do not reorder.
const csvHeader = "user_time,system_time,cpu_percent,wallclock_time,max_rss"

// SinkSpec names one phase and the CSV file that receives its rows.
type SinkSpec struct {
	Name string
	File string
}

// SinkSet owns the per-phase CSV files for the lifetime of a campaign.
// Files are created (truncating any previous run's output) when the set is
// opened and stay open until Close, so every iteration's row lands in the
// same handle.
type SinkSet struct {
	files map[string]*os.File
}

// OpenSinks creates one CSV file per spec under dir and writes the header
// row to each. On any failure it closes whatever it already opened and
// returns the error; a partially opened set is never handed back.
func OpenSinks(dir string, specs []SinkSpec) (*SinkSet, error) {
	set := &SinkSet{files: make(map[string]*os.File, len(specs))}

	for _, spec := range specs {
		path := filepath.Join(dir, spec.File)

		file, err := os.Create(path)
		if err != nil {
			set.Close()
			return nil, fmt.Errorf("open csv %s: %w", path, err)
		}

		if _, err := fmt.Fprintln(file, csvHeader); err != nil {
			file.Close()
			set.Close()
			return nil, fmt.Errorf("write csv header %s: %w", path, err)
		}

		set.files[spec.Name] = file
	}

	return set, nil
}

// FormatRow renders one record as a CSV data row: times to three decimals,
// CPU to two with a literal '%', memory as an integer.
func FormatRow(rec Record) string {
	return fmt.Sprintf("%.3f,%.3f,%.2f%%,%.3f,%d",
		rec.UserTime, rec.SystemTime, rec.CPUUsage, rec.WallClock, rec.MaxRSS)
}

// Append writes one record row to the named phase's file.
func (s *SinkSet) Append(phase string, rec Record) error {
	file, ok := s.files[phase]
	if !ok {
		return fmt.Errorf("no csv sink for phase %q", phase)
	}

	if _, err := fmt.Fprintln(file, FormatRow(rec)); err != nil {
		return fmt.Errorf("append csv row for %s: %w", phase, err)
	}

	return nil
}

// Close releases every file in the set, keeping the first error.
func (s *SinkSet) Close() error {
	var first error
	for name, file := range s.files {
		if err := file.Close(); err != nil && first == nil {
			first = fmt.Errorf("close csv for %s: %w", name, err)
		}
	}
	s.files = nil
	return first
}
