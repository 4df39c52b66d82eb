// internal/metrics/parse.go
package metrics

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Field labels as printed by the workload's Metrics display. Matching is a
// literal substring search, the remainder of the line is the value text.
const (
	labelWallClock  = "Wall Clock Time:"
	labelUserTime   = "User time:"
	labelSystemTime = "System time:"
	labelCPUUsage   = "CPU Usage:"
	labelMaxRSS     = "Max RSS:"
)

// blockTerminator closes every metrics block in the workload output. The
// marker header lines use shorter runs of '=', so they never match it.
const blockTerminator = "======================================="

// fieldCount is the number of distinct labels a block must contain to be
// accepted.
const fieldCount = 5

// splitValue extracts a leading floating-point number from text and returns
// it together with the first token that follows it (the unit, possibly
// empty). ok is false when no number could be parsed.
func splitValue(text string) (value float64, unit string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, "", false
	}

	end := 0
	seenDot := false
scan:
	for end < len(text) {
		c := text[end]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '-' || c == '+') && end == 0:
		default:
			break scan
		}
		end++
	}

	value, err := strconv.ParseFloat(text[:end], 64)
	if err != nil {
		return 0, "", false
	}

	rest := strings.TrimSpace(text[end:])
	if fields := strings.Fields(rest); len(fields) > 0 {
		unit = fields[0]
	}

	return value, unit, true
}

// normalizeTime converts a time value with an optional unit suffix to
// milliseconds. Seconds multiply by 1000, microseconds divide by 1000 and
// any other suffix (including "ms" and none at all) passes through
// unchanged. The silent pass-through mirrors the workload contract: values
// without a recognized suffix are already milliseconds.
func normalizeTime(text string) (float64, bool) {
	value, unit, ok := splitValue(text)
	if !ok {
		return 0, false
	}

	switch unit {
	case "s", "sec":
		return value * 1000, true
	case "µs", "us", "microseconds":
		return value / 1000, true
	default:
		return value, true
	}
}

// normalizePercent reads a CPU percentage, ignoring a trailing '%'.
func normalizePercent(text string) (float64, bool) {
	value, _, ok := splitValue(text)
	return value, ok
}

// parseMemory reads a leading integer kilobyte count, tolerating trailing
// text such as a unit word.
func parseMemory(text string) (int64, bool) {
	text = strings.TrimSpace(text)

	end := 0
	for end < len(text) {
		c := text[end]
		if c >= '0' && c <= '9' || (c == '-' && end == 0) {
			end++
			continue
		}
		break
	}

	value, err := strconv.ParseInt(text[:end], 10, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// parseBlock consumes lines from sc until all five labeled fields have been
// seen, a terminator line appears, or the input ends. It returns the parsed
// record and whether the block was complete. Fields may appear in any
// order; a repeated label overwrites the earlier value.
func parseBlock(sc *bufio.Scanner) (Record, bool) {
	var rec Record

	found := make(map[string]bool, fieldCount)

	for sc.Scan() {
		line := sc.Text()

		switch {
		case strings.Contains(line, labelWallClock):
			if v, ok := normalizeTime(afterLabel(line, labelWallClock)); ok {
				rec.WallClock = v
				found[labelWallClock] = true
			}
		case strings.Contains(line, labelUserTime):
			if v, ok := normalizeTime(afterLabel(line, labelUserTime)); ok {
				rec.UserTime = v
				found[labelUserTime] = true
			}
		case strings.Contains(line, labelSystemTime):
			if v, ok := normalizeTime(afterLabel(line, labelSystemTime)); ok {
				rec.SystemTime = v
				found[labelSystemTime] = true
			}
		case strings.Contains(line, labelCPUUsage):
			if v, ok := normalizePercent(afterLabel(line, labelCPUUsage)); ok {
				rec.CPUUsage = v
				found[labelCPUUsage] = true
			}
		case strings.Contains(line, labelMaxRSS):
			if v, ok := parseMemory(afterLabel(line, labelMaxRSS)); ok {
				rec.MaxRSS = v
				found[labelMaxRSS] = true
			}
		case strings.Contains(line, blockTerminator):
			return rec, len(found) == fieldCount
		}

		if len(found) == fieldCount {
			return rec, true
		}
	}

	// End of input counts as end of block.
	return rec, len(found) == fieldCount
}

// afterLabel returns the value text following the first occurrence of label
// in line.
func afterLabel(line, label string) string {
	idx := strings.Index(line, label)
	return line[idx+len(label):]
}

// ScanOutput walks one captured workload run, invoking fn for every phase
// block that parsed completely. Blocks missing fields are discarded and
// scanning resumes at the next marker, so a single malformed block never
// costs more than its own record. The returned error reflects only read
// failures on r.
func ScanOutput(r io.Reader, markers []Marker, fn func(phase string, rec Record)) error {
	sc := bufio.NewScanner(r)

	for sc.Scan() {
		line := sc.Text()
		for _, m := range markers {
			if !strings.Contains(line, m.Match) {
				continue
			}
			if rec, ok := parseBlock(sc); ok {
				fn(m.Name, rec)
			}
			break
		}
	}

	return sc.Err()
}
