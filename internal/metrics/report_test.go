package metrics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSummaries(t *testing.T) {
	agg := NewAggregator()
	agg.Update("inference", Record{UserTime: 2, SystemTime: 1, CPUUsage: 50, WallClock: 4, MaxRSS: 100})
	agg.Update("inference", Record{UserTime: 4, SystemTime: 3, CPUUsage: 60, WallClock: 6, MaxRSS: 101})

	summaries := agg.Summaries()
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.Phase != "inference" || s.Count != 2 {
		t.Fatalf("summary identity: %+v", s)
	}
	if s.UserTimeMs != 3 || s.WallClockMs != 5 || s.CPUPercent != 55 {
		t.Fatalf("summary means: %+v", s)
	}
	// 100.5 rounds away from zero.
	if s.MaxRSSKB != 101 {
		t.Fatalf("rss mean rounding: %d", s.MaxRSSKB)
	}
}

func TestWriteJSON(t *testing.T) {
	agg := NewAggregator()
	agg.Update("total", Record{UserTime: 1, WallClock: 2, MaxRSS: 10})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, agg); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded []PhaseSummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Phase != "total" || decoded[0].Count != 1 {
		t.Fatalf("decoded: %+v", decoded)
	}
}

func TestWriteSummary(t *testing.T) {
	agg := NewAggregator()
	agg.Update("redbox", Record{UserTime: 1})

	var buf bytes.Buffer
	WriteSummary(&buf, agg)

	out := buf.String()
	if !strings.Contains(out, "Benchmark Summary") {
		t.Fatalf("missing heading: %q", out)
	}
	if !strings.Contains(out, "redbox") {
		t.Fatalf("missing phase row: %q", out)
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, NewAggregator())

	if !strings.Contains(buf.String(), "no valid records") {
		t.Fatalf("expected empty-campaign notice, got %q", buf.String())
	}
}
