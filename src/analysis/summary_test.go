package analysis

import (
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	tbl, err := LoadTableFrom("LineDirectHK", strings.NewReader(echoLog))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := Summarize(tbl)
	if s.Name != "LineDirectHK" || s.Samples != 3 {
		t.Fatalf("unexpected summary header: %+v", s)
	}
	if s.MinLatencyMs != 40 || s.MaxLatencyMs != 55.25 || s.P50LatencyMs != 42.5 || s.P95LatencyMs != 55.25 {
		t.Fatalf("unexpected latency stats: %+v", s)
	}
	if s.AvgLossPct < 1.16 || s.AvgLossPct > 1.17 || s.MaxLossPct != 2 {
		t.Fatalf("unexpected loss stats: %+v", s)
	}
	if s.SentTotal != 600 || s.LostTotal != 7 {
		t.Fatalf("unexpected counters: sent=%v lost=%v", s.SentTotal, s.LostTotal)
	}
	if !s.Chronological {
		t.Fatalf("expected chronological")
	}
	line := s.String()
	if !strings.Contains(line, "[LineDirectHK] samples=3") || strings.Contains(line, "not chronological") {
		t.Fatalf("unexpected summary line: %s", line)
	}
}

func TestSummarizeEmptyAndPlaceholders(t *testing.T) {
	s := Summarize(&LogTable{Name: "empty"})
	if s.Samples != 0 || s.AvgLatencyMs != 0 || s.Name != "empty" {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
	tbl, err := LoadTableFrom("x", strings.NewReader("h\ntype,2019-01-01 00:00:00,_,10ms,0%,_,_,_\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s = Summarize(tbl)
	if s.SentTotal != 0 || s.LostTotal != 0 {
		t.Fatalf("placeholder counters should be skipped: %+v", s)
	}
	if strings.Contains(s.String(), "sent=") {
		t.Fatalf("counters should be omitted when absent: %s", s.String())
	}
}
